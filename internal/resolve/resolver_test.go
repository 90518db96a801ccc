package resolve

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/stretchr/testify/assert"
)

func docWithModule(fqn, filePath string, exported ...string) *ir.IRDocument {
	doc := &ir.IRDocument{FilePath: filePath}
	doc.Nodes = append(doc.Nodes, ir.Node{
		ID:   ir.NewNodeID(filePath, fqn, ir.NodeKindModule, ir.Span{}),
		Kind: ir.NodeKindModule,
		FQN:  fqn,
	})
	for _, name := range exported {
		doc.Nodes = append(doc.Nodes, ir.Node{
			ID:         ir.NewNodeID(filePath, fqn+"."+name, ir.NodeKindFunction, ir.Span{StartLine: 1}),
			Kind:       ir.NodeKindFunction,
			Name:       name,
			FQN:        fqn + "." + name,
			Visibility: ir.VisibilityPublic,
		})
	}
	return doc
}

func TestResolver_AbsoluteInternalMatch(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.foo", "pkg/foo.go"))
	ctx.AddDocument(docWithModule("pkg.bar", "pkg/bar.go"))

	r := NewResolver(ctx, "go")
	result := r.ResolveImport("pkg.foo", "pkg/bar.go", "pkg.bar")

	assert.Equal(t, KindInternal, result.Kind)
	assert.Equal(t, "pkg.foo", result.ModulePath)
}

func TestResolver_RelativeImportResolvesWithinPackage(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.sub.foo", "pkg/sub/foo.go"))
	ctx.AddDocument(docWithModule("pkg.sub.bar", "pkg/sub/bar.go"))

	r := NewResolver(ctx, "python")
	result := r.ResolveImport(".bar", "pkg/sub/foo.go", "pkg.sub.foo")

	assert.Equal(t, KindInternal, result.Kind)
	assert.Equal(t, "pkg.sub.bar", result.ModulePath)
}

func TestResolver_StdlibImport(t *testing.T) {
	ctx := NewGlobalContext()
	r := NewResolver(ctx, "go")

	result := r.ResolveImport("fmt", "pkg/foo.go", "pkg.foo")
	assert.Equal(t, KindExternalStdlib, result.Kind)
}

func TestResolver_ExternalPackage(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.foo", "pkg/foo.go"))

	r := NewResolver(ctx, "go")
	result := r.ResolveImport("github.com/stretchr/testify", "pkg/foo.go", "pkg.foo")
	assert.Equal(t, KindExternalPackage, result.Kind)
}

func TestResolver_UnresolvedWithSuggestion(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.widget", "pkg/widget.go"))

	r := NewResolver(ctx, "go")
	result := r.ResolveImport("pkg.widgit", "other/file.go", "other.file")

	assert.Equal(t, KindUnresolved, result.Kind)
	assert.Equal(t, "pkg.widget", result.Suggestion)
}

func TestResolver_UnresolvedWithoutMatchingRootIsExternalPackage(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.widget", "pkg/widget.go"))

	r := NewResolver(ctx, "go")
	result := r.ResolveImport("totallyunrelated.thing", "other/file.go", "other.file")
	assert.Equal(t, KindExternalPackage, result.Kind)
}

func TestGlobalContext_ExportedSymbolsTracked(t *testing.T) {
	ctx := NewGlobalContext()
	ctx.AddDocument(docWithModule("pkg.foo", "pkg/foo.go", "DoThing", "OtherThing"))

	assert.True(t, ctx.HasModule("pkg.foo"))
	assert.ElementsMatch(t, []string{"DoThing", "OtherThing"}, ctx.exportedSymbols["pkg.foo"])
}
