package depgraph

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moduleDoc(fqn, filePath, language string, importPaths ...string) *ir.IRDocument {
	doc := &ir.IRDocument{FilePath: filePath, Language: language}
	doc.Nodes = append(doc.Nodes, ir.Node{
		ID:   ir.NewNodeID(filePath, fqn, ir.NodeKindModule, ir.Span{}),
		Kind: ir.NodeKindModule,
		FQN:  fqn,
	})
	for i, path := range importPaths {
		importFQN := fqn + "#import"
		doc.Nodes = append(doc.Nodes, ir.Node{
			ID:    ir.NewNodeID(filePath, importFQN, ir.NodeKindImport, ir.Span{StartLine: i + 1}),
			Kind:  ir.NodeKindImport,
			Name:  path,
			FQN:   importFQN,
			Span:  ir.Span{StartLine: i + 1},
			Attrs: map[string]string{"path": path},
		})
	}
	return doc
}

func TestBuilder_BuildFromIR_InternalEdge(t *testing.T) {
	a := moduleDoc("pkg.a", "pkg/a.go", "go", "pkg.b")
	b := moduleDoc("pkg.b", "pkg/b.go", "go")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)
	ctx.AddDocument(b)

	g := NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a, b}, "repo", "snap1")

	node, ok := g.GetNode("pkg.b")
	require.True(t, ok)
	assert.True(t, node.IsInternal())

	deps := g.Dependencies("pkg.a")
	assert.Contains(t, deps, "pkg.b")
	assert.Contains(t, g.Dependents("pkg.b"), "pkg.a")
}

func TestBuilder_BuildFromIR_StdlibAndExternal(t *testing.T) {
	a := moduleDoc("pkg.a", "pkg/a.go", "go", "fmt", "github.com/some/pkg")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)

	g := NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a}, "repo", "snap1")

	fmtNode, ok := g.GetNode("fmt")
	require.True(t, ok)
	assert.Equal(t, resolve.KindExternalStdlib, fmtNode.Kind)

	extNode, ok := g.GetNode("github.com/some/pkg")
	require.True(t, ok)
	assert.Equal(t, resolve.KindExternalPackage, extNode.Kind)
}

func TestBuilder_RepeatedImportMergesIntoOneEdge(t *testing.T) {
	a := moduleDoc("pkg.a", "pkg/a.go", "go", "pkg.b", "pkg.b")
	b := moduleDoc("pkg.b", "pkg/b.go", "go")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)
	ctx.AddDocument(b)

	g := NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a, b}, "repo", "snap1")

	edges := g.GetEdgesBetween("pkg.a", "pkg.b")
	require.Len(t, edges, 1)
	assert.Len(t, edges[0].ImportLocations, 2)
}

func TestGraph_CyclesDetectsTwoNodeCycle(t *testing.T) {
	a := moduleDoc("pkg.a", "pkg/a.go", "go", "pkg.b")
	b := moduleDoc("pkg.b", "pkg/b.go", "go", "pkg.a")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)
	ctx.AddDocument(b)

	g := NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a, b}, "repo", "snap1")
	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"pkg.a", "pkg.b"}, cycles[0])
}

func TestGraph_GetStatistics(t *testing.T) {
	a := moduleDoc("pkg.a", "pkg/a.go", "go", "pkg.b")
	b := moduleDoc("pkg.b", "pkg/b.go", "go")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)
	ctx.AddDocument(b)

	g := NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a, b}, "repo", "snap1")
	stats := g.GetStatistics()

	assert.Equal(t, 2, stats.InternalNodes)
	assert.Equal(t, 1, stats.TotalEdges)
	assert.Equal(t, 1, stats.InternalEdges)
}
