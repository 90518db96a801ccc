package depgraph

import (
	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/resolve"
)

// Builder assembles a Graph from a batch of IRDocuments, the same two-
// pass shape as the teacher's DependencyGraphBuilder: first every
// document's module node is registered so internal imports always have
// somewhere to resolve to, then every import node is resolved and wired
// in as an edge.
//
// Import nodes here only carry a module path, not the "from X import Y"
// symbol list the teacher's Python extractor captures structurally — the
// IR's structural extraction doesn't distinguish the two forms, so every
// edge is recorded as EdgeImportModule. Symbol-level impact is carried
// instead by the REFERENCES_SYMBOL edges the structural generator already
// produces per call site, which is strictly more precise than an
// import-statement symbol list would be.
type Builder struct {
	ctx       *resolve.GlobalContext
	resolvers map[string]*resolve.Resolver
}

// NewBuilder creates a Builder backed by ctx, which must already have
// every document in the batch registered via ctx.AddDocument.
func NewBuilder(ctx *resolve.GlobalContext) *Builder {
	return &Builder{ctx: ctx, resolvers: make(map[string]*resolve.Resolver)}
}

func (b *Builder) resolverFor(language string) *resolve.Resolver {
	if r, ok := b.resolvers[language]; ok {
		return r
	}
	r := resolve.NewResolver(b.ctx, language)
	b.resolvers[language] = r
	return r
}

// BuildFromIR constructs the dependency graph for one snapshot.
func (b *Builder) BuildFromIR(docs []*ir.IRDocument, repoID, snapshotID string) *Graph {
	g := NewGraph(repoID, snapshotID)

	for _, doc := range docs {
		mod, ok := doc.ModuleNode()
		if !ok {
			continue
		}
		g.GetOrCreateNode(mod.FQN, resolve.KindInternal)
	}

	for _, doc := range docs {
		b.processDocument(doc, g)
	}

	return g
}

func (b *Builder) processDocument(doc *ir.IRDocument, g *Graph) {
	mod, ok := doc.ModuleNode()
	if !ok {
		return
	}

	resolver := b.resolverFor(doc.Language)
	for _, n := range doc.NodesByKind(ir.NodeKindImport) {
		importPath := n.Attrs["path"]
		if importPath == "" {
			importPath = n.Name
		}
		b.processImport(importPath, n.Span.StartLine, mod.FQN, doc.FilePath, resolver, g)
	}
}

func (b *Builder) processImport(importPath string, line int, currentModule, currentFile string, resolver *resolve.Resolver, g *Graph) {
	result := resolver.ResolveImport(importPath, currentFile, currentModule)

	target := g.GetOrCreateNode(result.ModulePath, result.Kind)
	if result.Kind == resolve.KindUnresolved {
		target.ResolutionNote = result.Suggestion
	}

	loc := ImportLocation{
		FilePath:        currentFile,
		Line:            line,
		ImportStatement: importPath,
	}
	target.addImportLocation(loc)

	if edges := g.GetEdgesBetween(currentModule, result.ModulePath); len(edges) > 0 {
		// edges[0] is already a pointer held inside g.edges; mutating it in
		// place merges the new location without creating a duplicate entry.
		edges[0].addLocation(loc)
		return
	}

	edge := &Edge{
		Source: currentModule,
		Target: result.ModulePath,
		Kind:   EdgeImportModule,
	}
	edge.addLocation(loc)
	g.AddEdge(edge)
}
