package orchestrator

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/depgraph"
	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/resolve"
	"github.com/standardbeagle/irengine/internal/semgraph"
	"github.com/stretchr/testify/assert"
)

func importDoc(fqn, filePath string, importPaths ...string) *ir.IRDocument {
	doc := &ir.IRDocument{FilePath: filePath, Language: "go"}
	doc.Nodes = append(doc.Nodes, ir.Node{
		ID:   ir.NewNodeID(filePath, fqn, ir.NodeKindModule, ir.Span{}),
		Kind: ir.NodeKindModule,
		FQN:  fqn,
	})
	for i, p := range importPaths {
		importFQN := fqn + "#import"
		doc.Nodes = append(doc.Nodes, ir.Node{
			ID:    ir.NewNodeID(filePath, importFQN, ir.NodeKindImport, ir.Span{StartLine: i + 1}),
			Kind:  ir.NodeKindImport,
			Name:  p,
			FQN:   importFQN,
			Span:  ir.Span{StartLine: i + 1},
			Attrs: map[string]string{"path": p},
		})
	}
	return doc
}

func TestGraphNeighbors_FileNeighbors_UnionsDepgraphEdges(t *testing.T) {
	a := importDoc("pkg.a", "pkg/a.go", "pkg.b")
	b := importDoc("pkg.b", "pkg/b.go")

	ctx := resolve.NewGlobalContext()
	ctx.AddDocument(a)
	ctx.AddDocument(b)

	depG := depgraph.NewBuilder(ctx).BuildFromIR([]*ir.IRDocument{a, b}, "repo", "snap1")
	semG := semgraph.Build([]*ir.IRDocument{a, b})

	result := &BuildResult{Documents: []*ir.IRDocument{a, b}, DepGraph: depG, SemGraph: semG}
	neighbors := newGraphNeighbors(result)

	n := neighbors.FileNeighbors("pkg/a.go")
	assert.True(t, n["pkg/b.go"])
	assert.False(t, n["pkg/a.go"], "a file is never its own neighbor")

	back := neighbors.FileNeighbors("pkg/b.go")
	assert.True(t, back["pkg/a.go"], "dependents should appear as neighbors too")
}

func TestGraphNeighbors_FileNeighbors_UnionsSemgraphCallEdges(t *testing.T) {
	callee := ir.NodeID("callee")
	caller := ir.NodeID("caller")

	doc := &ir.IRDocument{FilePath: "pkg/a.go", Language: "go"}
	doc.Nodes = []ir.Node{
		{ID: callee, Kind: ir.NodeKindFunction, FQN: "pkg.Callee", FilePath: "pkg/callee.go"},
		{ID: caller, Kind: ir.NodeKindFunction, FQN: "pkg.Caller", FilePath: "pkg/caller.go"},
	}
	doc.Edges = []ir.Edge{
		{ID: "e1", Source: caller, Target: callee, Kind: ir.EdgeKindCalls},
	}

	semG := semgraph.Build([]*ir.IRDocument{doc})
	result := &BuildResult{Documents: []*ir.IRDocument{doc}, SemGraph: semG}
	neighbors := newGraphNeighbors(result)

	n := neighbors.FileNeighbors("pkg/caller.go")
	assert.True(t, n["pkg/callee.go"])
}
