package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeID_Deterministic(t *testing.T) {
	span := Span{StartLine: 10, StartCol: 0, EndLine: 20, EndCol: 1}

	id1 := NewNodeID("pkg/foo.go", "pkg.Foo", NodeKindFunction, span)
	id2 := NewNodeID("pkg/foo.go", "pkg.Foo", NodeKindFunction, span)

	require.Equal(t, id1, id2, "same coordinates must hash to the same ID")
	assert.Len(t, string(id1), idHashHexLen)
}

func TestNewNodeID_DistinguishesCoordinates(t *testing.T) {
	span := Span{StartLine: 1, EndLine: 2}
	base := NewNodeID("a.go", "pkg.A", NodeKindFunction, span)

	cases := []NodeID{
		NewNodeID("b.go", "pkg.A", NodeKindFunction, span),
		NewNodeID("a.go", "pkg.B", NodeKindFunction, span),
		NewNodeID("a.go", "pkg.A", NodeKindMethod, span),
		NewNodeID("a.go", "pkg.A", NodeKindFunction, Span{StartLine: 3, EndLine: 4}),
	}

	for _, c := range cases {
		assert.NotEqual(t, base, c)
	}
}

func TestNewEdgeID_KindDistinguishesSamePair(t *testing.T) {
	a := NewNodeID("a.go", "pkg.A", NodeKindFunction, Span{})
	b := NewNodeID("b.go", "pkg.B", NodeKindFunction, Span{})

	calls := NewEdgeID(a, b, EdgeKindCalls)
	refs := NewEdgeID(a, b, EdgeKindReferencesSymbol)

	assert.NotEqual(t, calls, refs, "same endpoints with different kinds must be distinct edges")
}

func TestIRDocument_ModuleNode(t *testing.T) {
	doc := &IRDocument{
		Nodes: []Node{
			{ID: "1", Kind: NodeKindFunction, Name: "f"},
			{ID: "2", Kind: NodeKindModule, Name: "m"},
		},
	}

	mod, ok := doc.ModuleNode()
	require.True(t, ok)
	assert.Equal(t, NodeID("2"), mod.ID)

	funcs := doc.NodesByKind(NodeKindFunction)
	require.Len(t, funcs, 1)
	assert.Equal(t, "f", funcs[0].Name)
}
