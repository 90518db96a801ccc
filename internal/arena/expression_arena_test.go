package arena

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionArena_AppendAndView(t *testing.T) {
	spans := NewSpanPool(8)
	vars := NewStringInterner(8)
	a := NewExpressionArena(spans, vars)

	id := ir.NewNodeID("f.go", "pkg.f.expr0", ir.NodeKindBlock, ir.Span{StartLine: 1, EndLine: 1})
	idx := a.Append(id, ExprKindCall, ir.Span{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 5}, "pkg.f", 0, "result", []string{"a", "b"})

	require.Equal(t, 0, idx)
	require.Equal(t, 1, a.Len())

	view := a.View(idx)
	assert.Equal(t, ExprKindCall, view.Kind())
	assert.Equal(t, "result", view.DefinesVar())
	assert.Equal(t, []string{"a", "b"}, view.ReadsVars())
	assert.Equal(t, "pkg.f", view.FunctionFQN())
	assert.Equal(t, ir.Span{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 5}, view.Span())
}

func TestExpressionArena_EmptyReadsVars(t *testing.T) {
	a := NewExpressionArena(NewSpanPool(1), NewStringInterner(1))
	a.Append("n0", ExprKindLiteral, ir.Span{}, "pkg.f", 0, "", nil)

	assert.Nil(t, a.View(0).ReadsVars())
	assert.Equal(t, "", a.View(0).DefinesVar())
}

func TestExpressionArena_SharedInternersDedup(t *testing.T) {
	spans := NewSpanPool(2)
	vars := NewStringInterner(2)
	a := NewExpressionArena(spans, vars)

	a.Append("n0", ExprKindNameLoad, ir.Span{StartLine: 1}, "pkg.f", 0, "x", nil)
	a.Append("n1", ExprKindNameLoad, ir.Span{StartLine: 1}, "pkg.f", 0, "x", nil)

	assert.Equal(t, 1, spans.Len(), "identical spans should collapse to one entry")
	// "pkg.f" and "x" are each interned once, regardless of how many
	// expressions reference them.
	assert.LessOrEqual(t, vars.Len(), 2)
}

func TestInt32Pool_GetPutRoundtrip(t *testing.T) {
	p := NewInt32Pool(DefaultInt32TierCapacities)
	s := p.Get(3)
	require.GreaterOrEqual(t, cap(s), 3)
	s = append(s, 1, 2, 3)
	p.Put(s)

	s2 := p.Get(3)
	assert.Equal(t, 0, len(s2))
}
