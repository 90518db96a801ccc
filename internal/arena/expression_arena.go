package arena

import "github.com/standardbeagle/irengine/internal/ir"

// ExpressionArena stores every expression produced while building the
// semantic IR for one file as parallel columns instead of one struct per
// expression. reads_vars uses a CSR (compressed sparse row) layout:
// readsVarsOffsets[i]:readsVarsOffsets[i+1] bounds the slice of
// readsVarsData holding expression i's read variables, so a
// variable-length list costs one int32 pair instead of a separate slice
// header and backing array per expression.
type ExpressionArena struct {
	ids         []ir.NodeID
	kinds       []ExprKind
	definesVar  []int32 // index into vars interner, -1 if none
	spanIdx     []int32 // index into the shared SpanPool
	functionFQN []int32 // index into the shared StringInterner
	blockID     []int32

	readsVarsOffsets []int32 // len == len(ids)+1
	readsVarsData    []int32 // indexes into the shared StringInterner

	spans *SpanPool
	vars  *StringInterner
}

// NewExpressionArena creates an empty arena backed by the given span pool
// and variable/FQN interner, both shared across every function in a file
// so identical spans or names collapse to one entry.
func NewExpressionArena(spans *SpanPool, vars *StringInterner) *ExpressionArena {
	return &ExpressionArena{
		readsVarsOffsets: []int32{0},
		spans:            spans,
		vars:             vars,
	}
}

// Append records one expression and returns its arena index. readsVars may
// be nil or empty; definesVar may be the empty string for expressions that
// don't bind a name (e.g. a bare call).
func (a *ExpressionArena) Append(id ir.NodeID, kind ExprKind, span ir.Span, functionFQN string, blockID int32, definesVar string, readsVars []string) int {
	idx := len(a.ids)

	a.ids = append(a.ids, id)
	a.kinds = append(a.kinds, kind)
	a.spanIdx = append(a.spanIdx, a.spans.Intern(span))
	a.functionFQN = append(a.functionFQN, a.vars.Intern(functionFQN))
	a.blockID = append(a.blockID, blockID)

	if definesVar == "" {
		a.definesVar = append(a.definesVar, -1)
	} else {
		a.definesVar = append(a.definesVar, a.vars.Intern(definesVar))
	}

	for _, v := range readsVars {
		a.readsVarsData = append(a.readsVarsData, a.vars.Intern(v))
	}
	a.readsVarsOffsets = append(a.readsVarsOffsets, int32(len(a.readsVarsData)))

	return idx
}

// Len reports how many expressions are stored.
func (a *ExpressionArena) Len() int {
	return len(a.ids)
}

// View returns a lightweight accessor for expression i that reads the
// arena's columns in place; only ReadsVars allocates, returning a fresh
// slice per call.
func (a *ExpressionArena) View(i int) ArenaExpression {
	return ArenaExpression{arena: a, index: i}
}

// ArenaExpression is a lightweight (arena, index) pair exposing one
// expression's fields without copying the underlying columnar data.
type ArenaExpression struct {
	arena *ExpressionArena
	index int
}

func (e ArenaExpression) ID() ir.NodeID {
	return e.arena.ids[e.index]
}

func (e ArenaExpression) Kind() ExprKind {
	return e.arena.kinds[e.index]
}

func (e ArenaExpression) Span() ir.Span {
	return e.arena.spans.At(e.arena.spanIdx[e.index])
}

func (e ArenaExpression) FunctionFQN() string {
	return e.arena.vars.At(e.arena.functionFQN[e.index])
}

func (e ArenaExpression) BlockID() int32 {
	return e.arena.blockID[e.index]
}

// DefinesVar returns the variable this expression binds, or "" if none.
func (e ArenaExpression) DefinesVar() string {
	idx := e.arena.definesVar[e.index]
	if idx < 0 {
		return ""
	}
	return e.arena.vars.At(idx)
}

// ReadsVars returns the variables this expression reads, resolved from the
// CSR slice bounds — allocates only the output slice, never a copy of the
// arena's backing storage.
func (e ArenaExpression) ReadsVars() []string {
	start := e.arena.readsVarsOffsets[e.index]
	end := e.arena.readsVarsOffsets[e.index+1]
	if start == end {
		return nil
	}
	out := make([]string, 0, end-start)
	for _, idx := range e.arena.readsVarsData[start:end] {
		out = append(out, e.arena.vars.At(idx))
	}
	return out
}
