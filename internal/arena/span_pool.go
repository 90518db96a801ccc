package arena

import "github.com/standardbeagle/irengine/internal/ir"

// SpanPool interns ir.Span values so an arena holding millions of
// expressions across a large file stores each distinct span once and
// refers to it by a 4-byte index rather than 32 bytes of line/col ints
// (four 64-bit ints) per expression.
type SpanPool struct {
	spans []ir.Span
	index map[ir.Span]int32
}

// NewSpanPool creates an empty pool sized for capacity distinct spans.
func NewSpanPool(capacity int) *SpanPool {
	return &SpanPool{
		spans: make([]ir.Span, 0, capacity),
		index: make(map[ir.Span]int32, capacity),
	}
}

// Intern returns the stable index for span, allocating a new slot only if
// this exact span has not been seen by this pool before.
func (p *SpanPool) Intern(span ir.Span) int32 {
	if idx, ok := p.index[span]; ok {
		return idx
	}
	idx := int32(len(p.spans))
	p.spans = append(p.spans, span)
	p.index[span] = idx
	return idx
}

// At returns the span stored at idx. Panics on out-of-range idx; callers
// only ever pass back indexes this pool issued via Intern.
func (p *SpanPool) At(idx int32) ir.Span {
	return p.spans[idx]
}

// Len reports how many distinct spans are interned.
func (p *SpanPool) Len() int {
	return len(p.spans)
}
