// Package ir defines the layered intermediate-representation data model:
// spans, nodes, edges, documents, and the deterministic ID scheme that ties
// a Node/Edge identity to its source location rather than to any in-memory
// pointer or incrementing counter.
package ir

import "fmt"

// Span is a half-open source range, 1-indexed lines, 0-indexed columns,
// matching the convention already used by types.Symbol/types.ScopeInfo in
// the parser layer.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Empty reports whether the span carries no location information, which
// happens for synthesized nodes (e.g. an UNRESOLVED import target that has
// no file of its own).
func (s Span) Empty() bool {
	return s == Span{}
}

// Contains reports whether line (1-indexed) falls within the span.
func (s Span) Contains(line int) bool {
	return line >= s.StartLine && line <= s.EndLine
}
