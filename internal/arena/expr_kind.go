// Package arena implements the structure-of-arrays storage backing the
// semantic IR's expression-level data: an ExpressionArena (columnar
// expression records with CSR-style variable-length var lists), a SpanPool
// (dedups identical source spans across a build), and an FQN interning
// table. Columnar storage is the same memory-reduction trade the original
// Python expression arena made (parallel NumPy columns instead of one
// object per expression); the Go version gets the same win from parallel
// slices plus this package's own size-tiered Int32Pool (pool.go).
package arena

// ExprKind mirrors the Python source's ExprKindCode: a one-byte
// classification of what kind of expression an arena slot holds.
type ExprKind uint8

const (
	ExprKindNameLoad ExprKind = iota
	ExprKindCall
	ExprKindBinaryOp
	ExprKindUnaryOp
	ExprKindAttribute
	ExprKindSubscript
	ExprKindLiteral
	ExprKindLambda
	ExprKindComprehension
	ExprKindConditional
)

func (k ExprKind) String() string {
	switch k {
	case ExprKindNameLoad:
		return "name_load"
	case ExprKindCall:
		return "call"
	case ExprKindBinaryOp:
		return "binary_op"
	case ExprKindUnaryOp:
		return "unary_op"
	case ExprKindAttribute:
		return "attribute"
	case ExprKindSubscript:
		return "subscript"
	case ExprKindLiteral:
		return "literal"
	case ExprKindLambda:
		return "lambda"
	case ExprKindComprehension:
		return "comprehension"
	case ExprKindConditional:
		return "conditional"
	default:
		return "unknown"
	}
}
