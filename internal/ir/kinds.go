package ir

// NodeKind classifies a Node within a layered IR document. Values are
// stable across releases: the numeric kind_code feeds directly into the
// deterministic ID hash, so reordering this block changes every Node.id
// in existence.
type NodeKind uint8

const (
	NodeKindModule NodeKind = iota
	NodeKindImport
	NodeKindFunction
	NodeKindMethod
	NodeKindClass
	NodeKindInterface
	NodeKindStruct
	NodeKindEnum
	NodeKindVariable
	NodeKindConstant
	NodeKindParameter
	NodeKindField
	NodeKindTypeAlias
	NodeKindCall
	NodeKindBlock
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindModule:
		return "module"
	case NodeKindImport:
		return "import"
	case NodeKindFunction:
		return "function"
	case NodeKindMethod:
		return "method"
	case NodeKindClass:
		return "class"
	case NodeKindInterface:
		return "interface"
	case NodeKindStruct:
		return "struct"
	case NodeKindEnum:
		return "enum"
	case NodeKindVariable:
		return "variable"
	case NodeKindConstant:
		return "constant"
	case NodeKindParameter:
		return "parameter"
	case NodeKindField:
		return "field"
	case NodeKindTypeAlias:
		return "type_alias"
	case NodeKindCall:
		return "call"
	case NodeKindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// EdgeKind classifies an Edge within a semantic or dependency graph.
type EdgeKind uint8

const (
	EdgeKindContains EdgeKind = iota
	EdgeKindCalls
	EdgeKindInherits
	EdgeKindImplements
	EdgeKindReferencesSymbol
	EdgeKindReferencesType
	EdgeKindImports
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeKindContains:
		return "contains"
	case EdgeKindCalls:
		return "calls"
	case EdgeKindInherits:
		return "inherits"
	case EdgeKindImplements:
		return "implements"
	case EdgeKindReferencesSymbol:
		return "references_symbol"
	case EdgeKindReferencesType:
		return "references_type"
	case EdgeKindImports:
		return "imports"
	default:
		return "unknown"
	}
}

// Visibility mirrors the spec's access-level concept, reused from the
// teacher's types.SymbolVisibility at a coarser, language-neutral grain.
type Visibility uint8

const (
	VisibilityUnknown Visibility = iota
	VisibilityPublic
	VisibilityProtected
	VisibilityPrivate
	VisibilityPackage
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	case VisibilityPackage:
		return "package"
	default:
		return "unknown"
	}
}
