// Package depgraph builds and queries the repo-wide dependency graph: one
// node per module (internal or external), one edge per distinct
// import relationship between two modules. It is a direct generalization
// of the teacher's Python DependencyGraph/DependencyNode/DependencyEdge
// models to the spec's multi-language IR.
package depgraph

import "github.com/standardbeagle/irengine/internal/resolve"

// EdgeKind distinguishes "import module", "from module import symbol",
// and wildcard imports, mirroring DependencyEdgeKind.
type EdgeKind int

const (
	EdgeImportModule EdgeKind = iota
	EdgeImportFrom
	EdgeImportWildcard
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeImportModule:
		return "import_module"
	case EdgeImportFrom:
		return "import_from"
	case EdgeImportWildcard:
		return "import_wildcard"
	default:
		return "unknown"
	}
}

// ImportLocation records one place an import statement appears.
type ImportLocation struct {
	FilePath        string
	Line            int
	ImportStatement string
	Symbols         []string
}

// Node is one module (internal or external) in the dependency graph.
type Node struct {
	ModulePath      string
	Kind            resolve.Kind
	FilePath        string // set for internal nodes
	PackageName     string // set for external nodes
	ImportedSymbols map[string]bool
	ImportLocations []ImportLocation
	IsResolved      bool
	ResolutionNote  string // "did you mean X" style diagnostic, for unresolved nodes
}

func newNode(modulePath string, kind resolve.Kind) *Node {
	return &Node{
		ModulePath:      modulePath,
		Kind:            kind,
		ImportedSymbols: make(map[string]bool),
		IsResolved:      kind != resolve.KindUnresolved,
	}
}

func (n *Node) addImportedSymbol(symbol string) {
	n.ImportedSymbols[symbol] = true
}

func (n *Node) addImportLocation(loc ImportLocation) {
	for _, existing := range n.ImportLocations {
		if existing == loc {
			return
		}
	}
	n.ImportLocations = append(n.ImportLocations, loc)
}

func (n *Node) IsInternal() bool {
	return n.Kind == resolve.KindInternal
}

func (n *Node) IsExternal() bool {
	return n.Kind == resolve.KindExternalStdlib || n.Kind == resolve.KindExternalPackage
}

// Edge is one distinct (source, target) dependency relationship,
// accumulating every symbol imported and every location it was imported
// from, the same merge-on-repeat behavior as the teacher's
// get_edges_between/add_symbol pair.
type Edge struct {
	Source          string
	Target          string
	Kind            EdgeKind
	Symbols         map[string]bool
	IsWildcard      bool
	ImportLocations []ImportLocation
}

func (e *Edge) addSymbol(symbol string) {
	if e.Symbols == nil {
		e.Symbols = make(map[string]bool)
	}
	e.Symbols[symbol] = true
}

func (e *Edge) addLocation(loc ImportLocation) {
	for _, existing := range e.ImportLocations {
		if existing == loc {
			return
		}
	}
	e.ImportLocations = append(e.ImportLocations, loc)
}
