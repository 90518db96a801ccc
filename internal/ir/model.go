package ir

// Node is a single symbol, declaration, or structural unit inside an
// IRDocument. Its ID is a pure function of FilePath/FQN/Kind/Span (see
// NewNodeID); nothing about Node identity depends on build order or the
// process that produced it.
type Node struct {
	ID         NodeID     `json:"id"`
	Kind       NodeKind   `json:"kind"`
	Name       string     `json:"name"`
	FQN        string     `json:"fqn"`
	FilePath   string     `json:"file_path"`
	Span       Span       `json:"span"`
	Visibility Visibility `json:"visibility"`

	// Attrs carries kind-specific, language-specific extras (e.g. an
	// import's alias/wildcard flag) without widening the struct for every
	// node kind. Populated sparsely; absent keys mean "not applicable".
	Attrs map[string]string `json:"attrs,omitempty"`

	// SignatureHash and BodyHash drive the incremental rebuild cascade in
	// C4 (existence -> name -> signature_hash -> body_hash; the cascade has
	// no span-length heuristic stage after body_hash). Empty for node kinds
	// without a body (imports, fields).
	SignatureHash string `json:"signature_hash,omitempty"`
	BodyHash      string `json:"body_hash,omitempty"`
}

// Edge connects two Nodes within or across documents. Edge.ID is derived
// from (Source, Target, Kind) so merging two independently built edge sets
// for the same pair collapses into one edge rather than duplicating it.
type Edge struct {
	ID     EdgeID   `json:"id"`
	Source NodeID   `json:"source"`
	Target NodeID   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Span   Span     `json:"span,omitempty"`
}

// Occurrence records a single textual appearance of a resolved or
// unresolved reference — finer-grained than an Edge, which represents the
// resolved relationship once (an occurrence is one call site; an edge is
// "function A calls function B", deduplicated).
type Occurrence struct {
	NodeID NodeID `json:"node_id"`
	Span   Span   `json:"span"`
	Text   string `json:"text"`
}

// Parameter describes one function/method parameter.
type Parameter struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Variadic bool   `json:"variadic,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Signature is the semantic-IR description of a callable's shape. Two
// Signatures hash equal in SignatureHash when their parameters, return
// type and type parameters match, so a whitespace-only or body-only edit
// leaves the hash unchanged; a differing hash is what the impact analyzer
// reports as SIGNATURE_CHANGED.
type Signature struct {
	Params     []Parameter `json:"params"`
	ReturnType string      `json:"return_type,omitempty"`
	TypeParams []string    `json:"type_params,omitempty"`
	Throws     []string    `json:"throws,omitempty"`
}

// Failure records a non-fatal problem encountered while building IR for a
// single file or function: the build continues, but the caller is told
// what was skipped and why (spec's §7 "errors are collected as data").
type Failure struct {
	FilePath string `json:"file_path"`
	FQN      string `json:"fqn,omitempty"`
	Stage    string `json:"stage"`
	Message  string `json:"message"`
}

// IRDocument is the complete structural + semantic IR for a single source
// file: every Node it declares, every Edge internal to the file (CONTAINS
// mostly; cross-file edges are added later by the resolver), every
// occurrence, and the parse/build failures collected along the way.
type IRDocument struct {
	FilePath     string         `json:"file_path"`
	Language     string         `json:"language"`
	ContentHash  string         `json:"content_hash"`
	SchemaVer    int            `json:"schema_version"`
	Nodes        []Node         `json:"nodes"`
	Edges        []Edge         `json:"edges"`
	Occurrences  []Occurrence   `json:"occurrences"`
	ParseErrors  []Failure      `json:"parse_errors,omitempty"`
	BuildFailure []Failure      `json:"failures,omitempty"`

	// SemanticBodies holds C4's per-function output (CFG/BFG/DFG plus
	// hashes), keyed by the function/method node it describes. Populated
	// by the orchestrator after C2's structural pass locates each
	// function's tree-sitter subtree; empty for languages or functions
	// where semantic body extraction was skipped.
	SemanticBodies []SemanticBody `json:"semantic_bodies,omitempty"`
}

// CurrentSchemaVersion is bumped whenever IRDocument's on-wire shape
// changes in a way that would break a disk-cached document from an older
// build; ircache.DiskCache checks this before trusting a cached blob.
const CurrentSchemaVersion = 1

// ModuleNode returns the document's MODULE node, if any. Most consumers
// (the dependency graph builder in particular) need the owning module's
// FQN before they can do anything else with a document.
func (d *IRDocument) ModuleNode() (Node, bool) {
	for _, n := range d.Nodes {
		if n.Kind == NodeKindModule {
			return n, true
		}
	}
	return Node{}, false
}

// NodesByKind returns every node of the given kind, in declaration order.
func (d *IRDocument) NodesByKind(kind NodeKind) []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodeByID looks up a node by identity within this document only.
func (d *IRDocument) NodeByID(id NodeID) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// SemanticBodyFor looks up the SemanticBody for functionID, if C4 built one.
func (d *IRDocument) SemanticBodyFor(functionID NodeID) (SemanticBody, bool) {
	for _, b := range d.SemanticBodies {
		if b.FunctionID == functionID {
			return b, true
		}
	}
	return SemanticBody{}, false
}
