// Package semgraph builds the per-symbol relationship graph: who calls
// whom, who implements or extends what, who references which type, and
// the containment tree between symbols. It generalizes the teacher's
// UniversalSymbolNode.Relationships (internal/types/graph_types.go's
// SymbolRelationships — CallsTo/CalledBy, Extends/Implements,
// Contains/ContainedBy, Dependencies/Dependents) from a single
// monolithic struct embedded per-node into a graph with the forward and
// reverse indexes built eagerly at insertion, so every query below is a
// map lookup rather than an edge scan.
package semgraph

import "github.com/standardbeagle/irengine/internal/ir"

// Graph is the semantic relationship graph for one snapshot, built from
// every IRDocument's nodes and edges across the repo.
type Graph struct {
	nodes map[ir.NodeID]ir.Node

	calls    map[ir.NodeID][]ir.NodeID // caller -> callees
	calledBy map[ir.NodeID][]ir.NodeID // callee -> callers

	typeUsers map[ir.NodeID][]ir.NodeID // type -> nodes referencing it

	implements   map[ir.NodeID][]ir.NodeID // symbol -> interfaces it implements
	implementors map[ir.NodeID][]ir.NodeID // interface -> symbols implementing it

	extends  map[ir.NodeID][]ir.NodeID // symbol -> supertypes it extends
	extendBy map[ir.NodeID][]ir.NodeID // supertype -> symbols extending it

	children map[ir.NodeID][]ir.NodeID // parent -> contained symbols
	parent   map[ir.NodeID]ir.NodeID   // child -> containing symbol
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:        make(map[ir.NodeID]ir.Node),
		calls:        make(map[ir.NodeID][]ir.NodeID),
		calledBy:     make(map[ir.NodeID][]ir.NodeID),
		typeUsers:    make(map[ir.NodeID][]ir.NodeID),
		implements:   make(map[ir.NodeID][]ir.NodeID),
		implementors: make(map[ir.NodeID][]ir.NodeID),
		extends:      make(map[ir.NodeID][]ir.NodeID),
		extendBy:     make(map[ir.NodeID][]ir.NodeID),
		children:     make(map[ir.NodeID][]ir.NodeID),
		parent:       make(map[ir.NodeID]ir.NodeID),
	}
}

// Build assembles a Graph from every document's nodes and edges.
func Build(docs []*ir.IRDocument) *Graph {
	g := New()
	for _, doc := range docs {
		for _, n := range doc.Nodes {
			g.nodes[n.ID] = n
		}
	}
	for _, doc := range docs {
		for _, e := range doc.Edges {
			g.addEdge(e)
		}
	}
	return g
}

func (g *Graph) addEdge(e ir.Edge) {
	switch e.Kind {
	case ir.EdgeKindCalls, ir.EdgeKindReferencesSymbol:
		g.calls[e.Source] = append(g.calls[e.Source], e.Target)
		g.calledBy[e.Target] = append(g.calledBy[e.Target], e.Source)
	case ir.EdgeKindReferencesType:
		g.typeUsers[e.Target] = append(g.typeUsers[e.Target], e.Source)
	case ir.EdgeKindImplements:
		g.implements[e.Source] = append(g.implements[e.Source], e.Target)
		g.implementors[e.Target] = append(g.implementors[e.Target], e.Source)
	case ir.EdgeKindInherits:
		g.extends[e.Source] = append(g.extends[e.Source], e.Target)
		g.extendBy[e.Target] = append(g.extendBy[e.Target], e.Source)
	case ir.EdgeKindContains:
		g.children[e.Source] = append(g.children[e.Source], e.Target)
		g.parent[e.Target] = e.Source
	}
}

// Node returns a node by ID.
func (g *Graph) Node(id ir.NodeID) (ir.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Calls returns the symbols id calls.
func (g *Graph) Calls(id ir.NodeID) []ir.NodeID { return g.calls[id] }

// CalledBy returns the symbols that call id.
func (g *Graph) CalledBy(id ir.NodeID) []ir.NodeID { return g.calledBy[id] }

// TypeUsers returns every symbol referencing id as a type.
func (g *Graph) TypeUsers(id ir.NodeID) []ir.NodeID { return g.typeUsers[id] }

// Implementors returns every symbol implementing interface id.
func (g *Graph) Implementors(id ir.NodeID) []ir.NodeID { return g.implementors[id] }

// ExtendedBy returns every symbol extending supertype id.
func (g *Graph) ExtendedBy(id ir.NodeID) []ir.NodeID { return g.extendBy[id] }

// Children returns the symbols contained within id.
func (g *Graph) Children(id ir.NodeID) []ir.NodeID { return g.children[id] }

// Parent returns the symbol containing id, if any.
func (g *Graph) Parent(id ir.NodeID) (ir.NodeID, bool) {
	p, ok := g.parent[id]
	return p, ok
}
