package semir

import (
	"strings"

	"github.com/standardbeagle/irengine/internal/ir"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// branchKinds mirrors the node kinds the teacher's cognitive-complexity
// walker (internal/analysis.MetricsCalculator.walkForCognitiveComplexity)
// treats as decision points across the supported languages. The semantic
// IR builder reuses the same kind set to fold a function's CFG down to
// its BFG: a branch in either sense is the same AST shape.
var branchKinds = map[string]bool{
	"if_statement":          true,
	"else_clause":           true,
	"switch_statement":      true,
	"match_statement":       true,
	"for_statement":         true,
	"while_statement":       true,
	"do_statement":          true,
	"catch_clause":          true,
	"except_clause":         true,
	"conditional_expression": true,
}

var assignKinds = map[string]bool{
	"assignment_expression": true,
	"short_var_declaration": true,
	"variable_declarator":   true,
}

// Builder produces a function's semantic body (signature, CFG, BFG, DFG)
// from its tree-sitter subtree.
type Builder struct{}

// NewBuilder creates a Builder. Stateless — safe to share across workers.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildFunction walks fnNode (the tree-sitter node spanning one function,
// already located by its line range) and produces its semantic body.
// content is the full file content, needed to read identifier text out of
// node byte ranges. sig is supplied by the caller (derived from the
// EnhancedSymbol's extracted parameter/return info), since parameter-list
// parsing is already handled by the teacher's parser layer and shouldn't
// be re-derived here.
func (b *Builder) BuildFunction(functionID ir.NodeID, sig ir.Signature, fnNode *tree_sitter.Node, content []byte) ir.SemanticBody {
	body := ir.SemanticBody{FunctionID: functionID, Signature: sig}

	if fnNode == nil {
		body.SignatureHash = signatureHash(sig)
		body.BodyHash = ""
		return body
	}

	blocks, branches := walkCFG(fnNode, content)
	body.CFG = ir.CFG{Blocks: blocks, Entry: 0, Exit: len(blocks) - 1}
	body.BFG = ir.BFG{Branches: branches}
	body.DFG = walkDFG(fnNode, content)

	body.SignatureHash = signatureHash(sig)
	body.BodyHash = hashNodeText(fnNode, content)
	return body
}

// walkCFG assigns block 0 to the whole function span as the entry block,
// then one CFGBlock per branch node found in the subtree (each a successor
// of block 0), and records each branch as a BFGBranch. This is an approximation of full control-flow construction
// (it does not attempt precise successor edges for early returns/breaks),
// sufficient for the incremental-rebuild and impact-analysis consumers
// that only need "did this function's branch structure change" rather
// than a sound flow graph for dataflow-sensitive optimization.
func walkCFG(root *tree_sitter.Node, content []byte) ([]ir.CFGBlock, []ir.BFGBranch) {
	var blocks []ir.CFGBlock
	var branches []ir.BFGBranch

	blocks = append(blocks, spanBlock(0, root, content))

	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		if branchKinds[n.Kind()] {
			id := len(blocks)
			blocks = append(blocks, spanBlock(id, n, content))
			blocks[0].Successors = append(blocks[0].Successors, id)
			branches = append(branches, ir.BFGBranch{
				BlockID:   id,
				Condition: conditionText(n, content),
				Targets:   []int{id},
			})
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		visit(root.Child(i))
	}

	return blocks, branches
}

func spanBlock(id int, n *tree_sitter.Node, content []byte) ir.CFGBlock {
	start := n.StartPosition()
	end := n.EndPosition()
	return ir.CFGBlock{
		ID: id,
		Span: ir.Span{
			StartLine: int(start.Row) + 1,
			StartCol:  int(start.Column),
			EndLine:   int(end.Row) + 1,
			EndCol:    int(end.Column),
		},
	}
}

func conditionText(n *tree_sitter.Node, content []byte) string {
	text := string(content[n.StartByte():n.EndByte()])
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	const maxLen = 80
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return text
}

// walkDFG collects a coarse def/use list: an assignment-like node whose
// first child is a plain identifier contributes a definition of that
// identifier, any identifier not itself the target of an
// assignment contributes a use. Def-use edges connect a definition to
// every later use of the same variable name within the function, which
// over-approximates reach across nested scopes but never misses a true
// def-use pair.
func walkDFG(root *tree_sitter.Node, content []byte) ir.DFG {
	var nodes []ir.DFGNode
	defIndexByVar := map[string][]int{}
	var edges []ir.DFGEdge

	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		first := uint(0)
		if assignKinds[n.Kind()] && n.ChildCount() > 0 {
			target := n.Child(0)
			if target.Kind() == "identifier" {
				name := string(content[target.StartByte():target.EndByte()])
				idx := len(nodes)
				nodes = append(nodes, dfgNode(name, target, true))
				defIndexByVar[name] = append(defIndexByVar[name], idx)
				first = 1 // the target is a definition, not also a use
			}
		} else if n.Kind() == "identifier" {
			name := string(content[n.StartByte():n.EndByte()])
			idx := len(nodes)
			nodes = append(nodes, dfgNode(name, n, false))
			for _, defIdx := range defIndexByVar[name] {
				edges = append(edges, ir.DFGEdge{From: defIdx, To: idx})
			}
		}
		for i := first; i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	return ir.DFG{Nodes: nodes, Edges: edges}
}

func dfgNode(name string, n *tree_sitter.Node, isDef bool) ir.DFGNode {
	start := n.StartPosition()
	end := n.EndPosition()
	return ir.DFGNode{
		Var:   name,
		IsDef: isDef,
		Span: ir.Span{
			StartLine: int(start.Row) + 1,
			StartCol:  int(start.Column),
			EndLine:   int(end.Row) + 1,
			EndCol:    int(end.Column),
		},
	}
}
