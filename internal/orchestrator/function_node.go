package orchestrator

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// functionLikeKinds collects every tree-sitter node kind the teacher's
// unified_extractor.go treats as a function/method declaration across the
// languages it supports (see classifySymbolType and extractFunctionSymbol
// there). C2's generator records each function/method Node's declared
// line, but hands the orchestrator only the whole-file tree, so C4's
// BuildFunction needs this set to re-find the matching subtree itself.
var functionLikeKinds = map[string]bool{
	"function_declaration":           true,
	"function_definition":            true,
	"function_item":                  true,
	"method_definition":              true,
	"method_declaration":             true,
	"arrow_function":                 true,
	"function_expression":            true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"func_literal":                   true,
	"constructor_declaration":        true,
}

// findFunctionNodeAtLine walks root depth-first looking for a function-like
// node whose first line (1-indexed, matching ir.Span's convention) equals
// startLine. Returns the innermost such match, since a lambda/closure
// nested inside another function's body shares a start-line search space
// with its enclosing declaration only when they begin on the exact same
// line, which is rare enough that "last found during a depth-first walk"
// reliably means "most nested."
func findFunctionNodeAtLine(root *tree_sitter.Node, startLine int) *tree_sitter.Node {
	if root == nil {
		return nil
	}
	var found *tree_sitter.Node
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		if functionLikeKinds[n.Kind()] && int(n.StartPosition().Row)+1 == startLine {
			found = n
		}
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return found
}
