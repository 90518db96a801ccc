// Package irbuild implements C1 (source & AST acquisition) and C2 (the
// per-file structural IR generator): it drives the teacher's existing
// tree-sitter parser to extract blocks, symbols, imports, enhanced
// symbols, and references for one file, then lowers that into an
// ir.IRDocument with scope-stack-derived FQNs and deterministic node/edge
// IDs.
package irbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/parser"
	"github.com/standardbeagle/irengine/internal/types"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Generator lowers one parsed source file into structural IR.
type Generator struct{}

// NewGenerator creates a Generator. Stateless: every Build call is
// independent, so one Generator can be shared across worker goroutines.
func NewGenerator() *Generator {
	return &Generator{}
}

// Build parses content with the tree-sitter grammar for language and
// lowers the result into an IRDocument. filePath should be repo-relative
// and slash-separated, matching the convention ir.NewNodeID assumes.
// Parse failures are collected into the returned document's ParseErrors
// rather than aborting the build, per the "errors are data" error model.
// The returned tree and enhanced-symbol slice feed C4's semantic builder
// directly, so the caller (the orchestrator) doesn't need to re-parse the
// file for signature/CFG/DFG extraction.
func (g *Generator) Build(ctx context.Context, filePath, language string, content []byte) (*ir.IRDocument, *tree_sitter.Tree, []types.EnhancedSymbol) {
	doc := &ir.IRDocument{
		FilePath:  filePath,
		Language:  language,
		SchemaVer: ir.CurrentSchemaVersion,
	}

	p := parser.GetParserForLanguage(language, nil)
	release := func() { parser.ReleaseParserToPool(p, parser.Language(language)) }

	var blocks []types.BlockBoundary
	var symbols []types.Symbol
	var imports []types.Import
	var enhanced []types.EnhancedSymbol
	var references []types.Reference
	var scopes []types.ScopeInfo
	var tree *tree_sitter.Tree

	func() {
		defer func() {
			if r := recover(); r != nil {
				doc.ParseErrors = append(doc.ParseErrors, ir.Failure{
					FilePath: filePath,
					Stage:    "parse",
					Message:  fmt.Sprintf("parser panic: %v", r),
				})
			}
			release()
		}()
		tree, blocks, symbols, imports, enhanced, references, scopes = p.ParseFileEnhancedWithASTAndContext(ctx, filePath, content)
	}()

	if tree != nil {
		if root := tree.RootNode(); root != nil && root.HasError() {
			doc.ParseErrors = append(doc.ParseErrors, ir.Failure{
				FilePath: filePath,
				Stage:    "parse",
				Message:  "source contains syntax errors",
			})
		}
	}

	_ = blocks // structural block boundaries are folded into node spans below, not kept separately

	moduleFQN := modulePathFromFile(filePath)
	moduleSpan := ir.Span{StartLine: 1, EndLine: countLines(content)}
	moduleID := ir.NewNodeID(filePath, moduleFQN, ir.NodeKindModule, moduleSpan)
	doc.Nodes = append(doc.Nodes, ir.Node{
		ID:       moduleID,
		Kind:     ir.NodeKindModule,
		Name:     filepath.Base(filePath),
		FQN:      moduleFQN,
		FilePath: filePath,
		Span:     moduleSpan,
	})

	symbolIDs := make(map[int]ir.NodeID, len(enhanced))
	for i, sym := range enhanced {
		fqn := fqnFromScopeChain(moduleFQN, sym.ScopeChain, sym.Name)
		kind := nodeKindForSymbol(sym.Type)
		span := ir.Span{StartLine: sym.Line, StartCol: sym.Column, EndLine: sym.EndLine, EndCol: sym.EndColumn}
		id := ir.NewNodeID(filePath, fqn, kind, span)
		symbolIDs[i] = id

		vis := ir.VisibilityPrivate
		if sym.IsExported {
			vis = ir.VisibilityPublic
		}

		doc.Nodes = append(doc.Nodes, ir.Node{
			ID:            id,
			Kind:          kind,
			Name:          sym.Name,
			FQN:           fqn,
			FilePath:      filePath,
			Span:          span,
			Visibility:    vis,
			SignatureHash: hashString(sym.Signature),
		})

		doc.Edges = append(doc.Edges, ir.Edge{
			ID:     ir.NewEdgeID(moduleID, id, ir.EdgeKindContains),
			Source: moduleID,
			Target: id,
			Kind:   ir.EdgeKindContains,
		})
	}

	for i, imp := range imports {
		span := ir.Span{StartLine: imp.Line}
		fqn := fmt.Sprintf("%s#import[%d]", moduleFQN, i)
		id := ir.NewNodeID(filePath, fqn, ir.NodeKindImport, span)
		doc.Nodes = append(doc.Nodes, ir.Node{
			ID:       id,
			Kind:     ir.NodeKindImport,
			Name:     imp.Path,
			FQN:      fqn,
			FilePath: filePath,
			Span:     span,
			Attrs:    map[string]string{"path": imp.Path},
		})
		doc.Edges = append(doc.Edges, ir.Edge{
			ID:     ir.NewEdgeID(moduleID, id, ir.EdgeKindContains),
			Source: moduleID,
			Target: id,
			Kind:   ir.EdgeKindContains,
		})
	}

	for _, ref := range references {
		if ref.Type != types.RefTypeCall {
			continue
		}
		srcIdx, srcOK := findSymbolIndexByLine(enhanced, ref.Line)
		if !srcOK {
			continue
		}
		srcID := symbolIDs[srcIdx]
		targetFQN := fmt.Sprintf("%s#unresolved[%s]", moduleFQN, ref.ReferencedName)
		targetID := ir.NewNodeID("", targetFQN, ir.NodeKindCall, ir.Span{})
		doc.Occurrences = append(doc.Occurrences, ir.Occurrence{
			NodeID: targetID,
			Span:   ir.Span{StartLine: ref.Line, StartCol: ref.Column},
			Text:   ref.ReferencedName,
		})
		doc.Edges = append(doc.Edges, ir.Edge{
			ID:     ir.NewEdgeID(srcID, targetID, ir.EdgeKindReferencesSymbol),
			Source: srcID,
			Target: targetID,
			Kind:   ir.EdgeKindReferencesSymbol,
			Span:   ir.Span{StartLine: ref.Line, StartCol: ref.Column},
		})
	}

	_ = scopes
	return doc, tree, enhanced
}

// modulePathFromFile derives a dotted module FQN from a slash-separated
// repo-relative path: "pkg/sub/foo.go" -> "pkg.sub.foo".
func modulePathFromFile(filePath string) string {
	ext := filepath.Ext(filePath)
	trimmed := strings.TrimSuffix(filePath, ext)
	return strings.ReplaceAll(trimmed, "/", ".")
}

// fqnFromScopeChain joins the scope breadcrumb (outermost to innermost)
// with the symbol's own name, giving every symbol a path unique within
// its file even when two symbols share a bare name in different scopes.
func fqnFromScopeChain(moduleFQN string, chain []types.ScopeInfo, name string) string {
	parts := make([]string, 0, len(chain)+2)
	parts = append(parts, moduleFQN)
	for _, s := range chain {
		if s.Name != "" {
			parts = append(parts, s.Name)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

func nodeKindForSymbol(t types.SymbolType) ir.NodeKind {
	switch t {
	case types.SymbolTypeFunction, types.SymbolTypeConstructor:
		return ir.NodeKindFunction
	case types.SymbolTypeMethod:
		return ir.NodeKindMethod
	case types.SymbolTypeClass, types.SymbolTypeObject:
		return ir.NodeKindClass
	case types.SymbolTypeInterface:
		return ir.NodeKindInterface
	case types.SymbolTypeStruct, types.SymbolTypeRecord:
		return ir.NodeKindStruct
	case types.SymbolTypeEnum, types.SymbolTypeEnumMember:
		return ir.NodeKindEnum
	case types.SymbolTypeVariable:
		return ir.NodeKindVariable
	case types.SymbolTypeConstant:
		return ir.NodeKindConstant
	case types.SymbolTypeField, types.SymbolTypeProperty:
		return ir.NodeKindField
	case types.SymbolTypeType:
		return ir.NodeKindTypeAlias
	default:
		return ir.NodeKindVariable
	}
}

func findSymbolIndexByLine(symbols []types.EnhancedSymbol, line int) (int, bool) {
	best := -1
	for i, s := range symbols {
		if s.Line <= line && (s.EndLine == 0 || s.EndLine >= line) {
			if best == -1 || s.Line > symbols[best].Line {
				best = i
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}

func hashString(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%x", xxhashSum(s))
}
