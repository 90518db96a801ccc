package orchestrator

import (
	"context"
	"os"

	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/ircache"
	"github.com/standardbeagle/irengine/internal/irbuild"
	"github.com/standardbeagle/irengine/internal/semir"
	"github.com/standardbeagle/irengine/internal/types"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// buildFile runs one file through C1-C4: read content, derive the cache
// key, and on a miss lower it via irbuild.Generator and attach C4's
// per-function semantic bodies before the result is cached.
func buildFile(ctx context.Context, gen *irbuild.Generator, sb *semir.Builder, cache *ircache.Cache, buildOptionsHash string, f discoveredFile) (*ir.IRDocument, error) {
	content, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, err
	}

	key := ircache.DeriveKey(content, buildOptionsHash)
	return cache.GetOrBuild(key, func() (*ir.IRDocument, error) {
		doc, tree, enhanced := gen.Build(ctx, f.Path, f.Language, content)
		if tree != nil {
			defer tree.Close()
		}
		attachSemanticBodies(sb, doc, tree, enhanced, content)
		if doc != nil {
			doc.ContentHash = string(key)
		}
		return doc, nil
	})
}

// attachSemanticBodies runs C4 over every function/method node C2 produced,
// matching each back to its tree-sitter subtree by declaration line (C2
// kept the per-symbol node list but not a reference to the parsed subtree,
// so the match happens here instead of being threaded through as extra
// return values).
func attachSemanticBodies(sb *semir.Builder, doc *ir.IRDocument, tree *tree_sitter.Tree, enhanced []types.EnhancedSymbol, content []byte) {
	if doc == nil || tree == nil {
		return
	}
	root := tree.RootNode()
	if root == nil {
		return
	}

	symByLine := make(map[int]types.EnhancedSymbol, len(enhanced))
	for _, sym := range enhanced {
		symByLine[sym.Line] = sym
	}

	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		if node.Kind != ir.NodeKindFunction && node.Kind != ir.NodeKindMethod {
			continue
		}
		sym, ok := symByLine[node.Span.StartLine]
		if !ok {
			continue
		}
		fnNode := findFunctionNodeAtLine(root, node.Span.StartLine)
		if fnNode == nil {
			continue
		}

		sig := signatureFromSymbol(sym)
		body := sb.BuildFunction(node.ID, sig, fnNode, content)
		doc.SemanticBodies = append(doc.SemanticBodies, body)
		node.BodyHash = body.BodyHash
	}
}
