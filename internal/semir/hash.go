package semir

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/standardbeagle/irengine/internal/ir"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// signatureHash derives the hash that feeds the incremental rebuild
// cascade's signature-equality check: two signatures with the same
// parameter names/types/order, return type, and type parameters hash
// equal regardless of parameter list formatting.
func signatureHash(sig ir.Signature) string {
	var b strings.Builder
	for _, p := range sig.Params {
		fmt.Fprintf(&b, "%s:%s:%v:%v|", p.Name, p.Type, p.Variadic, p.Optional)
	}
	b.WriteString(sig.ReturnType)
	b.WriteByte('|')
	b.WriteString(strings.Join(sig.TypeParams, ","))
	return fmt.Sprintf("%x", xxhash.Sum64String(b.String()))
}

// hashNodeText hashes a function node's exact source bytes. Any textual
// change inside the body — including whitespace-only edits — changes the
// body hash; the cascade treats that as DecisionBodyOnly rather than
// DecisionFull, since whitespace changes cannot affect callers.
func hashNodeText(n *tree_sitter.Node, content []byte) string {
	text := content[n.StartByte():n.EndByte()]
	return fmt.Sprintf("%x", xxhash.Sum64(text))
}
