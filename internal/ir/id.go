package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeID and EdgeID are deterministic content-derived identifiers: the same
// (file_path, fqn, kind_code, span) tuple always hashes to the same
// NodeID, in any process, on any machine, for as long as this algorithm is
// unchanged. This is what lets the IR cache, the dependency graph, and the
// impact analyzer compare snapshots built by different workers without a
// shared in-memory symbol table.
type NodeID string

type EdgeID string

// idHashHexLen is 32 hex chars = 128 bits, half of a SHA-256 digest.
// Truncating (rather than switching to a 128-bit hash function) keeps the
// full SHA-256 collision-resistance margin for the 128 bits that are kept;
// birthday-bound collision probability at full-corpus node counts is
// negligible while the ID stays short enough to embed in JSON and file
// names.
const idHashHexLen = 32

// NewNodeID computes a Node's identity from its defining coordinates.
// filePath should be repo-relative and slash-separated so the same logical
// file hashes identically regardless of the host OS or checkout path.
func NewNodeID(filePath, fqn string, kind NodeKind, span Span) NodeID {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d:%d-%d:%d", filePath, fqn, kind, span.StartLine, span.StartCol, span.EndLine, span.EndCol)
	sum := h.Sum(nil)
	return NodeID(hex.EncodeToString(sum)[:idHashHexLen])
}

// NewEdgeID computes an Edge's identity from its endpoints and kind. Two
// edges of different kinds between the same pair of nodes are distinct
// edges (e.g. a class can both CALL and REFERENCE_SYMBOL another symbol).
func NewEdgeID(source, target NodeID, kind EdgeKind) EdgeID {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d", source, target, kind)
	sum := h.Sum(nil)
	return EdgeID(hex.EncodeToString(sum)[:idHashHexLen])
}
