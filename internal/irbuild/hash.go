package irbuild

import "github.com/cespare/xxhash/v2"

// xxhashSum is the non-cryptographic hash used for SignatureHash/BodyHash
// fields: these feed the incremental rebuild cascade (C4), not the
// cross-process identity contract ir.NewNodeID provides, so a fast
// 64-bit hash is the right tool rather than SHA-256.
func xxhashSum(s string) uint64 {
	return xxhash.Sum64String(s)
}
