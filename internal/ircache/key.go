// Package ircache implements the content-addressed IR cache (C3): a
// bounded in-memory LRU tier backed by a disk tier, keyed by a hash of file
// content plus the build options that would affect the resulting
// IRDocument. A cache hit means "this exact input, with this exact
// configuration, has already been lowered to IR" — nothing about mtimes
// or paths factors into the key, so moving or renaming an unchanged file
// still hits.
package ircache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key is the cache key type: a lowercase hex string, same truncation
// length as ir.NewNodeID so cache keys and node IDs are visually
// consistent even though they are never compared to each other.
type Key string

const keyHexLen = 32

// DeriveKey computes the cache key for fileContent under buildOptionsHash,
// a caller-supplied fingerprint of whatever build configuration would
// change the resulting IR (schema version, enabled passes, language
// override). Two builds of the same file content under different options
// must not collide.
func DeriveKey(fileContent []byte, buildOptionsHash string) Key {
	h := sha256.New()
	h.Write(fileContent)
	h.Write([]byte{0})
	h.Write([]byte(buildOptionsHash))
	sum := h.Sum(nil)
	return Key(hex.EncodeToString(sum)[:keyHexLen])
}

// ShardPath returns the "<key[:2]>/<key>.bin" relative path spec.md's §6
// disk layout mandates, keeping any single directory from accumulating
// more than ~1/256th of the cache's total entries.
func (k Key) ShardPath() string {
	return fmt.Sprintf("%s/%s.bin", string(k)[:2], string(k))
}
