package arena

import "github.com/cespare/xxhash/v2"

// StringInterner deduplicates repeated strings (FQNs, file paths, variable
// names) that otherwise appear once per occurrence across an arena. Keyed
// by xxhash rather than the string itself to keep the lookup table's key
// size fixed; a 64-bit hash collision between two distinct strings in one
// build's string population is astronomically unlikely and, if it ever
// happened, Intern's value comparison keeps it from returning the wrong
// string: the colliding string gets a new slot and takes over the hash
// entry, so the only cost is a duplicate slot on later lookups.
type StringInterner struct {
	values []string
	index  map[uint64]int32
}

// NewStringInterner creates an empty interner sized for capacity strings.
func NewStringInterner(capacity int) *StringInterner {
	return &StringInterner{
		values: make([]string, 0, capacity),
		index:  make(map[uint64]int32, capacity),
	}
}

// Intern returns the stable index for s.
func (in *StringInterner) Intern(s string) int32 {
	h := xxhash.Sum64String(s)
	if idx, ok := in.index[h]; ok && in.values[idx] == s {
		return idx
	}
	idx := int32(len(in.values))
	in.values = append(in.values, s)
	in.index[h] = idx
	return idx
}

// At returns the string stored at idx.
func (in *StringInterner) At(idx int32) string {
	return in.values[idx]
}

// Len reports how many distinct strings are interned.
func (in *StringInterner) Len() int {
	return len(in.values)
}
