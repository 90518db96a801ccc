package arena

import "sync"

// Int32Pool reuses the int32 scratch slices ExpressionArena and its
// callers need while assembling a function's reads_vars batch before
// appending it column-by-column. Mirrors the teacher's generic
// SlabAllocator[T] tiering, specialized to one element type since arenas
// only ever need int32 scratch space.
type Int32Pool struct {
	tiers []int32TierPool
}

type int32TierPool struct {
	capacity int
	pool     sync.Pool
}

// DefaultInt32TierCapacities follows the same shape as the teacher's
// DefaultTierConfigs: a handful of size classes biased toward small
// allocations, since most expressions read 0-3 variables.
var DefaultInt32TierCapacities = []int{4, 8, 16, 32, 64}

// NewInt32Pool builds a pool with the given tier capacities, smallest
// first.
func NewInt32Pool(capacities []int) *Int32Pool {
	p := &Int32Pool{tiers: make([]int32TierPool, len(capacities))}
	for i, c := range capacities {
		cap := c
		p.tiers[i] = int32TierPool{
			capacity: cap,
			pool: sync.Pool{
				New: func() any { return make([]int32, 0, cap) },
			},
		}
	}
	return p
}

// Get returns a slice with capacity >= n, reused from the smallest tier
// that fits when available.
func (p *Int32Pool) Get(n int) []int32 {
	for i := range p.tiers {
		if p.tiers[i].capacity >= n {
			if v := p.tiers[i].pool.Get(); v != nil {
				return v.([]int32)[:0]
			}
			return make([]int32, 0, p.tiers[i].capacity)
		}
	}
	return make([]int32, 0, n)
}

// Put returns slice to its tier for reuse. Slices whose capacity doesn't
// exactly match a tier are discarded rather than mis-filed.
func (p *Int32Pool) Put(slice []int32) {
	c := cap(slice)
	for i := range p.tiers {
		if p.tiers[i].capacity == c {
			p.tiers[i].pool.Put(slice[:0])
			return
		}
	}
}
