package sat

import (
	"math/bits"
	"sync"
)

// clausePoolCount is the number of size-classed slice pools the Arena draws
// clause storage from.
const clausePoolCount = 4

// clausePoolMinCap is the minimum capacity held by the last pool.
const clausePoolMinCap = 1 << clausePoolCount

// clausePools buckets []Literal backing arrays by capacity class, so pool i
// holds slices with capacity in [2^(i+1), 2^(i+2)-1]; the last pool holds
// everything at or above clausePoolMinCap (2^clausePoolCount). Allocating and freeing a
// clause's literal slice through these pools (instead of make/GC) keeps the
// Propagator's hot path (which reshuffles a clause's literals on every watch
// update) from pressuring the allocator.
var clausePools = [clausePoolCount]sync.Pool{}

func init() {
	for i := range clausePools {
		capa := 1 << (i + 1)
		clausePools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

// clausePoolFor returns the index of the pool that serves slices of the
// given capacity.
func clausePoolFor(capa int) int {
	if capa >= clausePoolMinCap {
		return clausePoolCount - 1
	}
	if capa <= 2 {
		return 0
	}
	// ceil(log2(capa)) - 1: the smallest pool whose floor 2^(idx+1) is at
	// least capa. Pooled capacities below clausePoolMinCap are exact powers
	// of two, so freeSlice puts each back in the pool it was drawn from.
	return bits.Len(uint(capa-1)) - 1
}

// allocSlice returns an empty []Literal with capacity at least capa, pulled
// from the matching size class pool.
func allocSlice(capa int) *[]Literal {
	ref := clausePools[clausePoolFor(capa)].Get().(*[]Literal)
	if capa < clausePoolMinCap {
		return ref
	}

	// The last pool doesn't guarantee a specific capacity beyond its floor;
	// if what came back is still too small, replace it with a fresh slice
	// sized exactly for this request instead of growing it in place.
	if cap(*ref) < capa {
		s := make([]Literal, 0, capa)
		ref = &s
	}

	return ref
}

// freeSlice clears s and returns it to its size class pool for reuse by a
// future allocSlice call.
func freeSlice(s *[]Literal) {
	*s = (*s)[:0]
	clausePools[clausePoolFor(cap(*s))].Put(s)
}
