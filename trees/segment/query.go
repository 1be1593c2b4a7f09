package segment

import "gorange/ranges"

// Result of a segment tree query.
type Result struct {
	// number of nodes answered from cached data
	CacheHits int
	// number of leaves resolved from the datasource
	CacheMisses int
	// merged data for the query, nil when nothing matched
	Data SegmentData
}

func (r Result) add(other Result) Result {
	return Result{
		CacheHits:   r.CacheHits + other.CacheHits,
		CacheMisses: r.CacheMisses + other.CacheMisses,
	}
}

// clip narrows a query to the tree span, ok is false when they do not overlap.
func clip[K Key](q ranges.Range[K], spanLo, spanHi K) (K, K, bool) {
	lo, hi, ok := ClosedBounds(q)
	if !ok {
		return lo, hi, false
	}

	lo, hi = maxKey(lo, spanLo), minKey(hi, spanHi)
	return lo, hi, lo <= hi
}
