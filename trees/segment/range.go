package segment

import "gorange/ranges"

// Key is the set of integer types a segment tree can be keyed by.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// ClosedBounds narrows r to inclusive bounds, honouring its exclusion flags.
// ok is false when r holds no key at all, including when begin > end.
func ClosedBounds[K Key](r ranges.Range[K]) (lo K, hi K, ok bool) {
	lo, hi = r.Begin(), r.End()
	if lo > hi {
		return lo, hi, false
	}

	if r.ExcludeBegin() {
		if lo == hi {
			return lo, hi, false
		}
		lo++
	}

	if r.ExcludeEnd() {
		if lo == hi {
			return lo, hi, false
		}
		hi--
	}

	return lo, hi, true
}

// midpoint returns floor((lo+hi)/2) without overflowing, lo <= mid < hi.
func midpoint[K Key](lo, hi K) K {
	if (lo < 0) == (hi < 0) {
		return lo + (hi-lo)/2
	}

	// opposite signs, the sum cannot overflow
	sum := lo + hi
	mid := sum / 2
	if sum < 0 && sum%2 != 0 {
		mid--
	}
	return mid
}

func maxKey[K Key](a, b K) K {
	if a >= b {
		return a
	}
	return b
}

func minKey[K Key](a, b K) K {
	if a <= b {
		return a
	}
	return b
}
