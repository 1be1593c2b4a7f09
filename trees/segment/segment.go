package segment

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"gorange/ranges"

	"github.com/pkg/errors"
)

var (
	ErrEmptySpan  = errors.New("segment tree span holds no keys")
	ErrNoResolver = errors.New("no resolver")
)

func newSegmentNode[K Key](lo, hi K) *SegmentNode[K] {
	return &SegmentNode[K]{
		lo:    lo,
		hi:    hi,
		data:  nil,
		left:  nil,
		right: nil,
	}
}

type SegmentNode[K Key] struct {
	// left bound covered by this node
	lo K
	// right bound covered by this node
	hi K
	// data in this node
	data SegmentData
	// pointer to left child
	left *SegmentNode[K]
	// pointer to right child
	right *SegmentNode[K]
}

func (sn *SegmentNode[K]) SegmentDataExist() bool {
	return sn.data != nil
}

func (sn *SegmentNode[K]) GetSegmentData() SegmentData {
	return sn.data
}

func (sn *SegmentNode[K]) SetSegmentData(data SegmentData) {
	sn.data = data
}

func (sn *SegmentNode[K]) isLeaf() bool {
	return sn.lo == sn.hi
}

// peek answers a query from stored data only and never changes the tree.
// ok is false when some part of the query still needs the datasource.
func (sn *SegmentNode[K]) peek(ctx context.Context, qlo K, qhi K) (Result, bool, error) {
	if qlo <= sn.lo && qhi >= sn.hi && sn.SegmentDataExist() {
		if sn.data.IsCached() {
			return Result{CacheHits: 1, Data: sn.data}, true, nil
		}
		return Result{Data: sn.data}, true, nil
	}

	if maxKey(qlo, sn.lo) > minKey(qhi, sn.hi) {
		return Result{}, true, nil
	}

	if sn.isLeaf() || sn.left == nil {
		return Result{}, false, nil
	}

	leftRes, ok, err := sn.left.peek(ctx, qlo, qhi)
	if err != nil || !ok {
		return Result{}, ok, err
	}
	rightRes, ok, err := sn.right.peek(ctx, qlo, qhi)
	if err != nil || !ok {
		return Result{}, ok, err
	}

	total := leftRes.add(rightRes)
	if leftRes.Data == nil || rightRes.Data == nil {
		if leftRes.Data == nil {
			total.Data = rightRes.Data
		} else {
			total.Data = leftRes.Data
		}
		return total, true, nil
	}

	merged, err := leftRes.Data.Merge(ctx, rightRes.Data)
	if err != nil {
		return Result{}, false, errors.Wrapf(err, "merge [%v, %v]", sn.lo, sn.hi)
	}

	total.Data = merged
	return total, true, nil
}

func (sn *SegmentNode[K]) get(ctx context.Context, st *SegmentTree[K], qlo K, qhi K) (Result, error) {
	covered := qlo <= sn.lo && qhi >= sn.hi
	if covered && sn.SegmentDataExist() {
		if sn.data.IsCached() {
			return Result{CacheHits: 1, Data: sn.data}, nil
		}
		return Result{Data: sn.data}, nil
	}

	if maxKey(qlo, sn.lo) > minKey(qhi, sn.hi) {
		return Result{}, nil
	}

	if sn.isLeaf() {
		// get data from datastore
		rawData, err := st.res.Resolve(ctx, sn.lo, sn.hi)
		if err != nil {
			return Result{}, errors.Wrapf(err, "resolve [%v, %v]", sn.lo, sn.hi)
		}
		segmentData, err := rawData.Transform(ctx)
		if err != nil {
			return Result{}, errors.Wrapf(err, "transform [%v, %v]", sn.lo, sn.hi)
		}
		if err := segmentData.CacheMe(ctx); err != nil {
			return Result{}, errors.Wrapf(err, "cache [%v, %v]", sn.lo, sn.hi)
		}
		sn.SetSegmentData(segmentData)
		return Result{CacheMisses: 1, Data: segmentData}, nil
	}

	if sn.left == nil {
		mid := midpoint(sn.lo, sn.hi)
		sn.left = newSegmentNode(sn.lo, mid)
		sn.right = newSegmentNode(mid+1, sn.hi)
		st.numOfNodes += 2
	}

	leftRes, err := sn.left.get(ctx, st, qlo, qhi)
	if err != nil {
		return Result{}, err
	}
	rightRes, err := sn.right.get(ctx, st, qlo, qhi)
	if err != nil {
		return Result{}, err
	}

	total := leftRes.add(rightRes)
	if leftRes.Data == nil || rightRes.Data == nil {
		if leftRes.Data == nil {
			total.Data = rightRes.Data
		} else {
			total.Data = leftRes.Data
		}
		return total, nil
	}

	merged, err := leftRes.Data.Merge(ctx, rightRes.Data)
	if err != nil {
		return Result{}, errors.Wrapf(err, "merge [%v, %v]", sn.lo, sn.hi)
	}
	if covered {
		if err := merged.CacheMe(ctx); err != nil {
			return Result{}, errors.Wrapf(err, "cache [%v, %v]", sn.lo, sn.hi)
		}
		sn.SetSegmentData(merged)
	}

	total.Data = merged
	return total, nil
}

// NewSegmentTree returns a lazily built tree over the keys of span.
// Nodes are created and resolved as queries reach them.
func NewSegmentTree[K Key](span ranges.Range[K]) (*SegmentTree[K], error) {
	lo, hi, ok := ClosedBounds(span)
	if !ok {
		return nil, errors.Wrapf(ErrEmptySpan, "span %s", span)
	}

	return &SegmentTree[K]{
		span:       span,
		numOfNodes: 1,
		root:       newSegmentNode(lo, hi),
	}, nil
}

type SegmentTree[K Key] struct {
	// queries answered from stored data share the read lock, queries that
	// reach the datasource hold the write lock across resolver I/O
	mu sync.RWMutex
	// keys covered
	span ranges.Range[K]
	// total number of nodes
	numOfNodes int
	// root of the segment tree
	root *SegmentNode[K]
	// resolver to get data
	res Resolver[K]
}

func (st *SegmentTree[K]) SetResolver(r Resolver[K]) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.res = r
}

func (st *SegmentTree[K]) Span() ranges.Range[K] {
	return st.span
}

func (st *SegmentTree[K]) Describe() map[string]string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	description := make(map[string]string)
	description["total range"] = st.span.String()
	description["number of nodes"] = strconv.Itoa(st.numOfNodes)
	description["root exists"] = fmt.Sprintf("%t", st.root != nil)
	description["resolver exists"] = fmt.Sprintf("%t", st.res != nil)
	return description
}

func (st *SegmentTree[K]) CountNodes() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.root == nil {
		return 0
	}

	return st.countNodes(st.root)
}

func (st *SegmentTree[K]) countNodes(node *SegmentNode[K]) int {
	var leftCount, rightCount int
	if node.left != nil {
		leftCount = st.countNodes(node.left)
	}

	if node.right != nil {
		rightCount = st.countNodes(node.right)
	}

	return 1 + leftCount + rightCount
}

// BuildSegmentTree checks the tree is ready to answer queries.
func (st *SegmentTree[K]) BuildSegmentTree() error {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.root == nil {
		return ErrEmptySpan
	}

	if st.res == nil {
		return ErrNoResolver
	}

	return nil
}

// Get answers q, clipped to the tree span. A query that selects no key
// of the span returns an empty Result.
func (st *SegmentTree[K]) Get(ctx context.Context, q ranges.Range[K]) (Result, error) {
	st.mu.RLock()
	if st.res == nil {
		st.mu.RUnlock()
		return Result{}, ErrNoResolver
	}

	lo, hi, ok := clip(q, st.root.lo, st.root.hi)
	if !ok {
		st.mu.RUnlock()
		return Result{}, nil
	}

	res, stored, err := st.root.peek(ctx, lo, hi)
	st.mu.RUnlock()
	if err != nil || stored {
		return res, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.root.get(ctx, st, lo, hi)
}
