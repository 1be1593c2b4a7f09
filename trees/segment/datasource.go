package segment

import "context"

type RawData interface {
	// transforms raw data to segment data
	Transform(ctx context.Context) (SegmentData, error)
}

type SegmentData interface {
	// returns merge of caller and argument
	Merge(ctx context.Context, other SegmentData) (SegmentData, error)
	// logic to get the data, i.e. it could be a network call etc
	Get(ctx context.Context) (interface{}, error)
	// stores the data so later reads can skip the datasource
	CacheMe(ctx context.Context) error
	IsCached() bool
}
