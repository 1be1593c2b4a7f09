package store

import (
	"context"
	"strconv"
	"time"

	"gorange/trees/segment"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const keyPrefix = "segment:"

// Cache keeps segment sums in redis, one uuid key per cached node.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns a Cache writing through client. A zero ttl keeps keys forever.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "ping redis")
}

// NewSum returns uncached segment data holding value.
func (c *Cache) NewSum(value int64) *Sum {
	return &Sum{
		cache: c,
		data:  value,
	}
}

// Sum is segment data for range-sum queries.
type Sum struct {
	cache    *Cache
	isCached bool
	data     int64
	key      string
}

func (s *Sum) IsCached() bool {
	return s.isCached
}

func (s *Sum) Key() string {
	return s.key
}

func (s *Sum) CacheMe(ctx context.Context) error {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "generate cache key")
	}

	key := keyPrefix + newUUID.String()
	if err := s.cache.client.Set(ctx, key, s.data, s.cache.ttl).Err(); err != nil {
		return errors.Wrapf(err, "set %s", key)
	}

	s.key = key
	s.isCached = true
	return nil
}

func (s *Sum) value(ctx context.Context) (int64, error) {
	if !s.IsCached() {
		return s.data, nil
	}

	val, err := s.cache.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		// key expired or evicted, the in-memory value is still valid so
		// answer with it and write it back under the same key
		if err := s.cache.client.Set(ctx, s.key, s.data, s.cache.ttl).Err(); err != nil {
			return 0, errors.Wrapf(err, "refresh %s", s.key)
		}
		return s.data, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "get %s", s.key)
	}

	value, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", s.key)
	}

	return value, nil
}

func (s *Sum) Get(ctx context.Context) (interface{}, error) {
	return s.value(ctx)
}

func (s *Sum) Merge(ctx context.Context, other segment.SegmentData) (segment.SegmentData, error) {
	otherSum, ok := other.(*Sum)
	if !ok {
		return nil, errors.Errorf("cannot merge %T into *store.Sum", other)
	}

	value1, err := s.value(ctx)
	if err != nil {
		return nil, err
	}

	value2, err := otherSum.value(ctx)
	if err != nil {
		return nil, err
	}

	return s.cache.NewSum(value1 + value2), nil
}

// sumRawData is a row fetched by SumResolver.
type sumRawData struct {
	cache *Cache
	sum   int64
}

func (raw sumRawData) Transform(context.Context) (segment.SegmentData, error) {
	return raw.cache.NewSum(raw.sum), nil
}
