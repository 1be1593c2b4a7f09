package store

import (
	"context"
	"database/sql"
	"fmt"

	"gorange/ranges"
	"gorange/trees/segment"

	"github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// Config names where SumResolver reads its values from.
type Config struct {
	DSN         string
	Table       string
	KeyColumn   string
	ValueColumn string
}

func (c Config) Validate() error {
	for _, name := range []string{c.Table, c.KeyColumn, c.ValueColumn} {
		if err := ranges.CheckColumn(name); err != nil {
			return err
		}
	}
	return nil
}

// SumResolver resolves key ranges to the sum of a value column.
type SumResolver struct {
	database *sql.DB
	cfg      Config
	cache    *Cache
}

var _ segment.Resolver[int64] = (*SumResolver)(nil)

// Open connects to mysql and checks the connection.
func Open(ctx context.Context, cfg Config, cache *Cache) (*SumResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	database, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}

	return &SumResolver{
		database: database,
		cfg:      cfg,
		cache:    cache,
	}, nil
}

// NewSumResolver wraps an already opened database.
func NewSumResolver(database *sql.DB, cfg Config, cache *Cache) (*SumResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SumResolver{
		database: database,
		cfg:      cfg,
		cache:    cache,
	}, nil
}

func (sr *SumResolver) Close() error {
	return sr.database.Close()
}

func (sr *SumResolver) Resolve(ctx context.Context, lo int64, hi int64) (segment.RawData, error) {
	clause, args, err := ranges.Where(sr.cfg.KeyColumn, ranges.New(lo, hi))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s", sr.cfg.ValueColumn, sr.cfg.Table, clause)

	var sum int64
	if err := sr.database.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return nil, errors.Wrapf(err, "sum %s over [%d, %d]", sr.cfg.Table, lo, hi)
	}

	return sumRawData{cache: sr.cache, sum: sum}, nil
}
