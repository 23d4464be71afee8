package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vomadrid/vomadrid/internal/cache"
	"github.com/vomadrid/vomadrid/internal/metrics"
	"github.com/vomadrid/vomadrid/pkg/airtable"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/vomadrid/vomadrid/internal/catalog Source

// Source is the upstream tabular API. *airtable.Client implements it.
type Source interface {
	List(ctx context.Context, table string, q airtable.Query) ([]airtable.Record, error)
	Get(ctx context.Context, table, id string) (*airtable.Record, error)
}

// Fetcher reads raw records from a Source, memoizing results by cache key.
type Fetcher struct {
	src     Source
	lists   cache.Cache[[]airtable.Record]
	records cache.Cache[airtable.Record]
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithCaches replaces the default in-memory caches.
func WithCaches(lists cache.Cache[[]airtable.Record], records cache.Cache[airtable.Record]) FetcherOption {
	return func(f *Fetcher) {
		f.lists = lists
		f.records = records
	}
}

// WithTTL sets the lifetime of cached fetches.
func WithTTL(ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.ttl = ttl
	}
}

// WithLogger sets the fetcher's logger.
func WithLogger(log *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = log
	}
}

// WithMetrics records fetch and cache metrics.
func WithMetrics(m *metrics.Metrics) FetcherOption {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// NewFetcher creates a fetcher backed by fresh in-memory caches.
func NewFetcher(src Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		src:     src,
		lists:   cache.NewMemory[[]airtable.Record](),
		records: cache.NewMemory[airtable.Record](),
		ttl:     cache.DefaultTTL,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll returns every record of table matching q. With a non-empty
// cacheKey a cached result is returned as-is, and a fresh one is stored.
//
// Missing credentials are not an error: a warning is logged and the result
// is empty.
func (f *Fetcher) FetchAll(ctx context.Context, table string, q airtable.Query, cacheKey string) ([]airtable.Record, error) {
	if cacheKey != "" {
		recs, ok := f.lists.Get(ctx, cacheKey)
		f.metrics.CacheLookup(cacheKey, ok)
		if ok {
			return recs, nil
		}
	}

	start := time.Now()
	recs, err := f.src.List(ctx, table, q)
	if errors.Is(err, airtable.ErrNotConfigured) {
		f.log.Warn("upstream credentials not configured, returning no data", zap.String("table", table))
		f.metrics.ObserveFetch(table, "unconfigured", time.Since(start))
		return []airtable.Record{}, nil
	}
	if err != nil {
		f.metrics.ObserveFetch(table, "error", time.Since(start))
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	f.metrics.ObserveFetch(table, "ok", time.Since(start))

	if cacheKey != "" {
		f.lists.Set(ctx, cacheKey, recs, f.ttl)
	}
	return recs, nil
}

// FetchOne returns a single record, or nil if it does not exist.
// Caching and missing-credential handling match FetchAll; absent records
// are not cached.
func (f *Fetcher) FetchOne(ctx context.Context, table, id, cacheKey string) (*airtable.Record, error) {
	if cacheKey != "" {
		rec, ok := f.records.Get(ctx, cacheKey)
		f.metrics.CacheLookup(cacheKey, ok)
		if ok {
			return &rec, nil
		}
	}

	start := time.Now()
	rec, err := f.src.Get(ctx, table, id)
	if errors.Is(err, airtable.ErrNotConfigured) {
		f.log.Warn("upstream credentials not configured, returning no data", zap.String("table", table))
		f.metrics.ObserveFetch(table, "unconfigured", time.Since(start))
		return nil, nil
	}
	if err != nil {
		f.metrics.ObserveFetch(table, "error", time.Since(start))
		return nil, fmt.Errorf("fetch %s/%s: %w", table, id, err)
	}
	if rec == nil {
		f.metrics.ObserveFetch(table, "not_found", time.Since(start))
		return nil, nil
	}
	f.metrics.ObserveFetch(table, "ok", time.Since(start))

	if cacheKey != "" {
		f.records.Set(ctx, cacheKey, *rec, f.ttl)
	}
	return rec, nil
}
