package currency

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"finwallet/internal/logger"
	"finwallet/internal/metrics"
)

// ErrCacheMiss is returned by a RateStore when the key is absent or expired.
var ErrCacheMiss = errors.New("rate cache miss")

// RateStore is the key/value backend behind CachedRates.
type RateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedRates caches rates from an upstream source with a TTL. Concurrent
// misses for the same pair share a single upstream call that is not cancelled
// with the caller who started it. Store failures are logged and fall through
// to the upstream source.
type CachedRates struct {
	next  RateSource
	store RateStore
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedRates wraps next with a cache held in store.
func NewCachedRates(next RateSource, store RateStore, ttl time.Duration) *CachedRates {
	return &CachedRates{next: next, store: store, ttl: ttl}
}

// Rate returns the cached from→to rate, fetching and storing it on a miss.
func (c *CachedRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = Normalize(from), Normalize(to)
	key := from + ":" + to
	log := logger.FromContext(ctx)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		rate, parseErr := decimal.NewFromString(raw)
		if parseErr == nil {
			metrics.RateCacheLookups.WithLabelValues("hit").Inc()
			return rate, nil
		}
		log.Warnw("discarding unparseable cached rate", "key", key, "value", raw)
		metrics.RateCacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, ErrCacheMiss):
		metrics.RateCacheLookups.WithLabelValues("miss").Inc()
	default:
		log.Warnw("rate cache read failed", "key", key, "error", err)
		metrics.RateCacheLookups.WithLabelValues("error").Inc()
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		rate, err := c.next.Rate(fetchCtx, from, to)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(fetchCtx, key, rate.String(), c.ttl); err != nil {
			log.Warnw("rate cache write failed", "key", key, "error", err)
		}
		return rate, nil
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}
