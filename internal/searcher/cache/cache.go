// Package cache keeps rendered job query results in Redis. Concurrent misses
// for one key share a single computation, and a circuit breaker bypasses
// Redis while it is failing so queries never wait on it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/resilience"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "jobsearch:"

// Store is the key-value backend, implemented by pkg/redis.Client.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

// Options configures a QueryCache. IsMiss classifies Store.Get errors that
// mean "no such key".
type Options struct {
	TTL       time.Duration
	Namespace string
	IsMiss    func(error) bool
	Metrics   *metrics.Metrics
}

type QueryCache[T any] struct {
	store   Store
	opts    Options
	breaker *resilience.CircuitBreaker
	group   singleflight.Group
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

func New[T any](store Store, opts Options) *QueryCache[T] {
	if opts.IsMiss == nil {
		opts.IsMiss = func(error) bool { return false }
	}
	return &QueryCache[T]{
		store:   store,
		opts:    opts,
		breaker: resilience.NewCircuitBreaker("query-cache", resilience.BreakerConfig{FailureThreshold: 5, ResetTimeout: 30 * time.Second}),
		logger:  slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached value for key.
func (c *QueryCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	redisKey := c.buildKey(key)
	var data []byte
	err := c.breaker.Execute(func() error {
		var err error
		data, err = c.store.Get(ctx, redisKey)
		if err != nil && c.opts.IsMiss(err) {
			data = nil
			return nil
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.Error("cache get failed", "key", redisKey, "error", err)
		}
		c.miss()
		return zero, false
	}
	if data == nil {
		c.miss()
		return zero, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.Error("cache unmarshal failed", "key", redisKey, "error", err)
		c.miss()
		return zero, false
	}
	c.hit()
	return value, true
}

func (c *QueryCache[T]) Set(ctx context.Context, key string, value T) {
	redisKey := c.buildKey(key)
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", redisKey, "error", err)
		return
	}
	err = c.breaker.Execute(func() error {
		return c.store.Set(ctx, redisKey, data, c.opts.TTL)
	})
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.Error("cache set failed", "key", redisKey, "error", err)
	}
}

// GetOrCompute returns the cached value for key or computes and stores it.
// The bool is true on a cache hit.
func (c *QueryCache[T]) GetOrCompute(ctx context.Context, key string, compute func() (T, error)) (T, bool, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return val.(T), false, nil
}

// Invalidate removes every entry written by any QueryCache.
func (c *QueryCache[T]) Invalidate(ctx context.Context) error {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache[T]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// BreakerState reports whether Redis is currently being bypassed.
func (c *QueryCache[T]) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *QueryCache[T]) hit() {
	c.hits.Add(1)
	if c.opts.Metrics != nil {
		c.opts.Metrics.CacheHitsTotal.Inc()
	}
}

func (c *QueryCache[T]) miss() {
	c.misses.Add(1)
	if c.opts.Metrics != nil {
		c.opts.Metrics.CacheMissesTotal.Inc()
	}
}

func (c *QueryCache[T]) buildKey(key string) string {
	hash := sha256.Sum256([]byte(c.opts.Namespace + "|" + key))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
