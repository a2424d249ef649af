// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package lookup

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/astrographus/internal/cache"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// result is one cached answer. A nil value with a nil error is a confirmed
// absence; err is only ever ErrUnavailable.
type result[T any] struct {
	value *T
	err   error
}

// Cache wraps a Service so that each key has at most one request in flight
// and answers are remembered. Found results live for the normal TTL,
// confirmed absences for the absent TTL and failures for the unavailable TTL,
// after which the key is asked again.
//
// Cache is owned by whoever builds it; there is no package-level instance.
type Cache struct {
	next Service

	systems *cache.LRU[string, result[System]]
	bodies  *cache.LRU[string, result[BodyList]]

	group singleflight.Group

	absentTTL      time.Duration
	unavailableTTL time.Duration
}

// CacheConfig sizes a Cache.
type CacheConfig struct {
	Size           int
	TTL            time.Duration
	AbsentTTL      time.Duration
	UnavailableTTL time.Duration

	// Now replaces time.Now for expiry.
	Now func() time.Time
}

// NewCache wraps next.
func NewCache(next Service, cfg CacheConfig) *Cache {
	var opts []cache.Option
	if cfg.Now != nil {
		opts = append(opts, cache.WithClock(cfg.Now))
	}
	if cfg.AbsentTTL <= 0 {
		cfg.AbsentTTL = cfg.TTL
	}
	if cfg.UnavailableTTL <= 0 {
		cfg.UnavailableTTL = time.Minute
	}
	return &Cache{
		next:           next,
		systems:        cache.NewLRU[string, result[System]](cfg.Size, cfg.TTL, opts...),
		bodies:         cache.NewLRU[string, result[BodyList]](cfg.Size, cfg.TTL, opts...),
		absentTTL:      cfg.AbsentTTL,
		unavailableTTL: cfg.UnavailableTTL,
	}
}

// System returns the cached answer for key, asking the wrapped service at
// most once per key at a time.
func (c *Cache) System(ctx context.Context, key SystemKey) (*System, error) {
	r, _ := load(ctx, c, c.systems, "system:"+key.String(), func(ctx context.Context) (*System, error) {
		return c.next.System(ctx, key)
	})
	return r.value, r.err
}

// Bodies returns the cached body list for key. The boolean reports whether
// the answer was already cached.
func (c *Cache) Bodies(ctx context.Context, key SystemKey) (*BodyList, bool, error) {
	r, cached := load(ctx, c, c.bodies, "bodies:"+key.String(), func(ctx context.Context) (*BodyList, error) {
		list, _, err := c.next.Bodies(ctx, key)
		return list, err
	})
	return r.value, cached, r.err
}

// Forget drops both cached answers for key.
func (c *Cache) Forget(key SystemKey) {
	c.systems.Remove("system:" + key.String())
	c.bodies.Remove("bodies:" + key.String())
}

// CleanupExpired drops expired answers and returns how many it dropped.
func (c *Cache) CleanupExpired() int {
	return c.systems.CleanupExpired() + c.bodies.CleanupExpired()
}

func load[T any](ctx context.Context, c *Cache, lru *cache.LRU[string, result[T]], key string, fetch func(context.Context) (*T, error)) (result[T], bool) {
	if r, ok := lru.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return r, true
	}
	metrics.RecordCacheLookup(false)

	v, _, shared := c.group.Do(key, func() (interface{}, error) {
		// A caller that joined late may find the answer already stored.
		if r, ok := lru.Get(key); ok {
			return r, nil
		}

		// The answer is shared, so one caller's cancellation must not
		// end the fetch.
		value, err := fetch(context.WithoutCancel(ctx))
		r := result[T]{value: value}
		switch {
		case err != nil:
			if !errors.Is(err, ErrUnavailable) {
				err = errors.Join(ErrUnavailable, err)
			}
			r.err = err
			lru.AddWithTTL(key, r, c.unavailableTTL)
		case value == nil:
			lru.AddWithTTL(key, r, c.absentTTL)
		default:
			lru.Add(key, r)
		}
		return r, nil
	})
	if shared {
		metrics.LookupSharedCalls.Inc()
	}
	return v.(result[T]), false
}
