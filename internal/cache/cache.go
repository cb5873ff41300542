// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
)

// TTL is the freshness window for every resource kind.
const TTL = 5 * time.Minute

// Entry is a single cached value and the time it was stored. Entries are
// replaced on refresh, never mutated.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// Observer is told about every lookup. The zero configuration uses a no-op.
type Observer interface {
	Hit(name string)
	Miss(name string)
}

type noopObserver struct{}

func (noopObserver) Hit(string)  {}
func (noopObserver) Miss(string) {}

// Cache memoizes values by key for TTL. There is no eviction beyond
// overwrite, so the map grows with the number of distinct keys seen.
//
// The mutex only keeps the map itself consistent. It is never held across an
// upstream call, so two callers that miss on the same key will both fetch
// and the last Put wins.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]Entry[V]
	now      func() time.Time
	ttl      time.Duration
	name     string
	observer Observer
}

// Option customizes a Cache.
type Option func(*options)

type options struct {
	now      func() time.Time
	ttl      time.Duration
	name     string
	observer Observer
}

// WithClock injects the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithTTL overrides the freshness window. Only tests should need this.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithName labels the cache in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver reports hits and misses to o.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New returns an empty cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := options{
		now:      time.Now,
		ttl:      TTL,
		name:     "cache",
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[K, V]{
		entries:  make(map[K]Entry[V]),
		now:      o.now,
		ttl:      o.ttl,
		name:     o.name,
		observer: o.observer,
	}
}

// Get returns the value for key if it was stored less than TTL ago.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()

	if ok && c.now().Sub(entry.StoredAt) < c.ttl {
		c.observer.Hit(c.name)
		log.Debugf("%s: cache hit: %v", c.name, key)
		return entry.Value, true
	}

	c.observer.Miss(c.name)
	log.Debugf("%s: cache miss: %v", c.name, key)
	var zero V
	return zero, false
}

// Put stores value under key, stamped with the current time.
func (c *Cache[K, V]) Put(key K, value V) {
	entry := Entry[V]{Value: value, StoredAt: c.now()}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Len returns the number of keys ever stored.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Name returns the label given with WithName.
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Fetch returns the cached value for key or calls fn to produce it. Only a
// successful result is stored; an error is returned as-is so the next call
// retries upstream.
func Fetch[K comparable, V any](
	ctx context.Context,
	c *Cache[K, V],
	key K,
	fn func(context.Context) (V, error),
) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := fn(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.Put(key, v)
	return v, nil
}
