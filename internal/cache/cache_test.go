// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type countingObserver struct {
	hits, misses int
}

func (c *countingObserver) Hit(string)  { c.hits++ }
func (c *countingObserver) Miss(string) { c.misses++ }

func TestCache_GetPut(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantOK  bool
	}{
		{name: "immediately after put", advance: 0, wantOK: true},
		{name: "just inside ttl", advance: TTL - time.Nanosecond, wantOK: true},
		{name: "exactly at ttl", advance: TTL, wantOK: false},
		{name: "well past ttl", advance: 2 * TTL, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			c := New[int, string](WithClock(clock.Now))

			c.Put(42, "lakers")
			clock.Advance(tt.advance)

			got, ok := c.Get(42)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "lakers", got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestCache_MissingKey(t *testing.T) {
	c := New[string, []int]()
	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_PutOverwritesAndRestamps(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Put("players", 1)
	clock.Advance(4 * time.Minute)
	c.Put("players", 2)
	clock.Advance(4 * time.Minute)

	got, ok := c.Get("players")
	assert.True(t, ok, "second put should restart the window")
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_DistinctKeysGrow(t *testing.T) {
	c := New[int, int]()
	for i := 0; i < 10; i++ {
		c.Put(i, i*i)
	}
	assert.Equal(t, 10, c.Len())

	got, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 9, got)
}

func TestCache_Observer(t *testing.T) {
	obs := &countingObserver{}
	c := New[int, int](WithObserver(obs), WithName("teams"))

	_, _ = c.Get(1)
	c.Put(1, 1)
	_, _ = c.Get(1)

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
	assert.Equal(t, "teams", c.Name())
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("stores on success and serves from cache", func(t *testing.T) {
		c := New[int, string]()
		calls := 0
		fn := func(context.Context) (string, error) {
			calls++
			return "celtics", nil
		}

		v, err := Fetch(ctx, c, 7, fn)
		require.NoError(t, err)
		assert.Equal(t, "celtics", v)

		v, err = Fetch(ctx, c, 7, fn)
		require.NoError(t, err)
		assert.Equal(t, "celtics", v)
		assert.Equal(t, 1, calls)
	})

	t.Run("stores nothing on failure", func(t *testing.T) {
		c := New[int, string]()
		boom := errors.New("upstream down")
		calls := 0

		_, err := Fetch(ctx, c, 7, func(context.Context) (string, error) {
			calls++
			return "", boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())

		v, err := Fetch(ctx, c, 7, func(context.Context) (string, error) {
			calls++
			return "heat", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "heat", v)
		assert.Equal(t, 2, calls)
	})

	t.Run("refetches after expiry", func(t *testing.T) {
		clock := newFakeClock()
		c := New[string, int](WithClock(clock.Now))
		calls := 0
		fn := func(context.Context) (int, error) {
			calls++
			return calls, nil
		}

		v, _ := Fetch(ctx, c, "k", fn)
		assert.Equal(t, 1, v)
		clock.Advance(TTL)
		v, _ = Fetch(ctx, c, "k", fn)
		assert.Equal(t, 2, v)
	})
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put(i%5, i)
			_, _ = c.Get(i % 5)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}

func BenchmarkCache_Get(b *testing.B) {
	c := New[int, int]()
	c.Put(1, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(1)
	}
}
