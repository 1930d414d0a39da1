package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetch(value any, calls *atomic.Int64) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestStore_GetCachesWithinTTL(t *testing.T) {
	s := New(time.Minute)
	key := Key{"participants", "list"}
	var calls atomic.Int64
	ctx := context.Background()

	v, err := s.Get(ctx, key, countingFetch("page1", &calls))
	require.NoError(t, err)
	assert.Equal(t, "page1", v)

	v, err = s.Get(ctx, key, countingFetch("page2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "page1", v, "second read served from cache")
	assert.Equal(t, int64(1), calls.Load())
}

func TestStore_TTLExpiryRefetches(t *testing.T) {
	s := New(time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	key := Key{"plans", "list"}
	var calls atomic.Int64
	ctx := context.Background()

	_, err := s.Get(ctx, key, countingFetch("old", &calls))
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	v, err := s.Get(ctx, key, countingFetch("new", &calls))
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, int64(2), calls.Load())
}

func TestStore_InvalidatePrefix(t *testing.T) {
	s := New(time.Minute)
	ctx := context.Background()
	var calls atomic.Int64

	listKey := Key{"invoices", "list", map[string]string{"status": "draft"}}
	detailKey := Key{"invoices", "detail", "i1"}
	otherKey := Key{"plans", "list"}

	for _, k := range []Key{listKey, detailKey, otherKey} {
		_, err := s.Get(ctx, k, countingFetch("v", &calls))
		require.NoError(t, err)
	}

	s.Invalidate(Key{"invoices"})

	assert.True(t, s.Stale(listKey), "every invoices key is stale after a domain invalidation")
	assert.True(t, s.Stale(detailKey))
	assert.False(t, s.Stale(otherKey), "other domains untouched")

	// Next read of an invalidated key refetches.
	v, err := s.Get(ctx, listKey, countingFetch("fresh", &calls))
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestStore_PreviousSurvivesInvalidation(t *testing.T) {
	s := New(time.Minute)
	key := Key{"documents", "list"}
	s.Put(key, "old-page")

	s.Invalidate(Key{"documents"})

	v, ok := s.Previous(key)
	require.True(t, ok)
	assert.Equal(t, "old-page", v)
}

func TestStore_FailedFetchKeepsPrevious(t *testing.T) {
	s := New(time.Minute)
	key := Key{"invoices", "detail", "i1"}
	ctx := context.Background()

	s.Put(key, "cached")
	s.Invalidate(Key{"invoices"})

	_, err := s.Get(ctx, key, func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	v, ok := s.Previous(key)
	require.True(t, ok)
	assert.Equal(t, "cached", v)
}

func TestStore_RemoveAndClear(t *testing.T) {
	s := New(time.Minute)
	k1 := Key{"a"}
	k2 := Key{"b"}
	s.Put(k1, 1)
	s.Put(k2, 2)

	s.Remove(k1)
	_, ok := s.Previous(k1)
	assert.False(t, ok)

	s.Clear()
	_, ok = s.Previous(k2)
	assert.False(t, ok)
}

func TestStore_CoalescesConcurrentFetches(t *testing.T) {
	s := New(time.Minute)
	key := Key{"dashboard", "summary"}
	ctx := context.Background()

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "summary", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Get(ctx, key, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every reader reach the singleflight barrier, then release the one
	// in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent reads share one fetch")
	for _, v := range results {
		assert.Equal(t, "summary", v)
	}
}
