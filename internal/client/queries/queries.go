// Package queries layers the query cache over the typed API client: one
// cached read and one invalidating mutation wrapper per server operation,
// with cache keys built as [domain, operation, ...params] tuples.
package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Queries is the cached facade the CLI talks to instead of the raw client.
type Queries struct {
	api    *api.Client
	cache  *cache.Store
	poller *cache.Poller
}

func New(apiClient *api.Client, store *cache.Store, poller *cache.Poller) *Queries {
	return &Queries{api: apiClient, cache: store, poller: poller}
}

// Reset drops all cached data and stops every poll loop. Called on logout.
func (q *Queries) Reset() {
	q.poller.StopAll()
	q.cache.Clear()
}

// cached funnels a typed fetch through the cache store.
func cached[T any](ctx context.Context, q *Queries, key cache.Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := q.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
