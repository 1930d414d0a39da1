package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Provider cache keys.
func ProvidersAll() cache.Key  { return cache.Key{"providers"} }
func ProviderLists() cache.Key { return cache.Key{"providers", "list"} }
func ProviderList(p api.ProviderListParams) cache.Key {
	return cache.Key{"providers", "list", p}
}
func ProviderDetail(id string) cache.Key { return cache.Key{"providers", "detail", id} }

func (q *Queries) Providers(ctx context.Context, params api.ProviderListParams) (*api.List[api.Provider], error) {
	return cached(ctx, q, ProviderList(params), func(ctx context.Context) (*api.List[api.Provider], error) {
		return q.api.ListProviders(ctx, params)
	})
}

func (q *Queries) Provider(ctx context.Context, id string) (*api.Provider, error) {
	return cached(ctx, q, ProviderDetail(id), func(ctx context.Context) (*api.Provider, error) {
		return q.api.GetProvider(ctx, id)
	})
}

func (q *Queries) CreateProvider(ctx context.Context, req api.CreateProviderRequest) (*api.Provider, error) {
	p, err := q.api.CreateProvider(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(ProvidersAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(ProviderDetail(p.ID), p)
	return p, nil
}

func (q *Queries) UpdateProvider(ctx context.Context, id string, req api.UpdateProviderRequest) (*api.Provider, error) {
	p, err := q.api.UpdateProvider(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(ProviderLists())
	q.cache.Put(ProviderDetail(id), p)
	return p, nil
}

func (q *Queries) DeleteProvider(ctx context.Context, id string) error {
	if err := q.api.DeleteProvider(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(ProvidersAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Remove(ProviderDetail(id))
	return nil
}
