package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Coordinator cache keys.
func CoordinatorsAll() cache.Key  { return cache.Key{"coordinators"} }
func CoordinatorLists() cache.Key { return cache.Key{"coordinators", "list"} }
func CoordinatorList(p api.CoordinatorListParams) cache.Key {
	return cache.Key{"coordinators", "list", p}
}
func CoordinatorDetail(id string) cache.Key { return cache.Key{"coordinators", "detail", id} }

func (q *Queries) Coordinators(ctx context.Context, params api.CoordinatorListParams) (*api.List[api.Coordinator], error) {
	return cached(ctx, q, CoordinatorList(params), func(ctx context.Context) (*api.List[api.Coordinator], error) {
		return q.api.ListCoordinators(ctx, params)
	})
}

func (q *Queries) Coordinator(ctx context.Context, id string) (*api.Coordinator, error) {
	return cached(ctx, q, CoordinatorDetail(id), func(ctx context.Context) (*api.Coordinator, error) {
		return q.api.GetCoordinator(ctx, id)
	})
}

func (q *Queries) CreateCoordinator(ctx context.Context, req api.CreateCoordinatorRequest) (*api.Coordinator, error) {
	co, err := q.api.CreateCoordinator(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(CoordinatorsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(CoordinatorDetail(co.ID), co)
	return co, nil
}

func (q *Queries) UpdateCoordinator(ctx context.Context, id string, req api.UpdateCoordinatorRequest) (*api.Coordinator, error) {
	co, err := q.api.UpdateCoordinator(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(CoordinatorLists())
	q.cache.Put(CoordinatorDetail(id), co)
	return co, nil
}

func (q *Queries) DeleteCoordinator(ctx context.Context, id string) error {
	if err := q.api.DeleteCoordinator(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(CoordinatorsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Remove(CoordinatorDetail(id))
	return nil
}
