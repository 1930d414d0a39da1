package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Plan cache keys.
func PlansAll() cache.Key  { return cache.Key{"plans"} }
func PlanLists() cache.Key { return cache.Key{"plans", "list"} }
func PlanList(p api.PlanListParams) cache.Key {
	return cache.Key{"plans", "list", p}
}
func PlanDetail(id string) cache.Key { return cache.Key{"plans", "detail", id} }

func (q *Queries) Plans(ctx context.Context, params api.PlanListParams) (*api.List[api.Plan], error) {
	return cached(ctx, q, PlanList(params), func(ctx context.Context) (*api.List[api.Plan], error) {
		return q.api.ListPlans(ctx, params)
	})
}

func (q *Queries) Plan(ctx context.Context, id string) (*api.Plan, error) {
	return cached(ctx, q, PlanDetail(id), func(ctx context.Context) (*api.Plan, error) {
		return q.api.GetPlan(ctx, id)
	})
}

func (q *Queries) CreatePlan(ctx context.Context, req api.CreatePlanRequest) (*api.Plan, error) {
	p, err := q.api.CreatePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(PlansAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(PlanDetail(p.ID), p)
	return p, nil
}

func (q *Queries) UpdatePlan(ctx context.Context, id string, req api.UpdatePlanRequest) (*api.Plan, error) {
	p, err := q.api.UpdatePlan(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(PlanLists())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(PlanDetail(id), p)
	return p, nil
}
