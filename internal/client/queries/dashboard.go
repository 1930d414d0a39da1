package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Dashboard cache keys.
func DashboardAll() cache.Key     { return cache.Key{"dashboard"} }
func DashboardSummary() cache.Key { return cache.Key{"dashboard", "summary"} }

func (q *Queries) Dashboard(ctx context.Context) (*api.DashboardSummary, error) {
	return cached(ctx, q, DashboardSummary(), func(ctx context.Context) (*api.DashboardSummary, error) {
		return q.api.DashboardSummaryCounts(ctx)
	})
}
