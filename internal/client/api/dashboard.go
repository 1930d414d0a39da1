package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// DashboardSummaryCounts returns the aggregate counters for the signed-in
// user's role scope.
func (c *Client) DashboardSummaryCounts(ctx context.Context) (*DashboardSummary, error) {
	var s DashboardSummary
	if err := c.Get(ctx, common.APIBasePath+"/dashboard/summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
