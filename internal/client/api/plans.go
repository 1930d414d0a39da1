package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// Plan statuses.
const (
	PlanActive   = "active"
	PlanExpired  = "expired"
	PlanUpcoming = "upcoming"
)

// PlanListParams filter and page the plan list.
type PlanListParams struct {
	ParticipantID string
	Status        string
	Page          PageParams
}

func (p PlanListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"participant_id": p.ParticipantID,
		"status":         p.Status,
	})
}

// CreatePlanRequest registers an NDIS plan for a participant. Dates are
// calendar dates in YYYY-MM-DD form.
type CreatePlanRequest struct {
	ParticipantID    string `json:"participant_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalBudgetCents int64  `json:"total_budget_cents"`
}

// UpdatePlanRequest carries partial updates; nil fields are untouched.
type UpdatePlanRequest struct {
	EndDate          *string `json:"end_date,omitempty"`
	TotalBudgetCents *int64  `json:"total_budget_cents,omitempty"`
	Status           *string `json:"status,omitempty"`
}

// ListPlans returns a page of plans.
func (c *Client) ListPlans(ctx context.Context, params PlanListParams) (*List[Plan], error) {
	var env listEnvelope[Plan]
	err := c.Get(ctx, common.APIBasePath+"/plans", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetPlan returns one plan by id.
func (c *Client) GetPlan(ctx context.Context, id string) (*Plan, error) {
	var p Plan
	if err := c.Get(ctx, common.APIBasePath+"/plans/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlan registers a plan.
func (c *Client) CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	var p Plan
	if err := c.Post(ctx, common.APIBasePath+"/plans", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlan applies a partial update.
func (c *Client) UpdatePlan(ctx context.Context, id string, req UpdatePlanRequest) (*Plan, error) {
	var p Plan
	if err := c.Patch(ctx, common.APIBasePath+"/plans/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
