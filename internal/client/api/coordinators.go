package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// CoordinatorListParams filter and page the coordinator list.
type CoordinatorListParams struct {
	Status string
	Search string
	Page   PageParams
}

func (p CoordinatorListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"status": p.Status,
		"search": p.Search,
	})
}

// CreateCoordinatorRequest creates a support coordinator.
type CreateCoordinatorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UpdateCoordinatorRequest carries partial updates; nil fields are untouched.
type UpdateCoordinatorRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ListCoordinators returns a page of coordinators.
func (c *Client) ListCoordinators(ctx context.Context, params CoordinatorListParams) (*List[Coordinator], error) {
	var env listEnvelope[Coordinator]
	err := c.Get(ctx, common.APIBasePath+"/coordinators", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetCoordinator returns one coordinator by id.
func (c *Client) GetCoordinator(ctx context.Context, id string) (*Coordinator, error) {
	var co Coordinator
	if err := c.Get(ctx, common.APIBasePath+"/coordinators/"+id, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// CreateCoordinator creates a coordinator.
func (c *Client) CreateCoordinator(ctx context.Context, req CreateCoordinatorRequest) (*Coordinator, error) {
	var co Coordinator
	if err := c.Post(ctx, common.APIBasePath+"/coordinators", req, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// UpdateCoordinator applies a partial update.
func (c *Client) UpdateCoordinator(ctx context.Context, id string, req UpdateCoordinatorRequest) (*Coordinator, error) {
	var co Coordinator
	if err := c.Patch(ctx, common.APIBasePath+"/coordinators/"+id, req, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// DeleteCoordinator removes a coordinator.
func (c *Client) DeleteCoordinator(ctx context.Context, id string) error {
	return c.Delete(ctx, common.APIBasePath+"/coordinators/"+id, nil)
}
