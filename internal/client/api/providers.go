package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// ProviderListParams filter and page the provider list.
type ProviderListParams struct {
	Status string
	Search string
	Page   PageParams
}

func (p ProviderListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"status": p.Status,
		"search": p.Search,
	})
}

// CreateProviderRequest registers a service provider.
type CreateProviderRequest struct {
	Name  string `json:"name"`
	ABN   string `json:"abn"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProviderRequest carries partial updates; nil fields are untouched.
type UpdateProviderRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ListProviders returns a page of providers.
func (c *Client) ListProviders(ctx context.Context, params ProviderListParams) (*List[Provider], error) {
	var env listEnvelope[Provider]
	err := c.Get(ctx, common.APIBasePath+"/providers", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetProvider returns one provider by id.
func (c *Client) GetProvider(ctx context.Context, id string) (*Provider, error) {
	var p Provider
	if err := c.Get(ctx, common.APIBasePath+"/providers/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProvider registers a provider.
func (c *Client) CreateProvider(ctx context.Context, req CreateProviderRequest) (*Provider, error) {
	var p Provider
	if err := c.Post(ctx, common.APIBasePath+"/providers", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProvider applies a partial update.
func (c *Client) UpdateProvider(ctx context.Context, id string, req UpdateProviderRequest) (*Provider, error) {
	var p Provider
	if err := c.Patch(ctx, common.APIBasePath+"/providers/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProvider removes a provider.
func (c *Client) DeleteProvider(ctx context.Context, id string) error {
	return c.Delete(ctx, common.APIBasePath+"/providers/"+id, nil)
}
