package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// Relationship kinds.
const (
	RelationshipProvider    = "provider"
	RelationshipCoordinator = "coordinator"
)

// RelationshipListParams filter and page the relationship list.
type RelationshipListParams struct {
	ParticipantID string
	ProviderID    string
	CoordinatorID string
	Status        string
	Page          PageParams
}

func (p RelationshipListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"participant_id": p.ParticipantID,
		"provider_id":    p.ProviderID,
		"coordinator_id": p.CoordinatorID,
		"status":         p.Status,
	})
}

// CreateRelationshipRequest links a participant to a provider or
// coordinator. Exactly one of ProviderID/CoordinatorID must be set,
// matching Kind.
type CreateRelationshipRequest struct {
	ParticipantID string `json:"participant_id"`
	ProviderID    string `json:"provider_id,omitempty"`
	CoordinatorID string `json:"coordinator_id,omitempty"`
	Kind          string `json:"kind"`
}

// ListRelationships returns a page of relationships.
func (c *Client) ListRelationships(ctx context.Context, params RelationshipListParams) (*List[Relationship], error) {
	var env listEnvelope[Relationship]
	err := c.Get(ctx, common.APIBasePath+"/relationships", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// CreateRelationship links a participant to a provider or coordinator.
func (c *Client) CreateRelationship(ctx context.Context, req CreateRelationshipRequest) (*Relationship, error) {
	var rel Relationship
	if err := c.Post(ctx, common.APIBasePath+"/relationships", req, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// EndRelationship marks an active relationship as ended.
func (c *Client) EndRelationship(ctx context.Context, id string) error {
	return c.Delete(ctx, common.APIBasePath+"/relationships/"+id, nil)
}
