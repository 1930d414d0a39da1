package api

import (
	"context"
	"strconv"

	"github.com/evercare/planhub/internal/common"
)

// ParticipantListParams filter and page the participant list.
type ParticipantListParams struct {
	Status        string
	CoordinatorID string
	Search        string
	Page          PageParams
}

func (p ParticipantListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"status":         p.Status,
		"coordinator_id": p.CoordinatorID,
		"search":         p.Search,
	})
}

// CreateParticipantRequest creates a participant record.
type CreateParticipantRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	NDISNumber    string `json:"ndis_number"`
	CoordinatorID string `json:"coordinator_id,omitempty"`
}

// UpdateParticipantRequest carries partial updates; nil fields are untouched.
type UpdateParticipantRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Status        *string `json:"status,omitempty"`
	CoordinatorID *string `json:"coordinator_id,omitempty"`
}

// ListParticipants returns a page of participants.
func (c *Client) ListParticipants(ctx context.Context, params ParticipantListParams) (*List[Participant], error) {
	var env listEnvelope[Participant]
	err := c.Get(ctx, common.APIBasePath+"/participants", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetParticipant returns one participant by id.
func (c *Client) GetParticipant(ctx context.Context, id string) (*Participant, error) {
	var p Participant
	if err := c.Get(ctx, common.APIBasePath+"/participants/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParticipant creates a participant.
func (c *Client) CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*Participant, error) {
	var p Participant
	if err := c.Post(ctx, common.APIBasePath+"/participants", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateParticipant applies a partial update.
func (c *Client) UpdateParticipant(ctx context.Context, id string, req UpdateParticipantRequest) (*Participant, error) {
	var p Participant
	if err := c.Patch(ctx, common.APIBasePath+"/participants/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteParticipant removes a participant.
func (c *Client) DeleteParticipant(ctx context.Context, id string) error {
	return c.Delete(ctx, common.APIBasePath+"/participants/"+id, nil)
}

// pageQuery merges pagination into a filter map, dropping zero values. The
// client core already omits empty strings at send time.
func pageQuery(page PageParams, params map[string]string) map[string]string {
	if page.Limit > 0 {
		params["limit"] = strconv.Itoa(page.Limit)
	}
	if page.Offset > 0 {
		params["offset"] = strconv.Itoa(page.Offset)
	}
	return params
}
