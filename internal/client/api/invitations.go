package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// InvitationListParams filter and page the invitation list.
type InvitationListParams struct {
	Status string
	Role   string
	Page   PageParams
}

func (p InvitationListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"status": p.Status,
		"role":   p.Role,
	})
}

// CreateInvitationRequest invites a new user to the platform.
type CreateInvitationRequest struct {
	Email string   `json:"email"`
	Role  UserType `json:"role"`
}

// ListInvitations returns a page of invitations.
func (c *Client) ListInvitations(ctx context.Context, params InvitationListParams) (*List[Invitation], error) {
	var env listEnvelope[Invitation]
	err := c.Get(ctx, common.APIBasePath+"/invitations", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetInvitation returns one invitation by id.
func (c *Client) GetInvitation(ctx context.Context, id string) (*Invitation, error) {
	var inv Invitation
	if err := c.Get(ctx, common.APIBasePath+"/invitations/"+id, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvitation sends an invitation email.
func (c *Client) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*Invitation, error) {
	var inv Invitation
	if err := c.Post(ctx, common.APIBasePath+"/invitations", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ResendInvitation re-issues a pending invitation with a fresh expiry.
func (c *Client) ResendInvitation(ctx context.Context, id string) (*Invitation, error) {
	var inv Invitation
	if err := c.Post(ctx, common.APIBasePath+"/invitations/"+id+"/resend", nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RevokeInvitation cancels a pending invitation.
func (c *Client) RevokeInvitation(ctx context.Context, id string) error {
	return c.Delete(ctx, common.APIBasePath+"/invitations/"+id, nil)
}
