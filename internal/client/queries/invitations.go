package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Invitation cache keys.
func InvitationsAll() cache.Key  { return cache.Key{"invitations"} }
func InvitationLists() cache.Key { return cache.Key{"invitations", "list"} }
func InvitationList(p api.InvitationListParams) cache.Key {
	return cache.Key{"invitations", "list", p}
}
func InvitationDetail(id string) cache.Key { return cache.Key{"invitations", "detail", id} }

func (q *Queries) Invitations(ctx context.Context, params api.InvitationListParams) (*api.List[api.Invitation], error) {
	return cached(ctx, q, InvitationList(params), func(ctx context.Context) (*api.List[api.Invitation], error) {
		return q.api.ListInvitations(ctx, params)
	})
}

func (q *Queries) Invitation(ctx context.Context, id string) (*api.Invitation, error) {
	return cached(ctx, q, InvitationDetail(id), func(ctx context.Context) (*api.Invitation, error) {
		return q.api.GetInvitation(ctx, id)
	})
}

func (q *Queries) CreateInvitation(ctx context.Context, req api.CreateInvitationRequest) (*api.Invitation, error) {
	inv, err := q.api.CreateInvitation(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(InvitationsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(InvitationDetail(inv.ID), inv)
	return inv, nil
}

func (q *Queries) ResendInvitation(ctx context.Context, id string) (*api.Invitation, error) {
	inv, err := q.api.ResendInvitation(ctx, id)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(InvitationLists())
	q.cache.Put(InvitationDetail(id), inv)
	return inv, nil
}

// ValidateInvitation is a pass-through: invitation tokens are single-use and
// time-boxed, so the result is never cached.
func (q *Queries) ValidateInvitation(ctx context.Context, token string) (*api.Invitation, error) {
	return q.api.ValidateInvitation(ctx, token)
}

func (q *Queries) RevokeInvitation(ctx context.Context, id string) error {
	if err := q.api.RevokeInvitation(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(InvitationsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Remove(InvitationDetail(id))
	return nil
}
