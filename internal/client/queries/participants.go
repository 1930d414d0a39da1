package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Participant cache keys.
func ParticipantsAll() cache.Key  { return cache.Key{"participants"} }
func ParticipantLists() cache.Key { return cache.Key{"participants", "list"} }
func ParticipantList(p api.ParticipantListParams) cache.Key {
	return cache.Key{"participants", "list", p}
}
func ParticipantDetail(id string) cache.Key { return cache.Key{"participants", "detail", id} }

// Participants reads a participant page through the cache.
func (q *Queries) Participants(ctx context.Context, params api.ParticipantListParams) (*api.List[api.Participant], error) {
	return cached(ctx, q, ParticipantList(params), func(ctx context.Context) (*api.List[api.Participant], error) {
		return q.api.ListParticipants(ctx, params)
	})
}

// Participant reads one participant through the cache.
func (q *Queries) Participant(ctx context.Context, id string) (*api.Participant, error) {
	return cached(ctx, q, ParticipantDetail(id), func(ctx context.Context) (*api.Participant, error) {
		return q.api.GetParticipant(ctx, id)
	})
}

// CreateParticipant creates and invalidates the participant domain plus the
// dashboard counters.
func (q *Queries) CreateParticipant(ctx context.Context, req api.CreateParticipantRequest) (*api.Participant, error) {
	p, err := q.api.CreateParticipant(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(ParticipantsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(ParticipantDetail(p.ID), p)
	return p, nil
}

// UpdateParticipant updates, marks every participant list stale and stores
// the fresh detail so the mutated record reads back without a refetch.
func (q *Queries) UpdateParticipant(ctx context.Context, id string, req api.UpdateParticipantRequest) (*api.Participant, error) {
	p, err := q.api.UpdateParticipant(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(ParticipantLists())
	q.cache.Put(ParticipantDetail(id), p)
	return p, nil
}

// DeleteParticipant deletes and drops the cached detail.
func (q *Queries) DeleteParticipant(ctx context.Context, id string) error {
	if err := q.api.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(ParticipantsAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Remove(ParticipantDetail(id))
	return nil
}
