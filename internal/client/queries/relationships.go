package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

// Relationship cache keys.
func RelationshipsAll() cache.Key { return cache.Key{"relationships"} }
func RelationshipList(p api.RelationshipListParams) cache.Key {
	return cache.Key{"relationships", "list", p}
}

func (q *Queries) Relationships(ctx context.Context, params api.RelationshipListParams) (*api.List[api.Relationship], error) {
	return cached(ctx, q, RelationshipList(params), func(ctx context.Context) (*api.List[api.Relationship], error) {
		return q.api.ListRelationships(ctx, params)
	})
}

// CreateRelationship links a participant to a provider or coordinator. The
// participant detail is also invalidated since its linkage summary changed.
func (q *Queries) CreateRelationship(ctx context.Context, req api.CreateRelationshipRequest) (*api.Relationship, error) {
	rel, err := q.api.CreateRelationship(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(RelationshipsAll())
	q.cache.Invalidate(ParticipantDetail(req.ParticipantID))
	return rel, nil
}

func (q *Queries) EndRelationship(ctx context.Context, id string) error {
	if err := q.api.EndRelationship(ctx, id); err != nil {
		return err
	}
	q.cache.Invalidate(RelationshipsAll())
	return nil
}
