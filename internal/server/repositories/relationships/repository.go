package relationships

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the relationship list.
type Filter struct {
	ParticipantID string
	ProviderID    string
	CoordinatorID string
	Status        string
	Limit         int
	Offset        int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Relationship, int, error)
	Get(ctx context.Context, id string) (*models.Relationship, error)
	Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error)
	End(ctx context.Context, id string) error
}
