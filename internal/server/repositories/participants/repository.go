package participants

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the participant list.
type Filter struct {
	Status        string
	CoordinatorID string
	Search        string
	Limit         int
	Offset        int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Participant, int, error)
	Get(ctx context.Context, id string) (*models.Participant, error)
	Create(ctx context.Context, p *models.Participant) (*models.Participant, error)
	Update(ctx context.Context, p *models.Participant) (*models.Participant, error)
	Delete(ctx context.Context, id string) error
}
