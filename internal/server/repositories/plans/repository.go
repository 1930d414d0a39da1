package plans

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the plan list.
type Filter struct {
	ParticipantID string
	Status        string
	Limit         int
	Offset        int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Plan, int, error)
	Get(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, p *models.Plan) (*models.Plan, error)
	Update(ctx context.Context, p *models.Plan) (*models.Plan, error)
}
