package coordinators

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the coordinator list.
type Filter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Coordinator, int, error)
	Get(ctx context.Context, id string) (*models.Coordinator, error)
	Create(ctx context.Context, c *models.Coordinator) (*models.Coordinator, error)
	Update(ctx context.Context, c *models.Coordinator) (*models.Coordinator, error)
	Delete(ctx context.Context, id string) error
}
