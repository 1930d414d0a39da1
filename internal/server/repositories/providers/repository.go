package providers

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the provider list.
type Filter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Provider, int, error)
	Get(ctx context.Context, id string) (*models.Provider, error)
	Create(ctx context.Context, p *models.Provider) (*models.Provider, error)
	Update(ctx context.Context, p *models.Provider) (*models.Provider, error)
	Delete(ctx context.Context, id string) error
}
