package invitations

import (
	"context"
	"time"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the invitation list.
type Filter struct {
	Status string
	Role   string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Invitation, int, error)
	Get(ctx context.Context, id string) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)
	Reissue(ctx context.Context, id string, token string, expiresAt time.Time) (*models.Invitation, error)
	SetStatus(ctx context.Context, id string, status string) error
}
