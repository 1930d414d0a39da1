package actiontokens

import (
	"context"
	"time"

	"github.com/evercare/planhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, purpose string, validity time.Duration) error
	Find(ctx context.Context, token string, purpose string) (*models.ActionToken, error)
	Delete(ctx context.Context, token string) error
}
