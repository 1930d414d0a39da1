package users

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash []byte) error
	MarkEmailVerified(ctx context.Context, userID string) error
}
