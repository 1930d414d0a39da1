package dashboard

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

type Repository interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}
