// Package dashboard aggregates the cross-entity counts served on the
// dashboard landing page.
package dashboard

import (
	"context"
	"fmt"

	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Summary computes all dashboard counts in a single round trip.
func (r *PostgresRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	query := `
		SELECT
			(SELECT count(*) FROM participants WHERE status = 'active'),
			(SELECT count(*) FROM providers WHERE status = 'active'),
			(SELECT count(*) FROM coordinators WHERE status = 'active'),
			(SELECT count(*) FROM invitations WHERE status = 'pending'),
			(SELECT count(*) FROM invoices WHERE status IN ('draft', 'submitted')),
			(SELECT count(*) FROM documents WHERE status IN ('pending', 'processing')),
			(SELECT count(*) FROM plans WHERE status = 'active'),
			(SELECT COALESCE(sum(total_budget_cents), 0) FROM plans WHERE status = 'active')
	`
	s := &models.DashboardSummary{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Participants, &s.Providers, &s.Coordinators, &s.PendingInvitations,
		&s.OpenInvoices, &s.PendingDocuments, &s.ActivePlans, &s.TotalBudgetCents)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
