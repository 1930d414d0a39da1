// Package plans provides a PostgreSQL-backed repository for NDIS plans
// and their budget tracking.
package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `
	SELECT id, participant_id, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
	       total_budget_cents, spent_cents, status, created_at, updated_at
	FROM plans
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	if f.ParticipantID != "" {
		args = append(args, f.ParticipantID)
		conds = append(conds, fmt.Sprintf("participant_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Plan, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM plans"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY start_date DESC LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Plan
	for rows.Next() {
		p := &models.Plan{}
		if err := rows.Scan(&p.ID, &p.ParticipantID, &p.StartDate, &p.EndDate,
			&p.TotalBudgetCents, &p.SpentCents, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) scan(row *sql.Row) (*models.Plan, error) {
	p := &models.Plan{}
	err := row.Scan(&p.ID, &p.ParticipantID, &p.StartDate, &p.EndDate,
		&p.TotalBudgetCents, &p.SpentCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id))
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	query := `
		INSERT INTO plans (participant_id, start_date, end_date, total_budget_cents, spent_cents, status)
		VALUES ($1, $2::date, $3::date, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ParticipantID, p.StartDate, p.EndDate, p.TotalBudgetCents, p.SpentCents, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	query := `
		UPDATE plans
		SET start_date = $2::date, end_date = $3::date, total_budget_cents = $4,
		    spent_cents = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.StartDate, p.EndDate, p.TotalBudgetCents, p.SpentCents, p.Status).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
