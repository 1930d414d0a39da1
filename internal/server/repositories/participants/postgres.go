// Package participants provides a PostgreSQL-backed repository for
// NDIS participant records.
package participants

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
	SELECT id, first_name, last_name, email, ndis_number, status,
	       COALESCE(coordinator_id::text, ''), created_at, updated_at
	FROM participants
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CoordinatorID != "" {
		args = append(args, f.CoordinatorID)
		conds = append(conds, fmt.Sprintf("coordinator_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR ndis_number ILIKE $%d)", n, n, n, n))
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

// List returns a page of participants matching the filter plus the total
// number of matches ignoring paging.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Participant, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM participants"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.NDISNumber,
			&p.Status, &p.CoordinatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Participant, error) {
	p := &models.Participant{}
	err := r.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.NDISNumber,
			&p.Status, &p.CoordinatorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Participant) (*models.Participant, error) {
	query := `
		INSERT INTO participants (first_name, last_name, email, ndis_number, status, coordinator_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Email, p.NDISNumber, p.Status, p.CoordinatorID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Participant) (*models.Participant, error) {
	query := `
		UPDATE participants
		SET first_name = $2, last_name = $3, email = $4, ndis_number = $5,
		    status = $6, coordinator_id = NULLIF($7, '')::uuid, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.NDISNumber, p.Status, p.CoordinatorID).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM participants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
