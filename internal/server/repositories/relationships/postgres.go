// Package relationships provides a PostgreSQL-backed repository for the
// links between participants and their providers or coordinators.
package relationships

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
	SELECT id, participant_id, COALESCE(provider_id::text, ''), COALESCE(coordinator_id::text, ''),
	       kind, status, created_at, updated_at
	FROM relationships
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("participant_id = $%d", f.ParticipantID)
	add("provider_id = $%d", f.ProviderID)
	add("coordinator_id = $%d", f.CoordinatorID)
	add("status = $%d", f.Status)
	if len(conds) == 0 {
		return "", args
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Relationship, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM relationships"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Relationship
	for rows.Next() {
		rel := &models.Relationship{}
		if err := rows.Scan(&rel.ID, &rel.ParticipantID, &rel.ProviderID, &rel.CoordinatorID,
			&rel.Kind, &rel.Status, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Relationship, error) {
	rel := &models.Relationship{}
	err := r.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id).
		Scan(&rel.ID, &rel.ParticipantID, &rel.ProviderID, &rel.CoordinatorID,
			&rel.Kind, &rel.Status, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rel, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error) {
	query := `
		INSERT INTO relationships (participant_id, provider_id, coordinator_id, kind, status)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rel.ParticipantID, rel.ProviderID, rel.CoordinatorID, rel.Kind, rel.Status).
		Scan(&rel.ID, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rel, nil
}

// End marks an active relationship as ended. Ending an already ended
// relationship is a no-op.
func (r *PostgresRepository) End(ctx context.Context, id string) error {
	query := `
		UPDATE relationships
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, models.RelationshipEnded)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
