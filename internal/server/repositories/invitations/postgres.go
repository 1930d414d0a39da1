// Package invitations provides a PostgreSQL-backed repository for
// platform invitations and their single-use tokens.
package invitations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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
	SELECT id, email, role, token, status, expires_at, created_at, updated_at
	FROM invitations
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
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

func (r *PostgresRepository) scan(row *sql.Row) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := row.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.Status,
		&inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Invitation, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM invitations"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Invitation
	for rows.Next() {
		inv := &models.Invitation{}
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.Status,
			&inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Invitation, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id))
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectColumns+" WHERE token = $1", token))
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	query := `
		INSERT INTO invitations (email, role, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, inv.Email, inv.Role, inv.Token, inv.Status, inv.ExpiresAt).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

// Reissue swaps in a fresh token and expiry for a pending invitation.
func (r *PostgresRepository) Reissue(ctx context.Context, id string, token string, expiresAt time.Time) (*models.Invitation, error) {
	query := `
		UPDATE invitations
		SET token = $2, expires_at = $3, status = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, email, role, token, status, expires_at, created_at, updated_at
	`
	return r.scan(r.db.QueryRowContext(ctx, query, id, token, expiresAt, models.InvitationPending))
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status string) error {
	query := `
		UPDATE invitations
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
