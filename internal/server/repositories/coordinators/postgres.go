// Package coordinators provides a PostgreSQL-backed repository for
// support coordinators.
package coordinators

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
	SELECT id, name, email, COALESCE(phone, ''), status, created_at, updated_at
	FROM coordinators
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", n, n))
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

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Coordinator, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM coordinators"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY name LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Coordinator
	for rows.Next() {
		c := &models.Coordinator{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Coordinator, error) {
	c := &models.Coordinator{}
	err := r.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Coordinator) (*models.Coordinator, error) {
	query := `
		INSERT INTO coordinators (name, email, phone, status)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Coordinator) (*models.Coordinator, error) {
	query := `
		UPDATE coordinators
		SET name = $2, email = $3, phone = NULLIF($4, ''), status = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Status).
		Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM coordinators WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
