// Package actiontokens stores the single-use tokens issued for password
// resets and email verification.
package actiontokens

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

// Create inserts a token for userID that expires at now+validity. Any
// previous token for the same user and purpose is superseded.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, purpose string, validity time.Duration) error {
	del := `
		DELETE FROM action_tokens
		WHERE user_id = $1 AND purpose = $2
	`
	if _, err := r.db.ExecContext(ctx, del, userID, purpose); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ins := `
		INSERT INTO action_tokens (user_id, token, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, ins, userID, token, purpose, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the token row matching both the token string and its purpose.
func (r *PostgresRepository) Find(ctx context.Context, token string, purpose string) (*models.ActionToken, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM action_tokens
		WHERE token = $1 AND purpose = $2
	`
	at := &models.ActionToken{Token: token, Purpose: purpose}
	if err := r.db.QueryRowContext(ctx, query, token, purpose).Scan(&at.ID, &at.UserID, &at.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return at, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM action_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
