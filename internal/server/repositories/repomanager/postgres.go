// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/migrations"
	"github.com/evercare/planhub/internal/server/repositories/actiontokens"
	"github.com/evercare/planhub/internal/server/repositories/coordinators"
	"github.com/evercare/planhub/internal/server/repositories/dashboard"
	"github.com/evercare/planhub/internal/server/repositories/invitations"
	"github.com/evercare/planhub/internal/server/repositories/invoices"
	"github.com/evercare/planhub/internal/server/repositories/participants"
	"github.com/evercare/planhub/internal/server/repositories/plans"
	"github.com/evercare/planhub/internal/server/repositories/providers"
	"github.com/evercare/planhub/internal/server/repositories/refreshtokens"
	"github.com/evercare/planhub/internal/server/repositories/relationships"
	"github.com/evercare/planhub/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ActionTokens(db dbx.DBTX) actiontokens.Repository {
	return actiontokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Participants(db dbx.DBTX) participants.Repository {
	return participants.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Providers(db dbx.DBTX) providers.Repository {
	return providers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Coordinators(db dbx.DBTX) coordinators.Repository {
	return coordinators.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Invitations(db dbx.DBTX) invitations.Repository {
	return invitations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Relationships(db dbx.DBTX) relationships.Repository {
	return relationships.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Invoices(db dbx.DBTX) invoices.Repository {
	return invoices.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Plans(db dbx.DBTX) plans.Repository {
	return plans.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Dashboard(db dbx.DBTX) dashboard.Repository {
	return dashboard.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
