package repomanager

import (
	"context"
	"database/sql"

	"github.com/evercare/planhub/internal/dbx"
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
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ActionTokens(db dbx.DBTX) actiontokens.Repository
	Participants(db dbx.DBTX) participants.Repository
	Providers(db dbx.DBTX) providers.Repository
	Coordinators(db dbx.DBTX) coordinators.Repository
	Invitations(db dbx.DBTX) invitations.Repository
	Relationships(db dbx.DBTX) relationships.Repository
	Invoices(db dbx.DBTX) invoices.Repository
	Plans(db dbx.DBTX) plans.Repository
	Dashboard(db dbx.DBTX) dashboard.Repository
}
