package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/auth"
	"github.com/evercare/planhub/internal/server/config"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/invitations"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

type InvitationService struct {
	db                         *sql.DB
	repomanager                repomanager.RepositoryManager
	users                      *UserService
	invitationValidityDuration time.Duration
}

func NewInvitationService(db *sql.DB, m repomanager.RepositoryManager, users *UserService, cfg *config.Config) *InvitationService {
	return &InvitationService{
		db:                         db,
		repomanager:                m,
		users:                      users,
		invitationValidityDuration: cfg.InvitationValidityDuration,
	}
}

func (s *InvitationService) List(ctx context.Context, f invitations.Filter) ([]*models.Invitation, int, error) {
	return s.repomanager.Invitations(s.db).List(ctx, f)
}

func (s *InvitationService) Get(ctx context.Context, id string) (*models.Invitation, error) {
	return s.repomanager.Invitations(s.db).Get(ctx, id)
}

// Create issues an invitation with a fresh single-use token.
func (s *InvitationService) Create(ctx context.Context, email, role string) (*models.Invitation, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	inv := &models.Invitation{
		Email:     email,
		Role:      role,
		Token:     token,
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(s.invitationValidityDuration),
	}
	return s.repomanager.Invitations(s.db).Create(ctx, inv)
}

// Resend replaces the token and expiry of a pending or expired invitation.
// Accepted and revoked invitations cannot be resent.
func (s *InvitationService) Resend(ctx context.Context, id string) (*models.Invitation, error) {
	repo := s.repomanager.Invitations(s.db)

	inv, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case models.InvitationAccepted:
		return nil, common.ErrInvitationAccepted
	case models.InvitationRevoked:
		return nil, common.ErrorValidation
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return repo.Reissue(ctx, id, token, time.Now().Add(s.invitationValidityDuration))
}

// Revoke cancels a pending invitation so its token can no longer be redeemed.
func (s *InvitationService) Revoke(ctx context.Context, id string) error {
	repo := s.repomanager.Invitations(s.db)

	inv, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == models.InvitationAccepted {
		return common.ErrInvitationAccepted
	}
	return repo.SetStatus(ctx, id, models.InvitationRevoked)
}

// Validate checks a raw invitation token without redeeming it.
func (s *InvitationService) Validate(ctx context.Context, token string) (*models.Invitation, error) {
	inv, err := s.repomanager.Invitations(s.db).GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	if inv.Status != models.InvitationPending {
		return nil, common.ErrInvalidToken
	}
	if inv.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrInvitationExpired
	}
	return inv, nil
}

// Accept redeems an invitation: it creates the account with the invited
// role and logs it in. The invitation row and the new user are written in
// one transaction.
func (s *InvitationService) Accept(ctx context.Context, token, name, password string) (*models.User, *TokenPair, error) {
	inv, err := s.Validate(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:         inv.Email,
			Name:          name,
			UserType:      inv.Role,
			PasswordHash:  hash,
			EmailVerified: true,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return s.repomanager.Invitations(tx).SetStatus(ctx, inv.ID, models.InvitationAccepted)
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.users.IssueTokens(ctx, user.ID, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}
