// Package services holds the server's business logic between the HTTP
// handlers and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/server/auth"
	"github.com/evercare/planhub/internal/server/config"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

// TokenPair is a signed access token plus the opaque refresh token that can
// renew it.
type TokenPair struct {
	AccessToken   string
	AccessExpires time.Time
	RefreshToken  string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	actionTokenValidityDuration  time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		actionTokenValidityDuration:  cfg.InvitationValidityDuration,
	}
}

// Register creates a user account and logs it in.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, *TokenPair, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		UserType:     models.UserTypeClient,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.IssueTokens(ctx, user.ID, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login checks credentials and issues a fresh token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.IssueTokens(ctx, user.ID, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken validates the opaque refresh token and returns a new access
// token. The refresh token itself is kept as is, so clients that stored it
// stay valid until it expires or is revoked.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	accessToken, expiresAt, err := auth.GenerateToken(user.ID, user.UserType, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, AccessExpires: expiresAt, RefreshToken: refreshToken}, nil
}

// Logout revokes the refresh token. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// Me returns the account record behind an authenticated request.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// ForgotPassword issues a single-use reset token for the account. The
// lookup result is not revealed to the caller so addresses cannot be
// probed. The token is handed to the mail pipeline via the log for now.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrorInternal
	}

	err = s.repomanager.ActionTokens(s.db).Create(ctx, user.ID, token,
		models.TokenPurposeResetPassword, s.actionTokenValidityDuration)
	if err != nil {
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password reset token issued", "user_id", user.ID)
	return nil
}

// ResetPassword redeems a reset token and sets the new password. All
// refresh tokens for the account are revoked.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	tokenRepo := s.repomanager.ActionTokens(s.db)

	at, err := tokenRepo.Find(ctx, token, models.TokenPurposeResetPassword)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}
	if at.Expires.Before(time.Now()) {
		return common.ErrTokenExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, at.UserID, hash); err != nil {
		return common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(s.db).DeleteForUser(ctx, at.UserID); err != nil {
		return common.ErrorInternal
	}
	return tokenRepo.Delete(ctx, token)
}

// VerifyEmail redeems a verification token and marks the account verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	tokenRepo := s.repomanager.ActionTokens(s.db)

	at, err := tokenRepo.Find(ctx, token, models.TokenPurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}
	if at.Expires.Before(time.Now()) {
		return common.ErrTokenExpired
	}

	if err := s.repomanager.Users(s.db).MarkEmailVerified(ctx, at.UserID); err != nil {
		return common.ErrorInternal
	}
	return tokenRepo.Delete(ctx, token)
}

// IssueTokens signs an access token and stores a fresh refresh token for
// the user.
func (s *UserService) IssueTokens(ctx context.Context, userID, userType string) (*TokenPair, error) {
	accessToken, expiresAt, err := auth.GenerateToken(userID, userType, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(s.db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, AccessExpires: expiresAt, RefreshToken: refreshToken}, nil
}
