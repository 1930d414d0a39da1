// Package services holds client-side orchestration: flows that span the API
// client, auth state and the query cache.
package services

import (
	"context"
	"errors"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/authstate"
	"github.com/evercare/planhub/internal/client/queries"
	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/logging"
)

// Auth runs the session lifecycle: login, register, invitation accept,
// refresh, logout. It is the only writer of auth state.
type Auth struct {
	api     *api.Client
	state   *authstate.Store
	queries *queries.Queries
	logger  logging.Logger
}

// NewAuth wires the service and registers a transport error hook: any
// authentication error, from any request, clears the session and the query
// cache so no per-user data survives a forced logout.
func NewAuth(apiClient *api.Client, state *authstate.Store, q *queries.Queries, logger logging.Logger) *Auth {
	a := &Auth{api: apiClient, state: state, queries: q, logger: logger}

	apiClient.AddErrorInterceptor(func(err error) error {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindAuthentication {
			ctx := context.Background()
			if clearErr := a.state.ClearAuth(ctx); clearErr != nil {
				a.logger.Error(ctx, "clearing auth state after 401", "error", clearErr)
			}
			a.queries.Reset()
		}
		return err
	})

	return a
}

// Login signs in and stores the session.
func (a *Auth) Login(ctx context.Context, email, password string) (*api.User, error) {
	sess, err := a.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.state.SetAuth(ctx, &sess.User, &sess.Tokens); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "logged in", "user_id", sess.User.ID, "user_type", sess.User.UserType)
	return &sess.User, nil
}

// Register creates an account and stores the session.
func (a *Auth) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	sess, err := a.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.state.SetAuth(ctx, &sess.User, &sess.Tokens); err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// AcceptInvitation completes an invited signup and stores the session.
func (a *Auth) AcceptInvitation(ctx context.Context, req api.AcceptInvitationRequest) (*api.User, error) {
	sess, err := a.api.AcceptInvitation(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.state.SetAuth(ctx, &sess.User, &sess.Tokens); err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// Refresh exchanges the stored refresh token for a new access token and
// applies it, keeping the refresh token.
func (a *Auth) Refresh(ctx context.Context) error {
	tokens, err := a.state.Tokens(ctx)
	if err != nil {
		return err
	}
	if tokens == nil || tokens.RefreshToken == "" {
		return common.ErrorUnauthorized
	}

	fresh, err := a.api.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		return err
	}
	return a.state.UpdateTokens(ctx, fresh.AccessToken, fresh.ExpiresAt)
}

// RefreshIfNeeded refreshes only when the stored access token is expired or
// inside the expiry buffer. It reports whether a refresh ran; a still-fresh
// token costs no network round trip.
func (a *Auth) RefreshIfNeeded(ctx context.Context) (bool, error) {
	if !a.state.NeedsRefresh(ctx) {
		return false, nil
	}
	return true, a.Refresh(ctx)
}

// Logout revokes the refresh token server-side, then clears local session
// state regardless of whether the revocation succeeded: a logout must never
// leave tokens behind.
func (a *Auth) Logout(ctx context.Context) error {
	tokens, err := a.state.Tokens(ctx)
	if err != nil {
		return err
	}

	var revokeErr error
	if tokens != nil && tokens.RefreshToken != "" {
		revokeErr = a.api.Logout(ctx, tokens.RefreshToken)
		if revokeErr != nil {
			a.logger.Warn(ctx, "server-side logout failed, clearing local session anyway", "error", revokeErr)
		}
	}

	if err := a.state.ClearAuth(ctx); err != nil {
		return err
	}
	a.queries.Reset()
	return revokeErr
}

// CurrentUser returns the locally stored user, falling back to the server's
// /auth/me when local state has tokens but no user record.
func (a *Auth) CurrentUser(ctx context.Context) (*api.User, error) {
	u, err := a.state.User(ctx)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	if !a.state.IsAuthenticated(ctx) {
		return nil, common.ErrorUnauthorized
	}

	u, err = a.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.state.SetUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// IsAuthenticated reports whether a live session exists right now.
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	return a.state.IsAuthenticated(ctx)
}
