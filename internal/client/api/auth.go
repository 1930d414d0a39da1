package api

import (
	"context"

	"github.com/evercare/planhub/internal/client/tokenstore"
	"github.com/evercare/planhub/internal/common"
)

// LoginRequest is the credentials payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the self-signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// AcceptInvitationRequest completes an invited signup.
type AcceptInvitationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login exchanges credentials for a session. Sent without a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var wire wireSession
	if err := c.Post(ctx, common.APIBasePath+"/auth/login", req, &wire, WithSkipAuth()); err != nil {
		return nil, err
	}
	return wire.toSession()
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var wire wireSession
	if err := c.Post(ctx, common.APIBasePath+"/auth/register", req, &wire, WithSkipAuth()); err != nil {
		return nil, err
	}
	return wire.toSession()
}

// RefreshToken exchanges a refresh token for a new token set.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*tokenstore.Tokens, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var wire struct {
		Token wireToken `json:"token"`
	}
	if err := c.Post(ctx, common.APIBasePath+"/auth/refresh", body, &wire, WithSkipAuth()); err != nil {
		return nil, err
	}
	tokens, err := wire.Token.toTokens()
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var wire wireUser
	if err := c.Get(ctx, common.APIBasePath+"/auth/me", &wire); err != nil {
		return nil, err
	}
	u := wire.toUser()
	return &u, nil
}

// Logout revokes the session's refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return c.Post(ctx, common.APIBasePath+"/auth/logout", body, nil)
}

// ForgotPassword requests a password reset email. Always answers 2xx for
// existing and unknown addresses alike.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.Post(ctx, common.APIBasePath+"/auth/forgot-password", body, nil, WithSkipAuth())
}

// ResetPassword consumes a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.Post(ctx, common.APIBasePath+"/auth/reset-password", body, nil, WithSkipAuth())
}

// VerifyEmail consumes an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.Post(ctx, common.APIBasePath+"/auth/verify-email", body, nil, WithSkipAuth())
}

// ValidateInvitation checks an invitation token before the signup form is
// shown.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (*Invitation, error) {
	var inv Invitation
	err := c.Get(ctx, common.APIBasePath+"/invitations/validate", &inv,
		WithSkipAuth(), WithParams(map[string]string{"token": token}))
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AcceptInvitation completes an invited signup and returns the session.
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*Session, error) {
	var wire wireInviteSession
	if err := c.Post(ctx, common.APIBasePath+"/invitations/accept", req, &wire, WithSkipAuth()); err != nil {
		return nil, err
	}
	return wire.toSession(), nil
}
