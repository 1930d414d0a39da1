package api

import (
	"fmt"
	"time"

	"github.com/evercare/planhub/internal/client/tokenstore"
)

// This file is the wire-to-domain boundary for auth payloads. The server
// speaks snake_case and, for historical reasons, two different token expiry
// encodings: login/register/refresh carry expires_at as an RFC3339 string,
// invitation accept carries it as numeric epoch seconds. Everything is
// normalized here into tokenstore.Tokens with epoch-millis expiry so the
// rest of the client never sees either wire form.

// Session pairs the authenticated user with the normalized token set.
type Session struct {
	User   User
	Tokens tokenstore.Tokens
}

type wireUser struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	UserType      string    `json:"user_type"`
	ProviderID    string    `json:"provider_id"`
	ParticipantID string    `json:"participant_id"`
	CoordinatorID string    `json:"coordinator_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (w wireUser) toUser() User {
	return User{
		ID:            w.ID,
		Email:         w.Email,
		Name:          w.Name,
		UserType:      UserType(w.UserType),
		ProviderID:    w.ProviderID,
		ParticipantID: w.ParticipantID,
		CoordinatorID: w.CoordinatorID,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// wireToken is the login/register/refresh token block; expires_at is an
// RFC3339 string.
type wireToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

func (w wireToken) toTokens() (tokenstore.Tokens, error) {
	expiresAt, err := time.Parse(time.RFC3339, w.ExpiresAt)
	if err != nil {
		return tokenstore.Tokens{}, fmt.Errorf("parse token expiry %q: %w", w.ExpiresAt, err)
	}
	return tokenstore.Tokens{
		AccessToken:  w.AccessToken,
		RefreshToken: w.RefreshToken,
		ExpiresAt:    expiresAt.UnixMilli(),
	}, nil
}

// wireEpochToken is the invitation-accept token block; expires_at is numeric
// epoch seconds.
type wireEpochToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

func (w wireEpochToken) toTokens() tokenstore.Tokens {
	return tokenstore.Tokens{
		AccessToken:  w.AccessToken,
		RefreshToken: w.RefreshToken,
		ExpiresAt:    w.ExpiresAt * 1000,
	}
}

type wireSession struct {
	Token wireToken `json:"token"`
	User  wireUser  `json:"user"`
}

func (w wireSession) toSession() (*Session, error) {
	tokens, err := w.Token.toTokens()
	if err != nil {
		return nil, err
	}
	return &Session{User: w.User.toUser(), Tokens: tokens}, nil
}

type wireInviteSession struct {
	User   wireUser       `json:"user"`
	Tokens wireEpochToken `json:"tokens"`
}

func (w wireInviteSession) toSession() *Session {
	return &Session{User: w.User.toUser(), Tokens: w.Tokens.toTokens()}
}
