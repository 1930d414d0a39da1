// Package tokenstore persists the session token pair and decides when the
// access token is still usable for outgoing requests.
package tokenstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/evercare/planhub/internal/client/localstate"
)

// expiryBuffer is subtracted from the stored expiry so requests never go out
// with a token that dies mid-flight.
const expiryBuffer = 60 * time.Second

// Tokens is the canonical persisted token pair. ExpiresAt is the access
// token expiry in unix milliseconds.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Store keeps the token pair in local state.
type Store struct {
	state localstate.KV
	now   func() time.Time
}

func New(state localstate.KV) *Store {
	return &Store{state: state, now: time.Now}
}

// Get loads the stored token pair. A missing or unreadable record reads as
// nil so a corrupt state file degrades to "signed out" instead of an error.
func (s *Store) Get(ctx context.Context) (*Tokens, error) {
	raw, err := s.state.Get(ctx, localstate.KeyTokens)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var t Tokens
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, nil
	}
	return &t, nil
}

// Set replaces the stored token pair.
func (s *Store) Set(ctx context.Context, t *Tokens) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.state.Set(ctx, localstate.KeyTokens, raw)
}

// Clear removes the stored token pair.
func (s *Store) Clear(ctx context.Context) error {
	return s.state.Delete(ctx, localstate.KeyTokens)
}

// UpdateAccessToken swaps in a refreshed access token while keeping the
// stored refresh token. Without stored tokens there is no session to update,
// so it is a no-op.
func (s *Store) UpdateAccessToken(ctx context.Context, accessToken string, expiresAt int64) error {
	t, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	t.AccessToken = accessToken
	t.ExpiresAt = expiresAt
	return s.Set(ctx, t)
}

// AccessToken returns the access token if one is stored and not within the
// expiry buffer, otherwise the empty string. It satisfies the token source
// the API client authenticates with.
func (s *Store) AccessToken(ctx context.Context) string {
	t, err := s.Get(ctx)
	if err != nil || t == nil {
		return ""
	}
	if s.IsExpired(t) || s.IsExpiringSoon(t) {
		return ""
	}
	return t.AccessToken
}

// IsExpired reports whether the pair's access token is past its expiry.
func (s *Store) IsExpired(t *Tokens) bool {
	if t == nil {
		return true
	}
	return !s.now().Before(time.UnixMilli(t.ExpiresAt))
}

// IsExpiringSoon reports whether the access token is still valid but will
// expire within the buffer, so background refresh should run now.
func (s *Store) IsExpiringSoon(t *Tokens) bool {
	if t == nil {
		return false
	}
	expiry := time.UnixMilli(t.ExpiresAt)
	now := s.now()
	return now.Before(expiry) && !now.Before(expiry.Add(-expiryBuffer))
}
