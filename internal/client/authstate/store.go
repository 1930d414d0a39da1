// Package authstate owns session state on the client: the signed-in user and
// the token pair, both persisted, plus a derived "authenticated" probe and a
// change notification for consumers that render auth-dependent UI.
package authstate

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/localstate"
	"github.com/evercare/planhub/internal/client/tokenstore"
)

// Store is the single writer for session state. User and tokens live in
// local state so a restarted process resumes its session.
type Store struct {
	state  localstate.KV
	tokens *tokenstore.Store
	now    func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func New(state localstate.KV, tokens *tokenstore.Store) *Store {
	return &Store{
		state:  state,
		tokens: tokens,
		now:    time.Now,
		subs:   make(map[int]func()),
	}
}

// User returns the persisted user, or nil when signed out or the record is
// unreadable.
func (s *Store) User(ctx context.Context) (*api.User, error) {
	raw, err := s.state.Get(ctx, localstate.KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// Tokens returns the persisted token pair.
func (s *Store) Tokens(ctx context.Context) (*tokenstore.Tokens, error) {
	return s.tokens.Get(ctx)
}

// IsAuthenticated is derived, never cached: tokens exist and their expiry is
// still in the future at the moment of the call.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	t, err := s.tokens.Get(ctx)
	if err != nil || t == nil {
		return false
	}
	return time.UnixMilli(t.ExpiresAt).After(s.now())
}

// NeedsRefresh reports whether the stored access token is expired or inside
// the expiry buffer, so a refresh should run before the next authenticated
// request. Without stored tokens there is nothing to refresh.
func (s *Store) NeedsRefresh(ctx context.Context) bool {
	t, err := s.tokens.Get(ctx)
	if err != nil || t == nil {
		return false
	}
	return s.tokens.IsExpired(t) || s.tokens.IsExpiringSoon(t)
}

// SetAuth writes user and tokens together after a successful login,
// registration or invitation accept.
func (s *Store) SetAuth(ctx context.Context, user *api.User, tokens *tokenstore.Tokens) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.state.Set(ctx, localstate.KeyUser, raw); err != nil {
		return err
	}
	if err := s.tokens.Set(ctx, tokens); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ClearAuth removes both cells. Called on explicit logout and whenever the
// transport reports an authentication error.
func (s *Store) ClearAuth(ctx context.Context) error {
	if err := s.state.Delete(ctx, localstate.KeyUser); err != nil {
		return err
	}
	if err := s.tokens.Clear(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// UpdateTokens applies a refresh result: new access token and expiry, same
// refresh token.
func (s *Store) UpdateTokens(ctx context.Context, accessToken string, expiresAt int64) error {
	if err := s.tokens.UpdateAccessToken(ctx, accessToken, expiresAt); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetUser replaces the persisted user, keeping tokens.
func (s *Store) SetUser(ctx context.Context, user *api.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.state.Set(ctx, localstate.KeyUser, raw); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Subscribe registers fn to run after every auth-state change and returns an
// unsubscribe function. fn runs synchronously on the mutating goroutine, so
// it should be quick.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
