package authstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/localstate"
	"github.com/evercare/planhub/internal/client/tokenstore"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Clear(_ context.Context) error {
	m.data = make(map[string][]byte)
	return nil
}

func newStore(t *testing.T) (*Store, *memKV) {
	t.Helper()
	kv := newMemKV()
	return New(kv, tokenstore.New(kv)), kv
}

func futureTokens() *tokenstore.Tokens {
	return &tokenstore.Tokens{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour).UnixMilli(),
	}
}

func TestStore_AnonymousByDefault(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.False(t, s.IsAuthenticated(ctx))

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStore_SetAuthThenRead(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	user := &api.User{ID: "u1", Email: "a@example.com", UserType: api.UserTypeAdmin}
	require.NoError(t, s.SetAuth(ctx, user, futureTokens()))

	assert.True(t, s.IsAuthenticated(ctx))

	got, err := s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	tok, err := s.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rt", tok.RefreshToken)
}

func TestStore_ClearAuth(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAuth(ctx, &api.User{ID: "u1"}, futureTokens()))
	require.NoError(t, s.ClearAuth(ctx))

	assert.False(t, s.IsAuthenticated(ctx))
	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	tok, err := s.Tokens(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestStore_IsAuthenticatedEvaluatesClockPerRead(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	expiresAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens := &tokenstore.Tokens{AccessToken: "at", ExpiresAt: expiresAt.UnixMilli()}
	require.NoError(t, s.SetAuth(ctx, &api.User{ID: "u1"}, tokens))

	s.now = func() time.Time { return expiresAt.Add(-time.Minute) }
	assert.True(t, s.IsAuthenticated(ctx))

	// Same stored state, later clock: derived value flips without a write.
	s.now = func() time.Time { return expiresAt.Add(time.Minute) }
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_CorruptUserReadsAsSignedOut(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, localstate.KeyUser, []byte("{broken")))
	require.NoError(t, kv.Set(ctx, localstate.KeyTokens, []byte("{broken")))

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_UpdateTokensPreservesRefreshToken(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAuth(ctx, &api.User{ID: "u1"}, futureTokens()))
	require.NoError(t, s.UpdateTokens(ctx, "at2", 42))

	tok, err := s.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at2", tok.AccessToken)
	assert.Equal(t, int64(42), tok.ExpiresAt)
	assert.Equal(t, "rt", tok.RefreshToken)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	require.NoError(t, s.SetAuth(ctx, &api.User{ID: "u1"}, futureTokens()))
	require.NoError(t, s.UpdateTokens(ctx, "at2", 1))
	require.NoError(t, s.ClearAuth(ctx))
	assert.Equal(t, 3, calls)

	unsubscribe()
	require.NoError(t, s.SetAuth(ctx, &api.User{ID: "u1"}, futureTokens()))
	assert.Equal(t, 3, calls)
}
