package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evercare/planhub/internal/client/localstate"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

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

var _ localstate.KV = (*memKV)(nil)

func fixedStore(kv localstate.KV, now time.Time) *Store {
	s := New(kv)
	s.now = func() time.Time { return now }
	return s
}

func TestStore_GetEmpty(t *testing.T) {
	s := New(newMemKV())
	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	kv := newMemKV()
	require.NoError(t, kv.Set(context.Background(), localstate.KeyTokens, []byte("{not json")))

	s := New(kv)
	got, err := s.Get(context.Background())
	require.NoError(t, err, "corrupt state reads as signed out")
	assert.Nil(t, got)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()

	in := &Tokens{AccessToken: "at", RefreshToken: "rt", ExpiresAt: 1700000000000}
	require.NoError(t, s.Set(ctx, in))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestStore_Clear(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, &Tokens{AccessToken: "at"}))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_AccessToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name      string
		expiresAt int64
		want      string
	}{
		{"fresh", now.Add(10 * time.Minute).UnixMilli(), "at"},
		{"just outside buffer", now.Add(61 * time.Second).UnixMilli(), "at"},
		{"inside buffer", now.Add(30 * time.Second).UnixMilli(), ""},
		{"exactly at buffer", now.Add(60 * time.Second).UnixMilli(), ""},
		{"expired", now.Add(-time.Minute).UnixMilli(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixedStore(newMemKV(), now)
			require.NoError(t, s.Set(ctx, &Tokens{AccessToken: "at", ExpiresAt: tt.expiresAt}))
			assert.Equal(t, tt.want, s.AccessToken(ctx))
		})
	}
}

func TestStore_AccessTokenNoTokens(t *testing.T) {
	s := New(newMemKV())
	assert.Equal(t, "", s.AccessToken(context.Background()))
}

func TestStore_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := fixedStore(newMemKV(), now)

	assert.True(t, s.IsExpired(nil))
	assert.True(t, s.IsExpired(&Tokens{ExpiresAt: now.Add(-time.Second).UnixMilli()}))
	assert.True(t, s.IsExpired(&Tokens{ExpiresAt: now.UnixMilli()}))
	// Inside the buffer but not past expiry is "expiring soon", not expired.
	assert.False(t, s.IsExpired(&Tokens{ExpiresAt: now.Add(59 * time.Second).UnixMilli()}))
	assert.False(t, s.IsExpired(&Tokens{ExpiresAt: now.Add(2 * time.Minute).UnixMilli()}))
}

func TestStore_IsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := fixedStore(newMemKV(), now)

	assert.False(t, s.IsExpiringSoon(nil))
	assert.False(t, s.IsExpiringSoon(&Tokens{ExpiresAt: now.Add(-time.Second).UnixMilli()}), "already expired")
	assert.True(t, s.IsExpiringSoon(&Tokens{ExpiresAt: now.Add(30 * time.Second).UnixMilli()}))
	assert.True(t, s.IsExpiringSoon(&Tokens{ExpiresAt: now.Add(60 * time.Second).UnixMilli()}))
	assert.False(t, s.IsExpiringSoon(&Tokens{ExpiresAt: now.Add(61 * time.Second).UnixMilli()}))
}

func TestStore_UpdateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves refresh token", func(t *testing.T) {
		s := New(newMemKV())
		require.NoError(t, s.Set(ctx, &Tokens{AccessToken: "old", RefreshToken: "rt", ExpiresAt: 1}))

		require.NoError(t, s.UpdateAccessToken(ctx, "new", 2))

		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Tokens{AccessToken: "new", RefreshToken: "rt", ExpiresAt: 2}, got)
	})

	t.Run("no-op without stored tokens", func(t *testing.T) {
		s := New(newMemKV())
		require.NoError(t, s.UpdateAccessToken(ctx, "new", 2))

		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
