package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evercare/planhub/internal/client/localstate"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

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

var _ localstate.KV = (*memKV)(nil)

func TestLoadPrefs_Defaults(t *testing.T) {
	a := &App{kv: newMemKV()}
	assert.Equal(t, defaultPageSize, a.pageSize(context.Background()))
}

func TestLoadPrefs_CorruptReadsAsDefaults(t *testing.T) {
	kv := newMemKV()
	require.NoError(t, kv.Set(context.Background(), localstate.KeyPreferences, []byte("{broken")))

	a := &App{kv: kv}
	assert.Equal(t, defaultPageSize, a.pageSize(context.Background()))
}

func TestSetPref_PageSize(t *testing.T) {
	a := &App{kv: newMemKV()}
	ctx := context.Background()

	require.NoError(t, a.SetPref(ctx, "page-size", "50"))
	assert.Equal(t, 50, a.pageSize(ctx))
}

func TestSetPref_Invalid(t *testing.T) {
	a := &App{kv: newMemKV()}
	ctx := context.Background()

	assert.Error(t, a.SetPref(ctx, "page-size", "zero"))
	assert.Error(t, a.SetPref(ctx, "page-size", "-1"))
	assert.Error(t, a.SetPref(ctx, "colour-scheme", "dark"))
	assert.Equal(t, defaultPageSize, a.pageSize(ctx), "failed writes leave prefs untouched")
}
