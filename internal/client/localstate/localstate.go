// Package localstate persists small pieces of client state (tokens, the
// current user, preferences) in a local sqlite database, keyed by namespaced
// string keys. Absent and corrupt values both read as absent: first-run and
// damaged state files behave the same.
package localstate

import (
	"context"
)

// Well-known state keys.
const (
	KeyTokens      = "auth:tokens"
	KeyUser        = "auth:user"
	KeyPreferences = "user:preferences"
)

// KV is the minimal key/value surface the client state consumers need.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
