package localstate

import (
	"context"

	"github.com/evercare/planhub/internal/cryptox"
)

// keySalt pins the key derivation for state-at-rest; bump the suffix if the
// on-disk format ever changes incompatibly.
const keySalt = "planhub.localstate.v1"

// EncryptedKV wraps a KV and encrypts every value at rest with AES-GCM.
// A value that fails authentication (tampered file, changed secret) reads as
// absent, keeping the package's corrupt-reads-as-absent contract.
type EncryptedKV struct {
	inner KV
	key   []byte
}

// NewEncryptedKV derives the storage key from secret and wraps inner.
func NewEncryptedKV(inner KV, secret []byte) *EncryptedKV {
	return &EncryptedKV{inner: inner, key: cryptox.DeriveKey(secret, []byte(keySalt))}
}

func (e *EncryptedKV) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := e.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}
	plaintext, err := cryptox.Decrypt(blob, e.key)
	if err != nil {
		return nil, nil
	}
	return plaintext, nil
}

func (e *EncryptedKV) Set(ctx context.Context, key string, value []byte) error {
	blob, err := cryptox.Encrypt(value, e.key)
	if err != nil {
		return err
	}
	return e.inner.Set(ctx, key, blob)
}

func (e *EncryptedKV) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}

func (e *EncryptedKV) Clear(ctx context.Context) error {
	return e.inner.Clear(ctx)
}

var _ KV = (*EncryptedKV)(nil)
