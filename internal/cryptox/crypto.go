// Package cryptox provides key derivation and authenticated encryption for
// client state kept at rest on disk.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrMalformedBlob = errors.New("malformed encrypted blob")

// DeriveKey stretches a secret into a 32-byte AES-256 key with Argon2id.
// The same secret and salt always yield the same key.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Encrypt seals plaintext with AES-GCM under key. The random nonce is
// prepended to the ciphertext so the blob is self-contained.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return append(nonce, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// Decrypt opens a blob produced by Encrypt. Tampered or truncated blobs, and
// blobs sealed under a different key, fail authentication.
func Decrypt(blob, key []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, ErrMalformedBlob
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
}
