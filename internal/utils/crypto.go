package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeyDerivationConfig holds the Argon2id parameters used to stretch the
// session secret
type KeyDerivationConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// DefaultKeyDerivationConfig returns the parameters used at server start
func DefaultKeyDerivationConfig() *KeyDerivationConfig {
	return &KeyDerivationConfig{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 2,
	}
}

const (
	hashKeyLength  = 64
	blockKeyLength = 32
	minSecretBytes = 16
)

// ErrWeakSecret is returned when the session secret is too short to derive keys from
var ErrWeakSecret = errors.New("session secret must be at least 16 bytes")

// SessionKeys are the securecookie keys for the session store
type SessionKeys struct {
	HashKey  []byte
	BlockKey []byte
}

// Pairs returns the keys in the order expected by sessions.NewCookieStore
func (k SessionKeys) Pairs() [][]byte {
	return [][]byte{k.HashKey, k.BlockKey}
}

// DeriveSessionKeys stretches secret into an HMAC key and an AES-256 key.
// The derivation is deterministic so every instance sharing the secret can
// read the same cookies.
func DeriveSessionKeys(secret string) (SessionKeys, error) {
	return DeriveSessionKeysWithConfig(secret, DefaultKeyDerivationConfig())
}

// DeriveSessionKeysWithConfig is DeriveSessionKeys with explicit Argon2id parameters
func DeriveSessionKeysWithConfig(secret string, config *KeyDerivationConfig) (SessionKeys, error) {
	if len(secret) < minSecretBytes {
		return SessionKeys{}, ErrWeakSecret
	}

	hashKey := argon2.IDKey([]byte(secret), []byte("session-hash-key"),
		config.Iterations, config.Memory, config.Parallelism, hashKeyLength)
	blockKey := argon2.IDKey([]byte(secret), []byte("session-block-key"),
		config.Iterations, config.Memory, config.Parallelism, blockKeyLength)

	return SessionKeys{HashKey: hashKey, BlockKey: blockKey}, nil
}

// GenerateSecureToken generates a cryptographically secure random token
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
