// Package auth covers credential hashing, session token ids, and token
// verification against the object store.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"uptime-api/internal/apperror"
)

// Hasher produces hex-encoded HMAC-SHA256 digests of passwords, keyed by
// the hashing secret injected at startup.
type Hasher struct {
	secret []byte
}

// NewHasher creates a Hasher keyed by secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash digests the password. Empty passwords are a validation error.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("auth: empty password: %w", apperror.ErrValidation)
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Matches reports whether password hashes to hashed in constant time.
func (h *Hasher) Matches(password, hashed string) bool {
	digest, err := h.Hash(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hashed)) == 1
}

// TokenIDLength and CheckIDLength are the exact id lengths the API validates.
const (
	TokenIDLength = 36
	CheckIDLength = 20
)

const checkIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewTokenID returns a fresh 36-character session token id.
func NewTokenID() string {
	return uuid.NewString()
}

// NewCheckID returns a fresh 20-character check id.
func NewCheckID() (string, error) {
	buf := make([]byte, CheckIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generate check id: %w", err)
	}
	for i, b := range buf {
		buf[i] = checkIDAlphabet[int(b)%len(checkIDAlphabet)]
	}
	return string(buf), nil
}
