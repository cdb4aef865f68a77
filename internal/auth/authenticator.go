package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"uptime-api/internal/model"
	"uptime-api/internal/storage"
)

// Authenticator verifies presented tokens by reading through the store.
// It never mutates state and fails closed: any doubt verifies false.
type Authenticator struct {
	store *storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewAuthenticator creates an Authenticator over the given store.
func NewAuthenticator(store *storage.Store, log *zap.Logger) *Authenticator {
	return &Authenticator{store: store, log: log, now: time.Now}
}

// VerifyToken reports whether tokenID names a stored token that belongs to
// phone and has not expired. A missing token reads as invalid, not as an
// error; store failures also verify false.
func (a *Authenticator) VerifyToken(ctx context.Context, tokenID, phone string) bool {
	if tokenID == "" {
		return false
	}

	var token model.Token
	if err := a.store.Read(ctx, model.CollectionTokens, tokenID, &token); err != nil {
		return false
	}
	if token.Phone != phone {
		return false
	}
	return token.Expires > a.now().UnixMilli()
}

// Expired reports whether the token is past its expiry. Expiry is enforced
// only at verification time; there is no background reaping.
func (a *Authenticator) Expired(token model.Token) bool {
	return token.Expires <= a.now().UnixMilli()
}

// NewExpiry returns the absolute expiry for a token issued or renewed now.
func (a *Authenticator) NewExpiry(ttl time.Duration) int64 {
	return a.now().Add(ttl).UnixMilli()
}
