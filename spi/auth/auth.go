// Package auth declares credential and token-verification provider
// contracts.
package auth

import (
	"context"
	"time"
)

// Principal identifies an authenticated caller.
type Principal struct {
	TenantID    string   `json:"tenant_id"`
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

// Credential is an opaque secret plus its expiry.
type Credential struct {
	Secret    []byte    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialSource mints credentials for outbound calls.
type CredentialSource interface {
	// Fetch returns a credential valid for at least the requested ttl.
	Fetch(ctx context.Context, ttl time.Duration) (Credential, error)
}

// TokenVerifier checks inbound bearer tokens.
type TokenVerifier interface {
	// Verify parses and checks token, returning the authenticated
	// principal. Expired or malformed tokens return an error.
	Verify(ctx context.Context, token string) (Principal, error)
}

// Revoker invalidates previously issued tokens.
type Revoker interface {
	// Revoke invalidates the token. Revoking an unknown token is not an
	// error.
	Revoke(ctx context.Context, token string) error
}
