// Package identity wraps the external identity provider. It turns a bearer
// credential into a verified identity claim or a rejection; role decisions
// happen elsewhere, on top of the verified email.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Claims is the verified identity extracted from an ID token. It lives only
// for the duration of the request that carried the credential.
type Claims struct {
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ErrInvalidToken is returned for any credential the provider rejects:
// bad signature, wrong issuer or audience, expired, or malformed.
var ErrInvalidToken = errors.New("identity: invalid token")

// Verifier validates a bearer token against the identity provider.
// Every request re-verifies; results are never cached locally.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// ExtractBearer pulls the token out of an "Authorization: Bearer <token>"
// header value. A missing header or malformed prefix returns false — callers
// reject such requests before the verifier is invoked at all.
func ExtractBearer(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
