package auth

import (
	"context"
	"errors"
	"strings"

	"devsa-jobs/internal/domain"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Verifier validates an ID token and returns the identity it vouches for.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// capabilities grants super_admin from the token claim or from the configured
// email list (case-insensitive). The list only applies to verified emails.
func capabilities(claims *Claims, superAdminEmails []string) []domain.Capability {
	if claims.SuperAdmin || claims.Admin {
		return []domain.Capability{domain.CapabilitySuperAdmin}
	}
	if !claims.EmailVerified {
		return nil
	}
	email := claims.Email
	for _, admin := range superAdminEmails {
		if email != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return []domain.Capability{domain.CapabilitySuperAdmin}
		}
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
