package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"devsa-jobs/internal/domain"
)

// OIDCVerifier verifies ID tokens from an OIDC issuer such as Firebase Auth
// (issuer https://securetoken.google.com/<project>, audience <project>).
type OIDCVerifier struct {
	verifier         *gooidc.IDTokenVerifier
	superAdminEmails []string
}

func NewOIDCVerifier(ctx context.Context, issuer, audience string, superAdminEmails []string) (*OIDCVerifier, error) {
	if issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if audience == "" {
		return nil, errors.New("audience is required")
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	provider, err := gooidc.NewProvider(gooidc.ClientContext(ctx, httpClient), issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}

	return newOIDCVerifier(provider.Verifier(&gooidc.Config{ClientID: audience}), superAdminEmails), nil
}

func newOIDCVerifier(verifier *gooidc.IDTokenVerifier, superAdminEmails []string) *OIDCVerifier {
	return &OIDCVerifier{
		verifier:         verifier,
		superAdminEmails: superAdminEmails,
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &domain.Identity{
		SubjectID:    idToken.Subject,
		Email:        claims.Email,
		Capabilities: capabilities(&claims, v.superAdminEmails),
	}, nil
}
