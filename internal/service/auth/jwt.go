package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devsa-jobs/internal/domain"
)

// Claims is the token body understood by both verifiers. SuperAdmin and
// Admin map to the super_admin capability.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	SuperAdmin    bool   `json:"super_admin,omitempty"`
	Admin         bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens signed with a shared secret. It backs
// local development and tests; production uses OIDCVerifier.
type JWTVerifier struct {
	secret           []byte
	issuer           string
	superAdminEmails []string
}

func NewJWTVerifier(secret, issuer string, superAdminEmails []string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{
		secret:           []byte(secret),
		issuer:           issuer,
		superAdminEmails: superAdminEmails,
	}, nil
}

func (v *JWTVerifier) Verify(_ context.Context, rawToken string) (*domain.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(rawToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		SubjectID:    claims.Subject,
		Email:        claims.Email,
		Capabilities: capabilities(claims, v.superAdminEmails),
	}, nil
}

// Issue signs a token for subject. Used by the dev token command and tests.
// The issuer vouches for email, so it is marked verified.
func (v *JWTVerifier) Issue(subject, email string, superAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:         email,
		EmailVerified: email != "",
		SuperAdmin:    superAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
