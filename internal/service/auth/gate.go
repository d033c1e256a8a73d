package auth

import (
	"context"
	"log/slog"

	"devsa-jobs/internal/domain"
)

// ProfileLookup is the part of the profile store the gate needs.
type ProfileLookup interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.Profile, error)
}

type GateOptions struct {
	RequireProfile bool
	RequireRole    domain.Role
}

// Gate turns an Authorization header into a verified Actor or a terminal
// error. It verifies the token once and loads the profile at most once.
type Gate struct {
	verifier Verifier
	profiles ProfileLookup
}

func NewGate(verifier Verifier, profiles ProfileLookup) *Gate {
	return &Gate{verifier: verifier, profiles: profiles}
}

func (g *Gate) Authorize(ctx context.Context, authorization string, opts GateOptions) (*domain.Actor, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return nil, domain.Unauthenticated("Missing or malformed authorization header")
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil || identity == nil {
		return nil, domain.Unauthenticated("Invalid or expired token")
	}

	actor := &domain.Actor{
		SubjectID:    identity.SubjectID,
		Email:        identity.Email,
		IsSuperAdmin: identity.Has(domain.CapabilitySuperAdmin),
	}

	profile, err := g.profiles.GetBySubjectID(ctx, identity.SubjectID)
	if err != nil {
		slog.Error("profile lookup failed", slog.String("subject_id", identity.SubjectID), slog.Any("error", err))
		return nil, domain.Internal("Failed to load profile", err)
	}
	actor.Profile = profile

	if opts.RequireProfile && profile == nil && !actor.IsSuperAdmin {
		return nil, domain.PreconditionFailed("Profile required. Complete onboarding first")
	}

	if opts.RequireRole != "" && actor.Role() != opts.RequireRole && !actor.IsSuperAdmin {
		return nil, domain.Forbidden("This action requires the " + string(opts.RequireRole) + " role")
	}

	return actor, nil
}
