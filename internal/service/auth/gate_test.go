package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/mocks"
	"devsa-jobs/internal/service/auth"
)

func newGate() (*auth.Gate, *mocks.Verifier, *mocks.ProfileRepository) {
	verifier := new(mocks.Verifier)
	profiles := new(mocks.ProfileRepository)
	return auth.NewGate(verifier, profiles), verifier, profiles
}

func TestAuthorize_MissingHeader(t *testing.T) {
	gate, verifier, _ := newGate()

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := gate.Authorize(context.Background(), header, auth.GateOptions{})
		assert.True(t, domain.IsKind(err, domain.KindUnauthenticated), "header %q", header)
	}
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestAuthorize_InvalidToken(t *testing.T) {
	gate, verifier, profiles := newGate()
	ctx := context.Background()
	verifier.On("Verify", ctx, "expired").Return(nil, auth.ErrInvalidToken).Once()

	_, err := gate.Authorize(ctx, "Bearer expired", auth.GateOptions{})

	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
	profiles.AssertNotCalled(t, "GetBySubjectID", mock.Anything, mock.Anything)
}

func TestAuthorize_RequireProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing profile", func(t *testing.T) {
		gate, verifier, profiles := newGate()
		verifier.On("Verify", ctx, "tok").Return(&domain.Identity{SubjectID: "u1", Email: "u1@example.com"}, nil).Once()
		profiles.On("GetBySubjectID", ctx, "u1").Return(nil, nil).Once()

		_, err := gate.Authorize(ctx, "Bearer tok", auth.GateOptions{RequireProfile: true, RequireRole: domain.RoleOpenToWork})

		assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
		verifier.AssertNumberOfCalls(t, "Verify", 1)
		profiles.AssertNumberOfCalls(t, "GetBySubjectID", 1)
	})

	t.Run("Super admin without profile passes", func(t *testing.T) {
		gate, verifier, profiles := newGate()
		verifier.On("Verify", ctx, "tok").Return(&domain.Identity{
			SubjectID:    "root",
			Email:        "root@example.com",
			Capabilities: []domain.Capability{domain.CapabilitySuperAdmin},
		}, nil).Once()
		profiles.On("GetBySubjectID", ctx, "root").Return(nil, nil).Once()

		actor, err := gate.Authorize(ctx, "Bearer tok", auth.GateOptions{RequireProfile: true, RequireRole: domain.RoleHiring})

		require.NoError(t, err)
		assert.True(t, actor.IsSuperAdmin)
		assert.Nil(t, actor.Profile)
	})

	t.Run("Profile lookup failure", func(t *testing.T) {
		gate, verifier, profiles := newGate()
		verifier.On("Verify", ctx, "tok").Return(&domain.Identity{SubjectID: "u1"}, nil).Once()
		profiles.On("GetBySubjectID", ctx, "u1").Return(nil, errors.New("db down")).Once()

		_, err := gate.Authorize(ctx, "Bearer tok", auth.GateOptions{RequireProfile: true})

		assert.True(t, domain.IsKind(err, domain.KindInternal))
	})
}

func TestAuthorize_RequireRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Wrong role", func(t *testing.T) {
		gate, verifier, profiles := newGate()
		verifier.On("Verify", ctx, "tok").Return(&domain.Identity{SubjectID: "u1"}, nil).Once()
		profiles.On("GetBySubjectID", ctx, "u1").Return(&domain.Profile{SubjectID: "u1", Role: domain.RoleHiring}, nil).Once()

		_, err := gate.Authorize(ctx, "Bearer tok", auth.GateOptions{RequireProfile: true, RequireRole: domain.RoleOpenToWork})

		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})

	t.Run("Matching role", func(t *testing.T) {
		gate, verifier, profiles := newGate()
		verifier.On("Verify", ctx, "tok").Return(&domain.Identity{SubjectID: "u1", Email: "u1@example.com"}, nil).Once()
		profiles.On("GetBySubjectID", ctx, "u1").Return(&domain.Profile{SubjectID: "u1", Role: domain.RoleOpenToWork}, nil).Once()

		actor, err := gate.Authorize(ctx, "bearer tok", auth.GateOptions{RequireProfile: true, RequireRole: domain.RoleOpenToWork})

		require.NoError(t, err)
		assert.Equal(t, "u1", actor.SubjectID)
		assert.Equal(t, "u1@example.com", actor.Email)
		assert.Equal(t, domain.RoleOpenToWork, actor.Role())
		assert.False(t, actor.IsSuperAdmin)
	})
}
