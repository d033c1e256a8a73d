package middleware

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/auth"
)

// AuthRequired only needs a valid bearer token.
func AuthRequired(gate *auth.Gate) fiber.Handler {
	return Authorize(gate, auth.GateOptions{})
}

// RequireProfile needs a completed onboarding profile.
func RequireProfile(gate *auth.Gate) fiber.Handler {
	return Authorize(gate, auth.GateOptions{RequireProfile: true})
}

// RequireRole needs a profile with the given role. Super admins always pass.
func RequireRole(gate *auth.Gate, role domain.Role) fiber.Handler {
	return Authorize(gate, auth.GateOptions{RequireProfile: true, RequireRole: role})
}
