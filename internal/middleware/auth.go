package middleware

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/auth"
)

const ActorContextKey = "actor"

// Authorize runs the gate for every request on the route and stores the
// verified actor in the request locals.
func Authorize(gate *auth.Gate, opts auth.GateOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := gate.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization), opts)
		if err != nil {
			return err
		}

		c.Locals(ActorContextKey, actor)
		return c.Next()
	}
}

func GetActor(c *fiber.Ctx) *domain.Actor {
	actor, ok := c.Locals(ActorContextKey).(*domain.Actor)
	if !ok {
		return nil
	}
	return actor
}

func GetActorID(c *fiber.Ctx) string {
	if actor := GetActor(c); actor != nil {
		return actor.SubjectID
	}
	return ""
}
