package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/application"
)

type ApplicationHandler struct {
	appService application.Service
}

func NewApplicationHandler(appService application.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// List returns a listing's applications to its owner when jobId is given,
// and the caller's own applications otherwise.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	jobID, err := parseUUIDQuery(c, "jobId")
	if err != nil {
		return err
	}

	var apps []domain.Application
	if jobID != uuid.Nil {
		apps, err = h.appService.ListForJob(c.UserContext(), actor, jobID)
	} else {
		apps, err = h.appService.ListMine(c.UserContext(), actor)
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applications": apps})
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.SubmitApplicationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if _, err := h.appService.Submit(c.UserContext(), actor, input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Application submitted successfully"})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.UpdateApplicationStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.appService.UpdateStatus(c.UserContext(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(app)
}
