package handler

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/job"
)

type JobHandler struct {
	jobService job.Service
}

func NewJobHandler(jobService job.Service) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	result, err := h.jobService.ListPublished(c.UserContext(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.jobService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListMine(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"jobs": jobs})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.CreateJobInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	listing, err := h.jobService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateJobStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	listing, err := h.jobService.UpdateStatus(c.UserContext(), actor, id, input.Status)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

func (h *JobHandler) Save(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobService.Save(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Job saved"})
}

func (h *JobHandler) Unsave(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobService.Unsave(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *JobHandler) ListSaved(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListSaved(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"jobs": jobs})
}
