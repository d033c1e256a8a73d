package handler

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", notification.DefaultListLimit)

	result, err := h.notifService.List(c.UserContext(), actor.SubjectID, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.MarkReadInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.notifService.MarkRead(c.UserContext(), actor.SubjectID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": updated})
}
