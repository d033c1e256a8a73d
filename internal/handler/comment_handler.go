package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	jobID, err := parseUUIDQuery(c, "jobId")
	if err != nil {
		return err
	}
	if jobID == uuid.Nil {
		return domain.InvalidArgument("jobId is required")
	}

	comments, err := h.commentService.List(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": comments})
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.commentService.Add(c.UserContext(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	commentID, err := parseUUIDQuery(c, "id")
	if err != nil {
		return err
	}
	if commentID == uuid.Nil {
		return domain.InvalidArgument("id is required")
	}

	if err := h.commentService.Delete(c.UserContext(), actor, commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Comment deleted"})
}
