package handler

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetMe returns the caller's verified identity together with the profile,
// which is null until onboarding is complete.
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(actor)
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.CreateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.profileService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.profileService.Update(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ProfileHandler) UploadImage(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return domain.InvalidArgument("image file is required")
	}
	if file.Size > profile.MaxImageSize {
		return domain.InvalidArgument("Image must be 5 MB or smaller")
	}

	reader, err := file.Open()
	if err != nil {
		return domain.InvalidArgument("Failed to read image")
	}
	defer reader.Close()

	updated, err := h.profileService.UploadImage(c.UserContext(), actor, file.Header.Get(fiber.HeaderContentType), file.Size, reader)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
