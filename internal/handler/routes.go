package handler

import (
	"github.com/gofiber/fiber/v2"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/middleware"
	"devsa-jobs/internal/service/auth"
)

// Register mounts the API on router. writeLimit runs after the gate on
// every mutating route, so callers are limited by subject id.
func (h *Handlers) Register(router fiber.Router, gate *auth.Gate, writeLimit fiber.Handler) {
	bearer := middleware.AuthRequired(gate)
	withProfile := middleware.RequireProfile(gate)
	hiring := middleware.RequireRole(gate, domain.RoleHiring)
	openToWork := middleware.RequireRole(gate, domain.RoleOpenToWork)

	applications := router.Group("/applications")
	applications.Get("/", withProfile, h.Application.List)
	applications.Post("/", openToWork, writeLimit, h.Application.Submit)
	applications.Put("/", hiring, writeLimit, h.Application.UpdateStatus)

	comments := router.Group("/comments")
	comments.Get("/", h.Comment.List)
	comments.Post("/", withProfile, writeLimit, h.Comment.Create)
	comments.Delete("/", withProfile, writeLimit, h.Comment.Delete)

	notifications := router.Group("/notifications", bearer)
	notifications.Get("/", h.Notification.List)
	notifications.Put("/", h.Notification.MarkRead)

	jobs := router.Group("/jobs")
	jobs.Get("/", h.Job.List)
	jobs.Post("/", hiring, writeLimit, h.Job.Create)
	jobs.Get("/mine", hiring, h.Job.ListMine)
	jobs.Get("/:id", h.Job.Get)
	jobs.Patch("/:id/status", hiring, writeLimit, h.Job.UpdateStatus)
	jobs.Post("/:id/save", withProfile, writeLimit, h.Job.Save)
	jobs.Delete("/:id/save", withProfile, h.Job.Unsave)

	router.Get("/saved-jobs", withProfile, h.Job.ListSaved)

	profiles := router.Group("/profiles")
	profiles.Post("/", bearer, writeLimit, h.Profile.Create)
	profiles.Get("/me", bearer, h.Profile.GetMe)
	profiles.Put("/me", withProfile, writeLimit, h.Profile.UpdateMe)
	profiles.Post("/me/image", withProfile, writeLimit, h.Profile.UploadImage)
}
