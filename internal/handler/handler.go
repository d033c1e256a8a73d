package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/middleware"
	"devsa-jobs/internal/service"
)

type Handlers struct {
	Profile      *ProfileHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Profile:      NewProfileHandler(services.Profile),
		Job:          NewJobHandler(services.Job),
		Application:  NewApplicationHandler(services.Application),
		Comment:      NewCommentHandler(services.Comment),
		Notification: NewNotificationHandler(services.Notification),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodes the JSON body into out and runs its validate tags.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.InvalidArgument("Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.InvalidArgument("Invalid request body")
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return domain.InvalidArgument(strings.Join(messages, "; "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.InvalidArgument("Invalid " + name)
	}
	return id, nil
}

// parseUUIDQuery returns uuid.Nil when the query parameter is absent.
func parseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.InvalidArgument("Invalid " + name)
	}
	return id, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("pageSize", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func currentActor(c *fiber.Ctx) (*domain.Actor, error) {
	actor := middleware.GetActor(c)
	if actor == nil {
		return nil, domain.Unauthenticated("Authentication required")
	}
	return actor, nil
}
