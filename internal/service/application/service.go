package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/pkg/i18n"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/helpers"
	"devsa-jobs/internal/service/notification"
)

type Service interface {
	Submit(ctx context.Context, actor *domain.Actor, input domain.SubmitApplicationInput) (*domain.Application, error)
	UpdateStatus(ctx context.Context, actor *domain.Actor, input domain.UpdateApplicationStatusInput) (*domain.Application, error)
	ListForJob(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) ([]domain.Application, error)
	ListMine(ctx context.Context, actor *domain.Actor) ([]domain.Application, error)
}

type service struct {
	appRepo    repository.ApplicationRepository
	jobRepo    repository.JobRepository
	dispatcher notification.Dispatcher
}

func NewService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository, dispatcher notification.Dispatcher) Service {
	return &service{
		appRepo:    appRepo,
		jobRepo:    jobRepo,
		dispatcher: dispatcher,
	}
}

func (s *service) loadJob(ctx context.Context, id uuid.UUID) (*domain.JobListing, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to load job", err)
	}
	if job == nil {
		return nil, domain.NotFound("Job not found")
	}
	return job, nil
}

func (s *service) Submit(ctx context.Context, actor *domain.Actor, input domain.SubmitApplicationInput) (*domain.Application, error) {
	if input.JobID == uuid.Nil {
		return nil, domain.InvalidArgument("jobId is required")
	}

	job, err := s.loadJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	if !job.AcceptsApplications() {
		return nil, domain.PreconditionFailed("This job is no longer accepting applications").WithStatus(http.StatusBadRequest)
	}

	existing, err := s.appRepo.GetByJobAndApplicant(ctx, job.ID, actor.SubjectID)
	if err != nil {
		return nil, domain.Internal("Failed to check existing applications", err)
	}
	if existing != nil {
		return nil, domain.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		ID:             uuid.New(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		ApplicantID:    actor.SubjectID,
		ApplicantName:  actor.DisplayName(),
		ApplicantEmail: actor.Email,
		CoverNote:      helpers.PlainText(input.CoverNote),
		Status:         domain.ApplicationSubmitted,
	}

	var events []domain.NotificationEvent
	if ev := domain.NewNotificationEvent(actor, job.AuthorID, domain.NotifApplication,
		i18n.T("application.title"),
		i18n.T("application.body", app.ApplicantName, job.Title),
		fmt.Sprintf("/jobs/%s/applications", job.ID),
		app.ID.String(),
	); ev != nil {
		events = append(events, *ev)
	}

	if err := s.appRepo.Create(ctx, app, events); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("You have already applied to this job")
		}
		return nil, domain.Internal("Failed to submit application", err)
	}

	slog.Info("application submitted",
		slog.String("application_id", app.ID.String()),
		slog.String("job_id", job.ID.String()),
		slog.String("applicant_id", actor.SubjectID),
	)

	s.dispatcher.Dispatch(ctx, events)

	return app, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor *domain.Actor, input domain.UpdateApplicationStatusInput) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, domain.Internal("Failed to load application", err)
	}
	if app == nil {
		return nil, domain.NotFound("Application not found")
	}

	if !input.Status.IsReviewOutcome() {
		return nil, domain.InvalidArgument("status must be one of viewed, shortlisted, rejected")
	}

	job, err := s.loadJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(job.AuthorID) {
		return nil, domain.Forbidden("Only the job owner can update applications")
	}

	app.Status = input.Status

	var events []domain.NotificationEvent
	if ev := domain.NewNotificationEvent(actor, app.ApplicantID, domain.NotifStatusUpdate,
		i18n.T("status_update.title"),
		i18n.T("status_update.body", app.JobTitle, app.Status),
		"/applications",
		app.ID.String(),
	); ev != nil {
		events = append(events, *ev)
	}

	if err := s.appRepo.UpdateStatus(ctx, app, events); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Application not found")
		}
		return nil, domain.Internal("Failed to update application", err)
	}

	s.dispatcher.Dispatch(ctx, events)

	return app, nil
}

// ListForJob is the owner's view of a listing's applications.
func (s *service) ListForJob(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) ([]domain.Application, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin && (actor.Role() != domain.RoleHiring || actor.SubjectID != job.AuthorID) {
		return nil, domain.Forbidden("Only the job owner can view its applications")
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Internal("Failed to load applications", err)
	}
	return apps, nil
}

func (s *service) ListMine(ctx context.Context, actor *domain.Actor) ([]domain.Application, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, actor.SubjectID)
	if err != nil {
		return nil, domain.Internal("Failed to load applications", err)
	}
	return apps, nil
}
