package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/helpers"
)

type Service interface {
	Create(ctx context.Context, actor *domain.Actor, input domain.CreateJobInput) (*domain.JobListing, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.JobListing, error)
	ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobListing], error)
	ListMine(ctx context.Context, actor *domain.Actor) ([]domain.JobListing, error)
	UpdateStatus(ctx context.Context, actor *domain.Actor, id uuid.UUID, status domain.JobStatus) (*domain.JobListing, error)
	Save(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) error
	Unsave(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) error
	ListSaved(ctx context.Context, actor *domain.Actor) ([]domain.JobListing, error)
}

type service struct {
	jobRepo repository.JobRepository
}

func NewService(jobRepo repository.JobRepository) Service {
	return &service{jobRepo: jobRepo}
}

// slugFor appends a short id so identical titles never collide.
func slugFor(title string, id uuid.UUID) string {
	base := helpers.Slugify(title)
	suffix := id.String()[:8]
	if base == "" {
		return "job-" + suffix
	}
	return base + "-" + suffix
}

func (s *service) Create(ctx context.Context, actor *domain.Actor, input domain.CreateJobInput) (*domain.JobListing, error) {
	title := helpers.PlainText(input.Title)
	company := helpers.PlainText(input.CompanyName)
	if title == "" || company == "" {
		return nil, domain.InvalidArgument("title and companyName are required")
	}

	job := &domain.JobListing{
		ID:          uuid.New(),
		Title:       title,
		CompanyName: company,
		Description: helpers.PlainText(input.Description),
		AuthorID:    actor.SubjectID,
		Status:      domain.JobStatusDraft,
	}
	if input.Location != nil {
		location := helpers.PlainText(*input.Location)
		job.Location = &location
	}
	job.Slug = slugFor(job.Title, job.ID)

	if err := s.jobRepo.Create(ctx, job); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("A job with this slug already exists")
		}
		return nil, domain.Internal("Failed to create job", err)
	}

	return job, nil
}

// Get returns a listing that is visible to the public. Drafts are hidden.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.JobListing, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to load job", err)
	}
	if job == nil || job.Status == domain.JobStatusDraft {
		return nil, domain.NotFound("Job not found")
	}
	return job, nil
}

func (s *service) ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.JobListing], error) {
	params.Validate()

	jobs, total, err := s.jobRepo.ListPublished(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.JobListing]{}, domain.Internal("Failed to load jobs", err)
	}

	return domain.NewPaginatedResponse(jobs, params.Page, params.PageSize, total), nil
}

func (s *service) ListMine(ctx context.Context, actor *domain.Actor) ([]domain.JobListing, error) {
	jobs, err := s.jobRepo.ListByAuthor(ctx, actor.SubjectID)
	if err != nil {
		return nil, domain.Internal("Failed to load jobs", err)
	}
	return jobs, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor *domain.Actor, id uuid.UUID, status domain.JobStatus) (*domain.JobListing, error) {
	if !status.IsValid() {
		return nil, domain.InvalidArgument("status must be one of draft, published, closed")
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to load job", err)
	}
	if job == nil {
		return nil, domain.NotFound("Job not found")
	}
	if !actor.Owns(job.AuthorID) {
		return nil, domain.Forbidden("Only the job owner can change its status")
	}
	if !job.Status.CanTransitionTo(status) {
		return nil, domain.InvalidArgument(fmt.Sprintf("Cannot move a %s job to %s", job.Status, status))
	}

	if err := s.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Job not found")
		}
		return nil, domain.Internal("Failed to update job", err)
	}

	job.Status = status
	return job, nil
}

func (s *service) Save(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) error {
	if _, err := s.Get(ctx, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.Save(ctx, actor.SubjectID, jobID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict("Job already saved")
		}
		return domain.Internal("Failed to save job", err)
	}
	return nil
}

func (s *service) Unsave(ctx context.Context, actor *domain.Actor, jobID uuid.UUID) error {
	if err := s.jobRepo.Unsave(ctx, actor.SubjectID, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Saved job not found")
		}
		return domain.Internal("Failed to remove saved job", err)
	}
	return nil
}

func (s *service) ListSaved(ctx context.Context, actor *domain.Actor) ([]domain.JobListing, error) {
	jobs, err := s.jobRepo.ListSaved(ctx, actor.SubjectID)
	if err != nil {
		return nil, domain.Internal("Failed to load saved jobs", err)
	}
	return jobs, nil
}
