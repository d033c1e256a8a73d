package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devsa-jobs/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.JobListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobListing, error)
	ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.JobListing, int64, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.JobListing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	Save(ctx context.Context, subjectID string, jobID uuid.UUID) error
	Unsave(ctx context.Context, subjectID string, jobID uuid.UUID) error
	ListSaved(ctx context.Context, subjectID string) ([]domain.JobListing, error)
}

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobListing) error {
	query := `
		INSERT INTO jobs (id, title, slug, company_name, description, location, author_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING applicant_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		job.ID, job.Title, job.Slug, job.CompanyName, job.Description, job.Location, job.AuthorID, job.Status,
	).Scan(&job.ApplicantCount, &job.CreatedAt, &job.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobListing, error) {
	var job domain.JobListing
	query := `SELECT * FROM jobs WHERE id = $1`

	err := r.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.JobListing, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs WHERE status = 'published'`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	jobs := []domain.JobListing{}
	query := `
		SELECT * FROM jobs
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &jobs, query, params.PageSize, params.Offset())
	return jobs, total, err
}

func (r *jobRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.JobListing, error) {
	jobs := []domain.JobListing{}
	query := `SELECT * FROM jobs WHERE author_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &jobs, query, authorID)
	return jobs, err
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) Save(ctx context.Context, subjectID string, jobID uuid.UUID) error {
	query := `INSERT INTO saved_jobs (subject_id, job_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, subjectID, jobID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *jobRepository) Unsave(ctx context.Context, subjectID string, jobID uuid.UUID) error {
	query := `DELETE FROM saved_jobs WHERE subject_id = $1 AND job_id = $2`
	res, err := r.db.ExecContext(ctx, query, subjectID, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) ListSaved(ctx context.Context, subjectID string) ([]domain.JobListing, error) {
	jobs := []domain.JobListing{}
	query := `
		SELECT j.* FROM jobs j
		INNER JOIN saved_jobs s ON s.job_id = j.id
		WHERE s.subject_id = $1
		ORDER BY s.created_at DESC`
	err := r.db.SelectContext(ctx, &jobs, query, subjectID)
	return jobs, err
}
