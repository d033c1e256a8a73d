package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devsa-jobs/internal/domain"
)

type ApplicationRepository interface {
	// Create inserts the application, bumps the listing's applicant counter
	// and enqueues events in one transaction. A second application for the
	// same job and applicant fails with ErrDuplicate.
	Create(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID uuid.UUID, applicantID string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO applications (id, job_id, job_title, applicant_id, applicant_name, applicant_email, cover_note, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			app.ID, app.JobID, app.JobTitle, app.ApplicantID, app.ApplicantName,
			app.ApplicantEmail, app.CoverNote, app.Status,
		).Scan(&app.CreatedAt, &app.UpdatedAt)
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if err != nil {
			return err
		}

		counterQuery := `UPDATE jobs SET applicant_count = applicant_count + 1, updated_at = NOW() WHERE id = $1`
		if _, err := tx.ExecContext(ctx, counterQuery, app.JobID); err != nil {
			return err
		}

		return insertEvents(ctx, tx, events)
	})
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetByJobAndApplicant(ctx context.Context, jobID uuid.UUID, applicantID string) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE job_id = $1 AND applicant_id = $2`

	err := r.db.GetContext(ctx, &app, query, jobID, applicantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	apps := []domain.Application{}
	query := `SELECT * FROM applications WHERE job_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &apps, query, jobID)
	return apps, err
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	apps := []domain.Application{}
	query := `SELECT * FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &apps, query, applicantID)
	return apps, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
		err := tx.QueryRowxContext(ctx, query, app.ID, app.Status).Scan(&app.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return insertEvents(ctx, tx, events)
	})
}
