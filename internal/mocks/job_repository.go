package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type JobRepository struct {
	mock.Mock
}

func (m *JobRepository) Create(ctx context.Context, job *domain.JobListing) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}

func (m *JobRepository) ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.JobListing, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.JobListing), args.Get(1).(int64), args.Error(2)
}

func (m *JobRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.JobListing, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.JobListing), args.Error(1)
}

func (m *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *JobRepository) Save(ctx context.Context, subjectID string, jobID uuid.UUID) error {
	args := m.Called(ctx, subjectID, jobID)
	return args.Error(0)
}

func (m *JobRepository) Unsave(ctx context.Context, subjectID string, jobID uuid.UUID) error {
	args := m.Called(ctx, subjectID, jobID)
	return args.Error(0)
}

func (m *JobRepository) ListSaved(ctx context.Context, subjectID string) ([]domain.JobListing, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).([]domain.JobListing), args.Error(1)
}
