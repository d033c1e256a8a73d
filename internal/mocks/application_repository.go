package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error {
	args := m.Called(ctx, app, events)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) GetByJobAndApplicant(ctx context.Context, jobID uuid.UUID, applicantID string) (*domain.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, app *domain.Application, events []domain.NotificationEvent) error {
	args := m.Called(ctx, app, events)
	return args.Error(0)
}
