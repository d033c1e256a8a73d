package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment, events []domain.NotificationEvent) error {
	args := m.Called(ctx, comment, events)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
