package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) Deliver(ctx context.Context, eventID uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *OutboxRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]domain.NotificationEvent, error) {
	args := m.Called(ctx, limit, maxAttempts)
	return args.Get(0).([]domain.NotificationEvent), args.Error(1)
}

func (m *OutboxRepository) MarkFailed(ctx context.Context, eventID uuid.UUID, reason string) error {
	args := m.Called(ctx, eventID, reason)
	return args.Error(0)
}
