package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, recipientID string, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
