package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	args := m.Called(ctx, toEmail, recipientName, notif)
	return args.Error(0)
}
