package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Dispatch(ctx context.Context, events []domain.NotificationEvent) {
	m.Called(ctx, events)
}
