package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type Verifier struct {
	mock.Mock
}

func (m *Verifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}
