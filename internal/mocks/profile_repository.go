package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devsa-jobs/internal/domain"
)

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Profile, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) SetImage(ctx context.Context, subjectID string, imageURL string) error {
	args := m.Called(ctx, subjectID, imageURL)
	return args.Error(0)
}
