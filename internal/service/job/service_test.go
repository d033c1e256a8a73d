package job_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/mocks"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/job"
)

func hiring() *domain.Actor {
	return &domain.Actor{SubjectID: "owner-1", Profile: &domain.Profile{SubjectID: "owner-1", Role: domain.RoleHiring}}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.JobRepository)
	svc := job.NewService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(j *domain.JobListing) bool {
		return j.Status == domain.JobStatusDraft &&
			j.AuthorID == "owner-1" &&
			strings.HasPrefix(j.Slug, "senior-go-engineer-") &&
			j.ApplicantCount == 0
	})).Return(nil).Once()

	created, err := svc.Create(ctx, hiring(), domain.CreateJobInput{Title: "Senior Go Engineer", CompanyName: "DEVSA"})

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDraft, created.Status)
	repo.AssertExpectations(t)
}

func TestGet_HidesDrafts(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.JobRepository)
	svc := job.NewService(repo)
	draft := &domain.JobListing{ID: uuid.New(), Status: domain.JobStatusDraft}
	repo.On("GetByID", ctx, draft.ID).Return(draft, nil).Once()

	_, err := svc.Get(ctx, draft.ID)

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestListPublished(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.JobRepository)
	svc := job.NewService(repo)

	repo.On("ListPublished", ctx, domain.PaginationParams{Page: 1, PageSize: 20}).
		Return([]domain.JobListing{{ID: uuid.New()}}, int64(41), nil).Once()

	page, err := svc.ListPublished(ctx, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner publishes draft", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		svc := job.NewService(repo)
		j := &domain.JobListing{ID: uuid.New(), AuthorID: "owner-1", Status: domain.JobStatusDraft}
		repo.On("GetByID", ctx, j.ID).Return(j, nil).Once()
		repo.On("UpdateStatus", ctx, j.ID, domain.JobStatusPublished).Return(nil).Once()

		updated, err := svc.UpdateStatus(ctx, hiring(), j.ID, domain.JobStatusPublished)

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, updated.Status)
	})

	t.Run("Closed cannot reopen", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		svc := job.NewService(repo)
		j := &domain.JobListing{ID: uuid.New(), AuthorID: "owner-1", Status: domain.JobStatusClosed}
		repo.On("GetByID", ctx, j.ID).Return(j, nil).Once()

		_, err := svc.UpdateStatus(ctx, hiring(), j.ID, domain.JobStatusPublished)

		assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
	})

	t.Run("Other hiring user is forbidden", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		svc := job.NewService(repo)
		j := &domain.JobListing{ID: uuid.New(), AuthorID: "owner-2", Status: domain.JobStatusDraft}
		repo.On("GetByID", ctx, j.ID).Return(j, nil).Once()

		_, err := svc.UpdateStatus(ctx, hiring(), j.ID, domain.JobStatusPublished)

		assert.True(t, domain.IsKind(err, domain.KindForbidden))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	actor := &domain.Actor{SubjectID: "seeker", Profile: &domain.Profile{Role: domain.RoleOpenToWork}}
	published := &domain.JobListing{ID: uuid.New(), Status: domain.JobStatusPublished}

	t.Run("Duplicate save conflicts", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		svc := job.NewService(repo)
		repo.On("GetByID", ctx, published.ID).Return(published, nil).Once()
		repo.On("Save", ctx, "seeker", published.ID).Return(repository.ErrDuplicate).Once()

		err := svc.Save(ctx, actor, published.ID)

		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("Unsave missing", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		svc := job.NewService(repo)
		repo.On("Unsave", ctx, "seeker", published.ID).Return(repository.ErrNotFound).Once()

		err := svc.Unsave(ctx, actor, published.ID)

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
