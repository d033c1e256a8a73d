package application_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/mocks"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/application"
)

type fixture struct {
	apps       *mocks.ApplicationRepository
	jobs       *mocks.JobRepository
	dispatcher *mocks.Dispatcher
	svc        application.Service
}

func newFixture() *fixture {
	f := &fixture{
		apps:       new(mocks.ApplicationRepository),
		jobs:       new(mocks.JobRepository),
		dispatcher: new(mocks.Dispatcher),
	}
	f.svc = application.NewService(f.apps, f.jobs, f.dispatcher)
	return f
}

func applicant() *domain.Actor {
	return &domain.Actor{
		SubjectID: "actor-a",
		Email:     "ana@example.com",
		Profile: &domain.Profile{
			SubjectID: "actor-a",
			Role:      domain.RoleOpenToWork,
			FirstName: "Ana",
			LastName:  "Lopez",
		},
	}
}

func owner() *domain.Actor {
	return &domain.Actor{
		SubjectID: "actor-b",
		Email:     "ben@example.com",
		Profile:   &domain.Profile{SubjectID: "actor-b", Role: domain.RoleHiring, DisplayName: "Ben"},
	}
}

func publishedJob() *domain.JobListing {
	return &domain.JobListing{
		ID:       uuid.New(),
		Title:    "Backend Engineer",
		AuthorID: "actor-b",
		Status:   domain.JobStatusPublished,
	}
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := publishedJob()
	actor := applicant()

	f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
	f.apps.On("GetByJobAndApplicant", ctx, job.ID, actor.SubjectID).Return(nil, nil).Once()
	f.apps.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
		return a.JobID == job.ID &&
			a.ApplicantID == actor.SubjectID &&
			a.Status == domain.ApplicationSubmitted &&
			a.JobTitle == "Backend Engineer" &&
			a.ApplicantName == "Ana Lopez" &&
			a.ApplicantEmail == "ana@example.com" &&
			a.CoverNote == "Hi"
	}), mock.MatchedBy(func(events []domain.NotificationEvent) bool {
		return len(events) == 1 &&
			events[0].RecipientID == job.AuthorID &&
			events[0].Type == domain.NotifApplication
	})).Return(nil).Once()
	f.dispatcher.On("Dispatch", ctx, mock.AnythingOfType("[]domain.NotificationEvent")).Return().Once()

	app, err := f.svc.Submit(ctx, actor, domain.SubmitApplicationInput{JobID: job.ID, CoverNote: "<b>Hi</b>"})

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationSubmitted, app.Status)
	f.apps.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

func TestSubmit_SecondCallConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := publishedJob()
	actor := applicant()

	f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Twice()
	f.apps.On("GetByJobAndApplicant", ctx, job.ID, actor.SubjectID).Return(nil, nil).Once()
	f.apps.On("Create", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	f.dispatcher.On("Dispatch", ctx, mock.Anything).Return().Once()

	_, err := f.svc.Submit(ctx, actor, domain.SubmitApplicationInput{JobID: job.ID, CoverNote: "Hi"})
	require.NoError(t, err)

	f.apps.On("GetByJobAndApplicant", ctx, job.ID, actor.SubjectID).
		Return(&domain.Application{ID: uuid.New(), JobID: job.ID, ApplicantID: actor.SubjectID}, nil).Once()

	_, err = f.svc.Submit(ctx, actor, domain.SubmitApplicationInput{JobID: job.ID, CoverNote: "Hi"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	f.apps.AssertNumberOfCalls(t, "Create", 1)
}

func TestSubmit_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := publishedJob()
	actor := applicant()

	f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
	f.apps.On("GetByJobAndApplicant", ctx, job.ID, actor.SubjectID).Return(nil, nil).Once()
	f.apps.On("Create", ctx, mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

	_, err := f.svc.Submit(ctx, actor, domain.SubmitApplicationInput{JobID: job.ID})

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSubmit_UnpublishedJob(t *testing.T) {
	for _, status := range []domain.JobStatus{domain.JobStatusDraft, domain.JobStatusClosed} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			job := publishedJob()
			job.Status = status

			f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()

			_, err := f.svc.Submit(ctx, applicant(), domain.SubmitApplicationInput{JobID: job.ID})

			var appErr *domain.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domain.KindPreconditionFailed, appErr.Kind)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
			f.apps.AssertNotCalled(t, "GetByJobAndApplicant", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_JobNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()

	f.jobs.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := f.svc.Submit(ctx, applicant(), domain.SubmitApplicationInput{JobID: id})

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestSubmit_StoreFailureIsInternal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()

	f.jobs.On("GetByID", ctx, id).Return(nil, errors.New("connection refused")).Once()

	_, err := f.svc.Submit(ctx, applicant(), domain.SubmitApplicationInput{JobID: id})

	assert.True(t, domain.IsKind(err, domain.KindInternal))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner updates and applicant is notified", func(t *testing.T) {
		f := newFixture()
		job := publishedJob()
		app := &domain.Application{ID: uuid.New(), JobID: job.ID, ApplicantID: "actor-a", JobTitle: job.Title, Status: domain.ApplicationSubmitted}

		f.apps.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.apps.On("UpdateStatus", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.Status == domain.ApplicationShortlisted
		}), mock.MatchedBy(func(events []domain.NotificationEvent) bool {
			return len(events) == 1 && events[0].RecipientID == "actor-a" && events[0].Type == domain.NotifStatusUpdate
		})).Return(nil).Once()
		f.dispatcher.On("Dispatch", ctx, mock.Anything).Return().Once()

		updated, err := f.svc.UpdateStatus(ctx, owner(), domain.UpdateApplicationStatusInput{
			ApplicationID: app.ID,
			Status:        domain.ApplicationShortlisted,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationShortlisted, updated.Status)
		f.apps.AssertExpectations(t)
	})

	t.Run("Invalid status", func(t *testing.T) {
		for _, status := range []domain.ApplicationStatus{"", domain.ApplicationSubmitted, "hired"} {
			f := newFixture()
			app := &domain.Application{ID: uuid.New(), JobID: uuid.New(), ApplicantID: "actor-a"}
			f.apps.On("GetByID", ctx, app.ID).Return(app, nil).Once()

			_, err := f.svc.UpdateStatus(ctx, owner(), domain.UpdateApplicationStatusInput{ApplicationID: app.ID, Status: status})

			assert.True(t, domain.IsKind(err, domain.KindInvalidArgument), "status %q", status)
			f.jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		}
	})

	t.Run("Application not found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.apps.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, owner(), domain.UpdateApplicationStatusInput{ApplicationID: id, Status: domain.ApplicationViewed})

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		f := newFixture()
		job := publishedJob()
		app := &domain.Application{ID: uuid.New(), JobID: job.ID, ApplicantID: "actor-a"}
		other := owner()
		other.SubjectID = "actor-c"

		f.apps.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, other, domain.UpdateApplicationStatusInput{ApplicationID: app.ID, Status: domain.ApplicationRejected})

		assert.True(t, domain.IsKind(err, domain.KindForbidden))
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Super admin may update any listing", func(t *testing.T) {
		f := newFixture()
		job := publishedJob()
		app := &domain.Application{ID: uuid.New(), JobID: job.ID, ApplicantID: "actor-a"}
		admin := &domain.Actor{SubjectID: "root", Email: "root@devsa.community", IsSuperAdmin: true}

		f.apps.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.apps.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		f.dispatcher.On("Dispatch", ctx, mock.Anything).Return().Once()

		_, err := f.svc.UpdateStatus(ctx, admin, domain.UpdateApplicationStatusInput{ApplicationID: app.ID, Status: domain.ApplicationViewed})

		require.NoError(t, err)
	})
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()
	job := publishedJob()

	t.Run("Owner sees applications", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()
		f.apps.On("ListByJob", ctx, job.ID).Return([]domain.Application{{ID: uuid.New()}}, nil).Once()

		apps, err := f.svc.ListForJob(ctx, owner(), job.ID)

		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("Applicant is forbidden", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil).Once()

		_, err := f.svc.ListForJob(ctx, applicant(), job.ID)

		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})
}
