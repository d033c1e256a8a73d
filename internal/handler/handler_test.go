package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/handler"
	"devsa-jobs/internal/middleware"
	"devsa-jobs/internal/mocks"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service"
	"devsa-jobs/internal/service/auth"
)

type testEnv struct {
	app           *fiber.App
	verifier      *auth.JWTVerifier
	profiles      *mocks.ProfileRepository
	jobs          *mocks.JobRepository
	applications  *mocks.ApplicationRepository
	comments      *mocks.CommentRepository
	notifications *mocks.NotificationRepository
	outbox        *mocks.OutboxRepository
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	verifier, err := auth.NewJWTVerifier("test-secret", "", []string{"admin@devsa.community"})
	require.NoError(t, err)

	env := &testEnv{
		verifier:      verifier,
		profiles:      new(mocks.ProfileRepository),
		jobs:          new(mocks.JobRepository),
		applications:  new(mocks.ApplicationRepository),
		comments:      new(mocks.CommentRepository),
		notifications: new(mocks.NotificationRepository),
		outbox:        new(mocks.OutboxRepository),
	}

	repos := &repository.Repositories{
		Profile:      env.profiles,
		Job:          env.jobs,
		Application:  env.applications,
		Comment:      env.comments,
		Notification: env.notifications,
		Outbox:       env.outbox,
	}
	cfg := &config.Config{DispatchConcurrency: 2, OutboxInterval: time.Minute, OutboxBatchSize: 10}
	services := service.NewServices(repos, nil, nil, verifier, nil, cfg)

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	handler.NewHandlers(services).Register(env.app.Group("/api/v1"), services.Gate, func(c *fiber.Ctx) error { return c.Next() })

	env.profiles.On("GetBySubjectID", mock.Anything, "seeker").Return(&domain.Profile{
		SubjectID: "seeker", Email: "seeker@example.com", Role: domain.RoleOpenToWork, FirstName: "Ana", LastName: "Lopez",
	}, nil).Maybe()
	env.profiles.On("GetBySubjectID", mock.Anything, "owner").Return(&domain.Profile{
		SubjectID: "owner", Email: "owner@example.com", Role: domain.RoleHiring, DisplayName: "Ben",
	}, nil).Maybe()
	env.profiles.On("GetBySubjectID", mock.Anything, "stranger").Return(&domain.Profile{
		SubjectID: "stranger", Email: "stranger@example.com", Role: domain.RoleHiring, DisplayName: "Cy",
	}, nil).Maybe()
	env.profiles.On("GetBySubjectID", mock.Anything, "newbie").Return(nil, nil).Maybe()
	env.profiles.On("GetBySubjectID", mock.Anything, "admin").Return(nil, nil).Maybe()

	return env
}

func (e *testEnv) do(t *testing.T, method, path, subject string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		token, err := e.verifier.Issue(subject, subject+"@example.com", false, time.Hour)
		require.NoError(t, err)
		if subject == "admin" {
			token, err = e.verifier.Issue(subject, "Admin@DevSA.community", false, time.Hour)
			require.NoError(t, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestSubmitApplication_Scenario(t *testing.T) {
	env := setup(t)
	job := &domain.JobListing{ID: uuid.New(), Title: "Go Engineer", AuthorID: "owner", Status: domain.JobStatusPublished}

	env.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	env.applications.On("GetByJobAndApplicant", mock.Anything, job.ID, "seeker").Return(nil, nil).Once()

	var submitted *domain.Application
	var events []domain.NotificationEvent
	env.applications.On("Create", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		submitted = args.Get(1).(*domain.Application)
		events = args.Get(2).([]domain.NotificationEvent)
	}).Return(nil).Once()
	env.outbox.On("Deliver", mock.Anything, mock.Anything).Return(&domain.Notification{
		ID: uuid.New(), RecipientID: "owner", Type: domain.NotifApplication,
	}, nil).Once()

	resp, body := env.do(t, http.MethodPost, "/api/v1/applications", "seeker", fiber.Map{"jobId": job.ID, "coverNote": "Hi"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
	require.NotNil(t, submitted)
	assert.Equal(t, domain.ApplicationSubmitted, submitted.Status)
	require.Len(t, events, 1)
	assert.Equal(t, "owner", events[0].RecipientID)
	assert.Equal(t, domain.NotifApplication, events[0].Type)

	env.applications.On("GetByJobAndApplicant", mock.Anything, job.ID, "seeker").Return(submitted, nil).Once()

	resp, body = env.do(t, http.MethodPost, "/api/v1/applications", "seeker", fiber.Map{"jobId": job.ID, "coverNote": "Hi"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "You have already applied to this job", body["error"])
	env.applications.AssertNumberOfCalls(t, "Create", 1)
}

func TestSubmitApplication_Gate(t *testing.T) {
	env := setup(t)
	jobID := uuid.New()

	resp, _ := env.do(t, http.MethodPost, "/api/v1/applications", "", fiber.Map{"jobId": jobID})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/api/v1/applications", "newbie", fiber.Map{"jobId": jobID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Profile required. Complete onboarding first", body["error"])

	resp, _ = env.do(t, http.MethodPost, "/api/v1/applications", "owner", fiber.Map{"jobId": jobID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubmitApplication_ClosedJob(t *testing.T) {
	env := setup(t)
	job := &domain.JobListing{ID: uuid.New(), AuthorID: "owner", Status: domain.JobStatusClosed}
	env.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()

	resp, body := env.do(t, http.MethodPost, "/api/v1/applications", "seeker", fiber.Map{"jobId": job.ID})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This job is no longer accepting applications", body["error"])
}

func TestUpdateApplicationStatus_InvalidStatus(t *testing.T) {
	env := setup(t)
	app := &domain.Application{ID: uuid.New(), JobID: uuid.New(), ApplicantID: "seeker"}
	env.applications.On("GetByID", mock.Anything, app.ID).Return(app, nil).Once()

	resp, _ := env.do(t, http.MethodPut, "/api/v1/applications", "owner", fiber.Map{"applicationId": app.ID, "status": "hired"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComments(t *testing.T) {
	env := setup(t)
	jobID := uuid.New()
	now := time.Now()

	env.jobs.On("GetByID", mock.Anything, jobID).Return(&domain.JobListing{ID: jobID, AuthorID: "boss", Status: domain.JobStatusPublished}, nil)
	env.comments.On("ListByJob", mock.Anything, jobID).Return([]domain.Comment{
		{ID: uuid.New(), JobID: jobID, Content: "later", CreatedAt: now.Add(time.Minute)},
		{ID: uuid.New(), JobID: jobID, Content: "earlier", CreatedAt: now},
	}, nil).Once()

	resp, body := env.do(t, http.MethodGet, "/api/v1/comments?jobId="+jobID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := body["comments"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "earlier", list[0].(map[string]interface{})["content"])

	resp, _ = env.do(t, http.MethodGet, "/api/v1/comments", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	existing := &domain.Comment{ID: uuid.New(), JobID: jobID, AuthorID: "seeker"}
	env.comments.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/comments?id="+existing.ID.String(), "stranger", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.comments.On("Delete", mock.Anything, existing.ID).Return(int64(1), nil).Once()
	resp, _ = env.do(t, http.MethodDelete, "/api/v1/comments?id="+existing.ID.String(), "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNotifications(t *testing.T) {
	env := setup(t)

	env.notifications.On("ListByRecipient", mock.Anything, "newbie", 5).Return([]domain.Notification{}, nil).Once()
	env.notifications.On("CountUnread", mock.Anything, "newbie").Return(int64(3), nil).Once()

	resp, body := env.do(t, http.MethodGet, "/api/v1/notifications?limit=5", "newbie", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["unreadCount"])

	env.notifications.On("MarkAllRead", mock.Anything, "newbie").Return(int64(3), nil).Once()
	resp, body = env.do(t, http.MethodPut, "/api/v1/notifications", "newbie", fiber.Map{"all": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["updated"])

	resp, _ = env.do(t, http.MethodPut, "/api/v1/notifications", "newbie", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfiles(t *testing.T) {
	env := setup(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/profiles/me", "newbie", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["profile"])
	assert.Equal(t, "newbie", body["subjectId"])

	env.profiles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	resp, _ = env.do(t, http.MethodPost, "/api/v1/profiles", "newbie", fiber.Map{
		"role": "open-to-work", "firstName": "New", "lastName": "Bie",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/v1/profiles", "newbie", fiber.Map{"role": "recruiter"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "role must be one of")
}

func TestJobs(t *testing.T) {
	env := setup(t)

	env.jobs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	resp, body := env.do(t, http.MethodPost, "/api/v1/jobs", "owner", fiber.Map{"title": "Platform Engineer", "companyName": "DEVSA"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "draft", body["status"])

	resp, _ = env.do(t, http.MethodPost, "/api/v1/jobs", "seeker", fiber.Map{"title": "Platform Engineer", "companyName": "DEVSA"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.jobs.On("ListPublished", mock.Anything, domain.PaginationParams{Page: 2, PageSize: 5}).
		Return([]domain.JobListing{}, int64(6), nil).Once()
	resp, body = env.do(t, http.MethodGet, "/api/v1/jobs?page=2&pageSize=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["totalPages"])

	resp, _ = env.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
