package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/metrics"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/application"
	"devsa-jobs/internal/service/auth"
	"devsa-jobs/internal/service/comment"
	"devsa-jobs/internal/service/email"
	"devsa-jobs/internal/service/job"
	"devsa-jobs/internal/service/notification"
	"devsa-jobs/internal/service/profile"
)

type Services struct {
	Gate         *auth.Gate
	Profile      profile.Service
	Job          job.Service
	Application  application.Service
	Comment      comment.Service
	Notification notification.Service
	Email        email.Service
	Dispatcher   *notification.EventDispatcher
	Relay        *notification.Relay
}

// NewServices wires every service. redis and minioClient may be nil.
func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	minioClient *minio.Client,
	verifier auth.Verifier,
	recorder metrics.Recorder,
	cfg *config.Config,
) *Services {
	emailService := email.NewService(cfg)
	dispatcher := notification.NewDispatcher(repos.Outbox, repos.Profile, emailService, recorder, cfg.DispatchConcurrency)

	var storage profile.ObjectStorage
	if minioClient != nil {
		storage = minioClient
	}

	return &Services{
		Gate:         auth.NewGate(verifier, repos.Profile),
		Profile:      profile.NewService(repos.Profile, storage, cfg),
		Job:          job.NewService(repos.Job),
		Application:  application.NewService(repos.Application, repos.Job, dispatcher),
		Comment:      comment.NewService(repos.Comment, repos.Job, dispatcher, redis, cfg.CommentCacheTTL),
		Notification: notification.NewService(repos.Notification),
		Email:        emailService,
		Dispatcher:   dispatcher,
		Relay:        notification.NewRelay(dispatcher, cfg.OutboxInterval, cfg.OutboxBatchSize),
	}
}
