package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/pkg/i18n"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/helpers"
	"devsa-jobs/internal/service/notification"
)

const defaultCacheTTL = 5 * time.Minute

type Service interface {
	List(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error)
	Add(ctx context.Context, actor *domain.Actor, input domain.CreateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, actor *domain.Actor, commentID uuid.UUID) error
}

type service struct {
	commentRepo repository.CommentRepository
	jobRepo     repository.JobRepository
	dispatcher  notification.Dispatcher
	redis       *redis.Client
	cacheTTL    time.Duration
}

// NewService builds the comment workflow. redis may be nil, which disables
// the list cache.
func NewService(
	commentRepo repository.CommentRepository,
	jobRepo repository.JobRepository,
	dispatcher notification.Dispatcher,
	redis *redis.Client,
	cacheTTL time.Duration,
) Service {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &service{
		commentRepo: commentRepo,
		jobRepo:     jobRepo,
		dispatcher:  dispatcher,
		redis:       redis,
		cacheTTL:    cacheTTL,
	}
}

func generationKey(jobID uuid.UUID) string {
	return fmt.Sprintf("comments:job:%s:gen", jobID)
}

func cacheKey(jobID uuid.UUID, generation int64) string {
	return fmt.Sprintf("comments:job:%s:%d", jobID, generation)
}

// List returns the listing's comments oldest first. Sorting happens here so
// storage needs no composite index.
func (s *service) List(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error) {
	if jobID == uuid.Nil {
		return nil, domain.InvalidArgument("jobId is required")
	}

	generation, cached := s.cachedGeneration(ctx, jobID)
	if cached {
		if payload, err := s.redis.Get(ctx, cacheKey(jobID, generation)).Bytes(); err == nil {
			var comments []domain.Comment
			if json.Unmarshal(payload, &comments) == nil {
				return comments, nil
			}
		}
	}

	if _, err := s.visibleJob(ctx, jobID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Internal("Failed to load comments", err)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	// A write that lands after the generation was read bumps it, so this
	// snapshot is stored under a key nobody reads again.
	if cached {
		if payload, err := json.Marshal(comments); err == nil {
			_ = s.redis.Set(ctx, cacheKey(jobID, generation), payload, s.cacheTTL).Err()
		}
	}

	return comments, nil
}

// cachedGeneration reports the listing's cache generation and whether the
// cache can be used at all.
func (s *service) cachedGeneration(ctx context.Context, jobID uuid.UUID) (int64, bool) {
	if s.redis == nil {
		return 0, false
	}
	generation, err := s.redis.Get(ctx, generationKey(jobID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return generation, true
}

// visibleJob loads the listing for a public comment operation. Drafts are
// reported as missing, like job.Get does for non-owners.
func (s *service) visibleJob(ctx context.Context, jobID uuid.UUID) (*domain.JobListing, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, domain.Internal("Failed to load job", err)
	}
	if job == nil || job.Status == domain.JobStatusDraft {
		return nil, domain.NotFound("Job not found")
	}
	return job, nil
}

func (s *service) Add(ctx context.Context, actor *domain.Actor, input domain.CreateCommentInput) (*domain.Comment, error) {
	content := helpers.PlainText(input.Content)
	if input.JobID == uuid.Nil || content == "" {
		return nil, domain.InvalidArgument("jobId and content are required")
	}

	job, jobErr := s.jobRepo.GetByID(ctx, input.JobID)
	if jobErr == nil && (job == nil || job.Status == domain.JobStatusDraft) {
		return nil, domain.NotFound("Job not found")
	}
	if jobErr != nil {
		// The comment still goes through; only the owner notification is lost.
		slog.Warn("failed to load job for comment notification", slog.String("job_id", input.JobID.String()), slog.Any("error", jobErr))
	}

	if input.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, domain.Internal("Failed to load parent comment", err)
		}
		if parent == nil || parent.JobID != input.JobID || parent.IsReply() {
			return nil, domain.InvalidArgument("Replies must target a top-level comment on the same job")
		}
	}

	comment := &domain.Comment{
		ID:              uuid.New(),
		JobID:           input.JobID,
		AuthorID:        actor.SubjectID,
		AuthorName:      actor.DisplayName(),
		AuthorRole:      actor.Role(),
		Content:         content,
		Mentions:        helpers.UniqueIDs(input.Mentions),
		ParentCommentID: input.ParentCommentID,
	}
	if actor.Profile != nil {
		comment.AuthorImage = actor.Profile.ProfileImage
	}

	events := s.commentEvents(actor, job, comment)

	if err := s.commentRepo.Create(ctx, comment, events); err != nil {
		return nil, domain.Internal("Failed to create comment", err)
	}

	s.invalidate(ctx, comment.JobID)
	s.dispatcher.Dispatch(ctx, events)

	return comment, nil
}

// commentEvents notifies the listing owner and every mentioned user, never
// the commenter.
func (s *service) commentEvents(actor *domain.Actor, job *domain.JobListing, comment *domain.Comment) []domain.NotificationEvent {
	var events []domain.NotificationEvent
	link := fmt.Sprintf("/jobs/%s#comment-%s", comment.JobID, comment.ID)
	excerpt := helpers.Excerpt(comment.Content, 140)

	if job != nil {
		if ev := domain.NewNotificationEvent(actor, job.AuthorID, domain.NotifComment,
			i18n.T("comment.title", job.Title), excerpt, link, comment.ID.String(),
		); ev != nil {
			events = append(events, *ev)
		}
	}

	for _, mentioned := range comment.Mentions {
		if ev := domain.NewNotificationEvent(actor, mentioned, domain.NotifMention,
			i18n.T("mention.title", comment.AuthorName), excerpt, link, comment.ID.String(),
		); ev != nil {
			events = append(events, *ev)
		}
	}

	return events
}

// Delete removes a comment and, for a top-level comment, its replies.
func (s *service) Delete(ctx context.Context, actor *domain.Actor, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.Internal("Failed to load comment", err)
	}
	if comment == nil {
		return domain.NotFound("Comment not found")
	}

	if !actor.Owns(comment.AuthorID) {
		return domain.Forbidden("You can only delete your own comments")
	}

	removed, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return domain.Internal("Failed to delete comment", err)
	}

	s.invalidate(ctx, comment.JobID)

	slog.Info("comment deleted",
		slog.String("comment_id", commentID.String()),
		slog.String("actor_id", actor.SubjectID),
		slog.Int64("rows", removed),
	)
	return nil
}

// invalidate moves the listing to a new cache generation. Snapshots cached
// under older generations are never read again and expire on their own.
func (s *service) invalidate(ctx context.Context, jobID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, generationKey(jobID)).Err(); err != nil {
		slog.Warn("failed to invalidate comment cache", slog.String("job_id", jobID.String()), slog.Any("error", err))
	}
}
