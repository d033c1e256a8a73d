package notification

import (
	"context"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/repository"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type Service interface {
	List(ctx context.Context, recipientID string, limit int) (*domain.NotificationList, error)
	MarkRead(ctx context.Context, recipientID string, input domain.MarkReadInput) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

// List returns the newest notifications plus the recipient's total unread
// count, which is queried separately so it is exact even when the page is
// truncated.
func (s *service) List(ctx context.Context, recipientID string, limit int) (*domain.NotificationList, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	notifications, err := s.notifRepo.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, domain.Internal("Failed to load notifications", err)
	}

	unread, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, domain.Internal("Failed to count unread notifications", err)
	}

	return &domain.NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead flips notifications to read. Explicit ids that do not belong to
// the recipient are ignored rather than rejected.
func (s *service) MarkRead(ctx context.Context, recipientID string, input domain.MarkReadInput) (int64, error) {
	if input.All {
		n, err := s.notifRepo.MarkAllRead(ctx, recipientID)
		if err != nil {
			return 0, domain.Internal("Failed to mark notifications read", err)
		}
		return n, nil
	}

	if len(input.IDs) == 0 {
		return 0, domain.InvalidArgument("Provide notification ids or set all to true")
	}

	n, err := s.notifRepo.MarkRead(ctx, recipientID, input.IDs)
	if err != nil {
		return 0, domain.Internal("Failed to mark notifications read", err)
	}
	return n, nil
}
