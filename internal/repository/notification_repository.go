package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"devsa-jobs/internal/domain"
)

type NotificationRepository interface {
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead flips only the given ids that belong to recipientID.
	MarkRead(ctx context.Context, recipientID string, ids []uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &notifications, query, recipientID, limit)
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, ids []uuid.UUID) (int64, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `
		UPDATE notifications SET read = true, read_at = NOW()
		WHERE recipient_id = $1 AND id = ANY($2::uuid[]) AND read = false`
	res, err := r.db.ExecContext(ctx, query, recipientID, pq.Array(raw))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	query := `UPDATE notifications SET read = true, read_at = NOW() WHERE recipient_id = $1 AND read = false`
	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
