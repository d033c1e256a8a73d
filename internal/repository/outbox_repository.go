package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devsa-jobs/internal/domain"
)

// OutboxRepository turns pending notification events into notifications.
// Events are written by the other repositories inside their own
// transactions via insertEvents.
type OutboxRepository interface {
	Deliver(ctx context.Context, eventID uuid.UUID) (*domain.Notification, error)
	ListPending(ctx context.Context, limit, maxAttempts int) ([]domain.NotificationEvent, error)
	MarkFailed(ctx context.Context, eventID uuid.UUID, reason string) error
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewOutboxRepository(db *sqlx.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func insertEvents(ctx context.Context, tx *sqlx.Tx, events []domain.NotificationEvent) error {
	query := `
		INSERT INTO notification_events (id, recipient_id, type, title, body, link, source_id, source_name, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	for i := range events {
		ev := &events[i]
		if err := tx.QueryRowxContext(ctx, query,
			ev.ID, ev.RecipientID, ev.Type, ev.Title, ev.Body, ev.Link, ev.SourceID, ev.SourceName, ev.ReferenceID,
		).Scan(&ev.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// Deliver creates the notification for a pending event and marks the event
// processed. It returns nil without error when the event was already
// delivered or is being delivered by another worker.
func (r *outboxRepository) Deliver(ctx context.Context, eventID uuid.UUID) (*domain.Notification, error) {
	var delivered *domain.Notification

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var ev domain.NotificationEvent
		lockQuery := `
			SELECT * FROM notification_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`
		err := tx.GetContext(ctx, &ev, lockQuery, eventID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		notif := &domain.Notification{
			ID:          uuid.New(),
			EventID:     ev.ID,
			RecipientID: ev.RecipientID,
			Type:        ev.Type,
			Title:       ev.Title,
			Body:        ev.Body,
			Link:        ev.Link,
			SourceID:    ev.SourceID,
			SourceName:  ev.SourceName,
			ReferenceID: ev.ReferenceID,
		}

		insertQuery := `
			INSERT INTO notifications (id, event_id, recipient_id, type, title, body, link, source_id, source_name, reference_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (event_id) DO NOTHING
			RETURNING created_at`
		err = tx.QueryRowxContext(ctx, insertQuery,
			notif.ID, notif.EventID, notif.RecipientID, notif.Type, notif.Title, notif.Body,
			notif.Link, notif.SourceID, notif.SourceName, notif.ReferenceID,
		).Scan(&notif.CreatedAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			notif = nil
		case err != nil:
			return err
		}

		markQuery := `UPDATE notification_events SET processed_at = NOW(), attempts = attempts + 1, last_error = NULL WHERE id = $1`
		if _, err := tx.ExecContext(ctx, markQuery, ev.ID); err != nil {
			return err
		}

		delivered = notif
		return nil
	})

	return delivered, err
}

func (r *outboxRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]domain.NotificationEvent, error) {
	events := []domain.NotificationEvent{}
	query := `
		SELECT * FROM notification_events
		WHERE processed_at IS NULL AND attempts < $2
		ORDER BY created_at
		LIMIT $1`
	err := r.db.SelectContext(ctx, &events, query, limit, maxAttempts)
	return events, err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, eventID uuid.UUID, reason string) error {
	query := `UPDATE notification_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1 AND processed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, eventID, reason)
	return err
}
