package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)

const uniqueViolation = "23505"

type Repositories struct {
	Profile      ProfileRepository
	Job          JobRepository
	Application  ApplicationRepository
	Comment      CommentRepository
	Notification NotificationRepository
	Outbox       OutboxRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Profile:      NewProfileRepository(db),
		Job:          NewJobRepository(db),
		Application:  NewApplicationRepository(db),
		Comment:      NewCommentRepository(db),
		Notification: NewNotificationRepository(db),
		Outbox:       NewOutboxRepository(db),
	}
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
