package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"devsa-jobs/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment, events []domain.NotificationEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error)
	// Delete removes the comment together with its replies and returns the
	// number of rows removed.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment, events []domain.NotificationEvent) error {
	if comment.Mentions == nil {
		comment.Mentions = pq.StringArray{}
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO comments (id, job_id, author_id, author_name, author_image, author_role, content, mentions, parent_comment_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at`

		if err := tx.QueryRowxContext(ctx, query,
			comment.ID, comment.JobID, comment.AuthorID, comment.AuthorName, comment.AuthorImage,
			comment.AuthorRole, comment.Content, comment.Mentions, comment.ParentCommentID,
		).Scan(&comment.CreatedAt); err != nil {
			return err
		}

		return insertEvents(ctx, tx, events)
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByJob returns comments in storage order; callers sort.
func (r *commentRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	query := `SELECT * FROM comments WHERE job_id = $1`
	err := r.db.SelectContext(ctx, &comments, query, jobID)
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM comments WHERE id = $1 OR parent_comment_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
