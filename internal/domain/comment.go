package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Comment is either top-level (no parent) or a reply to a top-level comment.
type Comment struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	JobID           uuid.UUID      `json:"jobId" db:"job_id"`
	AuthorID        string         `json:"authorId" db:"author_id"`
	AuthorName      string         `json:"authorName" db:"author_name"`
	AuthorImage     *string        `json:"authorImage,omitempty" db:"author_image"`
	AuthorRole      Role           `json:"authorRole" db:"author_role"`
	Content         string         `json:"content" db:"content"`
	Mentions        pq.StringArray `json:"mentions" db:"mentions"`
	ParentCommentID *uuid.UUID     `json:"parentCommentId" db:"parent_comment_id"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

type CreateCommentInput struct {
	JobID           uuid.UUID  `json:"jobId"`
	Content         string     `json:"content" validate:"max=5000"`
	Mentions        []string   `json:"mentions" validate:"max=20,dive,max=128"`
	ParentCommentID *uuid.UUID `json:"parentCommentId"`
}
