package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo allows draft -> published -> closed and draft -> closed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusDraft:
		return next == JobStatusPublished || next == JobStatusClosed
	case JobStatusPublished:
		return next == JobStatusClosed
	default:
		return false
	}
}

type JobListing struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Slug           string    `json:"slug" db:"slug"`
	CompanyName    string    `json:"companyName" db:"company_name"`
	Description    string    `json:"description" db:"description"`
	Location       *string   `json:"location,omitempty" db:"location"`
	AuthorID       string    `json:"authorId" db:"author_id"`
	Status         JobStatus `json:"status" db:"status"`
	ApplicantCount int       `json:"applicantCount" db:"applicant_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

func (j *JobListing) AcceptsApplications() bool {
	return j.Status == JobStatusPublished
}

type CreateJobInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	CompanyName string  `json:"companyName" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=20000"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

type UpdateJobStatusInput struct {
	Status JobStatus `json:"status" validate:"required,oneof=draft published closed"`
}

type SavedJob struct {
	SubjectID string    `json:"subjectId" db:"subject_id"`
	JobID     uuid.UUID `json:"jobId" db:"job_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
