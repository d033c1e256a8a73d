package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationViewed      ApplicationStatus = "viewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// IsReviewOutcome reports whether a hiring user may set this status.
func (s ApplicationStatus) IsReviewOutcome() bool {
	switch s {
	case ApplicationViewed, ApplicationShortlisted, ApplicationRejected:
		return true
	}
	return false
}

// Application snapshots the job title and applicant details at submission
// time; later edits to the listing or profile do not change it.
type Application struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	JobID          uuid.UUID         `json:"jobId" db:"job_id"`
	JobTitle       string            `json:"jobTitle" db:"job_title"`
	ApplicantID    string            `json:"applicantId" db:"applicant_id"`
	ApplicantName  string            `json:"applicantName" db:"applicant_name"`
	ApplicantEmail string            `json:"applicantEmail" db:"applicant_email"`
	CoverNote      string            `json:"coverNote" db:"cover_note"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

type SubmitApplicationInput struct {
	JobID     uuid.UUID `json:"jobId" validate:"required"`
	CoverNote string    `json:"coverNote" validate:"max=5000"`
}

type UpdateApplicationStatusInput struct {
	ApplicationID uuid.UUID         `json:"applicationId" validate:"required"`
	Status        ApplicationStatus `json:"status"`
}
