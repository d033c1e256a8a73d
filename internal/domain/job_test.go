package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	assert.True(t, JobStatusDraft.CanTransitionTo(JobStatusPublished))
	assert.True(t, JobStatusDraft.CanTransitionTo(JobStatusClosed))
	assert.True(t, JobStatusPublished.CanTransitionTo(JobStatusClosed))

	assert.False(t, JobStatusPublished.CanTransitionTo(JobStatusDraft))
	assert.False(t, JobStatusClosed.CanTransitionTo(JobStatusPublished))
	assert.False(t, JobStatusClosed.CanTransitionTo(JobStatusDraft))
	assert.False(t, JobStatusDraft.CanTransitionTo(JobStatusDraft))
}

func TestApplicationStatusReviewOutcome(t *testing.T) {
	assert.True(t, ApplicationViewed.IsReviewOutcome())
	assert.True(t, ApplicationShortlisted.IsReviewOutcome())
	assert.True(t, ApplicationRejected.IsReviewOutcome())
	assert.False(t, ApplicationSubmitted.IsReviewOutcome())
	assert.False(t, ApplicationStatus("hired").IsReviewOutcome())
}
