package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHTTPStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Unauthenticated("x"), http.StatusUnauthorized},
		{PreconditionFailed("x"), http.StatusForbidden},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{InvalidArgument("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Internal("x", nil), http.StatusInternalServerError},
		{PreconditionFailed("closed").WithStatus(http.StatusBadRequest), http.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), string(tc.err.Kind))
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading job: %w", NotFound("Job not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to load job", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to load job: connection refused", err.Error())
}
