package domain

import (
	"errors"
	"net/http"
)

type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindPreconditionFailed ErrorKind = "PRECONDITION_FAILED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindInvalidArgument    ErrorKind = "INVALID_ARGUMENT"
	KindConflict           ErrorKind = "CONFLICT"
	KindInternal           ErrorKind = "INTERNAL"
)

// Error is the error type returned by services. Status overrides the
// default HTTP status of the kind when set.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.HTTPStatus()
}

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPreconditionFailed, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Unauthenticated(message string) *Error {
	return NewError(KindUnauthenticated, message)
}

func PreconditionFailed(message string) *Error {
	return NewError(KindPreconditionFailed, message)
}

func Forbidden(message string) *Error {
	return NewError(KindForbidden, message)
}

func NotFound(message string) *Error {
	return NewError(KindNotFound, message)
}

func InvalidArgument(message string) *Error {
	return NewError(KindInvalidArgument, message)
}

func Conflict(message string) *Error {
	return NewError(KindConflict, message)
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, treating anything that is not an *Error
// as internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
