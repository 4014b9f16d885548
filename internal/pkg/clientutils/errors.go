package clientutils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindUnavailable  ErrorKind = "UNAVAILABLE"
	KindServer       ErrorKind = "SERVER_ERROR"
	KindPrecondition ErrorKind = "PRECONDITION"
	KindCancelled    ErrorKind = "CANCELLED"
)

// AppError is the single error type crossing the client's operation
// boundaries. Message is safe to show to the user.
type AppError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Status: http.StatusNotFound}
}

func NewUnavailableError(message string, err error) *AppError {
	return &AppError{Kind: KindUnavailable, Message: message, Err: err}
}

func NewServerError(status int, message string) *AppError {
	return &AppError{Kind: KindServer, Message: message, Status: status}
}

func NewPreconditionError(message string) *AppError {
	return &AppError{Kind: KindPrecondition, Message: message}
}

func NewCancelledError(message string) *AppError {
	return &AppError{Kind: KindCancelled, Message: message}
}

// FromStatus maps a non-2xx backend status to the client taxonomy.
func FromStatus(status int, detail string) *AppError {
	if detail == "" {
		detail = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AppError{Kind: KindUnauthorized, Message: detail, Status: status}
	case http.StatusNotFound:
		return &AppError{Kind: KindNotFound, Message: detail, Status: status}
	default:
		return NewServerError(status, detail)
	}
}

// KindOf returns the kind of the first AppError in err's chain, or an empty
// kind when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// UserMessage is the text shown in a notification for err.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
