package service

import "errors"

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrForbidden      = errors.New("forbidden: note does not belong to user")
	ErrUserIDRequired = errors.New("user id is required")
	ErrTokenExists    = errors.New("token already issued")
)

const (
	MsgTitleRequired  = "Title is required"
	MsgTitleTooLong   = "Title must not exceed 80 characters"
	MsgBodyTooLong    = "Body must not exceed 500 characters"
	MsgNoUpdateFields = "No updatable fields provided"
)

// ValidationError carries one of the fixed user-facing messages above.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
