package util

import "errors"

// Not found.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

// Conflicts with the current state of a record.
var (
	ErrEmailRegistered  = errors.New("email already registered")
	ErrQuizInactive     = errors.New("quiz is not active")
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	// ErrAttemptConflict is returned when another request took the same
	// attempt number first.
	ErrAttemptConflict = errors.New("attempt started concurrently, retry")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidation         = errors.New("validation failed")
	ErrStorage            = errors.New("storage failure")
)

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound)
}
