package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes a caller is expected to branch on.
var (
	// ErrAgeGroupRequired is the hard validation error raised when a
	// prescription is requested before the age group was captured.
	ErrAgeGroupRequired = errors.New("age group not specified")

	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned on registration with an existing name.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned on a failed login. The message is
	// deliberately generic; callers must not reveal which field was wrong.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrSessionFinished is returned when an answer arrives after the
	// dialogue reached its terminal state and before a reset.
	ErrSessionFinished = errors.New("session is finished; reset to start over")

	// ErrNoSelectionTimestamp is returned when a history selection does
	// not contain a parseable bracketed timestamp.
	ErrNoSelectionTimestamp = errors.New("no valid [YYYY-MM-DD HH:MM:SS] timestamp in selection")
)

// ValidationError reports a malformed input field. Validation errors are
// surfaced to the user and leave session state unchanged.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}
