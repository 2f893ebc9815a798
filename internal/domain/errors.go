package domain

import "errors"

var (
	// ErrEmailTaken is returned when registration hits an existing email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates a user id from a token no longer resolves.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound indicates a quiz id does not resolve to a stored quiz.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoAnswers is returned when a student has no recorded answers yet.
	ErrNoAnswers = errors.New("no answers found")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}
