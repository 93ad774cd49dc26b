package service

import "errors"

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidAdminCredentials  = errors.New("invalid credentials")
	ErrPasswordsDoNotMatch      = errors.New("passwords do not match")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrInvalidOrderStatus       = errors.New("invalid order status")
)

// ValidationError reports a missing or invalid request field. Handlers
// map it to a 400 with the message exposed to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
