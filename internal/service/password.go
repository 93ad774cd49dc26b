package service

import "unicode"

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 8

// ValidatePassword enforces the credential strength policy: minimum
// length plus at least one upper-case letter, lower-case letter, digit,
// and symbol. Returns a ValidationError describing the first failure.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return NewValidationError("password must contain an upper-case letter")
	case !hasLower:
		return NewValidationError("password must contain a lower-case letter")
	case !hasDigit:
		return NewValidationError("password must contain a digit")
	case !hasSymbol:
		return NewValidationError("password must contain a symbol")
	}

	return nil
}
