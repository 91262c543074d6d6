package userservice

import (
	"github.com/goliatone/go-errors"
)

// Stable machine readable codes carried in every problem response.
const (
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeInvalidToken     = "INVALID_TOKEN"
	TextCodeInvalidState     = "INVALID_STATE"
	TextCodeUserNotFound     = "USER_NOT_FOUND"
	TextCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"
	TextCodeValidationFailed = "VALIDATION_FAILED"
)

// ErrNoEmptyString is returned when a password to be hashed is empty
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrMismatchedHashAndPassword is the single failure for bad credentials.
// Unknown email and wrong password both collapse into it so login responses
// never reveal which emails are registered.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrInvalidToken is returned when a bearer token fails validation
var ErrInvalidToken = errors.New("invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken)

// ErrUserNotFound is the lookup miss for user id or email
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrDuplicateEmail is returned when registering an already known email
var ErrDuplicateEmail = errors.New("user already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail)

// IsNotFound reports whether err is a lookup miss
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}
