package service

import "errors"

// Auth flow errors. ErrInvalidOTP and ErrInvalidCredentials are deliberately
// generic; the registration errors are not.
var (
	ErrEmailRequired      = errors.New("email_required")
	ErrInvalidOTP         = errors.New("invalid_otp")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrEmailNotVerified   = errors.New("email_not_verified")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrPasswordRequired   = errors.New("password_required")
	ErrPasswordTooLong    = errors.New("password_too_long")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// Catalogue errors.
var (
	ErrCategoryNotFound     = errors.New("category_not_found")
	ErrCategoryNameRequired = errors.New("category_name_required")
	ErrCategoryExists       = errors.New("category_exists")
	ErrProductNotFound      = errors.New("product_not_found")
	ErrTooManyImages        = errors.New("too_many_images")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation_failed")
)

// ValidationError reports a single bad input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
