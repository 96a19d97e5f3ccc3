// Package validator wires go-playground/validator into echo and translates
// tag violations into the per-field messages the error contract expects.
package validator

import (
	"github.com/go-playground/validator/v10"

	domainerrors "roster/internal/domain/errors"
)

// CustomValidator adapts go-playground/validator to echo's Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

// New constructs the request validator.
func New() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate checks struct tags and converts violations into a single
// ValidationError carrying one human-readable message per broken rule.
// The core service is never invoked when this fails.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a tag violation; the struct itself was unusable.
		return domainerrors.NewValidationError([]string{"Invalid input provided"})
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, messageFor(fieldErr))
	}

	return domainerrors.NewValidationError(messages)
}

// messageFor maps one field violation to a user-facing message.
func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "Email":
		if fieldErr.Tag() == "required" {
			return "Email address is required"
		}

		return "Please enter a valid email address (for example: yourname@example.com)"
	case "Password":
		switch fieldErr.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 8 characters long for better security"
		case "max":
			return "Password must not exceed 128 characters. Please choose a shorter password"
		}
	}

	return "Invalid value for " + fieldErr.Field()
}
