// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	validatorLib "github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator instance for Echo.
type EchoValidator struct {
	validate *validatorLib.Validate
}

// New creates an EchoValidator with struct tag validation enabled.
func New() *EchoValidator {
	return &EchoValidator{
		validate: validatorLib.New(validatorLib.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
