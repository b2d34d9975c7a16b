package services

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no record exists for the requested id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Resource, e.ID)
}

// ValidationError reports malformed or missing input. It is raised before
// anything is persisted.
type ValidationError struct {
	Err error
}

// NewValidationError wraps err as a validation failure.
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func patientNotFound(id string) error {
	return &NotFoundError{Resource: "Patient", ID: id}
}

func appointmentNotFound(id string) error {
	return &NotFoundError{Resource: "Appointment", ID: id}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
