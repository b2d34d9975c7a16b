package repositories

import "errors"

var (
	// ErrPatientNotFound is returned by write paths that need an existing patient.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrAppointmentNotFound is returned by write paths that need an existing appointment.
	ErrAppointmentNotFound = errors.New("appointment not found")
)
