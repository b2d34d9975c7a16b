package models

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var errBlank = errors.New("must not be blank")

// PatientRequest is the body of patient create and update calls. Update
// replaces every field, so an omitted optional field clears it.
type PatientRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	DateOfBirth *Date   `json:"dateOfBirth"`
}

// Validate checks the required patient fields.
func (r PatientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.By(notBlank), validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.By(notBlank), validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// AppointmentRequest is the body of an appointment create call.
type AppointmentRequest struct {
	PatientID           string         `json:"patientId"`
	AppointmentDateTime *LocalDateTime `json:"appointmentDateTime"`
	Reason              string         `json:"reason"`
}

// Validate checks the required appointment fields.
func (r AppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required, validation.By(notBlank)),
		validation.Field(&r.AppointmentDateTime, validation.NotNil),
		validation.Field(&r.Reason, validation.Required, validation.By(notBlank), validation.Length(1, 500)),
	)
}

// notBlank rejects strings made only of whitespace.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}
