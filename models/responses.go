package models

import "time"

// PatientResponse is the wire representation of a patient.
type PatientResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	DateOfBirth *Date   `json:"dateOfBirth"`
	Age         *int    `json:"age,omitempty"`
}

// AppointmentResponse is the wire representation of an appointment.
type AppointmentResponse struct {
	ID                  string            `json:"id"`
	PatientID           string            `json:"patientId"`
	AppointmentDateTime LocalDateTime     `json:"appointmentDateTime"`
	Reason              string            `json:"reason"`
	Status              AppointmentStatus `json:"status"`
}

// ToResponse renders p, deriving age against now.
func (p *Patient) ToResponse(now time.Time) PatientResponse {
	resp := PatientResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Age:       p.Age(now),
	}
	if p.DateOfBirth != nil {
		dob := NewDate(*p.DateOfBirth)
		resp.DateOfBirth = &dob
	}
	return resp
}

func (a *Appointment) ToResponse() AppointmentResponse {
	return AppointmentResponse{
		ID:                  a.ID,
		PatientID:           a.PatientID,
		AppointmentDateTime: NewLocalDateTime(a.AppointmentDateTime),
		Reason:              a.Reason,
		Status:              a.Status,
	}
}
