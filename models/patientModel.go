package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID          string     `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	FirstName   string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string     `gorm:"column:last_name;not null;index" json:"last_name"`
	Email       string     `gorm:"column:email;not null;index" json:"email"`
	Phone       *string    `gorm:"column:phone" json:"phone"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patient"
}

// Age returns the patient's age in whole years at now, or nil when the date
// of birth is unknown.
func (p *Patient) Age(now time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := p.DateOfBirth.UTC()
	now = now.UTC()
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return &age
}

// Appointment model. The patient relation is one-directional: an appointment
// carries the foreign key, a patient's appointments are found by query.
type Appointment struct {
	ID                  string            `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	PatientID           string            `gorm:"column:patient_id;type:varchar(36);not null;index" json:"patient_id"`
	AppointmentDateTime time.Time         `gorm:"column:appointment_date_time;not null;index" json:"appointment_date_time"`
	Reason              string            `gorm:"column:reason;not null" json:"reason"`
	Status              AppointmentStatus `gorm:"column:status;type:varchar(16);check:status IN ('SCHEDULED', 'COMPLETED', 'CANCELLED', 'NO_SHOW');not null" json:"status"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient             *Patient          `gorm:"foreignKey:PatientID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}
