package models

import (
	"fmt"
	"strings"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// AppointmentStatuses lists every representable status.
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseAppointmentStatus converts s into a status. Matching ignores case and
// surrounding whitespace.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	candidate := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid appointment status %q: must be one of SCHEDULED, COMPLETED, CANCELLED, NO_SHOW", s)
}

// Valid reports whether s is one of the enumerated statuses.
func (s AppointmentStatus) Valid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) String() string {
	return string(s)
}
