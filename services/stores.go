package services

import (
	"PatientDesk/models"
	"context"
)

// PatientStore persists patients. *repositories.PatientRepository satisfies it.
type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, changes *models.Patient) (*models.Patient, error)
	DeletePatientAndRelated(ctx context.Context, id string) ([]string, error)
}

// AppointmentStore persists appointments. *repositories.AppointmentRepository
// satisfies it.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetAll(ctx context.Context) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// AppointmentNotifier is told about every newly scheduled appointment.
type AppointmentNotifier interface {
	AppointmentScheduled(ctx context.Context, patient *models.Patient, appointment *models.Appointment) error
}
