package services

import (
	"PatientDesk/models"
	"PatientDesk/repositories"
	"PatientDesk/utils"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// notifyTimeout bounds a single confirmation delivery.
const notifyTimeout = 30 * time.Second

type AppointmentService struct {
	repository AppointmentStore
	ids        utils.IDAllocator
	notifier   AppointmentNotifier
	pending    sync.WaitGroup
}

func NewAppointmentService(repository AppointmentStore, ids utils.IDAllocator) *AppointmentService {
	return &AppointmentService{repository: repository, ids: ids}
}

// SetNotifier attaches an optional notifier invoked in the background after
// each successful Create.
func (s *AppointmentService) SetNotifier(n AppointmentNotifier) {
	s.notifier = n
}

// Create schedules an appointment for an existing patient. A missing patient
// is reported as NotFound and nothing is stored.
func (s *AppointmentService) Create(ctx context.Context, req models.AppointmentRequest) (models.AppointmentResponse, error) {
	if err := req.Validate(); err != nil {
		return models.AppointmentResponse{}, NewValidationError(err)
	}

	appointment := &models.Appointment{
		ID:                  s.ids.NewID(),
		PatientID:           strings.TrimSpace(req.PatientID),
		AppointmentDateTime: req.AppointmentDateTime.UTC(),
		Reason:              strings.TrimSpace(req.Reason),
		Status:              models.StatusScheduled,
	}
	if err := s.repository.Create(ctx, appointment); err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			return models.AppointmentResponse{}, patientNotFound(appointment.PatientID)
		}
		return models.AppointmentResponse{}, err
	}

	log.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Msg("Appointment scheduled")

	s.notify(ctx, appointment)
	return appointment.ToResponse(), nil
}

// notify delivers the confirmation in the background so Create does not
// wait on the mail server. Failures are only logged; the appointment is
// already committed.
func (s *AppointmentService) notify(ctx context.Context, appointment *models.Appointment) {
	if s.notifier == nil {
		return
	}
	patient := appointment.Patient
	scheduled := *appointment
	scheduled.Patient = nil

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.notifier.AppointmentScheduled(ctx, patient, &scheduled); err != nil {
			log.Warn().Err(err).Str("appointment_id", scheduled.ID).Msg("Failed to send appointment confirmation")
		}
	}()
}

// Wait blocks until every background notification has finished.
func (s *AppointmentService) Wait() {
	s.pending.Wait()
}

func (s *AppointmentService) Get(ctx context.Context, id string) (models.AppointmentResponse, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return models.AppointmentResponse{}, err
	}
	if appointment == nil {
		return models.AppointmentResponse{}, appointmentNotFound(id)
	}
	return appointment.ToResponse(), nil
}

func (s *AppointmentService) List(ctx context.Context) ([]models.AppointmentResponse, error) {
	appointments, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

// ListByPatient does not check that the patient exists; an unknown id
// yields an empty list.
func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]models.AppointmentResponse, error) {
	appointments, err := s.repository.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

// UpdateStatus overwrites the status with any of the enumerated values.
// Transitions are not restricted; a completed appointment may be reopened.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, rawStatus string) (models.AppointmentResponse, error) {
	status, err := models.ParseAppointmentStatus(rawStatus)
	if err != nil {
		return models.AppointmentResponse{}, NewValidationError(err)
	}

	appointment, err := s.repository.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			return models.AppointmentResponse{}, appointmentNotFound(id)
		}
		return models.AppointmentResponse{}, err
	}
	return appointment.ToResponse(), nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			return appointmentNotFound(id)
		}
		return err
	}
	return nil
}

func toAppointmentResponses(appointments []models.Appointment) []models.AppointmentResponse {
	out := make([]models.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, appointments[i].ToResponse())
	}
	return out
}
