package services

import (
	"PatientDesk/models"
	"PatientDesk/repositories"
	"PatientDesk/utils"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type PatientService struct {
	repository PatientStore
	ids        utils.IDAllocator
	now        func() time.Time
}

func NewPatientService(repository PatientStore, ids utils.IDAllocator) *PatientService {
	return &PatientService{repository: repository, ids: ids, now: time.Now}
}

// Create validates the request and stores a new patient under a fresh id.
// Email addresses are not required to be unique.
func (s *PatientService) Create(ctx context.Context, req models.PatientRequest) (models.PatientResponse, error) {
	if err := req.Validate(); err != nil {
		return models.PatientResponse{}, NewValidationError(err)
	}

	patient := patientFromRequest(req)
	patient.ID = s.ids.NewID()
	if err := s.repository.Create(ctx, patient); err != nil {
		return models.PatientResponse{}, err
	}

	log.Info().Str("patient_id", patient.ID).Msg("Patient created")
	return patient.ToResponse(s.now()), nil
}

func (s *PatientService) Get(ctx context.Context, id string) (models.PatientResponse, error) {
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return models.PatientResponse{}, err
	}
	if patient == nil {
		return models.PatientResponse{}, patientNotFound(id)
	}
	return patient.ToResponse(s.now()), nil
}

func (s *PatientService) List(ctx context.Context) ([]models.PatientResponse, error) {
	patients, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]models.PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, patients[i].ToResponse(now))
	}
	return out, nil
}

// Update replaces every mutable field with the request's values; there are
// no partial updates.
func (s *PatientService) Update(ctx context.Context, id string, req models.PatientRequest) (models.PatientResponse, error) {
	if err := req.Validate(); err != nil {
		return models.PatientResponse{}, NewValidationError(err)
	}

	patient, err := s.repository.Update(ctx, id, patientFromRequest(req))
	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			return models.PatientResponse{}, patientNotFound(id)
		}
		return models.PatientResponse{}, err
	}
	return patient.ToResponse(s.now()), nil
}

// Delete removes the patient together with all of its appointments.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	removed, err := s.repository.DeletePatientAndRelated(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			return patientNotFound(id)
		}
		return err
	}

	log.Info().Str("patient_id", id).Int("appointments_removed", len(removed)).Msg("Patient deleted")
	return nil
}

// FindByEmail returns the first patient registered with email.
func (s *PatientService) FindByEmail(ctx context.Context, email string) (models.PatientResponse, error) {
	patient, err := s.repository.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return models.PatientResponse{}, err
	}
	if patient == nil {
		return models.PatientResponse{}, &NotFoundError{Resource: "Patient", ID: email}
	}
	return patient.ToResponse(s.now()), nil
}

func (s *PatientService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}

func patientFromRequest(req models.PatientRequest) *models.Patient {
	patient := &models.Patient{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
	}
	if req.DateOfBirth != nil {
		dob := models.NewDate(req.DateOfBirth.Time).Time
		patient.DateOfBirth = &dob
	}
	return patient
}
