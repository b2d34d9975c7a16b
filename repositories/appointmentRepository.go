package repositories

import (
	"PatientDesk/cache"
	"PatientDesk/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewAppointmentRepository builds a repository over db. cache may be nil.
func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{db: db, cache: cache}
}

// Create resolves the referenced patient and inserts the appointment in the
// same transaction. It returns ErrPatientNotFound, and persists nothing, when
// the patient does not exist. On success appointment.Patient is set to the
// resolved patient.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	var patient models.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&patient, "id = ?", appointment.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}
		return tx.Omit(clause.Associations).Create(appointment).Error
	})
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return err
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	appointment.Patient = &patient

	invalidate(ctx, r.cache, appointmentsCacheKey, getPatientAppointmentsCacheKey(appointment.PatientID))
	return nil
}

// GetByID returns nil and no error when the appointment does not exist.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cacheKey := getAppointmentCacheKey(id)
	var appointment models.Appointment
	if cacheLoad(ctx, r.cache, cacheKey, &appointment) {
		return &appointment, nil
	}
	gen, fill := cacheGeneration(ctx, r.cache, cacheKey)

	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if fill {
		cacheStore(ctx, r.cache, cacheKey, gen, appointment)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var appointments []models.Appointment
	if cacheLoad(ctx, r.cache, appointmentsCacheKey, &appointments) {
		return appointments, nil
	}
	gen, fill := cacheGeneration(ctx, r.cache, appointmentsCacheKey)

	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all appointments: %w", err)
	}

	if fill {
		cacheStore(ctx, r.cache, appointmentsCacheKey, gen, appointments)
	}
	return appointments, nil
}

// ListByPatient returns the patient's appointments in creation order. An
// unknown patient yields an empty slice.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cacheKey := getPatientAppointmentsCacheKey(patientID)
	var appointments []models.Appointment
	if cacheLoad(ctx, r.cache, cacheKey, &appointments) {
		return appointments, nil
	}
	gen, fill := cacheGeneration(ctx, r.cache, cacheKey)

	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments for patient: %w", err)
	}

	if fill {
		cacheStore(ctx, r.cache, cacheKey, gen, appointments)
	}
	return appointments, nil
}

// UpdateStatus overwrites the status unconditionally and returns the stored
// appointment, or ErrAppointmentNotFound.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if err := tx.Model(&appointment).Update("status", status).Error; err != nil {
			return err
		}
		appointment.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	invalidate(ctx, r.cache,
		getAppointmentCacheKey(id),
		appointmentsCacheKey,
		getPatientAppointmentsCacheKey(appointment.PatientID),
	)
	return &appointment, nil
}

// Delete removes a single appointment, or returns ErrAppointmentNotFound.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id", "patient_id").First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		return tx.Delete(&models.Appointment{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	invalidate(ctx, r.cache,
		getAppointmentCacheKey(id),
		appointmentsCacheKey,
		getPatientAppointmentsCacheKey(appointment.PatientID),
	)
	return nil
}
