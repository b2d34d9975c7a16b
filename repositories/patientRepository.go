package repositories

import (
	"PatientDesk/cache"
	"PatientDesk/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewPatientRepository builds a repository over db. cache may be nil.
func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(patient).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	invalidate(ctx, r.cache, patientsCacheKey)
	return nil
}

// GetByID returns nil and no error when the patient does not exist.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cacheKey := getPatientCacheKey(id)
	var patient models.Patient
	if cacheLoad(ctx, r.cache, cacheKey, &patient) {
		return &patient, nil
	}
	gen, fill := cacheGeneration(ctx, r.cache, cacheKey)

	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if fill {
		cacheStore(ctx, r.cache, cacheKey, gen, patient)
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var patients []models.Patient
	if cacheLoad(ctx, r.cache, patientsCacheKey, &patients) {
		return patients, nil
	}
	gen, fill := cacheGeneration(ctx, r.cache, patientsCacheKey)

	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	if fill {
		cacheStore(ctx, r.cache, patientsCacheKey, gen, patients)
	}
	return patients, nil
}

// FindByEmail returns the earliest patient registered with email, or nil.
// Emails are not unique.
func (r *PatientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var patient models.Patient
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at ASC").First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find patient by email: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

// Update replaces every mutable field of the patient identified by id with
// the values in changes and returns the stored result. It returns
// ErrPatientNotFound when there is no such patient.
func (r *PatientRepository) Update(ctx context.Context, id string, changes *models.Patient) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&patient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		// Select forces nil phone and date of birth to be written as well.
		err := tx.Model(&patient).
			Select("first_name", "last_name", "email", "phone", "date_of_birth").
			Updates(models.Patient{
				FirstName:   changes.FirstName,
				LastName:    changes.LastName,
				Email:       changes.Email,
				Phone:       changes.Phone,
				DateOfBirth: changes.DateOfBirth,
			}).Error
		if err != nil {
			return err
		}
		return tx.First(&patient, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	invalidate(ctx, r.cache, getPatientCacheKey(id), patientsCacheKey)
	return &patient, nil
}

// DeletePatientAndRelated removes the patient and every appointment that
// references it in one transaction. It returns the ids of the removed
// appointments, or ErrPatientNotFound.
func (r *PatientRepository) DeletePatientAndRelated(ctx context.Context, id string) ([]string, error) {
	var appointmentIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.Select("id").First(&patient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		if err := tx.Model(&models.Appointment{}).Where("patient_id = ?", id).Pluck("id", &appointmentIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Patient{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete patient: %w", err)
	}

	keys := []string{
		getPatientCacheKey(id),
		getPatientAppointmentsCacheKey(id),
		patientsCacheKey,
		appointmentsCacheKey,
	}
	for _, appointmentID := range appointmentIDs {
		keys = append(keys, getAppointmentCacheKey(appointmentID))
	}
	invalidate(ctx, r.cache, keys...)
	return appointmentIDs, nil
}
