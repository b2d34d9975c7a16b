package services

import (
	"PatientDesk/models"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const seedLockKey = "seed_lock"

// ErrSeedInProgress is returned when another process holds the seed lock.
var ErrSeedInProgress = errors.New("sample data seeding already in progress")

// Locker guards seeding across processes. *cache.Cache satisfies it.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Skipped      bool
	Patients     int
	Appointments int
}

// Seeder loads the sample patients and appointments through the services,
// so every record obeys the usual rules.
type Seeder struct {
	patients     *PatientService
	appointments *AppointmentService
	lock         Locker
	rand         *rand.Rand
	now          func() time.Time
}

func NewSeeder(patients *PatientService, appointments *AppointmentService, lock Locker, seed int64) *Seeder {
	return &Seeder{
		patients:     patients,
		appointments: appointments,
		lock:         lock,
		rand:         rand.New(rand.NewSource(seed)),
		now:          time.Now,
	}
}

type samplePatient struct {
	first, last, email, phone string
	dob                       time.Time
}

var samplePatients = []samplePatient{
	{"Emma", "Johnson", "emma.johnson@email.com", "555-0101", time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)},
	{"Michael", "Williams", "michael.williams@email.com", "555-0102", time.Date(1978, 7, 22, 0, 0, 0, 0, time.UTC)},
	{"Sophia", "Brown", "sophia.brown@email.com", "555-0103", time.Date(1992, 11, 8, 0, 0, 0, 0, time.UTC)},
	{"James", "Davis", "james.davis@email.com", "555-0104", time.Date(1965, 5, 30, 0, 0, 0, 0, time.UTC)},
	{"Olivia", "Miller", "olivia.miller@email.com", "555-0105", time.Date(1988, 9, 12, 0, 0, 0, 0, time.UTC)},
	{"William", "Wilson", "william.wilson@email.com", "555-0106", time.Date(1970, 2, 18, 0, 0, 0, 0, time.UTC)},
	{"Ava", "Moore", "ava.moore@email.com", "555-0107", time.Date(1995, 6, 25, 0, 0, 0, 0, time.UTC)},
	{"Benjamin", "Taylor", "benjamin.taylor@email.com", "555-0108", time.Date(1982, 12, 3, 0, 0, 0, 0, time.UTC)},
	{"Isabella", "Anderson", "isabella.anderson@email.com", "555-0109", time.Date(1990, 4, 17, 0, 0, 0, 0, time.UTC)},
	{"Lucas", "Thomas", "lucas.thomas@email.com", "555-0110", time.Date(1975, 8, 28, 0, 0, 0, 0, time.UTC)},
}

var sampleReasons = []string{
	"Annual physical examination",
	"Follow-up consultation",
	"Blood pressure check",
	"Diabetes management",
	"Flu vaccination",
	"General health check-up",
	"Chronic pain management",
	"Skin rash evaluation",
	"Respiratory infection",
	"Allergy consultation",
	"Prescription refill",
	"Mental health consultation",
	"Cardiovascular screening",
	"Post-surgery follow-up",
	"Nutrition counseling",
	"Physical therapy session",
	"Lab results review",
	"Medication adjustment",
	"Preventive care visit",
	"Minor injury treatment",
}

// Seed creates the sample data set. Without force it does nothing when any
// patient exists. With force it only adds sample patients whose email is not
// registered yet, together with their appointments.
func (s *Seeder) Seed(ctx context.Context, force bool) (SeedResult, error) {
	owner := uuid.NewString()
	locked, err := s.lock.AcquireLock(ctx, seedLockKey, owner, time.Minute)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	if !locked {
		return SeedResult{}, ErrSeedInProgress
	}
	defer func() {
		if err := s.lock.ReleaseLock(ctx, seedLockKey, owner); err != nil {
			log.Warn().Err(err).Msg("Failed to release seed lock")
		}
	}()

	count, err := s.patients.Count(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if count > 0 && !force {
		log.Info().Int64("patients", count).Msg("Database already contains data. Skipping initialization.")
		return SeedResult{Skipped: true}, nil
	}

	log.Info().Msg("Initializing database with sample data...")

	var created []string
	for _, sp := range samplePatients {
		if force {
			_, err := s.patients.FindByEmail(ctx, sp.email)
			if err == nil {
				continue
			}
			if !IsNotFound(err) {
				return SeedResult{}, err
			}
		}

		phone := sp.phone
		dob := models.NewDate(sp.dob)
		resp, err := s.patients.Create(ctx, models.PatientRequest{
			FirstName:   sp.first,
			LastName:    sp.last,
			Email:       sp.email,
			Phone:       &phone,
			DateOfBirth: &dob,
		})
		if err != nil {
			return SeedResult{}, fmt.Errorf("failed to seed patient %s: %w", sp.email, err)
		}
		created = append(created, resp.ID)
	}

	result := SeedResult{Patients: len(created)}
	if len(created) == 0 {
		return result, nil
	}

	now := s.now().UTC().Truncate(time.Minute)
	minutes := []int{0, 15, 30, 45}
	for i, reason := range sampleReasons {
		patientID := created[i%len(created)]

		// Mix of past, near-future and farther-future appointments.
		var daysOffset int
		switch {
		case i < 7:
			daysOffset = -(1 + s.rand.Intn(30))
		case i < 14:
			daysOffset = 1 + s.rand.Intn(30)
		default:
			daysOffset = 31 + s.rand.Intn(60)
		}
		day := now.AddDate(0, 0, daysOffset)
		when := time.Date(day.Year(), day.Month(), day.Day(), 9+s.rand.Intn(9), minutes[s.rand.Intn(len(minutes))], 0, 0, time.UTC)
		at := models.NewLocalDateTime(when)

		appointment, err := s.appointments.Create(ctx, models.AppointmentRequest{
			PatientID:           patientID,
			AppointmentDateTime: &at,
			Reason:              reason,
		})
		if err != nil {
			return result, fmt.Errorf("failed to seed appointment %q: %w", reason, err)
		}

		// Past appointments get varied outcomes, future ones stay scheduled.
		if daysOffset < 0 {
			status := models.AppointmentStatuses[s.rand.Intn(len(models.AppointmentStatuses))]
			if status != models.StatusScheduled {
				if _, err := s.appointments.UpdateStatus(ctx, appointment.ID, string(status)); err != nil {
					return result, err
				}
			}
		}
		result.Appointments++
	}

	log.Info().Int("patients", result.Patients).Int("appointments", result.Appointments).Msg("Database initialization completed successfully!")
	return result, nil
}
