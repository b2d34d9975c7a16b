package services

import (
	"PatientDesk/models"
	"PatientDesk/repositories"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// memoryStore backs both store interfaces with maps, enforcing the same
// referential rules as the GORM repositories.
type memoryStore struct {
	mu           sync.Mutex
	patients     map[string]*models.Patient
	appointments map[string]*models.Appointment
	order        []string
	clock        time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		patients:     map[string]*models.Patient{},
		appointments: map[string]*models.Appointment{},
		clock:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memoryPatients struct{ *memoryStore }

type memoryAppointments struct{ *memoryStore }

func (m memoryPatients) Create(_ context.Context, p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.CreatedAt = m.tick()
	m.patients[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m memoryPatients) GetByID(_ context.Context, id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m memoryPatients) GetAll(_ context.Context) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Patient
	for _, id := range m.order {
		if p, ok := m.patients[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m memoryPatients) FindByEmail(_ context.Context, email string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		if p, ok := m.patients[id]; ok && p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memoryPatients) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.patients)), nil
}

func (m memoryPatients) Update(_ context.Context, id string, changes *models.Patient) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, repositories.ErrPatientNotFound
	}
	p.FirstName = changes.FirstName
	p.LastName = changes.LastName
	p.Email = changes.Email
	p.Phone = changes.Phone
	p.DateOfBirth = changes.DateOfBirth
	cp := *p
	return &cp, nil
}

func (m memoryPatients) DeletePatientAndRelated(_ context.Context, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[id]; !ok {
		return nil, repositories.ErrPatientNotFound
	}
	var removed []string
	for aid, a := range m.appointments {
		if a.PatientID == id {
			removed = append(removed, aid)
			delete(m.appointments, aid)
		}
	}
	delete(m.patients, id)
	return removed, nil
}

func (m memoryAppointments) Create(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[a.PatientID]
	if !ok {
		return fmt.Errorf("create appointment: %w", repositories.ErrPatientNotFound)
	}
	cp := *a
	cp.CreatedAt = m.tick()
	m.appointments[a.ID] = &cp
	m.order = append(m.order, a.ID)
	patient := *p
	a.Patient = &patient
	return nil
}

func (m memoryAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m memoryAppointments) list(match func(*models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, id := range m.order {
		if a, ok := m.appointments[id]; ok && match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m memoryAppointments) GetAll(_ context.Context) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(*models.Appointment) bool { return true }), nil
}

func (m memoryAppointments) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (m memoryAppointments) UpdateStatus(_ context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, repositories.ErrAppointmentNotFound
	}
	a.Status = status
	cp := *a
	return &cp, nil
}

func (m memoryAppointments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return repositories.ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
}

// sequentialIDs hands out predictable ids.
type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) AppointmentScheduled(ctx context.Context, patient *models.Patient, appointment *models.Appointment) error {
	args := m.Called(ctx, patient, appointment)
	return args.Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockLocker) ReleaseLock(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type serviceFixture struct {
	store        *memoryStore
	patients     *PatientService
	appointments *AppointmentService
}

func newServiceFixture() *serviceFixture {
	store := newMemoryStore()
	ids := &sequentialIDs{}
	return &serviceFixture{
		store:        store,
		patients:     NewPatientService(memoryPatients{store}, ids),
		appointments: NewAppointmentService(memoryAppointments{store}, ids),
	}
}
