package services

import (
	"PatientDesk/models"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(f *serviceFixture, lock Locker) *Seeder {
	s := NewSeeder(f.patients, f.appointments, lock, 42)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func grantingLocker() *mockLocker {
	l := new(mockLocker)
	l.On("AcquireLock", mock.Anything, seedLockKey, mock.AnythingOfType("string"), time.Minute).Return(true, nil)
	l.On("ReleaseLock", mock.Anything, seedLockKey, mock.AnythingOfType("string")).Return(nil)
	return l
}

func TestSeeder_SeedsSampleData(t *testing.T) {
	f := newServiceFixture()
	lock := grantingLocker()
	ctx := context.Background()

	result, err := newTestSeeder(f, lock).Seed(ctx, false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 10, result.Patients)
	assert.Equal(t, 20, result.Appointments)

	patients, err := f.patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 10)
	assert.Equal(t, "emma.johnson@email.com", patients[0].Email)

	appointments, err := f.appointments.List(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 20)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, a := range appointments {
		assert.True(t, a.Status.Valid())
		if a.AppointmentDateTime.After(now) {
			assert.Equal(t, models.StatusScheduled, a.Status, a.Reason)
		}
	}
	lock.AssertExpectations(t)
}

func TestSeeder_SkipsWhenDataExists(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	_, err := f.patients.Create(ctx, emmaRequest())
	require.NoError(t, err)

	result, err := newTestSeeder(f, grantingLocker()).Seed(ctx, false)
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	count, err := f.patients.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSeeder_ForceSkipsExistingEmails(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	seeder := newTestSeeder(f, grantingLocker())

	_, err := seeder.Seed(ctx, false)
	require.NoError(t, err)

	result, err := seeder.Seed(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, result.Patients)
	assert.Zero(t, result.Appointments)

	count, err := f.patients.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestSeeder_LockHeldElsewhere(t *testing.T) {
	f := newServiceFixture()
	lock := new(mockLocker)
	lock.On("AcquireLock", mock.Anything, seedLockKey, mock.Anything, time.Minute).Return(false, nil)

	_, err := newTestSeeder(f, lock).Seed(context.Background(), false)
	assert.ErrorIs(t, err, ErrSeedInProgress)
	lock.AssertNotCalled(t, "ReleaseLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeeder_LockError(t *testing.T) {
	f := newServiceFixture()
	lock := new(mockLocker)
	lock.On("AcquireLock", mock.Anything, seedLockKey, mock.Anything, time.Minute).Return(false, errors.New("redis down"))

	_, err := newTestSeeder(f, lock).Seed(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}
