package repositories

import (
	"PatientDesk/cache"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	patientsCacheKey     = "patients_cache"
	appointmentsCacheKey = "appointments_cache"

	readTimeout = 5 * time.Second
)

func getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}

func getAppointmentCacheKey(appointmentID string) string {
	return fmt.Sprintf("appointment_cache:%s", appointmentID)
}

func getPatientAppointmentsCacheKey(patientID string) string {
	return fmt.Sprintf("patient_appointments_cache:%s", patientID)
}

// invalidate drops keys after a committed write and advances their
// generations, so an in-flight read cannot put the old value back. The write
// already succeeded, so a failure here is only logged.
func invalidate(ctx context.Context, c *cache.Cache, keys ...string) {
	if err := c.Invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Failed to invalidate cache")
	}
}

// cacheGeneration must be read before the database load whose result is
// later passed to cacheStore. It reports false when Redis cannot be read.
func cacheGeneration(ctx context.Context, c *cache.Cache, key string) (int64, bool) {
	gen, err := c.Generation(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read cache generation")
		return 0, false
	}
	return gen, true
}

// cacheStore fills key unless it was invalidated after gen was read.
func cacheStore(ctx context.Context, c *cache.Cache, key string, gen int64, value interface{}) {
	if _, err := c.SetJSONIfGeneration(ctx, key, gen, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to populate cache")
	}
}

func cacheLoad(ctx context.Context, c *cache.Cache, key string, dest interface{}) bool {
	found, err := c.GetJSON(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read cache")
		return false
	}
	return found
}
