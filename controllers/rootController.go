package controllers

import (
	"PatientDesk/cache"
	"PatientDesk/database"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "PatientDesk API is running")
}

type healthHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

// check pings the database and, when configured, Redis. Pool counters are
// reported either way.
func (h *healthHandler) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}

	dbStatus := gin.H{"status": "up"}
	if err := database.Ping(ctx, h.db); err != nil {
		log.Error().Err(err).Msg("Health check: database unavailable")
		dbStatus["status"] = "down"
		status = http.StatusServiceUnavailable
	}
	if sqlDB, err := h.db.DB(); err == nil {
		stats := sqlDB.Stats()
		dbStatus["open_connections"] = stats.OpenConnections
		dbStatus["in_use"] = stats.InUse
		dbStatus["idle"] = stats.Idle
	}
	body["database"] = dbStatus

	if h.cache.Enabled() {
		cacheStatus := gin.H{"status": "up"}
		if err := h.cache.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Health check: redis unavailable")
			cacheStatus["status"] = "down"
			status = http.StatusServiceUnavailable
		}
		if stats := h.cache.PoolStats(); stats != nil {
			cacheStatus["total_conns"] = stats.TotalConns
			cacheStatus["idle_conns"] = stats.IdleConns
			cacheStatus["hits"] = stats.Hits
			cacheStatus["misses"] = stats.Misses
		}
		body["cache"] = cacheStatus
	} else {
		body["cache"] = gin.H{"status": "disabled"}
	}

	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	c.JSON(status, body)
}

// SetupRootRoute registers the banner and health routes.
func SetupRootRoute(router *gin.Engine, db *gorm.DB, c *cache.Cache) {
	health := &healthHandler{db: db, cache: c}

	router.GET("/", rootHandler)
	router.GET("/health", health.check)
}
