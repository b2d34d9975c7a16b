package routes

import (
	"PatientDesk/cache"
	"PatientDesk/config"
	"PatientDesk/controllers"
	"PatientDesk/handlers"
	"PatientDesk/middlewares"
	"PatientDesk/repositories"
	"PatientDesk/services"
	"PatientDesk/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers into a gin router.
// cache may be nil, which disables caching. notifier may be nil. The returned
// drain func blocks until background notifications have finished; call it
// after the server has shut down.
func SetupRoutes(cfg *config.AppConfig, db *gorm.DB, cache *cache.Cache, notifier services.AppointmentNotifier) (http.Handler, func()) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middlewares.CorsMiddleware(middlewares.NewCorsConfig(cfg.CORSOrigins)))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	router.Use(middlewares.LoggingMiddleware())

	ids := utils.UUIDAllocator{}
	patientRepo := repositories.NewPatientRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)

	patientService := services.NewPatientService(patientRepo, ids)
	appointmentService := services.NewAppointmentService(appointmentRepo, ids)
	if notifier != nil {
		appointmentService.SetNotifier(notifier)
	}

	patientHandler := handlers.NewPatientHandler(patientService, appointmentService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	controllers.SetupPatientRoutes(router, patientHandler, appointmentHandler)
	controllers.SetupRootRoute(router, db, cache)

	return router, appointmentService.Wait
}
