package main

import (
	"PatientDesk/cache"
	"PatientDesk/config"
	"PatientDesk/database"
	"PatientDesk/repositories"
	"PatientDesk/routes"
	"PatientDesk/services"
	"PatientDesk/utils"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "patientdesk",
		Short: "Patient and appointment management API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the patient and appointment tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := database.InitDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info().Msg("Migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample patients and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			cfg, err := setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			db, err := database.InitDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.Migrate(db); err != nil {
				return err
			}

			c, err := newCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeCache(c)

			ids := utils.UUIDAllocator{}
			seeder := services.NewSeeder(
				services.NewPatientService(repositories.NewPatientRepository(db, c), ids),
				services.NewAppointmentService(repositories.NewAppointmentRepository(db, c), ids),
				c,
				time.Now().UnixNano(),
			)
			result, err := seeder.Seed(ctx, force)
			if err != nil {
				return err
			}
			log.Info().
				Bool("skipped", result.Skipped).
				Int("patients", result.Patients).
				Int("appointments", result.Appointments).
				Msg("Seeding finished")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Seed even when patients already exist, skipping known sample e-mails")
	return cmd
}

// setup loads the configuration and configures the global logger.
func setup() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return cfg, nil
}

// newCache connects to Redis when REDIS_URL is set. Without it the returned
// cache is nil and every read goes to the database.
func newCache(ctx context.Context, cfg *config.AppConfig) (*cache.Cache, error) {
	if cfg.RedisAddress == "" {
		log.Warn().Msg("REDIS_URL not set, caching disabled")
		return nil, nil
	}
	client, err := database.NewRedisClient(ctx, database.RedisConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	return cache.New(client, cfg.CacheTTL), nil
}

func closeCache(c *cache.Cache) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close Redis client")
	}
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

func runServer() error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx := context.Background()

	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize database")
		return err
	}
	defer closeDB(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	c, err := newCache(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize Redis client")
		return err
	}
	defer closeCache(c)

	var notifier services.AppointmentNotifier
	smtp := utils.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}
	if smtp.Enabled() {
		notifier = utils.NewEmailNotifier(smtp)
		log.Info().Str("smtp_host", smtp.Host).Msg("Appointment confirmation e-mails enabled")
	}

	handler, drainNotifications := routes.SetupRoutes(cfg, db, c, notifier)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	serverErr := make(chan error, 1)

	go func() {
		defer wg.Done()
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("server failed")
		return err
	case <-quit:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}

	wg.Wait()
	drainNotifications()
	log.Info().Msg("Server exited gracefully")
	return nil
}
