package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ndpatients/patients/internal/config"
	"github.com/ndpatients/patients/internal/domain/diagnosis"
	"github.com/ndpatients/patients/internal/domain/geography"
	"github.com/ndpatients/patients/internal/domain/medication"
	"github.com/ndpatients/patients/internal/domain/patient"
	"github.com/ndpatients/patients/internal/domain/treatment"
	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/internal/platform/metrics"
	"github.com/ndpatients/patients/internal/platform/middleware"
	"github.com/ndpatients/patients/internal/platform/session"
)

const requestTimeout = 30 * time.Second

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

// newSessionStore returns a Redis store when REDIS_URL is set and an
// in-memory store otherwise. The returned func releases it.
func newSessionStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (session.Store, func(), error) {
	if cfg.RedisURL != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("using redis session store")
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	}

	store := session.NewMemoryStore(cfg.SessionTTL)
	sweepCtx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					logger.Debug().Int("expired", n).Msg("swept sessions")
				}
			}
		}
	}()
	logger.Warn().Msg("REDIS_URL not set, sessions are kept in memory")
	return store, cancel, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:             cfg.DatabaseURL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		ApplicationName: "patients-server",
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open session store")
		return err
	}
	defer closeStore()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader, session.HeaderName},
		ExposeHeaders:    []string{middleware.RequestIDHeader, session.HeaderName},
		AllowCredentials: true,
	}))

	// Health and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool, map[string]db.Pinger{"sessions": store}))
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RequestTimeout(requestTimeout))
	apiV1.Use(session.Middleware(store, session.Options{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.IsProduction(),
	}, logger))
	session.NewHandler(store).RegisterRoutes(apiV1)

	// Geography
	geoSvc := geography.NewService(geography.NewCountryRepoPG(pool), geography.NewProvinceRepoPG(pool))
	geography.NewHandler(geoSvc).RegisterRoutes(apiV1)

	// Patients
	patientSvc := patient.NewService(patient.NewPatientRepoPG(pool), geoSvc)
	patientSvc.SetLogger(logger)
	if m != nil {
		patientSvc.SetMetrics(m)
	}
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Diagnoses
	dxSvc := diagnosis.NewService(
		diagnosis.NewCategoryRepoPG(pool),
		diagnosis.NewDiagnosisRepoPG(pool),
		diagnosis.NewPatientDiagnosisRepoPG(pool),
		patientSvc,
	)
	diagnosis.NewHandler(dxSvc).RegisterRoutes(apiV1)

	// Treatments
	txSvc := treatment.NewService(
		treatment.NewTreatmentRepoPG(pool),
		treatment.NewPatientTreatmentRepoPG(pool),
		dxSvc, dxSvc,
	)
	treatment.NewHandler(txSvc).RegisterRoutes(apiV1)

	// Medications
	medSvc := medication.NewService(
		medication.NewTypeRepoPG(pool),
		medication.NewConcentrationUnitRepoPG(pool),
		medication.NewDispensingUnitRepoPG(pool),
		medication.NewMedicationRepoPG(pool),
	)
	medication.NewHandler(medSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
