package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/get_available_times"
	getBookingHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/get_booking"
	getConsultantBookingsHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/get_consultant_bookings"
	getUserBookingsHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers/update_booking_status"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/middleware"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/config"
	bookingRepo "github.com/intellectif-llc/intellectif-website-sub002/internal/infra/storage/booking"
	scheduleRepo "github.com/intellectif-llc/intellectif-website-sub002/internal/infra/storage/schedule"
	catalogServiceClient "github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
	bookingsService "github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings"
	createBookingUC "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_dates"
	getAvailableTimesUC "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_times"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/logger"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/metrics"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/simpletxmanager"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking engine...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.RunMigrations {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)
	}

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		txMgr              createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingSvc := bookingsService.NewService(bookingRepository, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		createBookingUC.Options{
			SlotGranularityMinutes:  cfg.Engine.SlotGranularityMinutes,
			MinBookingNoticeMinutes: cfg.Engine.MinBookingNoticeMinutes,
			MaxSearchDaysAhead:      cfg.Engine.MaxSearchDaysAhead,
			Timezone:                cfg.Engine.Timezone,
		},
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		getAvailableTimesUC.Options{
			SlotGranularityMinutes:  cfg.Engine.SlotGranularityMinutes,
			MinBookingNoticeMinutes: cfg.Engine.MinBookingNoticeMinutes,
			MaxSearchDaysAhead:      cfg.Engine.MaxSearchDaysAhead,
			Timezone:                cfg.Engine.Timezone,
		},
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		getAvailableDatesUC.Options{
			SlotGranularityMinutes: cfg.Engine.SlotGranularityMinutes,
			SearchDaysAhead:        cfg.Engine.SearchDaysAhead,
			MaxSearchDaysAhead:     cfg.Engine.MaxSearchDaysAhead,
			MaxDateResults:         cfg.Engine.MaxDateResults,
			Timezone:               cfg.Engine.Timezone,
		},
		log,
	)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getConsultantBookings := getConsultantBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: availability search needs no identity.
	api.HandleFunc("/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/consultants/{consultantId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// Protected routes require the X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/consultants/{consultantId}/bookings",
		getConsultantBookings.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
