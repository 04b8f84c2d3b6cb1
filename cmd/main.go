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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	changeReservationStatusHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/change_reservation_status"
	createFacilityHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/create_facility"
	createReservationHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/create_reservation"
	deleteFacilityHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/delete_facility"
	facilityAmenitiesHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/facility_amenities"
	getFacilityHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/get_facility"
	getFacilityAvailabilityHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/get_facility_availability"
	getFacilityReservationsHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/get_facility_reservations"
	getReservationHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/get_user_reservations"
	listFacilitiesHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/list_facilities"
	syncCalendarHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/sync_calendar"
	updateFacilityHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/update_facility"
	updateReservationHandler "github.com/m04kA/SMC-AmenityService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-AmenityService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityService/internal/config"
	"github.com/m04kA/SMC-AmenityService/internal/infra/locker"
	calendarLinkRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/calendarlink"
	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AmenityService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AmenityService/internal/service/availability"
	"github.com/m04kA/SMC-AmenityService/internal/service/calendarsync"
	facilitiesService "github.com/m04kA/SMC-AmenityService/internal/service/facilities"
	reservationsService "github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityService/pkg/logger"
	"github.com/m04kA/SMC-AmenityService/pkg/metrics"
	"github.com/m04kA/SMC-AmenityService/pkg/txmanager"
)

// serviceMetrics метрики, которые пишут сервисы бронирований и синхронизации
type serviceMetrics interface {
	ObserveReservation(operation, outcome string)
	ObserveSyncEvent(direction, outcome string)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AmenityService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		svcMetrics       serviceMetrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		svcMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	// Без метрик обёртка только прокидывает транзакции через context
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	facilityRepository := facilityRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	linkRepository := calendarLinkRepo.NewRepository(wrappedDB)

	// Блокировка помещений: Redis для нескольких экземпляров, иначе в памяти процесса
	var facilityLocker reservationsService.FacilityLocker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		facilityLocker = locker.NewRedisLocker(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.LockTTL(), cfg.Redis.RetryInterval(), log)
		log.Info("Facility lock: redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	} else {
		facilityLocker = locker.NewLocalLocker()
		log.Info("Facility lock: in-process")
	}

	// Уведомления: RabbitMQ, если настроен, иначе только лог
	var notificationSender reservationsService.NotificationSender
	if cfg.RabbitMQ.URL != "" {
		publisher, err := notifier.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		notificationSender = publisher
		log.Info("Notifications: rabbitmq (exchange=%s, routing_key=%s)", cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
	} else {
		notificationSender = notifier.NewLogSender(log)
		log.Info("Notifications: log only")
	}

	billing, err := reservationsService.ParseBillingPolicy(cfg.Billing.Rounding)
	if err != nil {
		log.Fatal("Invalid billing policy: %v", err)
	}

	// Сервисы
	facilitySvc := facilitiesService.NewService(facilityRepository, log)
	availabilityEngine := availability.NewEngine(reservationRepository, facilityRepository, log)
	reservationSvc := reservationsService.NewService(
		facilityRepository,
		reservationRepository,
		availabilityEngine,
		facilityLocker,
		txMgr,
		notificationSender,
		svcMetrics,
		reservationsService.Config{
			Billing:              billing,
			NotificationChannels: cfg.RabbitMQ.Channels,
		},
		log,
	)

	// Синхронизация с календарем включается только при наличии ключа сервисного аккаунта
	var syncSvc syncCalendarHandler.SyncService
	if cfg.GoogleCalendar.Enabled() {
		calendarClient, err := googlecalendar.NewClient(
			context.Background(),
			cfg.GoogleCalendar.CredentialsFile,
			cfg.GoogleCalendar.Endpoint,
			time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize google calendar client: %v", err)
		}
		syncSvc = calendarsync.NewService(reservationSvc, facilityRepository, linkRepository, calendarClient, svcMetrics, log)
		log.Info("Calendar sync enabled (timeout=%ds)", cfg.GoogleCalendar.Timeout)
	} else {
		log.Warn("Calendar sync disabled: google_calendar.credentials_file is not set")
	}

	// Handlers
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	updateFacility := updateFacilityHandler.NewHandler(facilitySvc, log)
	deleteFacility := deleteFacilityHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	listFacilities := listFacilitiesHandler.NewHandler(facilitySvc, log)
	facilityAmenities := facilityAmenitiesHandler.NewHandler(facilitySvc, log)
	getFacilityAvailability := getFacilityAvailabilityHandler.NewHandler(availabilityEngine, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(reservationSvc, log)

	createReservation := createReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	changeReservationStatus := changeReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(syncSvc, cfg.Sync.MaxWindow(), log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/availability", getFacilityAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Помещения (администрирование) ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}", deleteFacility.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/facilities/{facilityId}/amenities/{name}", facilityAmenities.HandleAdd).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}/amenities/{name}", facilityAmenities.HandleRemove).Methods(http.MethodDelete)
	protected.HandleFunc("/facilities/{facilityId}/reservations", getFacilityReservations.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/cancel", changeReservationStatus.HandleCancel).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/confirm", changeReservationStatus.HandleConfirm).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Календарь ---
	protected.HandleFunc("/users/{userId}/calendar-sync", syncCalendar.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	close(stopMetricsCh)

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
