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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/create_appointment"
	createEventTypeHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/create_event_type"
	getAppointmentHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/get_availability"
	getScheduleHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/list_appointments"
	listEventTypesHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/list_event_types"
	updateAppointmentHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/update_appointment"
	updateScheduleHandler "github.com/tenzan/jikan-pro-ws/internal/api/handlers/update_schedule"
	"github.com/tenzan/jikan-pro-ws/internal/api/middleware"
	"github.com/tenzan/jikan-pro-ws/internal/config"
	appointmentRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/appointment"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
	customerRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/customer"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	workingHoursRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/workinghours"
	mailerClient "github.com/tenzan/jikan-pro-ws/internal/integrations/mailer"
	appointmentsService "github.com/tenzan/jikan-pro-ws/internal/service/appointments"
	eventTypesService "github.com/tenzan/jikan-pro-ws/internal/service/eventtypes"
	scheduleService "github.com/tenzan/jikan-pro-ws/internal/service/schedule"
	createAppointmentUC "github.com/tenzan/jikan-pro-ws/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/tenzan/jikan-pro-ws/internal/usecase/get_availability"
	"github.com/tenzan/jikan-pro-ws/pkg/logger"
	"github.com/tenzan/jikan-pro-ws/pkg/metrics"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting jikan-pro-ws...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент сервиса уведомлений
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.Enabled,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (enabled=%v, url=%s)", cfg.Mailer.Enabled, cfg.Mailer.URL)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	workingHoursRepository := workingHoursRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	staffRepository := staffRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		customerRepository,
		mailer,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		staffRepository,
		txMgr,
		log,
	)
	eventTypesSvc := eventTypesService.NewService(
		catalogRepository,
		staffRepository,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		staffRepository,
		catalogRepository,
		workingHoursRepository,
		appointmentRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		staffRepository,
		catalogRepository,
		workingHoursRepository,
		appointmentRepository,
		customerRepository,
		txMgr,
		mailer,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createEventType := createEventTypeHandler.NewHandler(eventTypesSvc, log)
	listEventTypes := listEventTypesHandler.NewHandler(eventTypesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования, без аутентификации)
	// ============================================================

	// Доступные слоты сотрудника на дату
	api.HandleFunc("/staff/{staffId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Активные типы событий бизнеса
	api.HandleFunc("/event-types/{businessId}", listEventTypes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Business-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.BusinessAuth)

	// --- Записи ---
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	protected.HandleFunc("/businesses/{businessId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// --- Типы событий ---
	protected.HandleFunc("/event-types", createEventType.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
