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

	cancelAppointmentHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/get_available_slots"
	getConsultantAppointmentsHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/get_consultant_appointments"
	getScheduleConfigHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/get_schedule_config"
	setConsultantAvailabilityHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/set_consultant_availability"
	updateScheduleConfigHandler "github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers/update_schedule_config"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/middleware"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/config"
	appointmentRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/availability"
	scheduleConfigRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/scheduleconfig"
	crmServiceClient "github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	appointmentsService "github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments"
	scheduleService "github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule"
	createAppointmentUC "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/get_available_slots"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/dbmetrics"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/logger"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/metrics"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/simpletxmanager"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/txmanager"
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

	log.Info("Starting educat-scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем клиента CRM
	crmClient := crmServiceClient.NewClient(
		cfg.CRMService.URL,
		time.Duration(cfg.CRMService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CRMService=%s timeout=%ds)",
		cfg.CRMService.URL, cfg.CRMService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		availabilityRepository   *availabilityRepo.Repository
		scheduleConfigRepository *scheduleConfigRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		crmClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleConfigRepository,
		availabilityRepository,
		crmClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		scheduleConfigRepository,
		crmClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		scheduleConfigRepository,
		crmClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getConsultantAppointments := getConsultantAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	setConsultantAvailability := setConsultantAvailabilityHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение слотов консультанта со статусами доступности
	api.HandleFunc("/offices/{officeId}/consultants/{consultantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение конфигурации расписания офиса
	api.HandleFunc("/offices/{officeId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на консультации ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Записи консультанта
	protected.HandleFunc("/consultants/{consultantId}/appointments", getConsultantAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	// Обновление конфигурации расписания офиса или консультанта
	protected.HandleFunc("/offices/{officeId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Установка окна доступности консультанта на дату
	protected.HandleFunc("/consultants/{consultantId}/availability", setConsultantAvailability.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
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
