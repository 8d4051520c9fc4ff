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

	addParticipantHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/add_participant"
	createEventHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/create_event"
	getAvailabilityHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/get_availability"
	getCalendarGridHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/get_calendar_grid"
	getEventHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/get_event"
	saveTimeSlotsHandler "github.com/m04kA/SMC-MeetupService/internal/api/handlers/save_time_slots"
	"github.com/m04kA/SMC-MeetupService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetupService/internal/config"
	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	participantRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/participant"
	timeslotRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/timeslot"
	eventsService "github.com/m04kA/SMC-MeetupService/internal/service/events"
	aggregateAvailabilityUC "github.com/m04kA/SMC-MeetupService/internal/usecase/aggregate_availability"
	composeGridUC "github.com/m04kA/SMC-MeetupService/internal/usecase/compose_grid"
	saveSelectionUC "github.com/m04kA/SMC-MeetupService/internal/usecase/save_selection"
	"github.com/m04kA/SMC-MeetupService/pkg/cache"
	"github.com/m04kA/SMC-MeetupService/pkg/logger"
	"github.com/m04kA/SMC-MeetupService/pkg/metrics"
	"github.com/m04kA/SMC-MeetupService/pkg/shortcode"
	"github.com/m04kA/SMC-MeetupService/pkg/txmanager"
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

	log.Info("Starting SMC-MeetupService...")
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

	// Подключаемся к redis (если кэширование включено)
	var redisCache *cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err = cache.New(
			context.Background(),
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем репозитории
	eventRepository := eventRepo.NewRepository(db)
	participantRepository := participantRepo.NewRepository(db)
	timeSlotRepository := timeslotRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)
	codeGen := shortcode.NewGenerator()

	// Типизированный nil в интерфейсном поле выглядит как не-nil,
	// поэтому опциональные зависимости пробрасываем через интерфейсные переменные
	var aggCache aggregateAvailabilityUC.Cache
	var saveCache saveSelectionUC.CacheInvalidator
	if redisCache != nil {
		aggCache = redisCache
		saveCache = redisCache
	}

	var gridMetrics composeGridUC.Metrics
	var saveMetrics saveSelectionUC.Metrics
	if metricsCollector != nil {
		gridMetrics = metricsCollector
		saveMetrics = metricsCollector
	}

	// Инициализируем сервисы и use cases
	eventSvc := eventsService.NewService(
		eventRepository,
		participantRepository,
		timeSlotRepository,
		codeGen,
		txMgr,
		log,
	)

	aggregateAvailabilityUseCase := aggregateAvailabilityUC.NewUseCase(
		eventRepository,
		participantRepository,
		timeSlotRepository,
		aggCache,
		log,
	)

	composeGridUseCase := composeGridUC.NewUseCase(
		aggregateAvailabilityUseCase,
		gridMetrics,
		log,
	)

	saveSelectionUseCase := saveSelectionUC.NewUseCase(
		eventRepository,
		participantRepository,
		timeSlotRepository,
		txMgr,
		saveCache,
		saveMetrics,
		log,
	)

	// Инициализируем handlers
	createEvent := createEventHandler.NewHandler(eventSvc, log)
	getEvent := getEventHandler.NewHandler(eventSvc, log)
	addParticipant := addParticipantHandler.NewHandler(eventSvc, log)
	saveTimeSlots := saveTimeSlotsHandler.NewHandler(saveSelectionUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(aggregateAvailabilityUseCase, log)
	getCalendarGrid := getCalendarGridHandler.NewHandler(composeGridUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Создание события
	api.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)

	// Получение события с днями и участниками
	api.HandleFunc("/events/{shortCode}", getEvent.Handle).Methods(http.MethodGet)

	// Присоединение участника к событию
	api.HandleFunc("/events/{shortCode}/participants", addParticipant.Handle).Methods(http.MethodPost)

	// Полная перезапись выбора участника
	api.HandleFunc("/events/{shortCode}/participants/{participantId}/slots",
		saveTimeSlots.Handle).Methods(http.MethodPut)

	// Агрегированная доступность события
	api.HandleFunc("/events/{shortCode}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Страница календарной сетки
	api.HandleFunc("/events/{shortCode}/grid", getCalendarGrid.Handle).Methods(http.MethodGet)

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
