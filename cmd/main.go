package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/mastercuts/BookingService/internal/api/handlers/admin_login"
	calendarCallbackHandler "github.com/mastercuts/BookingService/internal/api/handlers/calendar_callback"
	calendarConnectHandler "github.com/mastercuts/BookingService/internal/api/handlers/calendar_connect"
	calendarStatusHandler "github.com/mastercuts/BookingService/internal/api/handlers/calendar_status"
	calendarUnlinkHandler "github.com/mastercuts/BookingService/internal/api/handlers/calendar_unlink"
	createBookingHandler "github.com/mastercuts/BookingService/internal/api/handlers/create_booking"
	deleteCalendarEventHandler "github.com/mastercuts/BookingService/internal/api/handlers/delete_calendar_event"
	deleteReservationHandler "github.com/mastercuts/BookingService/internal/api/handlers/delete_reservation"
	getAvailableSlotsHandler "github.com/mastercuts/BookingService/internal/api/handlers/get_available_slots"
	getCalendarEventsHandler "github.com/mastercuts/BookingService/internal/api/handlers/get_calendar_events"
	getReservationHandler "github.com/mastercuts/BookingService/internal/api/handlers/get_reservation"
	getReservationsHandler "github.com/mastercuts/BookingService/internal/api/handlers/get_reservations"
	getServicesHandler "github.com/mastercuts/BookingService/internal/api/handlers/get_services"
	syncCalendarHandler "github.com/mastercuts/BookingService/internal/api/handlers/sync_calendar"
	"github.com/mastercuts/BookingService/internal/api/middleware"
	"github.com/mastercuts/BookingService/internal/config"
	calendarTokenRepo "github.com/mastercuts/BookingService/internal/infra/storage/calendartoken"
	reservationRepo "github.com/mastercuts/BookingService/internal/infra/storage/reservation"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
	authService "github.com/mastercuts/BookingService/internal/service/auth"
	reservationsService "github.com/mastercuts/BookingService/internal/service/reservations"
	createBookingUC "github.com/mastercuts/BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
	syncCalendarUC "github.com/mastercuts/BookingService/internal/usecase/sync_calendar"
	"github.com/mastercuts/BookingService/migrations"
	"github.com/mastercuts/BookingService/pkg/dbmetrics"
	"github.com/mastercuts/BookingService/pkg/logger"
	"github.com/mastercuts/BookingService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config.toml")
	migrateAction := flag.String("migrate", "", "run migrations (up, down, step-up, drop) and exit")
	hashPassword := flag.String("hash-password", "", "print bcrypt hash for admin.password_hash and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := authService.HashPassword(*hashPassword)
		if err != nil {
			fmt.Printf("Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting BookingService (%s)...", cfg.Business.Name)
	log.Info("Configuration loaded from %s", *configPath)

	schedule, err := cfg.BuildSchedule()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	log.Info("Schedule: preset=%s, timezone=%s, slot_duration=%s, advance_days=%d",
		cfg.Schedule.Preset, schedule.Location, schedule.Catalog.SlotDuration, schedule.AdvanceBookingDays)

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы его проверяют
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	// Миграции
	if *migrateAction != "" {
		if err := migrations.Run(db, *migrateAction, log); err != nil {
			log.Fatal("Migration %q failed: %v", *migrateAction, err)
		}
		return
	}
	if cfg.Database.AutoMigrate {
		if err := migrations.Run(db, migrations.ActionUp, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	}
	reservationRepository := reservationRepo.NewRepository(executor)
	tokenRepository := calendarTokenRepo.NewRepository(executor)

	// Google Calendar (зеркало бронирований)
	// Интерфейсные переменные остаются nil, если интеграция выключена
	var (
		calendarClient  *googlecalendar.Client
		bookingCalendar createBookingUC.CalendarClient
		adminCalendar   reservationsService.CalendarClient
	)
	if cfg.Google.Enabled {
		calendarClient = googlecalendar.NewClient(googlecalendar.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			CalendarID:   cfg.Google.CalendarID,
			Timeout:      time.Duration(cfg.Google.Timeout) * time.Second,
			Location:     schedule.Location,
			Endpoint:     cfg.Google.Endpoint,
		}, tokenRepository, log)
		bookingCalendar = calendarClient
		adminCalendar = calendarClient
		log.Info("Google Calendar integration enabled (calendar=%s, timeout=%ds)",
			cfg.Google.CalendarID, cfg.Google.Timeout)
	} else {
		log.Warn("Google Calendar integration disabled, bookings are stored in the database only")
	}

	// Источник занятости слотов
	var occupancy getAvailableSlotsUC.OccupancySource
	switch cfg.Availability.Source {
	case config.SourceCalendar:
		occupancy = getAvailableSlotsUC.NewCalendarOccupancy(calendarClient)
	default:
		occupancy = getAvailableSlotsUC.NewDatabaseOccupancy(reservationRepository)
	}
	log.Info("Availability source: %s", occupancy.Name())

	// Инициализируем сервисы
	authSvc := authService.NewService(authService.Config{
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       cfg.Admin.JWTSecret,
		TokenTTL:     time.Duration(cfg.Admin.TokenTTLMinutes) * time.Minute,
		Issuer:       cfg.Metrics.ServiceName,
	}, log)
	reservationSvc := reservationsService.NewService(reservationRepository, adminCalendar, schedule.Location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(schedule, occupancy, metricsCollector, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		getAvailableSlotsUseCase,
		reservationRepository,
		bookingCalendar,
		schedule,
		cfg.ServiceCatalog(),
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(cfg.ServiceCatalog(), log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	getReservations := getReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования и вход администратора ограничены по IP
	limited := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies, log,
		)
		if err != nil {
			log.Fatal("Invalid rate limit config: %v", err)
		}
		go limiter.RunCleanup(stopCh)
		limited.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %d req/min, burst=%d, trusted_proxies=%d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}
	limited.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	limited.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()

	protected := admin.PathPrefix("").Subrouter()
	protected.Use(middleware.AdminAuth(authSvc, log))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Календарь ---
	if calendarClient != nil {
		syncCalendarUseCase := syncCalendarUC.NewUseCase(reservationRepository, calendarClient, schedule, metricsCollector, log)

		syncCalendar := syncCalendarHandler.NewHandler(syncCalendarUseCase, log)
		getCalendarEvents := getCalendarEventsHandler.NewHandler(reservationSvc, log)
		deleteCalendarEvent := deleteCalendarEventHandler.NewHandler(reservationSvc, log)
		calendarStatus := calendarStatusHandler.NewHandler(reservationSvc, log)
		calendarConnect := calendarConnectHandler.NewHandler(authSvc, calendarClient, log)
		calendarCallback := calendarCallbackHandler.NewHandler(authSvc, calendarClient, log)
		calendarUnlink := calendarUnlinkHandler.NewHandler(calendarClient, log)

		protected.HandleFunc("/calendar/sync", syncCalendar.Handle).Methods(http.MethodPost)
		protected.HandleFunc("/calendar/events", getCalendarEvents.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/calendar/events/{eventId}", deleteCalendarEvent.Handle).Methods(http.MethodDelete)
		protected.HandleFunc("/calendar/status", calendarStatus.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/calendar/connect", calendarConnect.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/calendar/link", calendarUnlink.Handle).Methods(http.MethodDelete)

		// Возврат с экрана согласия Google: браузер не передаёт Bearer, проверяется state
		admin.HandleFunc("/calendar/callback", calendarCallback.Handle).Methods(http.MethodGet)
	}

	// CORS для фронтенда
	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем фоновые горутины: метрики connection pool и очистку rate limiter
	close(stopCh)

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
