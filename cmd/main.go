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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	cancelReservationHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/cancel_reservation"
	changePasswordHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/change_password"
	createReservationHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/create_reservation"
	getActivitiesHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_activities"
	getLocationsHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_locations"
	getProfileHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_profile"
	getReservationHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_reservation"
	getReceiptHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_reservation_receipt"
	getStatsHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_reservation_stats"
	getUserReservationsHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/get_user_reservations"
	loginHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/login"
	searchLocationsHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/search_locations"
	updateProfileHandler "github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers/update_profile"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/config"
	locationsCache "github.com/m04kA/TaxiClass-ReservationService/internal/infra/cache/locations"
	activityRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/activity"
	locationRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/mailer"
	activitiesService "github.com/m04kA/TaxiClass-ReservationService/internal/service/activities"
	authService "github.com/m04kA/TaxiClass-ReservationService/internal/service/auth"
	locationsService "github.com/m04kA/TaxiClass-ReservationService/internal/service/locations"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/receipts"
	reservationsService "github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations"
	cancelReservationUC "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/TaxiClass-ReservationService/internal/worker"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/jwtmanager"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/metrics"
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

	log.Info("Starting TaxiClass-ReservationService...")

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.App.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории работают через обёртку с метриками, если они включены
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	userRepository := userRepo.NewRepository(executor)
	reservationRepository := reservationRepo.NewRepository(executor)
	locationRepository := locationRepo.NewRepository(executor)
	activityRepository := activityRepo.NewRepository(executor)

	// Клиент провайдера
	var providerMetrics auriga.MetricsRecorder
	var workerMetrics worker.MetricsRecorder
	if cfg.Metrics.Enabled {
		providerMetrics = metricsCollector
		workerMetrics = metricsCollector
	}
	aurigaClient := auriga.NewClient(cfg.Auriga.URL, time.Duration(cfg.Auriga.Timeout)*time.Second, log, providerMetrics)
	signer := auriga.NewSigner(cfg.Auriga.ClientID, cfg.Auriga.ClientKey)
	log.Info("Auriga client initialized (url=%s, timeout=%ds)", cfg.Auriga.URL, cfg.Auriga.Timeout)

	// Почта
	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.Mail.Enabled {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			FromName: cfg.Mail.FromName,
			Timeout:  time.Duration(cfg.Mail.Timeout) * time.Second,
		})
		log.Info("SMTP mailer enabled (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		log.Warn("Mail disabled, notifications are written to the log")
	}
	mailService := mailer.NewService(sender, cfg.App.Name, log)

	// Отложенная запись в БД после подтверждения провайдером
	persistenceWorker := worker.NewPersistenceWorker(worker.Config{
		Attempts:   cfg.PersistenceRetry.MaxRetries,
		FirstDelay: time.Duration(cfg.PersistenceRetry.InitialDelayMs) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.PersistenceRetry.MaxDelayMs) * time.Millisecond,
		Multiplier: cfg.PersistenceRetry.BackoffFactor,
		QueueSize:  cfg.PersistenceRetry.QueueSize,
	}, workerMetrics, log)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		persistenceWorker.Start(workerCtx)
	}()

	// Кэш справочника мест
	var cache locationsService.LocationCache
	if cfg.Redis.Enabled {
		redisClient := locationsCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, locations are read from database: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		cache = locationsCache.NewCache(redisClient, time.Duration(cfg.Redis.LocationsTTL)*time.Second)
		log.Info("Locations cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LocationsTTL)
	}

	tokens, err := jwtmanager.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Second, cfg.Auth.Issuer)
	if err != nil {
		log.Fatal("Failed to initialize JWT manager: %v", err)
	}

	// Инициализируем сервисы
	activitySvc := activitiesService.NewService(activityRepository, log)
	authSvc := authService.NewService(userRepository, tokens, activitySvc, log)
	locationSvc := locationsService.NewService(locationRepository, cache, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		userRepository,
		receipts.NewGenerator(cfg.App.Name, location),
		location,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		userRepository,
		aurigaClient,
		signer,
		mailService,
		activitySvc,
		persistenceWorker,
		createReservationUC.Config{
			Location:            location,
			AdminEmail:          cfg.Mail.AdminEmail,
			NotificationTimeout: time.Duration(cfg.Mail.Timeout) * time.Second,
		},
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		aurigaClient,
		signer,
		activitySvc,
		persistenceWorker,
		log,
	)

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	getProfile := getProfileHandler.NewHandler(authSvc, log)
	updateProfile := updateProfileHandler.NewHandler(authSvc, log)
	changePassword := changePasswordHandler.NewHandler(authSvc, log)
	getLocations := getLocationsHandler.NewHandler(locationSvc, log)
	searchLocations := searchLocationsHandler.NewHandler(locationSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getStats := getStatsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getReceipt := getReceiptHandler.NewHandler(reservationSvc, log)
	getActivities := getActivitiesHandler.NewHandler(activitySvc, log)

	// Настраиваем роутер
	realIP, err := middleware.NewRealIP(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid trusted proxies: %v", err)
	}

	r := mux.NewRouter()
	r.Use(realIP.Middleware)
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/locations", getLocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/search", searchLocations.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Профиль ---
	protected.HandleFunc("/profile", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile", updateProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/profile/password", changePassword.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	protected.Handle("/reservations", limiter.Middleware()(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	// stats регистрируется раньше {bookingId}
	protected.HandleFunc("/reservations/stats", getStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{bookingId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{bookingId}", cancelReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{bookingId}/receipt", getReceipt.Handle).Methods(http.MethodGet)

	// --- Журнал действий ---
	protected.HandleFunc("/activities", getActivities.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Воркер останавливается после HTTP сервера: новых задач уже не будет
	stopWorker()
	<-workerDone

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
