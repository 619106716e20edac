package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_appointment"
	claimDealHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/claim_deal"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_appointment"
	createReviewHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_review"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_salon_appointments"
	getSettingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_settings"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_user_appointments"
	listDealsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_deals"
	updateSettingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/database"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
	dealRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/deal"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/rowwriter"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	appointmentsService "github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	dealsService "github.com/m04kA/SMC-SalonBookingService/internal/service/deals"
	reviewsService "github.com/m04kA/SMC-SalonBookingService/internal/service/reviews"
	settingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/settings"
	claimDealUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/claim_deal"
	createAppointmentUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	db, dialect, err := database.Open(startCtx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (driver=%s)", dialect)

	// Применяем миграции
	if cfg.Database.Migrate {
		applied, err := database.Migrate(startCtx, db, dialect)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %v", applied)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	builder := psqlbuilder.New(dialect)

	// Транзакции с повтором при конфликте сериализации
	txMgr := txmanager.New(wrappedDB, txmanager.WithRetry(cfg.Booking.TxRetries, dberrors.IsSerializationFailure))

	// Блокировка слотов: Redis, если доступен, иначе в памяти процесса
	locker := newLocker(startCtx, cfg, log)

	// Инициализируем репозитории
	salonRepository := salonRepo.NewRepository(wrappedDB, builder)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB, builder)
	dealRepository := dealRepo.NewRepository(wrappedDB, builder)
	settingsRepository := settingsRepo.NewRepository(wrappedDB, builder)

	// Запись строк через адаптер, устойчивый к расхождению схемы
	adapter := resilient.NewAdapter(
		rowwriter.NewWriter(wrappedDB, builder),
		log,
		resilient.WithDriftObserver(metricsCollector),
		resilient.WithAnonymousReviewFallback(*cfg.Reviews.AnonymousFallback),
	)

	policy := availabilityPolicy(cfg.Booking)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, salonRepository, defaultSettings(cfg.Booking), log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, salonRepository, log)
	dealSvc := dealsService.NewService(dealRepository, salonRepository, log)
	reviewSvc := reviewsService.NewService(adapter, salonRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		salonRepository,
		settingsSvc,
		policy,
		metricsCollector,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		salonRepository,
		settingsSvc,
		adapter,
		locker,
		txMgr,
		policy,
		metricsCollector,
		log,
	)

	claimDealUseCase := claimDealUC.NewUseCase(
		dealRepository,
		appointmentRepository,
		salonRepository,
		adapter,
		locker,
		txMgr,
		policy,
		*cfg.Booking.RollbackDealClaim,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	claimDeal := claimDealHandler.NewHandler(claimDealUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentSvc, log)
	listDeals := listDealsHandler.NewHandler(dealSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
		log.Info("Rate limit enabled: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID опционален, гости разрешены)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Доступные слоты для записи
	public.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки бронирования салона
	public.HandleFunc("/salons/{salonId}/settings", getSettings.Handle).Methods(http.MethodGet)

	// Активные сделки салона
	public.HandleFunc("/salons/{salonId}/deals", listDeals.Handle).Methods(http.MethodGet)

	// Создание записи (в том числе гостевой)
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение сделки с записью
	public.HandleFunc("/deals/{dealId}/claim", claimDeal.Handle).Methods(http.MethodPost)

	// Отзыв о салоне
	public.HandleFunc("/salons/{salonId}/reviews", createReview.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи клиента ---
	protected.HandleFunc("/users/me/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление салоном (для владельца) ---
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

type slotLocker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}

// newLocker выбирает реализацию блокировки слотов.
// Недоступный Redis не мешает старту: блокировка деградирует до процесса
func newLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) slotLocker {
	if !cfg.Redis.Enabled {
		log.Info("Slot locks: in-memory (wait=%s)", cfg.Booking.LockWait())
		return lock.NewMemoryLocker(cfg.Booking.LockWait())
	}

	client := lock.NewRedisClient(cfg.Redis)
	if err := lock.Ping(ctx, client); err != nil {
		log.Warn("Redis unavailable at %s, falling back to in-memory slot locks: %v", cfg.Redis.Address, err)
		_ = client.Close()
		return lock.NewMemoryLocker(cfg.Booking.LockWait())
	}

	log.Info("Slot locks: redis at %s (ttl=%s, wait=%s)", cfg.Redis.Address, cfg.Booking.LockTTL(), cfg.Booking.LockWait())
	return lock.NewRedisLocker(client, cfg.Booking.LockTTL(), cfg.Booking.LockWait())
}

func availabilityPolicy(cfg config.BookingConfig) availability.Policy {
	return availability.Policy{
		FailOpenHours: *cfg.FailOpenHours,
		DefaultWindow: availability.Window{
			Start: types.TimeString(cfg.DefaultOpen),
			End:   types.TimeString(cfg.DefaultClose),
		},
		SkipMalformedAppointments: *cfg.SkipMalformed,
	}
}

func defaultSettings(cfg config.BookingConfig) domain.BookingSettings {
	return domain.BookingSettings{
		SlotStepMinutes:         cfg.SlotStepMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
	}
}
