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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	createBlockHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/create_block"
	createVenueHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/create_venue"
	deactivateVenueHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/deactivate_venue"
	deleteBlockHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/delete_block"
	getBlocksHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_blocks"
	getBookingHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_booking"
	getEnginesHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_engines"
	getOwnerVenuesHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_owner_venues"
	getPriceQuoteHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_price_quote"
	getSlotCalendarHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_slot_calendar"
	getTicketHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_ticket"
	getVenueHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_venue"
	getVenueBookingsHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_venue_bookings"
	getWidgetsHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/get_widgets"
	holdSlotHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/hold_slot"
	recordPaymentHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/record_payment"
	releaseHoldHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/release_hold"
	saveBookingHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/save_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/update_booking_status"
	updateEnginesHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/update_engines"
	updateVenueHandler "github.com/m04kA/SMC-TurfManager/internal/api/handlers/update_venue"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/config"
	"github.com/m04kA/SMC-TurfManager/internal/infra/cache"
	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	blockRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/customer"
	engineRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/engine"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/pushrelay"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/whatsapp"
	blocksService "github.com/m04kA/SMC-TurfManager/internal/service/blocks"
	bookingsService "github.com/m04kA/SMC-TurfManager/internal/service/bookings"
	enginesService "github.com/m04kA/SMC-TurfManager/internal/service/engines"
	"github.com/m04kA/SMC-TurfManager/internal/service/notify"
	venuesService "github.com/m04kA/SMC-TurfManager/internal/service/venues"
	getSlotCalendarUC "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
	holdSlotUC "github.com/m04kA/SMC-TurfManager/internal/usecase/hold_slot"
	saveBookingUC "github.com/m04kA/SMC-TurfManager/internal/usecase/save_booking"
	"github.com/m04kA/SMC-TurfManager/migrations"
	"github.com/m04kA/SMC-TurfManager/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
	"github.com/m04kA/SMC-TurfManager/pkg/metrics"
	"github.com/m04kA/SMC-TurfManager/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("TURF_CONFIG"); p != "" {
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

	log.Info("Starting SMC-TurfManager...")
	log.Info("Configuration loaded from %s", configPath)

	// Валидируется в config.Load
	loc, _ := cfg.Booking.Location()

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.ApplyMigrations {
		if err := migrations.Apply(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	venueRepository := venueRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	engineRepository := engineRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: удержания слотов и мьютекс площадки на день.
	// Интерфейсы остаются nil, если Redis выключен
	var (
		calendarHolds getSlotCalendarUC.HoldStore
		bookingHolds  saveBookingUC.HoldStore
		slotHolds     holdSlotUC.HoldStore
		bookingLocker saveBookingUC.Locker
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		holds := cache.NewHolds(redisClient, cfg.Redis.HoldTTL())
		calendarHolds, bookingHolds, slotHolds = holds, holds, holds
		bookingLocker = cache.NewLocker(redisClient, cfg.Redis.LockTTL())
		log.Info("Redis connected (addr=%s, hold_ttl=%s)", cfg.Redis.Addr, cfg.Redis.HoldTTL())
	} else {
		log.Warn("Redis disabled: slot holds are off, bookings rely on database constraints only")
	}

	// Kafka: доменные события броней
	var producer interface {
		notify.EventPublisher
		Close() error
	} = events.NopProducer{}

	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	// Интеграционные клиенты уведомлений
	notifyTimeout := time.Duration(cfg.Notifications.Timeout) * time.Second

	var pushClient notify.PushRelay
	if cfg.Notifications.PushRelayURL != "" {
		pushClient = pushrelay.NewClient(
			cfg.Notifications.PushRelayURL,
			notifyTimeout,
			cfg.Notifications.BreakerThreshold,
			log,
		)
	}

	whatsappClient := whatsapp.NewClient(whatsapp.Config{
		APIURL:        cfg.Notifications.WhatsAppAPIURL,
		PhoneNumberID: cfg.Notifications.WhatsAppPhoneID,
		Token:         cfg.Notifications.WhatsAppToken,
		Template:      cfg.Notifications.WhatsAppTemplate,
	}, notifyTimeout, cfg.Notifications.BreakerThreshold, log)

	log.Info("Notification clients initialized (push=%t, whatsapp_api=%t)",
		pushClient != nil, whatsappClient.Configured())

	dispatcher := notify.NewDispatcher(
		pushClient,
		whatsappClient,
		producer,
		time.Duration(cfg.Notifications.DispatchTimeoutSec)*time.Second,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	venueSvc := venuesService.NewService(venueRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, venueRepository, txMgr, dispatcher, log)
	blockSvc := blocksService.NewService(blockRepository, venueRepository, log)

	// Инициализируем use cases
	getSlotCalendarUseCase := getSlotCalendarUC.NewUseCase(
		venueRepository,
		bookingRepository,
		blockRepository,
		calendarHolds,
		loc,
		log,
	)

	saveBookingUseCase := saveBookingUC.NewUseCase(
		venueRepository,
		customerRepository,
		bookingRepository,
		blockRepository,
		txMgr,
		saveBookingUC.Options{
			Holds:    bookingHolds,
			Locker:   bookingLocker,
			Notifier: dispatcher,
			Metrics:  metricsCollector,
			Location: loc,
		},
		log,
	)

	holdSlotUseCase := holdSlotUC.NewUseCase(
		venueRepository,
		bookingRepository,
		blockRepository,
		slotHolds,
		loc,
		log,
	)

	engineSvc := enginesService.NewService(
		engineRepository,
		venueRepository,
		bookingRepository,
		getSlotCalendarUseCase,
		txMgr,
		loc,
		log,
	)

	// Инициализируем handlers
	getVenue := getVenueHandler.NewHandler(venueSvc, log)
	createVenue := createVenueHandler.NewHandler(venueSvc, log)
	updateVenue := updateVenueHandler.NewHandler(venueSvc, log)
	deactivateVenue := deactivateVenueHandler.NewHandler(venueSvc, log)
	getOwnerVenues := getOwnerVenuesHandler.NewHandler(venueSvc, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(venueSvc, log)
	getSlotCalendar := getSlotCalendarHandler.NewHandler(getSlotCalendarUseCase, log)
	getWidgets := getWidgetsHandler.NewHandler(engineSvc, log)
	holdSlot := holdSlotHandler.NewHandler(holdSlotUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(holdSlotUseCase, log)
	saveBooking := saveBookingHandler.NewHandler(saveBookingUseCase, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(bookingSvc, log)
	getTicket := getTicketHandler.NewHandler(bookingSvc, log)
	getBlocks := getBlocksHandler.NewHandler(blockSvc, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)
	getEngines := getEnginesHandler.NewHandler(engineSvc, log)
	updateEngines := updateEnginesHandler.NewHandler(engineSvc, log)

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

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	public.HandleFunc("/venues/{venueId:[0-9]+}", getVenue.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId:[0-9]+}/calendar", getSlotCalendar.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId:[0-9]+}/price-quote", getPriceQuote.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId:[0-9]+}/widgets", getWidgets.Handle).Methods(http.MethodGet)

	// Удержание слотов на время заполнения формы
	public.HandleFunc("/venues/{venueId:[0-9]+}/holds", holdSlot.Handle).Methods(http.MethodPost)
	public.HandleFunc("/holds/{token}", releaseHold.Handle).Methods(http.MethodDelete)

	// Создание брони: публичная страница или админка владельца (X-User-ID опционален)
	withOptionalOwner := api.PathPrefix("").Subrouter()
	withOptionalOwner.Use(middleware.OptionalAuth)
	withOptionalOwner.HandleFunc("/venues/{venueId:[0-9]+}/bookings", saveBooking.HandleCreate).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Площадки ---
	protected.HandleFunc("/venues", createVenue.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId:[0-9]+}", updateVenue.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/venues/{venueId:[0-9]+}", deactivateVenue.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/owners/me/venues", getOwnerVenues.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/venues/{venueId:[0-9]+}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", saveBooking.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payments", recordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/ticket", getTicket.Handle).Methods(http.MethodGet)

	// --- Блокировки ---
	protected.HandleFunc("/venues/{venueId:[0-9]+}/blocks", getBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId:[0-9]+}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocks/{blockId:[0-9]+}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Движки вовлечения ---
	protected.HandleFunc("/venues/{venueId:[0-9]+}/engines", getEngines.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId:[0-9]+}/engines", updateEngines.Handle).Methods(http.MethodPut)

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

	// Дожидаемся фоновых уведомлений до закрытия продюсера
	dispatcher.Wait()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
