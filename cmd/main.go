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

	cancelReservationHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/cancel_reservation"
	confirmBudgetHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/confirm_budget"
	createReservationHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/create_reservation"
	getClientReservationsHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/get_client_reservations"
	getProfessionalReservationsHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/get_professional_reservations"
	getReservationHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/get_reservation"
	transitionStatusHandler "github.com/avolkov/MSP-ReservationService/internal/api/handlers/transition_status"
	"github.com/avolkov/MSP-ReservationService/internal/api/middleware"
	"github.com/avolkov/MSP-ReservationService/internal/config"
	paymentRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/payment"
	professionalRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/professional"
	reservationRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	chatServiceClient "github.com/avolkov/MSP-ReservationService/internal/integrations/chatservice"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
	gatewayClient "github.com/avolkov/MSP-ReservationService/internal/integrations/paymentgateway"
	availabilityService "github.com/avolkov/MSP-ReservationService/internal/service/availability"
	reservationsService "github.com/avolkov/MSP-ReservationService/internal/service/reservations"
	confirmBudgetUC "github.com/avolkov/MSP-ReservationService/internal/usecase/confirm_budget"
	createReservationUC "github.com/avolkov/MSP-ReservationService/internal/usecase/create_reservation"
	transitionStatusUC "github.com/avolkov/MSP-ReservationService/internal/usecase/transition_status"
	"github.com/avolkov/MSP-ReservationService/pkg/dbmetrics"
	"github.com/avolkov/MSP-ReservationService/pkg/logger"
	"github.com/avolkov/MSP-ReservationService/pkg/metrics"
	"github.com/avolkov/MSP-ReservationService/pkg/simpletxmanager"
	"github.com/avolkov/MSP-ReservationService/pkg/txmanager"
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

	log.Info("Starting MSP-ReservationService...")
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

	// Инициализируем интеграционных клиентов
	gateway := gatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.Token,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	chatClient := chatServiceClient.NewClient(
		cfg.ChatService.URL,
		time.Duration(cfg.ChatService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s timeout=%ds, ChatService=%s timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout, cfg.ChatService.URL, cfg.ChatService.Timeout)

	// Инициализируем producer событий бронирований
	eventProducer := notifier.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	defer eventProducer.Close()
	log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository  *reservationRepo.Repository
		paymentRepository      *paymentRepo.Repository
		professionalRepository *professionalRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		professionalRepository = professionalRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		professionalRepository = professionalRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(reservationRepository, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		paymentRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		availabilitySvc,
		gateway,
		reservationRepository,
		paymentRepository,
		eventProducer,
		log,
	)

	confirmBudgetUseCase := confirmBudgetUC.NewUseCase(
		availabilitySvc,
		reservationRepository,
		chatClient,
		eventProducer,
		log,
	)

	transitionStatusUseCase := transitionStatusUC.NewUseCase(
		reservationRepository,
		professionalRepository,
		txMgr,
		eventProducer,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	confirmBudget := confirmBudgetHandler.NewHandler(confirmBudgetUseCase, log)
	transitionStatus := transitionStatusHandler.NewHandler(transitionStatusUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(transitionStatusUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getProfessionalReservations := getProfessionalReservationsHandler.NewHandler(reservationsSvc, log)

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
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования с оплатой
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Подтверждение сметы из чата
	protected.HandleFunc("/budgets/confirm", confirmBudget.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перевод статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", transitionStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// Список бронирований специалиста
	protected.HandleFunc("/professionals/{professionalId}/reservations",
		getProfessionalReservations.Handle).Methods(http.MethodGet)

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
