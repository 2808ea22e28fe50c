package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	accommodationapp "stayhub/internal/app/accommodations"
	bookingapp "stayhub/internal/app/booking"
	metricsapp "stayhub/internal/app/metrics"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/uow"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/config"
	mongodb "stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/notify"
	"stayhub/internal/infra/obs"
	"stayhub/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	uowFactory, ready, err := buildStorage(cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	notifier, events, closeBroker, err := buildMessaging(cfg, logger)
	if err != nil {
		logger.Error("broker init failed", "error", err)
		os.Exit(1)
	}
	defer closeBroker()

	handlers := buildHandlers(cfg, uowFactory, notifier, events, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStorage(cfg config.Config, logger *slog.Logger) (uow.UoWFactory, func() error, error) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, using in-memory storage")
		factory := memory.Factory{
			UserDir:            memory.NewUserDirectory(),
			AccommodationsRepo: memory.NewAccommodationRepository(),
			ReservationsRepo:   memory.NewReservationRepository(),
			CommentsRepo:       memory.NewCommentRepository(),
		}
		return factory, func() error { return nil }, nil
	}

	client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}
	factory := mongodb.Factory{
		DB:                 client.DB,
		UserDir:            mongodb.NewUserDirectory(client.DB),
		AccommodationsRepo: mongodb.NewAccommodationRepository(client.DB),
		ReservationsRepo:   mongodb.NewReservationRepository(client.DB),
		CommentsRepo:       mongodb.NewCommentRepository(client.DB),
	}
	ready := func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
	return factory, ready, nil
}

func buildMessaging(cfg config.Config, logger *slog.Logger) (policies.Notifier, policies.EventPublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, notifications go to the log")
		return notify.LogNotifier{Logger: logger}, nil, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	closer := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	notifier := notify.KafkaNotifier{Producer: producer, Topic: cfg.NotifyTopic}
	events := kafka.EventPublisher{Producer: producer, Topic: cfg.EventTopic}
	return notifier, events, closer, nil
}

func buildHandlers(cfg config.Config, factory uow.UoWFactory, notifier policies.Notifier, events policies.EventPublisher, logger *slog.Logger) ginserver.Handlers {
	policy := domainreservation.CancellationPolicy{MinNoticeDays: cfg.GuestCancelNoticeDays}

	booking := ginserver.BookingHandler{
		Request: &bookingapp.RequestBookingHandler{
			UoWFactory: factory,
			Notifier:   notifier,
			Events:     events,
			Logger:     logger,
		},
		Transition: &bookingapp.TransitionHandler{
			UoWFactory: factory,
			Notifier:   notifier,
			Events:     events,
			Logger:     logger,
		},
		CancelCmd: &bookingapp.CancelBookingHandler{
			UoWFactory: factory,
			Policy:     policy,
			Notifier:   notifier,
			Events:     events,
			Logger:     logger,
		},
		GuestList: &bookingapp.ListGuestReservationsHandler{UoWFactory: factory},
		HostList:  &bookingapp.ListHostReservationsHandler{UoWFactory: factory},
	}

	accommodation := ginserver.AccommodationHandler{
		Create: &accommodationapp.CreateAccommodationHandler{
			UoWFactory: factory,
			Events:     events,
			Logger:     logger,
		},
		Update: &accommodationapp.UpdateAccommodationHandler{
			UoWFactory: factory,
			Events:     events,
			Logger:     logger,
		},
		Delete: &accommodationapp.DeleteAccommodationHandler{
			UoWFactory: factory,
			Events:     events,
			Logger:     logger,
		},
		Search:       &accommodationapp.SearchAccommodationsHandler{UoWFactory: factory},
		PricePreview: &accommodationapp.PricePreviewHandler{UoWFactory: factory},
		Metrics:      &metricsapp.AccommodationMetricsHandler{UoWFactory: factory},
	}

	return ginserver.Handlers{Booking: booking, Accommodation: accommodation}
}
