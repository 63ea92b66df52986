package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"staybook/internal/app/commands"
	"staybook/internal/app/facade"
	listingapp "staybook/internal/app/handlers/listing"
	reservationapp "staybook/internal/app/handlers/reservation"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/queries"
	domainlisting "staybook/internal/domain/listing"
	domainproperty "staybook/internal/domain/property"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongostore "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/outbox"
	"staybook/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *outbox.Worker
	ready    func() error
	mongo    *mongostore.Client
	producer *kafka.Producer
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{ready: func() error { return nil }}

	var (
		listings     domainlisting.Repository
		reservations domainreservation.Repository
		properties   domainproperty.Repository
		box          appoutbox.Outbox
	)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, err
		}
		app.producer = producer
	}

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		app.mongo = client
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		listings = mongostore.NewListingRepository(client.DB)
		reservations = mongostore.NewReservationRepository(client.DB)
		properties = mongostore.NewPropertyRepository(client.DB)

		store := outbox.NewStore(client.DB)
		box = store
		if app.producer != nil {
			app.worker = &outbox.Worker{
				Store:       store,
				Producer:    app.producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("no kafka brokers configured, outbox events will accumulate")
		}
	default:
		listings = memory.NewListingRepository()
		reservations = memory.NewReservationRepository()
		properties = memory.NewPropertyRepository()
		var publisher memory.Publisher
		if app.producer != nil {
			publisher = directPublisher{producer: app.producer, prefix: cfg.KafkaTopicPrefix}
		}
		box = memory.NewOutbox(publisher)
	}

	idStore := memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	propertyModule := facade.NewModule(listings, properties)

	commandBus := commands.NewInMemoryBus()
	createHandler := &reservationapp.CreateHandler{
		Facade:       propertyModule,
		Reservations: reservations,
		Outbox:       box,
		Encoder:      appoutbox.JSONEventEncoder{},
		HoldDuration: cfg.HoldDuration,
	}
	commands.RegisterHandler(commandBus, reservationapp.CreateCommand{}.Key(), createHandler)
	confirmHandler := &reservationapp.ConfirmHandler{
		Facade:       propertyModule,
		Reservations: reservations,
		Outbox:       box,
		Encoder:      appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, reservationapp.ConfirmCommand{}.Key(), confirmHandler)
	cancelHandler := &reservationapp.CancelHandler{
		Facade:       propertyModule,
		Reservations: reservations,
		Outbox:       box,
		Encoder:      appoutbox.JSONEventEncoder{},
		Logger:       logger,
	}
	commands.RegisterHandler(commandBus, reservationapp.CancelCommand{}.Key(), cancelHandler)
	completeHandler := &reservationapp.CompleteHandler{
		Reservations: reservations,
		Outbox:       box,
		Encoder:      appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, reservationapp.CompleteCommand{}.Key(), completeHandler)
	blockHandler := &listingapp.BlockPeriodHandler{Listings: listings}
	commands.RegisterHandler(commandBus, listingapp.BlockPeriodCommand{}.Key(), blockHandler)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, reservationapp.GetQuery{}.Key(), &reservationapp.GetHandler{Reservations: reservations})
	queries.RegisterHandler(queryBus, reservationapp.ListQuery{}.Key(), &reservationapp.ListHandler{Reservations: reservations})
	queries.RegisterHandler(queryBus, listingapp.GetQuery{}.Key(), &listingapp.GetHandler{Listings: listings})
	queries.RegisterHandler(queryBus, listingapp.ListQuery{}.Key(), &listingapp.ListHandler{Listings: listings, Properties: properties})
	queries.RegisterHandler(queryBus, listingapp.AvailabilityQuery{}.Key(), &listingapp.AvailabilityHandler{Listings: listings})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		Listing: ginserver.ListingHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		Property: ginserver.PropertyHandler{
			Facade:      propertyModule,
			ListingRepo: listings,
		},
	}
	return app, nil
}

func (a *application) close(logger *slog.Logger) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
	if a.mongo != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongo.Close(closeCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}
}

// directPublisher routes memory-mode outbox records straight to the broker
// using the same topic naming as the durable worker.
type directPublisher struct {
	producer *kafka.Producer
	prefix   string
}

func (p directPublisher) Publish(ctx context.Context, record appoutbox.EventRecord) error {
	base := record.Name
	if idx := strings.IndexRune(base, '.'); idx > 0 {
		base = base[:idx]
	}
	topic := base + ".events.v1"
	if p.prefix != "" {
		topic = p.prefix + topic
	}
	return p.producer.Publish(ctx, topic, record.Aggregate, record.Payload, record.Headers)
}
