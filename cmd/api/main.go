package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/saecheverry/stefanini-go-tickets/internal/api/http"
	"github.com/saecheverry/stefanini-go-tickets/internal/api/http/handlers"
	"github.com/saecheverry/stefanini-go-tickets/internal/auth"
	"github.com/saecheverry/stefanini-go-tickets/internal/config"
	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	"github.com/saecheverry/stefanini-go-tickets/internal/flow"
	"github.com/saecheverry/stefanini-go-tickets/internal/observability"
	"github.com/saecheverry/stefanini-go-tickets/internal/persistence"
	"github.com/saecheverry/stefanini-go-tickets/internal/service"
	"github.com/saecheverry/stefanini-go-tickets/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	store := docstore.NewPostgresStore(pg.PoolHandle())
	pipeline := flow.NewPipeline(store, cfg.Flow, metrics)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	ticketService := service.NewTicketService(store, pipeline, dispatcher)
	statesHistoryService := service.NewStatesHistoryService(store, dispatcher)
	commentService := service.NewCommentService(store, dispatcher)
	evidenceService := service.NewEvidenceService(store, dispatcher)
	deviceService := service.NewDeviceService(store)
	appointmentService := service.NewAppointmentService(store, dispatcher)

	authMiddleware := auth.NewMiddleware(cfg.Auth.JWTSecret)
	rateLimiter := httptransport.NewTokenBucket(cfg.RateLimit, redis.Client)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		StatesHistory:  handlers.NewResourceHandler[domain.StatusHistory](statesHistoryService, nil),
		Comments:       handlers.NewResourceHandler[domain.Comment](commentService, nil),
		Evidences:      handlers.NewResourceHandler[domain.Evidence](evidenceService, nil),
		Devices:        handlers.NewResourceHandler[domain.Device](deviceService, nil),
		Appointments:   handlers.NewResourceHandler[domain.Appointment](appointmentService, nil),
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
