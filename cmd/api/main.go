package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bafa2024/complaint-hub-beta/internal/api/http"
	"github.com/bafa2024/complaint-hub-beta/internal/api/http/handlers"
	"github.com/bafa2024/complaint-hub-beta/internal/auth"
	"github.com/bafa2024/complaint-hub-beta/internal/classifier"
	"github.com/bafa2024/complaint-hub-beta/internal/clock"
	"github.com/bafa2024/complaint-hub-beta/internal/config"
	"github.com/bafa2024/complaint-hub-beta/internal/events"
	"github.com/bafa2024/complaint-hub-beta/internal/observability"
	"github.com/bafa2024/complaint-hub-beta/internal/persistence"
	"github.com/bafa2024/complaint-hub-beta/internal/repository"
	"github.com/bafa2024/complaint-hub-beta/internal/scheduler"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
	"github.com/bafa2024/complaint-hub-beta/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	responseRepo := repository.NewTicketResponseRepository(pool)
	logRepo := repository.NewTicketLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	clk := clock.System()

	textClassifier, err := classifier.New(cfg.Classifier, logger)
	if err != nil {
		logger.Fatal("failed to init classifier", zap.Error(err))
	}
	actionScheduler := scheduler.NewRedisScheduler(redis.Client, cfg.Scheduler, logger)

	ledgerService := service.NewLedgerService(service.LedgerDependencies{
		LedgerRepo: ledgerRepo,
		BrandRepo:  brandRepo,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(*cfg, service.TicketDependencies{
		TicketRepo:   ticketRepo,
		ResponseRepo: responseRepo,
		LogRepo:      logRepo,
		BrandRepo:    brandRepo,
		UserRepo:     userRepo,
		Ledger:       ledgerService,
		Classifier:   textClassifier,
		Scheduler:    actionScheduler,
		Dispatcher:   dispatcher,
		Clock:        clk,
		Logger:       logger,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		TicketRepo: ticketRepo,
		BrandRepo:  brandRepo,
		Clock:      clk,
		Logger:     logger,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		BrandRepo: brandRepo,
		Ledger:    ledgerService,
		Logger:    logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	followUpWorker := worker.NewFollowUpWorker(actionScheduler, ticketRepo, dispatcher, clk, logger, cfg.Scheduler.PollInterval())
	go followUpWorker.Run(ctx)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Brands:         handlers.NewBrandsHandler(analyticsService, ledgerService, cfg.Billing.Currency),
		Public:         handlers.NewPublicHandler(ticketService),
		Webhooks:       handlers.NewWebhooksHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
