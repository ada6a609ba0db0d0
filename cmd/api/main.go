package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/api/http"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/api/http/handlers"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/assignment"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/auth"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/cache"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/config"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/events"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/mailer"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/observability"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/persistence"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/repository"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/service"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	counterRepo := repository.NewTicketCounterRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	directory := assignment.Default()
	ticketCache := cache.NewTicketCache(redis.Client, cfg.Redis.TicketTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		AuditRepo:   auditRepo,
		CounterRepo: counterRepo,
		Directory:   directory,
		Cache:       ticketCache,
		Dispatcher:  dispatcher,
	})
	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(cfg.Auth, userRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.SMTP)
	worker.StartNotificationWorker(notificationService)

	if cfg.IMAP.Configured() {
		listener := mailer.NewListener(cfg.IMAP, ticketService, logger)
		worker.StartMailIngestWorker(ctx, listener)
	} else {
		logger.Info("mailbox ingestion disabled: no credentials configured")
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService, userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Meta:           handlers.NewMetaHandler(directory),
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
