package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/process-tracker/internal/api/http"
	"github.com/spec-kit/process-tracker/internal/api/http/handlers"
	"github.com/spec-kit/process-tracker/internal/auth"
	"github.com/spec-kit/process-tracker/internal/config"
	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/events"
	"github.com/spec-kit/process-tracker/internal/observability"
	"github.com/spec-kit/process-tracker/internal/persistence"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/service"
	"github.com/spec-kit/process-tracker/internal/sla"
	"github.com/spec-kit/process-tracker/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	stageSetRepo := repository.NewStageSetRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, operatorRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Engine:     sla.NewEngine(domain.DefaultOriginRules()),
		Dispatcher: dispatcher,
	})
	projectService := service.NewProjectService(projectRepo, nil)
	implantationService := service.NewImplantationService(service.ImplantationDependencies{
		StageSetRepo: stageSetRepo,
		ProjectRepo:  projectRepo,
		Dispatcher:   dispatcher,
	})
	renewalService := service.NewRenewalService(customerRepo, nil)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo: ticketRepo,
		Renewals:   renewalService,
		Cache:      redis.Handle(),
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	notificationWorker := worker.NewNotificationWorker(notificationService, logger)
	notificationWorker.Start()

	deadlineWorker := worker.NewDeadlineWorker(ticketRepo, dispatcher, logger, cfg.Sweep)
	deadlineWorker.Start(ctx)
	defer deadlineWorker.Stop()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), operatorRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Operators:      handlers.NewOperatorsHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Projects:       handlers.NewProjectsHandler(projectService, implantationService),
		Stages:         handlers.NewStagesHandler(implantationService),
		Renewals:       handlers.NewRenewalsHandler(renewalService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
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
