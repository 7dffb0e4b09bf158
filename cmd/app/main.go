package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitforge/bossquest/internal/battle"
	"github.com/gitforge/bossquest/internal/bootstrap"
	"github.com/gitforge/bossquest/internal/concurrency"
	"github.com/gitforge/bossquest/internal/config"
	"github.com/gitforge/bossquest/internal/database"
	"github.com/gitforge/bossquest/internal/evaluation"
	"github.com/gitforge/bossquest/internal/generator"
	"github.com/gitforge/bossquest/internal/handler"
	"github.com/gitforge/bossquest/internal/profile"
	"github.com/gitforge/bossquest/internal/reasoning"
	"github.com/gitforge/bossquest/internal/reward"
	"github.com/gitforge/bossquest/internal/scheduler"
	"github.com/gitforge/bossquest/internal/server"
	"github.com/gitforge/bossquest/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging (stdout + rotating session files)
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	// Request validation
	handler.InitValidator()

	// Database pool
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Event system
	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize event system: %v", err)
	}

	// Repositories
	repos := bootstrap.InitializeRepositories(dbPool)

	// AI backend client shared by generation and evaluation
	reasoningClient := reasoning.NewHTTPClient(cfg.ReasoningBaseURL, cfg.ReasoningAPIKey, cfg.ReasoningModel, cfg.ReasoningTimeout)

	// Services
	profileService := profile.NewService(repos.Profile, cfg.ProfileCacheSize, profile.DefaultCacheTTL)
	rewardService := reward.NewService(repos.Perks)
	generatorService := generator.NewService(reasoningClient)
	evaluationService := evaluation.NewService(reasoningClient)

	battleService := battle.NewService(
		repos.Battle,
		profileService,
		generatorService,
		evaluationService,
		rewardService,
		resilientPublisher,
		concurrency.NewLockManager(),
		cfg.BattleTimeLimit,
	)

	// Background expiration: per-battle timers plus a periodic sweep
	expirationWorker := worker.NewExpirationWorker(battleService)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         eventBus,
		ProfileService:   profileService,
		ExpirationWorker: expirationWorker,
		Config:           cfg,
	}); err != nil {
		log.Fatalf("Failed to register event handlers: %v", err)
	}

	expirationWorker.Start()

	workerPool := worker.NewPool(2, 16)
	workerPool.Start()
	sweepScheduler := scheduler.New(workerPool)
	sweepScheduler.Schedule(cfg.CleanupInterval, expirationWorker)
	sweepScheduler.Start()

	// HTTP server
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, battleService, profileService, rewardService)

	// Run until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
		}
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:           srv,
		ExpirationWorker: expirationWorker,
		Scheduler:        sweepScheduler,
		WorkerPool:       workerPool,
	})
}
