package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gitforge/bossquest/internal/scheduler"
	"github.com/gitforge/bossquest/internal/server"
	"github.com/gitforge/bossquest/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server           *server.Server
	ExpirationWorker *worker.ExpirationWorker
	Scheduler        *scheduler.Scheduler
	WorkerPool       *worker.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Expiration worker (cancel pending expiry timers)
// 3. Scheduler and worker pool (drain queued sweeps)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	// Shutdown the expiration worker to cancel pending timers
	if components.ExpirationWorker != nil {
		if err := components.ExpirationWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgExpirationWorkerFailed, "error", err)
		}
	}

	// Stop the periodic sweep and drain the pool
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
