package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/gitforge/bossquest/internal/config"
	"github.com/gitforge/bossquest/internal/event"
	"github.com/gitforge/bossquest/internal/metrics"
	"github.com/gitforge/bossquest/internal/notify"
	"github.com/gitforge/bossquest/internal/profile"
	"github.com/gitforge/bossquest/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	ProfileService   profile.Service
	ExpirationWorker *worker.ExpirationWorker
	Config           *config.Config
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Metrics collector (for event-based battle metrics)
// - Outcome notifier (best-effort victory/defeat emails)
// - Expiration worker (per-battle expiry timers)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	// Register Outcome Notifier. SMTP delivery only when a host is configured;
	// otherwise notifications go to the log.
	var sender notify.Sender = notify.LogSender{}
	if deps.Config.SMTPHost != "" {
		sender = notify.NewSMTPSender(notify.SMTPConfig{
			Host:     deps.Config.SMTPHost,
			Port:     deps.Config.SMTPPort,
			User:     deps.Config.SMTPUser,
			Password: deps.Config.SMTPPassword,
			From:     deps.Config.NotifyFrom,
		})
	}
	notifier := notify.NewNotifier(deps.ProfileService, sender)
	notifier.Register(deps.EventBus)
	slog.Info(LogMsgNotifierRegistered, "smtp_host", deps.Config.SMTPHost)

	// Subscribe Expiration Worker to battle lifecycle events
	deps.ExpirationWorker.Subscribe(deps.EventBus)
	slog.Info(LogMsgExpirationWorkerSubscribed)

	return nil
}
