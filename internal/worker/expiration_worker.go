package worker

import (
	"context"
	"time"

	"github.com/gitforge/bossquest/internal/battle"
	"github.com/gitforge/bossquest/internal/event"
	"github.com/gitforge/bossquest/internal/logger"
)

// ExpirationWorker forces the expired transition on overdue battles. It
// schedules a precise timer per battle as battles are created, and also
// implements worker.Job so a scheduler can run it as a periodic sweep to
// catch battles created before the process started.
type ExpirationWorker struct {
	BaseWorker
	service battle.Service
}

// NewExpirationWorker creates a new ExpirationWorker
func NewExpirationWorker(service battle.Service) *ExpirationWorker {
	w := &ExpirationWorker{service: service}
	w.init()
	return w
}

// Start runs an initial sweep to pick up battles that went overdue while the
// process was down.
func (w *ExpirationWorker) Start() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	if _, err := w.service.CleanupExpired(ctx); err != nil {
		log.Error(LogMsgExpirationSweepFailed, "error", err)
	}
}

// Subscribe subscribes the worker to battle creation events
func (w *ExpirationWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.BattleCreated, w.handleBattleCreated)

	// A resolved battle no longer needs its timer.
	for _, t := range []event.Type{event.BattleWon, event.BattleLost, event.BattleExpired} {
		bus.Subscribe(t, w.handleBattleResolved)
	}
}

func (w *ExpirationWorker) handleBattleCreated(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.BattleCreatedPayloadV1](e.Payload)
	if err != nil {
		return nil
	}
	w.scheduleExpiry(payload.BattleID, payload.Username, time.Unix(payload.ExpiresAt, 0))
	return nil
}

func (w *ExpirationWorker) handleBattleResolved(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.BattleResolvedPayloadV1](e.Payload)
	if err != nil {
		return nil
	}
	w.stopTimer(payload.BattleID)
	return nil
}

func (w *ExpirationWorker) scheduleExpiry(battleID, username string, expiresAt time.Time) {
	duration := time.Until(expiresAt)

	log := logger.FromContext(context.Background())
	log.Info(LogMsgSchedulingExpiration, "battleID", battleID, "duration", duration)

	if duration <= 0 {
		w.expireBattle(battleID, username)
		return
	}

	w.stopTimer(battleID)

	timer := time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.removeTimer(battleID)
		w.expireBattle(battleID, username)
	})
	w.registerTimer(battleID, timer)
}

// expireBattle touches the battle so the lazy expiration check runs and
// persists the expired transition.
func (w *ExpirationWorker) expireBattle(battleID, username string) {
	w.wg.Add(1)
	defer w.wg.Done()

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info(LogMsgExpiringBattle, "battleID", battleID)

	if _, err := w.service.GetBattle(ctx, battleID, username); err != nil {
		log.Error(LogMsgFailedToExpireBattle, "battleID", battleID, "error", err)
	}
}

// Process implements worker.Job: one expiration sweep across all overdue
// battles. Registered with the scheduler as a safety net behind the per-battle
// timers.
func (w *ExpirationWorker) Process(ctx context.Context) error {
	count, err := w.service.CleanupExpired(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.FromContext(ctx).Info(LogMsgExpirationSweepResult, "expired", count)
	}
	return nil
}

// Shutdown stops all pending timers and waits for in-flight expirations
func (w *ExpirationWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "ExpirationWorker")
}
