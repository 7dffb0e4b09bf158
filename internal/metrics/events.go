package metrics

import (
	"context"
	"strings"

	"github.com/gitforge/bossquest/internal/event"
	"github.com/gitforge/bossquest/internal/logger"
)

// EventMetricsCollector subscribes to battle events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all battle lifecycle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BattleCreated,
		event.BattleStarted,
		event.BattleWon,
		event.BattleLost,
		event.BattleExpired,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes battle events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.BattleCreated:
		payload, err := event.DecodePayload[event.BattleCreatedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		BattlesCreated.WithLabelValues(payload.Source, payload.TargetLevel).Inc()

	case event.BattleStarted:
		BattlesStarted.Inc()

	case event.BattleWon, event.BattleLost, event.BattleExpired:
		payload, err := event.DecodePayload[event.BattleResolvedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}

		// Event types read "battle.won" etc.; the outcome label is the verb.
		outcome := strings.TrimPrefix(string(evt.Type), "battle.")
		BattlesResolved.WithLabelValues(outcome).Inc()

		if evt.Type != event.BattleExpired {
			SubmissionScore.Observe(float64(payload.Score))
			if payload.Mode != "" {
				SubmissionsScored.WithLabelValues(payload.Mode).Inc()
			}
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
