package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Battle lifecycle event types
const (
	BattleCreated Type = "battle.created"
	BattleStarted Type = "battle.started"
	BattleWon     Type = "battle.won"
	BattleLost    Type = "battle.lost"
	BattleExpired Type = "battle.expired"
)

// Typed event payloads for type safety

// BattleCreatedPayloadV1 is the typed payload for battle creation events
type BattleCreatedPayloadV1 struct {
	BattleID     string `json:"battle_id"`
	Username     string `json:"username"`
	CurrentLevel string `json:"current_level"`
	TargetLevel  string `json:"target_level"`
	BossName     string `json:"boss_name"`
	Theme        string `json:"theme"`
	Source       string `json:"source"`
	ExpiresAt    int64  `json:"expires_at"`
	Timestamp    int64  `json:"timestamp"`
}

// BattleStartedPayloadV1 is the typed payload for battle start events
type BattleStartedPayloadV1 struct {
	BattleID  string `json:"battle_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// BattleResolvedPayloadV1 is the typed payload for won/lost/expired events
type BattleResolvedPayloadV1 struct {
	BattleID    string `json:"battle_id"`
	Username    string `json:"username"`
	TargetLevel string `json:"target_level"`
	Score       int    `json:"score"`
	Attempts    int    `json:"attempts"`
	Mode        string `json:"mode,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewBattleCreatedEvent creates a new battle created event
func NewBattleCreatedEvent(battle *domain.Battle) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleCreated,
		Payload: BattleCreatedPayloadV1{
			BattleID:     battle.BattleID,
			Username:     battle.Username,
			CurrentLevel: string(battle.CurrentLevel),
			TargetLevel:  string(battle.TargetLevel),
			BossName:     battle.Challenge.BossCharacteristics.Name,
			Theme:        battle.Challenge.BossCharacteristics.Theme,
			Source:       battle.Challenge.Source,
			ExpiresAt:    battle.Schedule.ExpiresAt.Unix(),
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBattleStartedEvent creates a new battle started event
func NewBattleStartedEvent(battle *domain.Battle) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleStarted,
		Payload: BattleStartedPayloadV1{
			BattleID:  battle.BattleID,
			Username:  battle.Username,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBattleResolvedEvent creates a won, lost or expired event depending on
// the battle's terminal status.
func NewBattleResolvedEvent(battle *domain.Battle) Event {
	var eventType Type
	switch battle.Status {
	case domain.BattleStatusWon:
		eventType = BattleWon
	case domain.BattleStatusLost:
		eventType = BattleLost
	default:
		eventType = BattleExpired
	}

	mode := ""
	if battle.BattleData.Evaluation != nil {
		mode = string(battle.BattleData.Evaluation.Mode)
	}

	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: BattleResolvedPayloadV1{
			BattleID:    battle.BattleID,
			Username:    battle.Username,
			TargetLevel: string(battle.TargetLevel),
			Score:       battle.BattleData.Score,
			Attempts:    battle.BattleData.Attempts,
			Mode:        mode,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; slow subscribers belong on a worker pool.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
