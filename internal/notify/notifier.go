package notify

import (
	"context"
	"fmt"

	"github.com/gitforge/bossquest/internal/event"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/profile"
)

// Message constants for logging
const (
	LogMsgNotificationSent    = "Outcome notification sent"
	LogMsgNotificationSkipped = "Outcome notification skipped, no email on profile"
	LogMsgNotificationFailed  = "Failed to send outcome notification"
)

// Sender delivers a composed notification. Delivery is best effort;
// battle outcomes are already committed before a notification fires.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier subscribes to battle outcome events and emails the challenger.
type Notifier struct {
	profiles profile.Service
	sender   Sender
}

func NewNotifier(profiles profile.Service, sender Sender) *Notifier {
	return &Notifier{profiles: profiles, sender: sender}
}

// Register subscribes the notifier to terminal battle events on the bus.
func (n *Notifier) Register(bus event.Bus) {
	bus.Subscribe(event.BattleWon, n.HandleEvent)
	bus.Subscribe(event.BattleLost, n.HandleEvent)
	bus.Subscribe(event.BattleExpired, n.HandleEvent)
}

// HandleEvent composes and delivers a notification for a resolved battle.
// Errors are logged, never propagated: a failed email must not poison the
// event or trigger redelivery of an already-final outcome.
func (n *Notifier) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.BattleResolvedPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgNotificationFailed, "event_type", evt.Type, "error", err)
		return nil
	}

	p, err := n.profiles.GetProfile(ctx, payload.Username)
	if err != nil {
		log.Warn(LogMsgNotificationFailed, "username", payload.Username, "error", err)
		return nil
	}
	if p.Email == "" {
		log.Debug(LogMsgNotificationSkipped, "username", payload.Username)
		return nil
	}

	subject, body := composeMessage(evt.Type, payload)
	if err := n.sender.Send(ctx, p.Email, subject, body); err != nil {
		log.Warn(LogMsgNotificationFailed, "username", payload.Username, "error", err)
		return nil
	}

	log.Info(LogMsgNotificationSent, "username", payload.Username, "battle_id", payload.BattleID, "event_type", evt.Type)
	return nil
}

func composeMessage(eventType event.Type, payload event.BattleResolvedPayloadV1) (subject, body string) {
	switch eventType {
	case event.BattleWon:
		subject = "Boss defeated! You leveled up"
		body = fmt.Sprintf(
			"You conquered the boss and reached %s with a score of %d (attempt %d). Your rewards are waiting in your perks.",
			payload.TargetLevel, payload.Score, payload.Attempts)
	case event.BattleLost:
		subject = "The boss prevailed this time"
		body = fmt.Sprintf(
			"Your run at %s ended after %d attempts with a best score of %d. Participation rewards were issued; challenge the boss again when you are ready.",
			payload.TargetLevel, payload.Attempts, payload.Score)
	default:
		subject = "Your boss battle expired"
		body = fmt.Sprintf(
			"Time ran out on your battle for %s. Start a new one whenever you want another shot.",
			payload.TargetLevel)
	}
	return subject, body
}
