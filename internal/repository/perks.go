package repository

import (
	"context"

	"github.com/gitforge/bossquest/internal/domain"
)

// Perks defines the interface for reward persistence
type Perks interface {
	// GetUserPerks returns the user's perks, or a zero-value record when the
	// user has never earned anything.
	GetUserPerks(ctx context.Context, username string) (*domain.UserPerks, error)
	// SaveUserPerks persists the perks guarded by their version; a stale
	// version returns domain.ErrVersionConflict.
	SaveUserPerks(ctx context.Context, perks *domain.UserPerks) error
	// HasReward reports whether a reward was already issued for the battle.
	HasReward(ctx context.Context, battleID string) (bool, error)
	// RecordReward marks the battle's reward as issued. Recording an already
	// issued battle returns domain.ErrRewardAlreadyIssued.
	RecordReward(ctx context.Context, battleID, username string) error
}
