package repository

import (
	"context"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
)

// Battle defines the interface for battle persistence
type Battle interface {
	CreateBattle(ctx context.Context, battle *domain.Battle) error
	GetBattle(ctx context.Context, battleID string) (*domain.Battle, error)
	// GetActiveBattle returns the user's battle in a non-terminal status, or
	// domain.ErrBattleNotFound when none exists.
	GetActiveBattle(ctx context.Context, username string) (*domain.Battle, error)
	// UpdateBattle persists the battle guarded by its version; a stale version
	// returns domain.ErrVersionConflict.
	UpdateBattle(ctx context.Context, battle *domain.Battle) error
	ListBattles(ctx context.Context, username string, limit int) ([]domain.Battle, error)
	// ListOverdueBattles returns non-terminal battles whose expiry passed
	// before the cutoff, oldest first.
	ListOverdueBattles(ctx context.Context, cutoff time.Time, limit int) ([]domain.Battle, error)
}
