package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/repository"
)

type battleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a new PostgreSQL battle repository
func NewBattleRepository(db *pgxpool.Pool) repository.Battle {
	return &battleRepository{db: db}
}

// CreateBattle inserts a new battle document. The status, username and
// expiry are denormalized into columns for indexed lookups; the full battle
// lives in the JSONB document.
func (r *battleRepository) CreateBattle(ctx context.Context, battle *domain.Battle) error {
	data, err := domain.MarshalBattle(battle)
	if err != nil {
		return fmt.Errorf("failed to marshal battle: %w", err)
	}

	query := `
		INSERT INTO boss_battles (battle_id, username, status, expires_at, data, version)
		VALUES ($1, $2, $3, $4, $5, 1)
	`

	_, err = r.db.Exec(ctx, query,
		battle.BattleID, battle.Username, string(battle.Status),
		battle.Schedule.ExpiresAt, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrBattleAlreadyActive, battle.BattleID)
		}
		return fmt.Errorf("failed to insert battle: %w", err)
	}

	battle.Version = 1
	return nil
}

func (r *battleRepository) GetBattle(ctx context.Context, battleID string) (*domain.Battle, error) {
	query := `
		SELECT data, version
		FROM boss_battles
		WHERE battle_id = $1
	`

	return r.scanBattleRow(r.db.QueryRow(ctx, query, battleID))
}

// GetActiveBattle returns the user's single non-terminal battle. The partial
// unique index on (username) WHERE status IN ('initiated','facing') makes
// more than one impossible.
func (r *battleRepository) GetActiveBattle(ctx context.Context, username string) (*domain.Battle, error) {
	query := `
		SELECT data, version
		FROM boss_battles
		WHERE username = $1 AND status IN ('initiated', 'facing')
	`

	return r.scanBattleRow(r.db.QueryRow(ctx, query, username))
}

// UpdateBattle writes the battle back guarded by its version. Zero rows
// affected means someone else won the race.
func (r *battleRepository) UpdateBattle(ctx context.Context, battle *domain.Battle) error {
	data, err := domain.MarshalBattle(battle)
	if err != nil {
		return fmt.Errorf("failed to marshal battle: %w", err)
	}

	query := `
		UPDATE boss_battles
		SET status = $1, expires_at = $2, data = $3, version = version + 1, updated_at = NOW()
		WHERE battle_id = $4 AND version = $5
	`

	tag, err := r.db.Exec(ctx, query,
		string(battle.Status), battle.Schedule.ExpiresAt, data,
		battle.BattleID, battle.Version)
	if err != nil {
		return fmt.Errorf("failed to update battle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrVersionConflict, battle.BattleID)
	}

	battle.Version++
	return nil
}

func (r *battleRepository) ListBattles(ctx context.Context, username string, limit int) ([]domain.Battle, error) {
	query := `
		SELECT data, version
		FROM boss_battles
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	defer rows.Close()

	return r.scanBattles(rows)
}

func (r *battleRepository) ListOverdueBattles(ctx context.Context, cutoff time.Time, limit int) ([]domain.Battle, error) {
	query := `
		SELECT data, version
		FROM boss_battles
		WHERE status IN ('initiated', 'facing') AND expires_at < $1
		ORDER BY expires_at ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue battles: %w", err)
	}
	defer rows.Close()

	return r.scanBattles(rows)
}

func (r *battleRepository) scanBattleRow(row pgx.Row) (*domain.Battle, error) {
	var data []byte
	var version int

	if err := row.Scan(&data, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to scan battle: %w", err)
	}

	battle, err := domain.UnmarshalBattle(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal battle: %w", err)
	}
	battle.Version = version
	return battle, nil
}

func (r *battleRepository) scanBattles(rows pgx.Rows) ([]domain.Battle, error) {
	var battles []domain.Battle
	for rows.Next() {
		var data []byte
		var version int
		if err := rows.Scan(&data, &version); err != nil {
			return nil, fmt.Errorf("failed to scan battle row: %w", err)
		}

		battle, err := domain.UnmarshalBattle(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal battle row: %w", err)
		}
		battle.Version = version
		battles = append(battles, *battle)
	}
	return battles, rows.Err()
}
