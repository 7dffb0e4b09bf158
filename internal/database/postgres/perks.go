package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/repository"
)

type perksRepository struct {
	db *pgxpool.Pool
}

// NewPerksRepository creates a new PostgreSQL perks repository
func NewPerksRepository(db *pgxpool.Pool) repository.Perks {
	return &perksRepository{db: db}
}

// GetUserPerks returns the user's perk document, or an empty zero-version
// record for first-time earners.
func (r *perksRepository) GetUserPerks(ctx context.Context, username string) (*domain.UserPerks, error) {
	query := `
		SELECT data, version
		FROM user_perks
		WHERE username = $1
	`

	var data []byte
	var version int
	err := r.db.QueryRow(ctx, query, username).Scan(&data, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.UserPerks{Username: username}, nil
		}
		return nil, fmt.Errorf("failed to get perks: %w", err)
	}

	var perks domain.UserPerks
	if err := json.Unmarshal(data, &perks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal perks: %w", err)
	}
	perks.Version = version
	return &perks, nil
}

// SaveUserPerks upserts the perk document with an optimistic version guard.
// A version of zero means the record has never been persisted.
func (r *perksRepository) SaveUserPerks(ctx context.Context, perks *domain.UserPerks) error {
	data, err := json.Marshal(perks)
	if err != nil {
		return fmt.Errorf("failed to marshal perks: %w", err)
	}

	if perks.Version == 0 {
		query := `
			INSERT INTO user_perks (username, data, version)
			VALUES ($1, $2, 1)
			ON CONFLICT (username) DO NOTHING
		`
		tag, err := r.db.Exec(ctx, query, perks.Username, data)
		if err != nil {
			return fmt.Errorf("failed to insert perks: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrVersionConflict, perks.Username)
		}
		perks.Version = 1
		return nil
	}

	query := `
		UPDATE user_perks
		SET data = $1, version = version + 1, updated_at = NOW()
		WHERE username = $2 AND version = $3
	`

	tag, err := r.db.Exec(ctx, query, data, perks.Username, perks.Version)
	if err != nil {
		return fmt.Errorf("failed to update perks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrVersionConflict, perks.Username)
	}

	perks.Version++
	return nil
}

func (r *perksRepository) HasReward(ctx context.Context, battleID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM battle_rewards WHERE battle_id = $1)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, battleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reward issuance: %w", err)
	}
	return exists, nil
}

// RecordReward marks the battle as paid out. The primary key on battle_id
// is the durable idempotency guard.
func (r *perksRepository) RecordReward(ctx context.Context, battleID, username string) error {
	query := `
		INSERT INTO battle_rewards (battle_id, username)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, battleID, username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrRewardAlreadyIssued, battleID)
		}
		return fmt.Errorf("failed to record reward: %w", err)
	}
	return nil
}
