package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/repository"
)

type profileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *pgxpool.Pool) repository.Profile {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	query := `
		SELECT data
		FROM user_profiles
		WHERE username = $1
	`

	var data []byte
	if err := r.db.QueryRow(ctx, query, username).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO user_profiles (username, data)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, profile.Username, data); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
