package repository

import (
	"context"

	"github.com/gitforge/bossquest/internal/domain"
)

// Profile defines the interface for developer profile persistence
type Profile interface {
	// GetProfile returns the user's developer profile, or
	// domain.ErrUserNotFound when the user is unknown.
	GetProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.UserProfile) error
}
