package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/repository"
)

// Message constants for logging
const (
	LogMsgProfileCacheHit = "Profile served from cache"
	LogMsgProfileFetched  = "Profile fetched from store"
	LogMsgProfileUpdated  = "Profile updated"
)

// DefaultCacheTTL bounds how stale a cached profile may get.
const DefaultCacheTTL = 5 * time.Minute

// Service provides cached access to developer profiles
type Service interface {
	GetProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error
}

type service struct {
	repo  repository.Profile
	cache *profileCache
}

// NewService creates a new profile service backed by an LRU cache.
func NewService(repo repository.Profile, cacheSize int, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: newProfileCache(cacheSize, cacheTTL),
	}
}

func (s *service) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(username)

	if profile, ok := s.cache.Get(username); ok {
		log.Debug(LogMsgProfileCacheHit, "username", username)
		return profile, nil
	}

	profile, err := s.repo.GetProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", username, err)
	}

	s.cache.Set(username, profile)
	log.Debug(LogMsgProfileFetched, "username", username, "level", profile.Level)
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContext(ctx)

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile for %s: %w", profile.Username, err)
	}

	s.cache.Invalidate(profile.Username)
	log.Info(LogMsgProfileUpdated, "username", profile.Username, "level", profile.Level)
	return nil
}
