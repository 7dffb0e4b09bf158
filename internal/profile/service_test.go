package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gitforge/bossquest/internal/domain"
)

// MockProfileRepo is a mock implementation of repository.Profile
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Username:  "alice",
		Level:     domain.LevelBuilder,
		Languages: []string{"go"},
	}
}

func TestGetProfileCachesLookup(t *testing.T) {
	repo := new(MockProfileRepo)
	svc := NewService(repo, 10, time.Minute)

	repo.On("GetProfile", mock.Anything, "alice").Return(testProfile(), nil).Once()

	first, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)

	// Second lookup must come from the cache, not the repository
	second, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestGetProfileNormalizesUsername(t *testing.T) {
	repo := new(MockProfileRepo)
	svc := NewService(repo, 10, time.Minute)

	repo.On("GetProfile", mock.Anything, "alice").Return(testProfile(), nil).Once()

	_, err := svc.GetProfile(context.Background(), "Alice")
	require.NoError(t, err)

	// Mixed-case variant hits the same cache entry
	_, err = svc.GetProfile(context.Background(), "ALICE")
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestGetProfileNotFound(t *testing.T) {
	repo := new(MockProfileRepo)
	svc := NewService(repo, 10, time.Minute)

	repo.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	repo := new(MockProfileRepo)
	svc := NewService(repo, 10, time.Minute)

	stale := testProfile()
	repo.On("GetProfile", mock.Anything, "alice").Return(stale, nil).Once()

	_, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)

	updated := testProfile()
	updated.Level = domain.LevelCraftsman
	repo.On("UpsertProfile", mock.Anything, updated).Return(nil)
	require.NoError(t, svc.UpdateProfile(context.Background(), updated))

	// Next read goes back to the repository and sees the new level
	repo.On("GetProfile", mock.Anything, "alice").Return(updated, nil).Once()

	got, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelCraftsman, got.Level)
}

func TestCacheVersionMismatchEvicts(t *testing.T) {
	cache := newProfileCache(10, time.Minute)
	cache.Set("alice", testProfile())

	// Simulate an entry written by an older schema
	entry, found := cache.lru.Get("alice")
	require.True(t, found)
	entry.Version = "0.9"

	_, ok := cache.Get("alice")
	assert.False(t, ok)
}
