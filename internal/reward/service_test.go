package reward

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gitforge/bossquest/internal/domain"
)

// MockPerksRepo is a mock implementation of repository.Perks
type MockPerksRepo struct {
	mock.Mock
}

func (m *MockPerksRepo) GetUserPerks(ctx context.Context, username string) (*domain.UserPerks, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPerks), args.Error(1)
}

func (m *MockPerksRepo) SaveUserPerks(ctx context.Context, perks *domain.UserPerks) error {
	args := m.Called(ctx, perks)
	return args.Error(0)
}

func (m *MockPerksRepo) HasReward(ctx context.Context, battleID string) (bool, error) {
	args := m.Called(ctx, battleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerksRepo) RecordReward(ctx context.Context, battleID, username string) error {
	args := m.Called(ctx, battleID, username)
	return args.Error(0)
}

func wonBattle() *domain.Battle {
	challenge := domain.Challenge{
		Title: "The Dragon's Ledger",
		BossCharacteristics: domain.BossCharacteristics{
			Theme: "ancient-dragon",
			Name:  "Ledger Wyrm",
		},
		PersonalizedElements: domain.PersonalizedElements{
			BasedOnFocusAreas: []string{"Dynamic Programming", "Arrays"},
		},
	}
	return &domain.Battle{
		BattleID:    "BOSS_ALICE_BUILDER_1",
		Username:    "alice",
		TargetLevel: domain.LevelBuilder,
		Status:      domain.BattleStatusWon,
		Challenge:   challenge,
		Rewards:     BundlesFor(&challenge, domain.LevelBuilder),
	}
}

func TestIssueRewards_Victory(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()

	var saved *domain.UserPerks
	repo.On("HasReward", mock.Anything, battle.BattleID).Return(false, nil)
	repo.On("GetUserPerks", mock.Anything, "alice").Return(&domain.UserPerks{Username: "alice"}, nil)
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.UserPerks)
	}).Return(nil)
	repo.On("RecordReward", mock.Anything, battle.BattleID, "alice").Return(nil)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, battle.Rewards.Victory.XP, saved.Stats.TotalXP)
	assert.Equal(t, 1, saved.Stats.BattlesWon)
	assert.Equal(t, 1, saved.Stats.CurrentStreak)
	assert.Equal(t, 1, saved.Stats.LongestStreak)
	assert.True(t, saved.HasBadge("Ancient Dragon Conqueror"))
	assert.True(t, saved.HasBadge("Boss Defeated"))
	assert.True(t, saved.HasTitle("Code Builder Achiever"))
	require.NotEmpty(t, saved.SkillBoosts)
	assert.WithinDuration(t,
		time.Now().Add(SkillBoostDuration), saved.SkillBoosts[0].ExpiresAt, time.Minute)
	for _, b := range saved.Badges {
		assert.Equal(t, domain.BadgeRarityEpic, b.Rarity)
		assert.Contains(t, b.Description, "The Dragon's Ledger")
	}
	repo.AssertExpectations(t)
}

func TestIssueRewards_LossResetsStreak(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()
	battle.Status = domain.BattleStatusLost

	existing := &domain.UserPerks{
		Username: "alice",
		Stats: domain.BossStats{
			TotalXP:       2000,
			BattlesWon:    4,
			CurrentStreak: 4,
			LongestStreak: 4,
		},
	}

	var saved *domain.UserPerks
	repo.On("HasReward", mock.Anything, battle.BattleID).Return(false, nil)
	repo.On("GetUserPerks", mock.Anything, "alice").Return(existing, nil)
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.UserPerks)
	}).Return(nil)
	repo.On("RecordReward", mock.Anything, battle.BattleID, "alice").Return(nil)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	require.NoError(t, err)
	assert.Equal(t, 2000+battle.Rewards.Participation.XP, saved.Stats.TotalXP)
	assert.Equal(t, 1, saved.Stats.BattlesLost)
	assert.Equal(t, 0, saved.Stats.CurrentStreak)
	assert.Equal(t, 4, saved.Stats.LongestStreak, "high-water mark survives the loss")
	assert.True(t, saved.HasBadge("Brave Challenger"))
}

func TestIssueRewards_SkipsWhenAlreadyIssued(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()

	repo.On("HasReward", mock.Anything, battle.BattleID).Return(true, nil)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetUserPerks", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveUserPerks", mock.Anything, mock.Anything)
}

func TestIssueRewards_DedupesBadgesAndTitles(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()

	existing := &domain.UserPerks{
		Username: "alice",
		Badges: []domain.Badge{
			{Name: "Ancient Dragon Conqueror", Rarity: domain.BadgeRarityEpic},
		},
		Titles: []domain.Title{
			{Name: "Code Builder Achiever"},
		},
	}

	var saved *domain.UserPerks
	repo.On("HasReward", mock.Anything, battle.BattleID).Return(false, nil)
	repo.On("GetUserPerks", mock.Anything, "alice").Return(existing, nil)
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.UserPerks)
	}).Return(nil)
	repo.On("RecordReward", mock.Anything, battle.BattleID, "alice").Return(nil)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	require.NoError(t, err)
	assert.Len(t, saved.Badges, 2, "held badge must not be duplicated")
	assert.Len(t, saved.Titles, 1)
}

func TestIssueRewards_RetriesOnVersionConflict(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()

	repo.On("HasReward", mock.Anything, battle.BattleID).Return(false, nil)
	repo.On("GetUserPerks", mock.Anything, "alice").Return(&domain.UserPerks{Username: "alice"}, nil)
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("RecordReward", mock.Anything, battle.BattleID, "alice").Return(nil)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestIssueRewards_RecordRaceIsBenign(t *testing.T) {
	repo := new(MockPerksRepo)
	battle := wonBattle()

	repo.On("HasReward", mock.Anything, battle.BattleID).Return(false, nil)
	repo.On("GetUserPerks", mock.Anything, "alice").Return(&domain.UserPerks{Username: "alice"}, nil)
	repo.On("SaveUserPerks", mock.Anything, mock.Anything).Return(nil)
	repo.On("RecordReward", mock.Anything, battle.BattleID, "alice").Return(domain.ErrRewardAlreadyIssued)

	err := NewService(repo).IssueRewards(context.Background(), battle)

	assert.NoError(t, err, "losing the record race is not an error")
}

func TestBundlesFor(t *testing.T) {
	challenge := &domain.Challenge{
		BossCharacteristics: domain.BossCharacteristics{Theme: "cyber-security"},
	}

	rewards := BundlesFor(challenge, domain.LevelCraftsman)

	assert.Equal(t, victoryBaseXP+victoryXPPerLevel*domain.LevelCraftsman.Index(), rewards.Victory.XP)
	assert.Equal(t, participationXP, rewards.Participation.XP)
	assert.True(t, rewards.Victory.LevelUp)
	assert.False(t, rewards.Participation.LevelUp)

	names := make([]string, 0, len(rewards.Victory.Badges))
	for _, b := range rewards.Victory.Badges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "Cyber Security Conqueror")

	// No focus areas: a single general boost
	require.Len(t, rewards.Victory.SkillBoosts, 1)
	assert.Equal(t, "Problem Solving", rewards.Victory.SkillBoosts[0].Skill)
}

func TestGetPerksNormalizesUsername(t *testing.T) {
	repo := new(MockPerksRepo)

	repo.On("GetUserPerks", mock.Anything, "alice").
		Return(&domain.UserPerks{Username: "alice"}, nil)

	perks, err := NewService(repo).GetPerks(context.Background(), "Alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", perks.Username)
}
