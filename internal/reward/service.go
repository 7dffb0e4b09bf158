package reward

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/repository"
)

// Message constants for logging
const (
	LogMsgRewardAlreadyIssued = "Rewards already issued for battle, skipping"
	LogMsgRewardIssued        = "Rewards issued"
	LogMsgRewardSaveConflict  = "Perk save conflicted, retrying"
)

// SkillBoostDuration is how long an issued skill boost stays active.
const SkillBoostDuration = 30 * 24 * time.Hour

// maxSaveRetries bounds optimistic-concurrency retries on the perk record.
const maxSaveRetries = 3

// Service applies battle outcome rewards to a user's perk record.
// Issuance is idempotent per battle: re-issuing for a battle that
// already paid out is a no-op.
type Service interface {
	IssueRewards(ctx context.Context, battle *domain.Battle) error
	GetPerks(ctx context.Context, username string) (*domain.UserPerks, error)
}

type service struct {
	repo repository.Perks
	now  func() time.Time
}

// NewService creates a new reward issuer.
func NewService(repo repository.Perks) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) IssueRewards(ctx context.Context, battle *domain.Battle) error {
	log := logger.FromContext(ctx)

	issued, err := s.repo.HasReward(ctx, battle.BattleID)
	if err != nil {
		return fmt.Errorf("failed to check reward issuance for %s: %w", battle.BattleID, err)
	}
	if issued {
		log.Info(LogMsgRewardAlreadyIssued, "battle_id", battle.BattleID)
		return nil
	}

	victory := battle.Status == domain.BattleStatusWon
	bundle := battle.Rewards.Participation
	if victory {
		bundle = battle.Rewards.Victory
	}

	for attempt := 1; ; attempt++ {
		perks, err := s.repo.GetUserPerks(ctx, battle.Username)
		if err != nil {
			return fmt.Errorf("failed to load perks for %s: %w", battle.Username, err)
		}

		s.apply(perks, battle, bundle, victory)

		err = s.repo.SaveUserPerks(ctx, perks)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt >= maxSaveRetries {
			return fmt.Errorf("failed to save perks for %s: %w", battle.Username, err)
		}
		log.Warn(LogMsgRewardSaveConflict, "username", battle.Username, "attempt", attempt)
	}

	if err := s.repo.RecordReward(ctx, battle.BattleID, battle.Username); err != nil {
		if errors.Is(err, domain.ErrRewardAlreadyIssued) {
			log.Info(LogMsgRewardAlreadyIssued, "battle_id", battle.BattleID)
			return nil
		}
		return fmt.Errorf("failed to record reward issuance for %s: %w", battle.BattleID, err)
	}

	log.Info(LogMsgRewardIssued,
		"battle_id", battle.BattleID,
		"username", battle.Username,
		"victory", victory,
		"xp", bundle.XP)
	return nil
}

// apply folds one reward bundle into the perk record. Badges and titles
// are deduplicated by name so double application cannot inflate the
// collections.
func (s *service) apply(perks *domain.UserPerks, battle *domain.Battle, bundle domain.RewardBundle, victory bool) {
	now := s.now()
	perks.Username = battle.Username

	perks.Stats.TotalXP += bundle.XP
	if victory {
		perks.Stats.BattlesWon++
		perks.Stats.CurrentStreak++
		if perks.Stats.CurrentStreak > perks.Stats.LongestStreak {
			perks.Stats.LongestStreak = perks.Stats.CurrentStreak
		}
	} else {
		perks.Stats.BattlesLost++
		perks.Stats.CurrentStreak = 0
	}

	for _, badge := range bundle.Badges {
		if perks.HasBadge(badge.Name) {
			continue
		}
		badge.Description = badgeDescription(battle.Challenge.Title)
		badge.EarnedAt = now
		badge.BattleID = battle.BattleID
		perks.Badges = append(perks.Badges, badge)
	}

	for _, name := range bundle.Titles {
		if perks.HasTitle(name) {
			continue
		}
		perks.Titles = append(perks.Titles, domain.Title{
			Name:     name,
			EarnedAt: now,
			BattleID: battle.BattleID,
		})
	}

	for _, boost := range bundle.SkillBoosts {
		boost.GrantedAt = now
		boost.ExpiresAt = now.Add(SkillBoostDuration)
		perks.SkillBoosts = append(perks.SkillBoosts, boost)
	}

	perks.UpdatedAt = now
}

// GetPerks returns the user's accumulated perk record. Users that have
// never earned a reward get a zero-value record.
func (s *service) GetPerks(ctx context.Context, username string) (*domain.UserPerks, error) {
	perks, err := s.repo.GetUserPerks(ctx, strings.ToLower(username))
	if err != nil {
		return nil, fmt.Errorf("failed to load perks for %s: %w", username, err)
	}
	return perks, nil
}
