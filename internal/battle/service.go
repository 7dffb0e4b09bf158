package battle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitforge/bossquest/internal/concurrency"
	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/evaluation"
	"github.com/gitforge/bossquest/internal/event"
	"github.com/gitforge/bossquest/internal/generator"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/profile"
	"github.com/gitforge/bossquest/internal/repository"
	"github.com/gitforge/bossquest/internal/reward"
)

// Message constants for logging
const (
	LogMsgBattleCreated        = "Boss battle created"
	LogMsgBattleStarted        = "Boss battle started"
	LogMsgBattleExpiredLazily  = "Boss battle expired on access"
	LogMsgBattleResolved       = "Boss battle resolved"
	LogMsgSubmissionEvaluated  = "Submission evaluated"
	LogMsgRewardIssueFailed    = "Reward issuance failed, battle outcome stands"
	LogMsgProfileUpdateFailed  = "Profile update failed after victory"
	LogMsgEventPublishFailed   = "Failed to publish battle event"
	LogMsgCleanupSweepComplete = "Expiration sweep complete"
)

// cleanupBatchSize bounds how many overdue battles one sweep loads.
const cleanupBatchSize = 100

// History is a user's battle log with aggregate counts.
type History struct {
	Battles []domain.Battle      `json:"battles"`
	Summary domain.BattleSummary `json:"summary"`
}

// Service owns the boss battle state machine
type Service interface {
	CreateBattle(ctx context.Context, username string) (*domain.Battle, error)
	GetBattle(ctx context.Context, battleID, username string) (*domain.Battle, error)
	StartBattle(ctx context.Context, battleID, username string) (*domain.Battle, error)
	SubmitSolution(ctx context.Context, battleID, username string, submission domain.Submission) (*domain.Battle, error)
	GetHistory(ctx context.Context, username string, limit int) (*History, error)
	CleanupExpired(ctx context.Context) (int, error)
}

type service struct {
	repo        repository.Battle
	profiles    profile.Service
	generator   generator.Service
	evaluator   evaluation.Service
	rewards     reward.Service
	eventBus    event.Bus
	lockManager *concurrency.LockManager
	timeLimit   time.Duration
	now         func() time.Time
}

// NewService creates a new battle service
func NewService(
	repo repository.Battle,
	profiles profile.Service,
	gen generator.Service,
	eval evaluation.Service,
	rewards reward.Service,
	eventBus event.Bus,
	lockManager *concurrency.LockManager,
	timeLimit time.Duration,
) Service {
	if timeLimit <= 0 {
		timeLimit = domain.BattleTimeLimitHours * time.Hour
	}
	return &service{
		repo:        repo,
		profiles:    profiles,
		generator:   gen,
		evaluator:   eval,
		rewards:     rewards,
		eventBus:    eventBus,
		lockManager: lockManager,
		timeLimit:   timeLimit,
		now:         time.Now,
	}
}

// CreateBattle generates a personalized challenge and opens a battle in the
// initiated state. A user can hold at most one non-terminal battle, and users
// at the top of the ladder have nothing left to fight.
func (s *service) CreateBattle(ctx context.Context, username string) (*domain.Battle, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	lock := s.lockManager.GetLock("battle:user:" + username)
	lock.Lock()
	defer lock.Unlock()

	prof, err := s.profiles.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.GetActiveBattle(ctx, username)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to check for active battle: %w", err)
	}
	if active != nil {
		// A stale active battle may just be one nobody has touched since
		// its deadline passed.
		if expired := s.resolveExpiration(ctx, active); !expired {
			return nil, fmt.Errorf("%w: %s", domain.ErrBattleAlreadyActive, active.BattleID)
		}
	}

	targetLevel, ok := domain.NextLevel(prof.Level)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMaxLevelReached, prof.Level)
	}

	challenge := s.generator.Generate(ctx, prof, targetLevel)

	now := s.now()
	battle := &domain.Battle{
		BattleID:     domain.NewBattleID(username, targetLevel, now),
		Username:     username,
		CurrentLevel: prof.Level,
		TargetLevel:  targetLevel,
		Status:       domain.BattleStatusInitiated,
		Challenge:    *challenge,
		Schedule: domain.Schedule{
			CreatedAt:      now,
			ExpiresAt:      now.Add(s.timeLimit),
			TimeLimitHours: int(s.timeLimit / time.Hour),
		},
		BattleData: domain.BattleData{
			MaxAttempts: domain.BattleMaxAttempts,
		},
		Rewards: reward.BundlesFor(challenge, targetLevel),
	}

	if err := s.repo.CreateBattle(ctx, battle); err != nil {
		return nil, fmt.Errorf("failed to create battle: %w", err)
	}

	s.publish(ctx, event.NewBattleCreatedEvent(battle))
	log.Info(LogMsgBattleCreated,
		"battle_id", battle.BattleID,
		"username", username,
		"target_level", targetLevel,
		"source", challenge.Source,
		"expires_at", battle.Schedule.ExpiresAt)
	return battle, nil
}

// GetBattle returns a battle to its owner, resolving expiration first.
func (s *service) GetBattle(ctx context.Context, battleID, username string) (*domain.Battle, error) {
	battle, err := s.load(ctx, battleID, username)
	if err != nil {
		return nil, err
	}
	s.resolveExpiration(ctx, battle)
	return battle, nil
}

// StartBattle moves an initiated battle into the facing state.
func (s *service) StartBattle(ctx context.Context, battleID, username string) (*domain.Battle, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock("battle:" + battleID)
	lock.Lock()
	defer lock.Unlock()

	battle, err := s.load(ctx, battleID, username)
	if err != nil {
		return nil, err
	}

	if s.resolveExpiration(ctx, battle) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBattleExpired, battleID)
	}
	if battle.Status != domain.BattleStatusInitiated {
		if battle.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: status is %s", domain.ErrBattleFinished, battle.Status)
		}
		return nil, fmt.Errorf("%w: cannot start from %s", domain.ErrInvalidTransition, battle.Status)
	}

	now := s.now()
	battle.Status = domain.BattleStatusFacing
	battle.Schedule.StartedAt = &now

	if err := s.repo.UpdateBattle(ctx, battle); err != nil {
		return nil, fmt.Errorf("failed to start battle: %w", err)
	}

	s.publish(ctx, event.NewBattleStartedEvent(battle))
	log.Info(LogMsgBattleStarted, "battle_id", battleID, "username", username)
	return battle, nil
}

// SubmitSolution evaluates one attempt against a facing battle and applies
// the resulting transition. Submissions for a single battle are serialized
// by a per-battle lock so attempts cannot be double counted.
func (s *service) SubmitSolution(ctx context.Context, battleID, username string, submission domain.Submission) (*domain.Battle, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(submission.Code) == "" {
		return nil, domain.ErrEmptySubmission
	}

	lock := s.lockManager.GetLock("battle:" + battleID)
	lock.Lock()
	defer lock.Unlock()

	battle, err := s.load(ctx, battleID, username)
	if err != nil {
		return nil, err
	}

	if s.resolveExpiration(ctx, battle) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBattleExpired, battleID)
	}
	switch {
	case battle.Status == domain.BattleStatusInitiated:
		return nil, fmt.Errorf("%w: start the battle first", domain.ErrBattleNotStarted)
	case battle.Status.IsTerminal():
		return nil, fmt.Errorf("%w: status is %s", domain.ErrBattleFinished, battle.Status)
	}

	if battle.BattleData.Attempts >= battle.BattleData.MaxAttempts {
		// Should have been finalized on the last submission; force the
		// loss now rather than leave the battle dangling.
		_ = s.finalize(ctx, battle, domain.BattleStatusLost)
		return nil, fmt.Errorf("%w: %d attempts used", domain.ErrAttemptsExhausted, battle.BattleData.Attempts)
	}

	result := s.evaluator.Evaluate(ctx, battle, submission)
	now := s.now()

	battle.BattleData.Attempts++
	battle.BattleData.Score = result.Score
	battle.BattleData.Feedback = result.Feedback
	battle.BattleData.Evaluation = result
	battle.BattleData.SubmissionHistory = append(battle.BattleData.SubmissionHistory, domain.SubmissionRecord{
		Attempt:     battle.BattleData.Attempts,
		SubmittedAt: now,
		Language:    submission.Language,
		Score:       result.Score,
		IsValid:     result.IsValid,
		Mode:        string(result.Mode),
	})

	log.Info(LogMsgSubmissionEvaluated,
		"battle_id", battleID,
		"username", username,
		"attempt", battle.BattleData.Attempts,
		"score", result.Score,
		"mode", result.Mode)

	// Emergency results never validated correctness, so they can never win.
	victory := result.Mode == domain.EvaluationModeAI &&
		result.Score >= domain.BattleVictoryThreshold

	switch {
	case victory:
		err = s.finalize(ctx, battle, domain.BattleStatusWon)
	case battle.BattleData.Attempts >= battle.BattleData.MaxAttempts:
		err = s.finalize(ctx, battle, domain.BattleStatusLost)
	default:
		err = s.repo.UpdateBattle(ctx, battle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return battle, nil
}

// GetHistory returns the user's recent battles with aggregate counts.
func (s *service) GetHistory(ctx context.Context, username string, limit int) (*History, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	battles, err := s.repo.ListBattles(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}

	history := &History{Battles: battles}
	for i := range battles {
		b := &battles[i]
		// Reads resolve expiration in memory only; the sweep owns the writes.
		if !b.Status.IsTerminal() && b.IsExpired(s.now()) {
			b.Status = domain.BattleStatusExpired
		}

		history.Summary.Total++
		switch b.Status {
		case domain.BattleStatusWon:
			history.Summary.Won++
		case domain.BattleStatusLost:
			history.Summary.Lost++
		case domain.BattleStatusExpired:
			history.Summary.Expired++
		default:
			history.Summary.Active++
		}
	}
	return history, nil
}

// CleanupExpired forces the expired transition for every overdue battle.
// Safe to run repeatedly; battles already terminal are skipped.
func (s *service) CleanupExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	count := 0
	for {
		overdue, err := s.repo.ListOverdueBattles(ctx, s.now(), cleanupBatchSize)
		if err != nil {
			return count, fmt.Errorf("failed to list overdue battles: %w", err)
		}
		if len(overdue) == 0 {
			break
		}

		for i := range overdue {
			b := overdue[i]
			lock := s.lockManager.GetLock("battle:" + b.BattleID)
			lock.Lock()
			current, err := s.repo.GetBattle(ctx, b.BattleID)
			if err == nil && s.resolveExpiration(ctx, current) {
				count++
			}
			lock.Unlock()
		}

		if len(overdue) < cleanupBatchSize {
			break
		}
	}

	log.Info(LogMsgCleanupSweepComplete, "expired", count)
	return count, nil
}

// load fetches a battle and enforces ownership.
func (s *service) load(ctx context.Context, battleID, username string) (*domain.Battle, error) {
	battle, err := s.repo.GetBattle(ctx, battleID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBattleNotFound, battleID)
		}
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}
	if !strings.EqualFold(battle.Username, username) {
		return nil, fmt.Errorf("%w: battle belongs to another user", domain.ErrUnauthorized)
	}
	return battle, nil
}

// resolveExpiration applies the lazy expired transition when the battle is
// non-terminal and past its deadline. Returns true when the battle is (now)
// expired. Persistence failures leave the in-memory status expired so the
// caller still observes expiration dominance.
func (s *service) resolveExpiration(ctx context.Context, battle *domain.Battle) bool {
	if battle.Status == domain.BattleStatusExpired {
		return true
	}
	if battle.Status.IsTerminal() || !battle.IsExpired(s.now()) {
		return false
	}

	log := logger.FromContext(ctx)
	battle.Status = domain.BattleStatusExpired

	if err := s.repo.UpdateBattle(ctx, battle); err != nil {
		log.Error("Failed to persist expired transition", "battle_id", battle.BattleID, "error", err)
		return true
	}

	s.publish(ctx, event.NewBattleResolvedEvent(battle))
	log.Info(LogMsgBattleExpiredLazily, "battle_id", battle.BattleID, "username", battle.Username)
	return true
}

// finalize commits a terminal transition and then performs the best-effort
// follow-ups: reward issuance, profile advancement, event publication. The
// transition itself is the only fatal step; once it commits, follow-up
// failures are logged and swallowed so the outcome never rolls back.
func (s *service) finalize(ctx context.Context, battle *domain.Battle, status domain.BattleStatus) error {
	log := logger.FromContext(ctx)

	now := s.now()
	battle.Status = status
	battle.Schedule.CompletedAt = &now

	if err := s.repo.UpdateBattle(ctx, battle); err != nil {
		return fmt.Errorf("failed to persist %s transition: %w", status, err)
	}

	if err := s.rewards.IssueRewards(ctx, battle); err != nil {
		log.Error(LogMsgRewardIssueFailed, "battle_id", battle.BattleID, "error", err)
	}

	if status == domain.BattleStatusWon {
		if err := s.advanceProfile(ctx, battle); err != nil {
			log.Error(LogMsgProfileUpdateFailed, "battle_id", battle.BattleID, "error", err)
		}
	}

	s.publish(ctx, event.NewBattleResolvedEvent(battle))
	log.Info(LogMsgBattleResolved,
		"battle_id", battle.BattleID,
		"username", battle.Username,
		"status", status,
		"score", battle.BattleData.Score,
		"attempts", battle.BattleData.Attempts)
	return nil
}

// advanceProfile promotes the winner to the battle's target level.
func (s *service) advanceProfile(ctx context.Context, battle *domain.Battle) error {
	prof, err := s.profiles.GetProfile(ctx, battle.Username)
	if err != nil {
		return err
	}
	prof.Level = battle.TargetLevel
	prof.CompletedChallenges++
	return s.profiles.UpdateProfile(ctx, prof)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrBattleNotFound) || errors.Is(err, domain.ErrUserNotFound)
}
