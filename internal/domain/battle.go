package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BattleStatus represents the lifecycle state of a boss battle
type BattleStatus string

const (
	BattleStatusInitiated BattleStatus = "initiated"
	BattleStatusFacing    BattleStatus = "facing"
	BattleStatusWon       BattleStatus = "won"
	BattleStatusLost      BattleStatus = "lost"
	BattleStatusExpired   BattleStatus = "expired"
)

// IsTerminal reports whether no further transitions are possible from the status
func (s BattleStatus) IsTerminal() bool {
	switch s {
	case BattleStatusWon, BattleStatusLost, BattleStatusExpired:
		return true
	}
	return false
}

// Battle constants
const (
	BattleMaxAttempts      = 3
	BattleVictoryThreshold = 70
	BattleTimeLimitHours   = 72
)

// Challenge source constants
const (
	ChallengeSourceGenerated = "generated"
	ChallengeSourceFallback  = "fallback"
)

// Example is a worked input/output pair shown to the challenger
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

// TestCase is a single verification case for a challenge
type TestCase struct {
	TestID         string `json:"test_id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Description    string `json:"description,omitempty"`
	Hidden         bool   `json:"hidden,omitempty"`
}

// ProblemStatement is the full challenge description presented to the user
type ProblemStatement struct {
	Description      string     `json:"description"`
	BossStory        string     `json:"boss_story,omitempty"`
	Examples         []Example  `json:"examples"`
	Constraints      []string   `json:"constraints"`
	EdgeCases        []string   `json:"edge_cases,omitempty"`
	BossRequirements []string   `json:"boss_requirements,omitempty"`
	TestCases        []TestCase `json:"test_cases"`
}

// Solution holds the reference solution for a challenge
type Solution struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation,omitempty"`
	Approach    string `json:"approach,omitempty"`
}

// EvaluationCriteria holds the rubric weights used to score submissions
type EvaluationCriteria struct {
	Correctness   int `json:"correctness"`
	Efficiency    int `json:"efficiency"`
	CodeQuality   int `json:"code_quality"`
	BossChallenge int `json:"boss_challenge"`
}

// DefaultEvaluationCriteria returns the standard rubric weights (sums to 100)
func DefaultEvaluationCriteria() EvaluationCriteria {
	return EvaluationCriteria{
		Correctness:   40,
		Efficiency:    25,
		CodeQuality:   20,
		BossChallenge: 15,
	}
}

// Schedule tracks battle timing
type Schedule struct {
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ExpiresAt      time.Time  `json:"expires_at"`
	TimeLimitHours int        `json:"time_limit_hours"`
}

// SubmissionRecord is one entry in a battle's submission history
type SubmissionRecord struct {
	Attempt     int       `json:"attempt"`
	SubmittedAt time.Time `json:"submitted_at"`
	Language    string    `json:"language"`
	Score       int       `json:"score"`
	IsValid     bool      `json:"is_valid"`
	Mode        string    `json:"mode"`
}

// BattleData tracks attempt state and the latest evaluation outcome
type BattleData struct {
	Attempts          int                `json:"attempts"`
	MaxAttempts       int                `json:"max_attempts"`
	Score             int                `json:"score"`
	Feedback          string             `json:"feedback,omitempty"`
	Evaluation        *EvaluationResult  `json:"evaluation,omitempty"`
	SubmissionHistory []SubmissionRecord `json:"submission_history,omitempty"`
}

// RewardBundle describes what a battle outcome grants
type RewardBundle struct {
	XP          int          `json:"xp"`
	Badges      []Badge      `json:"badges,omitempty"`
	Titles      []string     `json:"titles,omitempty"`
	SkillBoosts []SkillBoost `json:"skill_boosts,omitempty"`
	LevelUp     bool         `json:"level_up,omitempty"`
}

// Rewards defines the victory and participation bundles for a battle
type Rewards struct {
	Victory       RewardBundle `json:"victory"`
	Participation RewardBundle `json:"participation"`
}

// PersonalizedElements records how the challenge was tailored to the user
type PersonalizedElements struct {
	BasedOnLanguages  []string `json:"based_on_languages,omitempty"`
	BasedOnFocusAreas []string `json:"based_on_focus_areas,omitempty"`
	DifficultyReason  string   `json:"difficulty_reason,omitempty"`
}

// BossCharacteristics gives the boss its narrative identity
type BossCharacteristics struct {
	Theme       string `json:"theme"`
	Name        string `json:"name"`
	Personality string `json:"personality,omitempty"`
	WeakSpot    string `json:"weak_spot,omitempty"`
}

// Challenge is the generated content of a boss battle, independent of lifecycle state
type Challenge struct {
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Difficulty           string               `json:"difficulty"`
	EstimatedTime        string               `json:"estimated_time,omitempty"`
	ProblemStatement     ProblemStatement     `json:"problem_statement"`
	StarterCode          map[string]string    `json:"starter_code,omitempty"`
	Solution             Solution             `json:"solution"`
	EvaluationCriteria   EvaluationCriteria   `json:"evaluation_criteria"`
	PersonalizedElements PersonalizedElements `json:"personalized_elements"`
	BossCharacteristics  BossCharacteristics  `json:"boss_characteristics"`
	Source               string               `json:"source"` // "generated" or "fallback"
}

// Battle is the full boss battle document
type Battle struct {
	BattleID     string       `json:"battle_id"`
	Username     string       `json:"username"`
	CurrentLevel Level        `json:"current_level"`
	TargetLevel  Level        `json:"target_level"`
	Status       BattleStatus `json:"status"`
	Challenge    Challenge    `json:"challenge"`
	Schedule     Schedule     `json:"schedule"`
	BattleData   BattleData   `json:"battle_data"`
	Rewards      Rewards      `json:"rewards"`
	Version      int          `json:"-"`
}

// NewBattleID builds the canonical battle identifier for a user and target level
func NewBattleID(username string, targetLevel Level, at time.Time) string {
	return fmt.Sprintf("BOSS_%s_%s_%d", strings.ToUpper(username), targetLevel, at.UnixMilli())
}

// IsExpired reports whether the battle's deadline has passed
func (b *Battle) IsExpired(now time.Time) bool {
	return now.After(b.Schedule.ExpiresAt)
}

// AttemptsRemaining returns how many submissions the user has left
func (b *Battle) AttemptsRemaining() int {
	remaining := b.BattleData.MaxAttempts - b.BattleData.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarshalBattle converts a Battle to JSONB
func MarshalBattle(b *Battle) ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalBattle converts JSONB to a Battle
func UnmarshalBattle(data []byte) (*Battle, error) {
	var b Battle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BattleSummary aggregates a user's battle history
type BattleSummary struct {
	Total   int `json:"total"`
	Won     int `json:"won"`
	Lost    int `json:"lost"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}
