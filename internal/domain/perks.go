package domain

import "time"

// Badge rarity constants
const (
	BadgeRarityCommon = "common"
	BadgeRarityEpic   = "epic"
)

// Badge is a named award earned from a boss battle
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Rarity      string    `json:"rarity"`
	EarnedAt    time.Time `json:"earned_at"`
	BattleID    string    `json:"battle_id,omitempty"`
}

// Title is a display title earned from a boss battle
type Title struct {
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earned_at"`
	BattleID string    `json:"battle_id,omitempty"`
}

// SkillBoost is a temporary multiplier on a skill area
type SkillBoost struct {
	Skill      string    `json:"skill"`
	Multiplier float64   `json:"multiplier"`
	GrantedAt  time.Time `json:"granted_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsActive reports whether the boost has not yet expired
func (s SkillBoost) IsActive(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// BossStats aggregates a user's boss battle record
type BossStats struct {
	TotalXP       int `json:"total_xp"`
	BattlesWon    int `json:"battles_won"`
	BattlesLost   int `json:"battles_lost"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// UserPerks is the persistent reward document for a user
type UserPerks struct {
	Username    string       `json:"username"`
	Stats       BossStats    `json:"stats"`
	Badges      []Badge      `json:"badges,omitempty"`
	Titles      []Title      `json:"titles,omitempty"`
	SkillBoosts []SkillBoost `json:"skill_boosts,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Version     int          `json:"-"`
}

// HasBadge reports whether the user already holds a badge with the given name
func (p *UserPerks) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// HasTitle reports whether the user already holds a title with the given name
func (p *UserPerks) HasTitle(name string) bool {
	for _, t := range p.Titles {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ActiveBoosts returns the subset of boosts still in effect
func (p *UserPerks) ActiveBoosts(now time.Time) []SkillBoost {
	var active []SkillBoost
	for _, b := range p.SkillBoosts {
		if b.IsActive(now) {
			active = append(active, b)
		}
	}
	return active
}
