package reward

import (
	"fmt"
	"strings"

	"github.com/gitforge/bossquest/internal/domain"
)

// Experience values per outcome. Victory XP scales with how far up the
// ladder the user is fighting.
const (
	victoryBaseXP      = 1000
	victoryXPPerLevel  = 50
	participationXP    = 150
	victoryBoostFactor = 1.15
	generalBoostFactor = 1.05
)

// BundlesFor builds the victory and participation reward bundles for a
// freshly generated challenge. Bundles are fixed at creation time so a
// battle always pays out what it advertised, regardless of later
// balance changes.
func BundlesFor(challenge *domain.Challenge, targetLevel domain.Level) domain.Rewards {
	theme := titleCaseTheme(challenge.BossCharacteristics.Theme)
	levelName := targetLevel.Info().Name

	victory := domain.RewardBundle{
		XP: victoryBaseXP + victoryXPPerLevel*targetLevel.Index(),
		Badges: []domain.Badge{
			{Name: theme + " Conqueror", Rarity: domain.BadgeRarityEpic},
			{Name: "Boss Defeated", Rarity: domain.BadgeRarityEpic},
		},
		Titles:      []string{levelName + " Achiever"},
		SkillBoosts: boostsFor(challenge),
		LevelUp:     true,
	}

	participation := domain.RewardBundle{
		XP: participationXP,
		Badges: []domain.Badge{
			{Name: "Brave Challenger", Rarity: domain.BadgeRarityCommon},
		},
		Titles: []string{levelName + " Aspirant"},
	}

	return domain.Rewards{Victory: victory, Participation: participation}
}

// boostsFor derives skill boosts from the areas the challenge was
// personalized around, falling back to a general boost when the
// challenge carries no personalization.
func boostsFor(challenge *domain.Challenge) []domain.SkillBoost {
	areas := challenge.PersonalizedElements.BasedOnFocusAreas
	if len(areas) == 0 {
		return []domain.SkillBoost{
			{Skill: "Problem Solving", Multiplier: generalBoostFactor},
		}
	}

	boosts := make([]domain.SkillBoost, 0, len(areas)+1)
	for i, area := range areas {
		if i >= 2 {
			break
		}
		boosts = append(boosts, domain.SkillBoost{Skill: area, Multiplier: victoryBoostFactor})
	}
	boosts = append(boosts, domain.SkillBoost{Skill: "Problem Solving", Multiplier: generalBoostFactor})
	return boosts
}

func titleCaseTheme(theme string) string {
	if theme == "" {
		return "Boss Battle"
	}
	words := strings.Split(theme, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// badgeDescription is attached to every badge and title at issuance so
// perks remain traceable to the battle that granted them.
func badgeDescription(battleTitle string) string {
	return fmt.Sprintf("Earned from boss battle: %s", battleTitle)
}
