package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLevel(t *testing.T) {
	next, ok := NextLevel(LevelRookie)
	assert.True(t, ok)
	assert.Equal(t, LevelExplorer, next)

	next, ok = NextLevel(LevelLegend)
	assert.True(t, ok)
	assert.Equal(t, LevelTitan, next)
}

func TestNextLevel_AtMaxLevel(t *testing.T) {
	_, ok := NextLevel(LevelTitan)
	assert.False(t, ok)
}

func TestNextLevel_UnknownLevel(t *testing.T) {
	_, ok := NextLevel(Level("NOVICE"))
	assert.False(t, ok)
}

func TestLevelOrderIsStrictlyAscending(t *testing.T) {
	for i := 1; i < len(LevelOrder); i++ {
		prev := LevelOrder[i-1].Info()
		curr := LevelOrder[i].Info()
		assert.Greater(t, curr.MinScore, prev.MaxScore-1,
			"level %s must start above %s", LevelOrder[i], LevelOrder[i-1])
	}
}

func TestLevelInfo(t *testing.T) {
	info := LevelRookie.Info()
	assert.Equal(t, "Code Rookie", info.Name)
	assert.Equal(t, 0, info.MinScore)

	assert.True(t, LevelWizard.IsValid())
	assert.False(t, Level("GURU").IsValid())
}

func TestLevelIndex(t *testing.T) {
	assert.Equal(t, 0, LevelRookie.Index())
	assert.Equal(t, 7, LevelTitan.Index())
	assert.Equal(t, -1, Level("GURU").Index())
}
