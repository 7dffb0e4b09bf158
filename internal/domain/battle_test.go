package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBattleID(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	id := NewBattleID("alice", LevelBuilder, at)

	assert.Equal(t, "BOSS_ALICE_BUILDER_1700000000000", id)
}

func TestNewBattleID_UppercasesUsername(t *testing.T) {
	at := time.UnixMilli(42)

	id := NewBattleID("MixedCase", LevelTitan, at)

	assert.Equal(t, "BOSS_MIXEDCASE_TITAN_42", id)
}

func TestBattleStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   BattleStatus
		terminal bool
	}{
		{BattleStatusInitiated, false},
		{BattleStatusFacing, false},
		{BattleStatusWon, true},
		{BattleStatusLost, true},
		{BattleStatusExpired, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestBattleIsExpired(t *testing.T) {
	now := time.Now()
	battle := &Battle{
		Schedule: Schedule{ExpiresAt: now.Add(time.Hour)},
	}

	assert.False(t, battle.IsExpired(now))
	assert.True(t, battle.IsExpired(now.Add(2*time.Hour)))
}

func TestAttemptsRemaining(t *testing.T) {
	battle := &Battle{
		BattleData: BattleData{Attempts: 1, MaxAttempts: 3},
	}
	assert.Equal(t, 2, battle.AttemptsRemaining())

	battle.BattleData.Attempts = 3
	assert.Equal(t, 0, battle.AttemptsRemaining())

	// Never negative even if the counter somehow overshoots
	battle.BattleData.Attempts = 5
	assert.Equal(t, 0, battle.AttemptsRemaining())
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-10))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 55, ClampScore(55))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(180))
}

func TestDefaultEvaluationCriteriaSumsTo100(t *testing.T) {
	c := DefaultEvaluationCriteria()

	assert.Equal(t, 100, c.Correctness+c.Efficiency+c.CodeQuality+c.BossChallenge)
}

func TestMarshalUnmarshalBattle(t *testing.T) {
	battle := &Battle{
		BattleID:     "BOSS_ALICE_BUILDER_1",
		Username:     "alice",
		CurrentLevel: LevelExplorer,
		TargetLevel:  LevelBuilder,
		Status:       BattleStatusFacing,
		BattleData:   BattleData{Attempts: 1, MaxAttempts: 3},
	}

	data, err := MarshalBattle(battle)
	assert.NoError(t, err)

	got, err := UnmarshalBattle(data)
	assert.NoError(t, err)
	assert.Equal(t, battle.BattleID, got.BattleID)
	assert.Equal(t, BattleStatusFacing, got.Status)
	assert.Equal(t, 1, got.BattleData.Attempts)
}
