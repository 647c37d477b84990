package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

func TestGainExperience_SingleLevel(t *testing.T) {
	c := mustBuild(t, "human", 2)
	maxBefore := c.MaxHP
	require.NoError(t, c.TakeDamage(5))

	// Level 1 → 2 costs 100 XP; 120 leaves 20 leftover.
	levels, err := c.GainExperience(120)
	require.NoError(t, err)

	assert.Equal(t, 1, levels)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 20, c.Experience, "leftover XP carries over")
	assert.Equal(t, maxBefore+character.HPPerLevel, c.MaxHP)
	assert.Equal(t, c.MaxHP, c.CurrentHP, "level-up fully heals")
	assert.Equal(t, 3, c.SlotsRemaining(1), "level 2 slot row applies")
}

func TestGainExperience_MultipleLevels(t *testing.T) {
	c := mustBuild(t, "human", 2)

	// 100 + 200 + 300 = 600 XP reaches level 4 exactly.
	levels, err := c.GainExperience(600)
	require.NoError(t, err)

	assert.Equal(t, 3, levels)
	assert.Equal(t, 4, c.Level)
	assert.Equal(t, 0, c.Experience)
	assert.Equal(t, 4, c.SlotsRemaining(1))
	assert.Equal(t, 3, c.SlotsRemaining(2), "level 4 grants three level-2 slots")
}

func TestGainExperience_BelowThresholdAccumulates(t *testing.T) {
	c := mustBuild(t, "human", 2)

	levels, err := c.GainExperience(60)
	require.NoError(t, err)
	assert.Equal(t, 0, levels)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 60, c.Experience)

	levels, err = c.GainExperience(60)
	require.NoError(t, err)
	assert.Equal(t, 1, levels)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 20, c.Experience)
}

func TestGainExperience_RejectsNegative(t *testing.T) {
	c := mustBuild(t, "human", 2)
	_, err := c.GainExperience(-10)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	assert.Equal(t, 0, c.Experience)
}

// TestGainExperience_Conservation_Property verifies that experience is
// conserved: total granted == sum of consumed thresholds + leftover, and the
// leveling loop always terminates.
func TestGainExperience_Conservation_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := mustBuild(t, "human", 2)

		granted := 0
		n := rapid.IntRange(1, 20).Draw(rt, "grants")
		for i := 0; i < n; i++ {
			xp := rapid.IntRange(0, 500).Draw(rt, "xp")
			granted += xp
			_, err := c.GainExperience(xp)
			require.NoError(rt, err)
		}

		consumed := 0
		for lvl := 1; lvl < c.Level; lvl++ {
			consumed += lvl * 100
		}
		assert.Equal(rt, granted, consumed+c.Experience,
			"XP conservation: granted == consumed thresholds + leftover")
		assert.Less(rt, c.Experience, c.XPToNextLevel(),
			"leftover must stay below the next threshold")
	})
}

func TestRest_RestoresHPAndSlots(t *testing.T) {
	c := mustBuild(t, "human", 2)
	require.NoError(t, c.TakeDamage(6))
	c.Slots[1].Remaining = 0

	c.Rest()

	assert.Equal(t, c.MaxHP, c.CurrentHP)
	assert.Equal(t, c.Slots[1].Max, c.Slots[1].Remaining)
}

func TestLevelUp_TopsUpSpentSlots(t *testing.T) {
	c := mustBuild(t, "human", 2)
	c.Slots[1].Remaining = 0

	// Level 2 raises the level-1 maximum from 2 to 3; remaining gains the delta.
	_, err := c.GainExperience(100)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Slots[1].Max)
	assert.Equal(t, 1, c.Slots[1].Remaining)
}
