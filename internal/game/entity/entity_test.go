package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// fixedSrc is a deterministic Source for testing.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

func TestModifier(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{1, -5}, {7, -2}, {8, -1}, {9, -1}, {10, 0},
		{11, 0}, {12, 1}, {14, 2}, {16, 3}, {20, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.Modifier(tt.score), "score %d", tt.score)
	}
}

func TestCore_TakeDamage_FloorsAtZero(t *testing.T) {
	c := &entity.Core{Name: "Test", MaxHP: 10, CurrentHP: 10}

	require.NoError(t, c.TakeDamage(3))
	assert.Equal(t, 7, c.CurrentHP)

	require.NoError(t, c.TakeDamage(20))
	assert.Equal(t, 0, c.CurrentHP)
	assert.False(t, c.IsAlive())
}

func TestCore_TakeDamage_RejectsNegative(t *testing.T) {
	c := &entity.Core{Name: "Test", MaxHP: 10, CurrentHP: 10}
	err := c.TakeDamage(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	assert.Equal(t, 10, c.CurrentHP, "state must be unchanged on error")
}

func TestCore_Heal_CapsAtMax(t *testing.T) {
	c := &entity.Core{Name: "Test", MaxHP: 10, CurrentHP: 4}

	require.NoError(t, c.Heal(3))
	assert.Equal(t, 7, c.CurrentHP)

	require.NoError(t, c.Heal(100))
	assert.Equal(t, 10, c.CurrentHP)

	// Healing at full HP is legal and has no effect.
	require.NoError(t, c.Heal(5))
	assert.Equal(t, 10, c.CurrentHP)
}

func TestCore_Heal_RejectsNegative(t *testing.T) {
	c := &entity.Core{Name: "Test", MaxHP: 10, CurrentHP: 4}
	err := c.Heal(-2)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	assert.Equal(t, 4, c.CurrentHP)
}

// TestCore_HPClamps_Property verifies the Core invariant 0 <= CurrentHP <= MaxHP
// under arbitrary sequences of damage and healing.
func TestCore_HPClamps_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 100).Draw(rt, "maxHP")
		c := &entity.Core{Name: "Test", MaxHP: maxHP, CurrentHP: maxHP}

		n := rapid.IntRange(1, 50).Draw(rt, "ops")
		for i := 0; i < n; i++ {
			amount := rapid.IntRange(0, 200).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "heal") {
				require.NoError(rt, c.Heal(amount))
			} else {
				require.NoError(rt, c.TakeDamage(amount))
			}
			assert.GreaterOrEqual(rt, c.CurrentHP, 0)
			assert.LessOrEqual(rt, c.CurrentHP, maxHP)
		}
	})
}

func TestCore_AttackRoll(t *testing.T) {
	c := &entity.Core{Name: "Test", AttackBonus: 5}
	// Intn(20) returns 9 → d20 result 10 → total 15.
	assert.Equal(t, 15, c.AttackRoll(fixedSrc{val: 9}))
}

func TestAbilityScores_FromMap_DefaultsToTen(t *testing.T) {
	a := entity.FromMap(map[string]int{rules.AbilityDex: 14, rules.AbilityStr: 8})
	assert.Equal(t, 8, a.Strength)
	assert.Equal(t, 14, a.Dexterity)
	assert.Equal(t, 10, a.Constitution)
	assert.Equal(t, 10, a.Charisma)
	assert.Equal(t, 2, a.Mod(rules.AbilityDex))
	assert.Equal(t, -1, a.Mod(rules.AbilityStr))
}

func TestCore_DexModifier(t *testing.T) {
	c := &entity.Core{Abilities: entity.AbilityScores{Dexterity: 14}}
	assert.Equal(t, 2, c.DexModifier())
}
