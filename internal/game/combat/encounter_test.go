package combat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/enemy"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// fixedSrc is a Source returning the same value for every draw, clamped to
// the requested range. fixedSrc{v: 19} yields maximal d20 rolls.
type fixedSrc struct {
	v int
}

func (s fixedSrc) Intn(n int) int {
	if s.v >= n {
		return n - 1
	}
	return s.v
}

func testRoller(src dice.Source) *dice.Roller {
	return dice.NewLoggedRoller(src, zap.NewNop())
}

// testCharacter builds a character with fixed combat stats, bypassing the
// random creation path so scenarios are deterministic.
func testCharacter(t *testing.T, hp, ac, atkBonus, dex int) *character.Character {
	t.Helper()
	weapon, err := rules.DefaultTables().Weapon("longsword")
	require.NoError(t, err)
	return &character.Character{
		Core: entity.Core{
			Name:        "Aria",
			MaxHP:       hp,
			CurrentHP:   hp,
			ArmorClass:  ac,
			AttackBonus: atkBonus,
			Abilities:   entity.FromMap(map[string]int{rules.AbilityDex: dex}),
		},
		Level:  1,
		Weapon: weapon,
		Slots:  map[int]*character.SlotPool{},
	}
}

// testEnemy stamps an enemy with fixed stats.
func testEnemy(t *testing.T, hp, ac, atkBonus, dex, xp int, damage string) *enemy.Enemy {
	t.Helper()
	tmpl := &rules.EnemyTemplate{
		ID:          "training_dummy",
		Name:        "Training Dummy",
		MaxHP:       hp,
		AC:          ac,
		AttackBonus: atkBonus,
		DamageDice:  damage,
		Abilities:   map[string]int{rules.AbilityDex: dex},
		XPReward:    xp,
	}
	require.NoError(t, tmpl.Validate())
	return enemy.FromTemplate(tmpl)
}

func grantSpell(t *testing.T, c *character.Character, id string, slots int) *rules.Spell {
	t.Helper()
	spell, err := rules.DefaultTables().Spell(id)
	require.NoError(t, err)
	c.Spells = append(c.Spells, spell)
	if spell.Level > 0 {
		c.Slots[spell.Level] = &character.SlotPool{Max: slots, Remaining: slots}
	}
	return spell
}

func TestEncounter_VictoryGrantsExperience(t *testing.T) {
	// Maximal rolls everywhere: initiative ties at 20 and both DEX mods are
	// zero, so the player acts first.
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 7, 12, 2, 10, 50, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), zap.NewNop())

	require.NoError(t, enc.Start())
	assert.Equal(t, combat.StateInitiativeRolled, enc.State())
	assert.True(t, enc.Initiative().PlayerFirst)

	// Attack total 25 vs AC 12, longsword max damage 8 vs 7 HP: one hit kills.
	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, combat.EventHit, events[0].Outcome)
	assert.Equal(t, 8, events[0].Amount)
	assert.Equal(t, combat.EventDied, events[1].Outcome)
	assert.Equal(t, foe.Name, events[1].Actor)

	assert.Equal(t, combat.StateResolved, enc.State())
	assert.Equal(t, combat.OutcomeVictory, enc.Outcome())
	assert.False(t, foe.IsAlive())
	assert.Equal(t, 50, char.Experience)
	assert.Equal(t, 1, char.Level)

	// The enemy's turn was forfeited; the character is untouched.
	cur, _ := char.HP()
	assert.Equal(t, 20, cur)

	_, err = enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
	assert.Error(t, err)
}

func TestEncounter_FleeEndsWithoutReward(t *testing.T) {
	// Enemy DEX 14 wins the tied initiative roll and strikes first.
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 30, 25, 4, 14, 50, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)

	require.NoError(t, enc.Start())
	assert.False(t, enc.Initiative().PlayerFirst)

	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionFlee})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, combat.EventHit, events[0].Outcome)
	assert.Equal(t, foe.Name, events[0].Actor)
	assert.Equal(t, combat.EventFled, events[1].Outcome)

	assert.Equal(t, combat.OutcomeFled, enc.Outcome())
	assert.Equal(t, combat.StateResolved, enc.State())

	// Damage taken before fleeing sticks; no XP is granted.
	cur, _ := char.HP()
	assert.Equal(t, 14, cur)
	assert.Zero(t, char.Experience)
}

func TestEncounter_DefeatSkipsPlayerTurn(t *testing.T) {
	char := testCharacter(t, 5, 10, 5, 10)
	foe := testEnemy(t, 30, 25, 4, 14, 50, "1d12")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)

	require.NoError(t, enc.Start())
	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, combat.EventHit, events[0].Outcome)
	assert.Equal(t, combat.EventDied, events[1].Outcome)
	assert.Equal(t, char.Name, events[1].Actor)

	assert.Equal(t, combat.OutcomeDefeat, enc.Outcome())
	assert.False(t, char.IsAlive())
	assert.Zero(t, char.Experience)
}

func TestEncounter_CastWithoutSlotsIsNoOpTurn(t *testing.T) {
	char := testCharacter(t, 20, 25, 5, 10)
	spell := grantSpell(t, char, "magic_missile", 2)
	char.Slots[spell.Level].Remaining = 0

	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
	require.NoError(t, enc.Start())

	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionCast, Spell: spell})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// The failed cast consumes the turn but touches nothing.
	assert.Equal(t, combat.EventNoEffect, events[0].Outcome)
	assert.Zero(t, char.SlotsRemaining(spell.Level))
	cur, _ := foe.HP()
	assert.Equal(t, 10, cur)

	// The enemy still gets its turn and the encounter continues.
	assert.Equal(t, combat.EventMiss, events[1].Outcome)
	assert.Equal(t, combat.StateInitiativeRolled, enc.State())
}

func TestEncounter_CastHeal(t *testing.T) {
	char := testCharacter(t, 20, 25, 5, 10)
	char.CurrentHP = 10
	spell := grantSpell(t, char, "cure_wounds", 2)

	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
	require.NoError(t, enc.Start())

	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionCast, Spell: spell})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// 1d8+3 at maximal rolls heals 11, clamped to MaxHP.
	assert.Equal(t, combat.EventHealed, events[0].Outcome)
	assert.Equal(t, 11, events[0].Amount)
	cur, _ := char.HP()
	assert.Equal(t, 20, cur)
	assert.Equal(t, 1, char.SlotsRemaining(spell.Level))
}

func TestEncounter_CastDamageCanKill(t *testing.T) {
	char := testCharacter(t, 20, 25, 5, 10)
	spell := grantSpell(t, char, "magic_missile", 2)

	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
	require.NoError(t, enc.Start())

	// 3d4+3 at maximal rolls deals 15, over the dummy's 10 HP.
	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionCast, Spell: spell})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, combat.EventHit, events[0].Outcome)
	assert.Equal(t, 15, events[0].Amount)
	assert.Equal(t, combat.EventDied, events[1].Outcome)
	assert.Equal(t, combat.OutcomeVictory, enc.Outcome())
	assert.Equal(t, 25, char.Experience)
}

func TestEncounter_PlayRoundBeforeStart(t *testing.T) {
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)

	_, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
	assert.Error(t, err)
}

func TestEncounter_StartTwice(t *testing.T) {
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)

	require.NoError(t, enc.Start())
	assert.Error(t, enc.Start())
}

func TestEncounter_InvalidActions(t *testing.T) {
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
	require.NoError(t, enc.Start())

	_, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionUnknown})
	assert.Error(t, err)

	_, err = enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionCast})
	assert.Error(t, err)

	// Rejected actions do not advance the round counter.
	assert.Zero(t, enc.Round())
}

func TestEncounter_InitiativeFixedAcrossRounds(t *testing.T) {
	char := testCharacter(t, 200, 15, 5, 10)
	foe := testEnemy(t, 200, 25, 4, 10, 50, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 2}), nil)

	require.NoError(t, enc.Start())
	init := enc.Initiative()

	for i := 0; i < 5; i++ {
		_, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
		require.NoError(t, err)
		assert.Equal(t, init, enc.Initiative())
	}
	assert.Equal(t, 5, enc.Round())
}

// stubNarrator returns a fixed line for every event.
type stubNarrator struct {
	text string
}

func (s stubNarrator) Narrate(context.Context, combat.Event) (string, error) {
	return s.text, nil
}

// failingNarrator always errors.
type failingNarrator struct{}

func (failingNarrator) Narrate(context.Context, combat.Event) (string, error) {
	return "", errors.New("narrator offline")
}

func TestEncounter_NarratorTextUsed(t *testing.T) {
	char := testCharacter(t, 20, 15, 5, 10)
	foe := testEnemy(t, 7, 12, 2, 10, 50, "1d6")
	enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
	enc.SetNarrator(stubNarrator{text: "The blade sings."}, time.Second)

	require.NoError(t, enc.Start())
	events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
	require.NoError(t, err)
	for _, ev := range events {
		assert.Equal(t, "The blade sings.", ev.Narrative)
	}
}

func TestEncounter_NarratorFailureLeavesStateUnchanged(t *testing.T) {
	run := func(n combat.Narrator) (*character.Character, *enemy.Enemy, []combat.Event, combat.Outcome) {
		char := testCharacter(t, 20, 15, 5, 10)
		foe := testEnemy(t, 7, 12, 2, 10, 50, "1d6")
		enc := combat.NewEncounter(char, foe, testRoller(fixedSrc{v: 19}), nil)
		if n != nil {
			enc.SetNarrator(n, time.Second)
		}
		require.NoError(t, enc.Start())
		events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
		require.NoError(t, err)
		return char, foe, events, enc.Outcome()
	}

	charA, foeA, eventsA, outcomeA := run(nil)
	charB, foeB, eventsB, outcomeB := run(failingNarrator{})

	// A narration outage changes the flavor channel only, never the combat state.
	assert.Equal(t, outcomeA, outcomeB)
	assert.Equal(t, charA.CurrentHP, charB.CurrentHP)
	assert.Equal(t, charA.Experience, charB.Experience)
	assert.Equal(t, foeA.CurrentHP, foeB.CurrentHP)
	require.Equal(t, len(eventsA), len(eventsB))
	for i := range eventsA {
		assert.Equal(t, eventsA[i].Outcome, eventsB[i].Outcome)
		assert.Equal(t, eventsA[i].Amount, eventsB[i].Amount)
		assert.Equal(t, eventsA[i].Narrative, eventsB[i].Narrative)
		assert.Equal(t, combat.FallbackNarrative(eventsB[i]), eventsB[i].Narrative)
	}
}

func TestEncounter_FallbackNarrativeNeverEmpty(t *testing.T) {
	actions := []combat.ActionType{combat.ActionAttack, combat.ActionCast, combat.ActionFlee, combat.ActionDeath, combat.ActionUnknown}
	outcomes := []combat.EventOutcome{combat.EventHit, combat.EventMiss, combat.EventHealed, combat.EventNoEffect, combat.EventFled, combat.EventDied}
	for _, a := range actions {
		for _, o := range outcomes {
			ev := combat.Event{Actor: "a", Target: "b", Action: a, Outcome: o, Detail: "spark"}
			assert.NotEmpty(t, combat.FallbackNarrative(ev))
		}
	}
}

// rapidSrc draws each die value from rapid, so the property explores arbitrary
// roll sequences.
type rapidSrc struct {
	t *rapid.T
}

func (s rapidSrc) Intn(n int) int {
	return rapid.IntRange(0, n-1).Draw(s.t, "roll")
}

func TestEncounter_InvariantsUnderArbitraryRolls(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		char := testCharacter(t, 20, 12, 2, 10)
		foe := testEnemy(t, 10, 12, 2, 10, 25, "1d6")
		enc := combat.NewEncounter(char, foe, testRoller(rapidSrc{t: rt}), nil)
		require.NoError(t, enc.Start())

		init := enc.Initiative()
		seen := 0
		for i := 0; i < 50 && enc.State() != combat.StateResolved; i++ {
			events, err := enc.PlayRound(context.Background(), combat.PlayerAction{Type: combat.ActionAttack})
			require.NoError(t, err)

			curC, maxC := char.HP()
			require.GreaterOrEqual(t, curC, 0)
			require.LessOrEqual(t, curC, maxC)
			curF, maxF := foe.HP()
			require.GreaterOrEqual(t, curF, 0)
			require.LessOrEqual(t, curF, maxF)

			require.Equal(t, init, enc.Initiative())

			seen += len(events)
			require.Equal(t, seen, len(enc.Events()))
		}

		switch enc.State() {
		case combat.StateResolved:
			require.NotEqual(t, combat.OutcomeNone, enc.Outcome())
			if enc.Outcome() == combat.OutcomeVictory {
				require.False(t, foe.IsAlive())
				require.Equal(t, 25, char.Experience)
			} else {
				require.False(t, char.IsAlive())
				require.Zero(t, char.Experience)
			}
		default:
			require.Equal(t, combat.OutcomeNone, enc.Outcome())
			require.Zero(t, char.Experience)
		}
	})
}
