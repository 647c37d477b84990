// Package entity defines the shared combat participant state and capability
// interface consumed by the combat engine. Character and Enemy embed Core
// rather than inheriting from a base class; the closed set of participant
// kinds is selected by interface dispatch.
package entity

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// ErrInvalidAmount is returned when a damage or heal amount is negative.
var ErrInvalidAmount = errors.New("entity: amount must be >= 0")

// AbilityScores holds the six ability score values for a participant.
type AbilityScores struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// Modifier returns the ability modifier for a score using floor division:
// floor((score - 10) / 2).
//
// Postcondition: Returns floor((score - 10) / 2), negative scores included.
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Score returns the value for the given ability key ("str".."cha").
//
// Precondition: name must be a known ability key; unknown keys return 0.
func (a AbilityScores) Score(name string) int {
	switch name {
	case rules.AbilityStr:
		return a.Strength
	case rules.AbilityDex:
		return a.Dexterity
	case rules.AbilityCon:
		return a.Constitution
	case rules.AbilityInt:
		return a.Intelligence
	case rules.AbilityWis:
		return a.Wisdom
	case rules.AbilityCha:
		return a.Charisma
	default:
		return 0
	}
}

// Mod returns the modifier for the given ability key.
func (a AbilityScores) Mod(name string) int {
	return Modifier(a.Score(name))
}

// FromMap builds AbilityScores from an ability-keyed map, defaulting absent
// abilities to 10 (modifier 0).
func FromMap(m map[string]int) AbilityScores {
	a := AbilityScores{
		Strength: 10, Dexterity: 10, Constitution: 10,
		Intelligence: 10, Wisdom: 10, Charisma: 10,
	}
	for name, score := range m {
		switch name {
		case rules.AbilityStr:
			a.Strength = score
		case rules.AbilityDex:
			a.Dexterity = score
		case rules.AbilityCon:
			a.Constitution = score
		case rules.AbilityInt:
			a.Intelligence = score
		case rules.AbilityWis:
			a.Wisdom = score
		case rules.AbilityCha:
			a.Charisma = score
		}
	}
	return a
}

// Combatant is the capability set the combat engine requires of any
// participant. The closed set of implementations is {*character.Character,
// *enemy.Enemy}.
type Combatant interface {
	// DisplayName returns the participant's name for logs and narration.
	DisplayName() string
	// TakeDamage reduces current HP by amount, flooring at zero.
	TakeDamage(amount int) error
	// Heal raises current HP by amount, capping at max HP.
	Heal(amount int) error
	// IsAlive reports whether current HP is above zero.
	IsAlive() bool
	// AttackRoll returns d20 + the participant's attack bonus.
	AttackRoll(src dice.Source) int
	// DexModifier returns the dexterity modifier used for initiative.
	DexModifier() int
	// Defense returns the participant's armor class.
	Defense() int
	// HP returns current and max hit points.
	HP() (current, max int)
}

// Core holds the combat state shared by every participant.
//
// Invariant: 0 <= CurrentHP <= MaxHP at all times.
type Core struct {
	Name        string
	MaxHP       int
	CurrentHP   int
	ArmorClass  int
	AttackBonus int
	Abilities   AbilityScores
}

// DisplayName returns the participant's name.
func (c *Core) DisplayName() string { return c.Name }

// Defense returns the participant's armor class.
func (c *Core) Defense() int { return c.ArmorClass }

// HP returns the current and maximum hit points.
func (c *Core) HP() (current, max int) { return c.CurrentHP, c.MaxHP }

// DexModifier returns the dexterity modifier.
func (c *Core) DexModifier() int { return Modifier(c.Abilities.Dexterity) }

// IsAlive reports whether the participant has more than 0 hit points.
//
// Postcondition: Returns true iff CurrentHP > 0.
func (c *Core) IsAlive() bool { return c.CurrentHP > 0 }

// TakeDamage reduces CurrentHP by amount, flooring at zero. The floor is a
// designed clamp, not an error.
//
// Precondition: amount must be >= 0; negative amounts are rejected.
// Postcondition: CurrentHP >= 0; on error, state is unchanged.
func (c *Core) TakeDamage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("take damage %d: %w", amount, ErrInvalidAmount)
	}
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	return nil
}

// Heal raises CurrentHP by amount, capping at MaxHP. Healing at full HP is
// legal and has no visible effect.
//
// Precondition: amount must be >= 0; negative amounts are rejected.
// Postcondition: CurrentHP <= MaxHP; on error, state is unchanged.
func (c *Core) Heal(amount int) error {
	if amount < 0 {
		return fmt.Errorf("heal %d: %w", amount, ErrInvalidAmount)
	}
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	return nil
}

// AttackRoll returns d20 + AttackBonus.
//
// Precondition: src must be non-nil.
func (c *Core) AttackRoll(src dice.Source) int {
	return src.Intn(20) + 1 + c.AttackBonus
}
