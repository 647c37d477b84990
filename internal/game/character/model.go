// Package character defines the player character domain model: creation,
// progression, resting, and spellcasting.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// ErrNoSlotsRemaining is returned when a leveled spell is cast with no
// remaining slot of its level. It is a recoverable action failure, never
// fatal to an encounter.
var ErrNoSlotsRemaining = errors.New("character: no spell slots remaining")

// SlotPool tracks the consumable spell slots for one spell level.
//
// Invariant: 0 <= Remaining <= Max.
type SlotPool struct {
	Max       int
	Remaining int
}

// Character is the single long-lived player entity for a session. It is
// owned exclusively by the session loop; there is no concurrent mutation.
type Character struct {
	entity.Core

	Race       *rules.Race
	Level      int
	Experience int

	// Weapon is the equipped weapon. A character always has exactly one
	// equipped weapon; creation assigns the racial default.
	Weapon *rules.Weapon

	// Spells is the fixed set of known spells, granted at creation.
	Spells []*rules.Spell

	// Slots maps spell level to its slot pool. Level 0 has no pool;
	// cantrips are free.
	Slots map[int]*SlotPool
}

// EquipWeapon replaces the equipped weapon.
//
// Precondition: w must be non-nil; a character can never be unarmed.
func (c *Character) EquipWeapon(w *rules.Weapon) error {
	if w == nil {
		return fmt.Errorf("equip weapon: weapon must not be nil")
	}
	c.Weapon = w
	return nil
}

// SpellByID returns the known spell with the given ID, or an error when the
// character does not know it.
func (c *Character) SpellByID(id string) (*rules.Spell, error) {
	for _, s := range c.Spells {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("character %s does not know spell %q", c.Name, id)
}

// SlotsRemaining returns the remaining slot count for a spell level.
// Levels without a pool report zero.
func (c *Character) SlotsRemaining(level int) int {
	pool, ok := c.Slots[level]
	if !ok {
		return 0
	}
	return pool.Remaining
}
