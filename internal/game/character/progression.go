package character

import (
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// HPPerLevel is the flat maximum HP gain per level.
const HPPerLevel = 5

// slotTable maps character level to the maximum slots per spell level.
// Levels beyond the last row reuse it.
var slotTable = map[int]map[int]int{
	1: {1: 2},
	2: {1: 3},
	3: {1: 4, 2: 2},
	4: {1: 4, 2: 3},
	5: {1: 4, 2: 3, 3: 2},
}

// maxSlotTableLevel is the highest level with its own slot row.
const maxSlotTableLevel = 5

// XPToNextLevel returns the experience cost of the character's next level:
// level * 100. Leftover experience carries over after leveling.
func (c *Character) XPToNextLevel() int {
	return c.Level * 100
}

// GainExperience accumulates xp and applies any level-ups it pays for.
// Each level-up raises MaxHP by HPPerLevel, restores CurrentHP to the new
// maximum, and refreshes spell slot maxima from the level table. The loop is
// bounded by the remaining experience and always terminates.
//
// Precondition: xp must be >= 0.
// Postcondition: Returns the number of levels gained; Experience holds the
// leftover below the next threshold.
func (c *Character) GainExperience(xp int) (int, error) {
	if xp < 0 {
		return 0, fmt.Errorf("gain experience %d: %w", xp, entity.ErrInvalidAmount)
	}

	c.Experience += xp
	levels := 0
	for c.Experience >= c.XPToNextLevel() {
		c.Experience -= c.XPToNextLevel()
		c.Level++
		c.MaxHP += HPPerLevel
		c.CurrentHP = c.MaxHP
		c.applySlotTable()
		levels++
	}
	return levels, nil
}

// Rest restores CurrentHP to MaxHP and every slot pool to its maximum.
// Resting has no cost and no cooldown.
//
// Postcondition: CurrentHP == MaxHP and Remaining == Max for every pool.
func (c *Character) Rest() {
	c.CurrentHP = c.MaxHP
	for _, pool := range c.Slots {
		pool.Remaining = pool.Max
	}
}

// applySlotTable raises slot maxima to the character's level row, topping
// remaining up to any new maximum. Maxima never decrease.
func (c *Character) applySlotTable() {
	level := c.Level
	if level > maxSlotTableLevel {
		level = maxSlotTableLevel
	}
	for spellLevel, max := range slotTable[level] {
		pool, ok := c.Slots[spellLevel]
		if !ok {
			c.Slots[spellLevel] = &SlotPool{Max: max, Remaining: max}
			continue
		}
		if max > pool.Max {
			pool.Remaining += max - pool.Max
			pool.Max = max
		}
	}
}
