package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
)

// FormatCharacter returns the multi-line character sheet.
// Exported for testing.
//
// Precondition: c must be non-nil with a race and weapon assigned.
func FormatCharacter(c *character.Character) string {
	var sb strings.Builder
	cur, max := c.HP()
	fmt.Fprintf(&sb, "  Name:   %s\n", c.Name)
	fmt.Fprintf(&sb, "  Race:   %s   Level: %d   XP: %d/%d\n",
		c.Race.Name, c.Level, c.Experience, c.XPToNextLevel())
	fmt.Fprintf(&sb, "  HP:     %d/%d   AC: %d\n", cur, max, c.ArmorClass)
	fmt.Fprintf(&sb, "  STR:%2d  DEX:%2d  CON:%2d  INT:%2d  WIS:%2d  CHA:%2d\n",
		c.Abilities.Strength, c.Abilities.Dexterity, c.Abilities.Constitution,
		c.Abilities.Intelligence, c.Abilities.Wisdom, c.Abilities.Charisma)
	fmt.Fprintf(&sb, "  Weapon: %s (%s %s)\n", c.Weapon.Name, c.Weapon.DamageDice, c.Weapon.DamageType)

	if len(c.Spells) > 0 {
		names := make([]string, 0, len(c.Spells))
		for _, s := range c.Spells {
			names = append(names, s.Name)
		}
		fmt.Fprintf(&sb, "  Spells: %s\n", strings.Join(names, ", "))
	}
	if len(c.Slots) > 0 {
		levels := make([]int, 0, len(c.Slots))
		for lvl := range c.Slots {
			levels = append(levels, lvl)
		}
		sort.Ints(levels)
		parts := make([]string, 0, len(levels))
		for _, lvl := range levels {
			pool := c.Slots[lvl]
			parts = append(parts, fmt.Sprintf("L%d %d/%d", lvl, pool.Remaining, pool.Max))
		}
		fmt.Fprintf(&sb, "  Slots:  %s\n", strings.Join(parts, "  "))
	}
	return sb.String()
}

// FormatEvent renders one combat log line for display.
// Exported for testing.
func FormatEvent(ev combat.Event) string {
	return fmt.Sprintf("[round %d] %s", ev.Round, ev.Narrative)
}
