package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// DefaultBaseHP is the base hit point total before the CON modifier.
const DefaultBaseHP = 10

// abilityRoll is the classic 3d6 per-ability roll.
var abilityRoll = dice.MustParse("3d6")

// Build constructs a new Character: abilities are rolled 3d6 each, racial
// bonuses applied, MaxHP = baseHP + CON modifier (minimum 1), the racial
// starting weapon equipped, and the given spells learned with the level-1
// slot row granted.
//
// Precondition: name must be non-empty; race and tables must be non-nil;
// baseHP must be >= 1.
// Postcondition: Returns a level-1 Character at full HP with exactly one
// equipped weapon, or a non-nil error.
func Build(name string, race *rules.Race, tables *rules.Tables, spellIDs []string, baseHP int, roller *dice.Roller) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if race == nil {
		return nil, errors.New("race must not be nil")
	}
	if tables == nil {
		return nil, errors.New("tables must not be nil")
	}
	if baseHP < 1 {
		return nil, fmt.Errorf("base HP must be >= 1, got %d", baseHP)
	}

	scores := map[string]int{}
	for _, ability := range rules.AbilityNames {
		scores[ability] = roller.Roll(abilityRoll).Total() + race.Bonuses[ability]
	}
	abilities := entity.FromMap(scores)

	maxHP := baseHP + entity.Modifier(abilities.Constitution)
	if maxHP < 1 {
		maxHP = 1
	}

	weapon, err := tables.StartingWeapon(race)
	if err != nil {
		return nil, err
	}

	spells := make([]*rules.Spell, 0, len(spellIDs))
	for _, id := range spellIDs {
		s, err := tables.Spell(id)
		if err != nil {
			return nil, fmt.Errorf("granting starting spell: %w", err)
		}
		spells = append(spells, s)
	}

	c := &Character{
		Core: entity.Core{
			Name:        name,
			MaxHP:       maxHP,
			CurrentHP:   maxHP,
			ArmorClass:  10 + entity.Modifier(abilities.Dexterity),
			AttackBonus: 2 + entity.Modifier(abilities.Strength),
			Abilities:   abilities,
		},
		Race:   race,
		Level:  1,
		Weapon: weapon,
		Spells: spells,
		Slots:  map[int]*SlotPool{},
	}
	c.applySlotTable()
	return c, nil
}
