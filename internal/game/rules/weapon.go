package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

// Weapon defines the static properties of an equippable weapon.
// Weapons are immutable values looked up by ID; combat never mutates them.
type Weapon struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DamageDice  string `yaml:"damage_dice"`
	DamageType  string `yaml:"damage_type"`
	// BonusStat is the ability whose modifier is added to damage rolls.
	BonusStat   string `yaml:"bonus_stat"`
	AttackBonus int    `yaml:"attack_bonus"`
}

// Validate checks that the weapon satisfies its invariants.
//
// Precondition: w must not be nil.
// Postcondition: Returns nil iff ID, Name, and DamageType are non-empty,
// DamageDice parses, and BonusStat is a known ability name.
func (w *Weapon) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("weapon: id must not be empty")
	}
	if w.Name == "" {
		return fmt.Errorf("weapon %q: name must not be empty", w.ID)
	}
	if _, err := dice.Parse(w.DamageDice); err != nil {
		return fmt.Errorf("weapon %q: damage_dice: %w", w.ID, err)
	}
	if w.DamageType == "" {
		return fmt.Errorf("weapon %q: damage_type must not be empty", w.ID)
	}
	if !IsAbilityName(w.BonusStat) {
		return fmt.Errorf("weapon %q: unknown bonus_stat %q", w.ID, w.BonusStat)
	}
	return nil
}

// DamageExpr returns the parsed damage dice expression.
//
// Precondition: w has passed Validate.
func (w *Weapon) DamageExpr() dice.Expression {
	return dice.MustParse(w.DamageDice)
}

// LoadWeapons reads all .yaml files in dir and parses each as a Weapon.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all validated weapons or a non-nil error.
func LoadWeapons(dir string) ([]*Weapon, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	weapons := make([]*Weapon, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var w Weapon
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("parsing weapon file %s: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}
