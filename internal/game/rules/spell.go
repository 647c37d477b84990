package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

// SpellKind discriminates what a spell does when cast.
type SpellKind string

const (
	// SpellDamage applies the effect roll as damage to the target.
	SpellDamage SpellKind = "damage"
	// SpellHeal applies the effect roll as healing to the caster.
	SpellHeal SpellKind = "heal"
)

// Spell defines an immutable spell record. Level 0 spells are cantrips and
// consume no spell slot when cast.
type Spell struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Level      int       `yaml:"level"`
	Kind       SpellKind `yaml:"kind"`
	EffectDice string    `yaml:"effect_dice"`
	School     string    `yaml:"school"`
}

// IsCantrip reports whether the spell is castable without consuming a slot.
func (s *Spell) IsCantrip() bool { return s.Level == 0 }

// Validate checks that the spell satisfies its invariants.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 0,
// Kind is damage or heal, and EffectDice parses.
func (s *Spell) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spell: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("spell %q: name must not be empty", s.ID)
	}
	if s.Level < 0 {
		return fmt.Errorf("spell %q: level must be >= 0", s.ID)
	}
	if s.Kind != SpellDamage && s.Kind != SpellHeal {
		return fmt.Errorf("spell %q: kind must be %q or %q, got %q", s.ID, SpellDamage, SpellHeal, s.Kind)
	}
	if _, err := dice.Parse(s.EffectDice); err != nil {
		return fmt.Errorf("spell %q: effect_dice: %w", s.ID, err)
	}
	return nil
}

// EffectExpr returns the parsed effect dice expression.
//
// Precondition: s has passed Validate.
func (s *Spell) EffectExpr() dice.Expression {
	return dice.MustParse(s.EffectDice)
}

// LoadSpells reads all .yaml files in dir and parses each as a Spell.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all validated spells or a non-nil error.
func LoadSpells(dir string) ([]*Spell, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	spells := make([]*Spell, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var s Spell
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing spell file %s: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		spells = append(spells, &s)
	}
	return spells, nil
}
