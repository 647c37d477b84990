package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

// EnemyTemplate defines a reusable enemy stat block. Live enemy instances are
// stamped from a template at encounter start and discarded afterward.
type EnemyTemplate struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	MaxHP       int            `yaml:"max_hp"`
	AC          int            `yaml:"ac"`
	AttackBonus int            `yaml:"attack_bonus"`
	DamageDice  string         `yaml:"damage_dice"`
	Abilities   map[string]int `yaml:"abilities"`
	XPReward    int            `yaml:"xp_reward"`
	// ChallengeRating is an advisory difficulty hint (0.25 = easy, 1+ = harder).
	ChallengeRating float64 `yaml:"challenge_rating"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, MaxHP >= 1,
// AC >= 1, XPReward >= 0, DamageDice parses, and every ability key is known.
func (t *EnemyTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("enemy template %q: max_hp must be >= 1", t.ID)
	}
	if t.AC < 1 {
		return fmt.Errorf("enemy template %q: ac must be >= 1", t.ID)
	}
	if t.XPReward < 0 {
		return fmt.Errorf("enemy template %q: xp_reward must be >= 0", t.ID)
	}
	if _, err := dice.Parse(t.DamageDice); err != nil {
		return fmt.Errorf("enemy template %q: damage_dice: %w", t.ID, err)
	}
	for key := range t.Abilities {
		if !IsAbilityName(key) {
			return fmt.Errorf("enemy template %q: unknown ability %q", t.ID, key)
		}
	}
	return nil
}

// DamageExpr returns the parsed damage dice expression.
//
// Precondition: t has passed Validate.
func (t *EnemyTemplate) DamageExpr() dice.Expression {
	return dice.MustParse(t.DamageDice)
}

// LoadEnemyTemplates reads all .yaml files in dir and parses each as an
// EnemyTemplate.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all validated templates or a non-nil error.
func LoadEnemyTemplates(dir string) ([]*EnemyTemplate, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	templates := make([]*EnemyTemplate, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var t EnemyTemplate
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing enemy file %s: %w", path, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		templates = append(templates, &t)
	}
	return templates, nil
}
