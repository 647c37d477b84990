package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Race defines a playable ancestry and its ability score bonuses.
//
// Precondition: ID and Name must be non-empty after loading.
type Race struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Bonuses     map[string]int `yaml:"bonuses"`
	// StartingWeapon is the weapon ID granted at character creation.
	// Empty falls back to the unarmed strike.
	StartingWeapon string `yaml:"starting_weapon"`
}

// Validate checks that the race satisfies basic invariants.
//
// Precondition: r must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty and every bonus
// key is a known ability name.
func (r *Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("race %q: name must not be empty", r.ID)
	}
	for key := range r.Bonuses {
		if !IsAbilityName(key) {
			return fmt.Errorf("race %q: unknown ability %q in bonuses", r.ID, key)
		}
	}
	return nil
}

// LoadRaces reads all .yaml files in dir and parses each as a Race.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all validated races or a non-nil error; on error the
// partial result is discarded.
func LoadRaces(dir string) ([]*Race, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	races := make([]*Race, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var r Race
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing race file %s: %w", path, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		races = append(races, &r)
	}
	return races, nil
}
