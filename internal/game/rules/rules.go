// Package rules provides the immutable race, weapon, spell, and enemy
// definition tables used by character creation and the combat engine.
// Tables are either compiled-in defaults or loaded from YAML content dirs.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ability name keys used in bonus and score maps.
const (
	AbilityStr = "str"
	AbilityDex = "dex"
	AbilityCon = "con"
	AbilityInt = "int"
	AbilityWis = "wis"
	AbilityCha = "cha"
)

// AbilityNames lists the six ability keys in display order.
var AbilityNames = []string{AbilityStr, AbilityDex, AbilityCon, AbilityInt, AbilityWis, AbilityCha}

// IsAbilityName reports whether name is one of the six ability keys.
func IsAbilityName(name string) bool {
	for _, a := range AbilityNames {
		if a == name {
			return true
		}
	}
	return false
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
