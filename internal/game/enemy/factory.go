package enemy

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// Factory spawns live enemies from the tables by template ID.
type Factory struct {
	tables *rules.Tables
}

// NewFactory creates a Factory backed by the given tables.
//
// Precondition: tables must be non-nil.
func NewFactory(tables *rules.Tables) *Factory {
	if tables == nil {
		panic("enemy.NewFactory: tables must not be nil")
	}
	return &Factory{tables: tables}
}

// Spawn creates a live Enemy for the named template.
//
// Postcondition: Returns a full-HP instance or an error for unknown types.
func (f *Factory) Spawn(templateID string) (*Enemy, error) {
	tmpl, err := f.tables.EnemyTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("spawning enemy: %w", err)
	}
	return FromTemplate(tmpl), nil
}

// SpawnRandom creates a live Enemy from a uniformly chosen template.
//
// Precondition: src must be non-nil; the tables must hold at least one
// enemy template.
func (f *Factory) SpawnRandom(src dice.Source) (*Enemy, error) {
	templates := f.tables.EnemyTemplates()
	if len(templates) == 0 {
		return nil, fmt.Errorf("spawning enemy: no templates available")
	}
	return FromTemplate(templates[src.Intn(len(templates))]), nil
}

// Types returns the available template IDs sorted alphabetically.
func (f *Factory) Types() []string {
	templates := f.tables.EnemyTemplates()
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return ids
}

// NewGoblin spawns a goblin from the built-in tables.
func NewGoblin() *Enemy {
	return mustSpawnDefault("goblin")
}

// NewOrc spawns an orc from the built-in tables.
func NewOrc() *Enemy {
	return mustSpawnDefault("orc")
}

// NewSkeleton spawns a skeleton from the built-in tables.
func NewSkeleton() *Enemy {
	return mustSpawnDefault("skeleton")
}

func mustSpawnDefault(id string) *Enemy {
	e, err := NewFactory(rules.DefaultTables()).Spawn(id)
	if err != nil {
		panic("enemy: built-in template missing: " + err.Error())
	}
	return e
}
