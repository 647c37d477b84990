package rules

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Tables bundles the immutable lookup tables loaded once at process start.
//
// Invariant: records are never mutated after construction.
type Tables struct {
	races   map[string]*Race
	weapons map[string]*Weapon
	spells  map[string]*Spell
	enemies map[string]*EnemyTemplate
}

// NewTables builds a Tables set from the given records, rejecting duplicates.
//
// Postcondition: Returns a Tables with every record indexed by ID, or an
// error on the first duplicate ID.
func NewTables(races []*Race, weapons []*Weapon, spells []*Spell, enemies []*EnemyTemplate) (*Tables, error) {
	t := &Tables{
		races:   make(map[string]*Race, len(races)),
		weapons: make(map[string]*Weapon, len(weapons)),
		spells:  make(map[string]*Spell, len(spells)),
		enemies: make(map[string]*EnemyTemplate, len(enemies)),
	}
	for _, r := range races {
		if _, ok := t.races[r.ID]; ok {
			return nil, fmt.Errorf("duplicate race id %q", r.ID)
		}
		t.races[r.ID] = r
	}
	for _, w := range weapons {
		if _, ok := t.weapons[w.ID]; ok {
			return nil, fmt.Errorf("duplicate weapon id %q", w.ID)
		}
		t.weapons[w.ID] = w
	}
	for _, s := range spells {
		if _, ok := t.spells[s.ID]; ok {
			return nil, fmt.Errorf("duplicate spell id %q", s.ID)
		}
		t.spells[s.ID] = s
	}
	for _, e := range enemies {
		if _, ok := t.enemies[e.ID]; ok {
			return nil, fmt.Errorf("duplicate enemy id %q", e.ID)
		}
		t.enemies[e.ID] = e
	}
	return t, nil
}

// LoadTables reads races/, weapons/, spells/, and enemies/ subdirectories of
// contentDir and builds a Tables set from their YAML files.
//
// Precondition: contentDir must contain the four subdirectories.
// Postcondition: Returns a fully validated Tables or a non-nil error.
func LoadTables(contentDir string) (*Tables, error) {
	races, err := LoadRaces(filepath.Join(contentDir, "races"))
	if err != nil {
		return nil, fmt.Errorf("loading races: %w", err)
	}
	weapons, err := LoadWeapons(filepath.Join(contentDir, "weapons"))
	if err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}
	spells, err := LoadSpells(filepath.Join(contentDir, "spells"))
	if err != nil {
		return nil, fmt.Errorf("loading spells: %w", err)
	}
	enemies, err := LoadEnemyTemplates(filepath.Join(contentDir, "enemies"))
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	return NewTables(races, weapons, spells, enemies)
}

// Race returns the race with the given ID, or an error if unknown.
func (t *Tables) Race(id string) (*Race, error) {
	r, ok := t.races[id]
	if !ok {
		return nil, fmt.Errorf("unknown race %q", id)
	}
	return r, nil
}

// Weapon returns the weapon with the given ID, or an error if unknown.
func (t *Tables) Weapon(id string) (*Weapon, error) {
	w, ok := t.weapons[id]
	if !ok {
		return nil, fmt.Errorf("unknown weapon %q", id)
	}
	return w, nil
}

// Spell returns the spell with the given ID, or an error if unknown.
func (t *Tables) Spell(id string) (*Spell, error) {
	s, ok := t.spells[id]
	if !ok {
		return nil, fmt.Errorf("unknown spell %q", id)
	}
	return s, nil
}

// EnemyTemplate returns the enemy template with the given ID, or an error if unknown.
func (t *Tables) EnemyTemplate(id string) (*EnemyTemplate, error) {
	e, ok := t.enemies[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", id)
	}
	return e, nil
}

// Races returns all races sorted by ID.
func (t *Tables) Races() []*Race {
	out := make([]*Race, 0, len(t.races))
	for _, r := range t.races {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Weapons returns all weapons sorted by ID.
func (t *Tables) Weapons() []*Weapon {
	out := make([]*Weapon, 0, len(t.weapons))
	for _, w := range t.weapons {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Spells returns all spells sorted by ID.
func (t *Tables) Spells() []*Spell {
	out := make([]*Spell, 0, len(t.spells))
	for _, s := range t.spells {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EnemyTemplates returns all enemy templates sorted by ID.
func (t *Tables) EnemyTemplates() []*EnemyTemplate {
	out := make([]*EnemyTemplate, 0, len(t.enemies))
	for _, e := range t.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StartingWeapon resolves the starting weapon for a race, falling back to
// the unarmed strike when the race does not name one.
//
// Postcondition: Returns a non-nil Weapon or an error when neither the
// race's weapon nor "unarmed" is present in the table.
func (t *Tables) StartingWeapon(race *Race) (*Weapon, error) {
	id := race.StartingWeapon
	if id == "" {
		id = "unarmed"
	}
	w, err := t.Weapon(id)
	if err != nil {
		return nil, fmt.Errorf("starting weapon for race %q: %w", race.ID, err)
	}
	return w, nil
}
