// Package enemy provides live enemy instances stamped from rules templates
// and the named factory registry used to spawn them per encounter.
package enemy

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// Enemy is a live combat opponent. Instances exist for a single encounter
// and are discarded on resolution; nothing about them persists.
type Enemy struct {
	entity.Core

	// ID uniquely identifies this runtime instance.
	ID string
	// Type is the source template's ID (e.g. "goblin").
	Type string
	// Description is copied from the template for display.
	Description string
	// DamageDice is the enemy's attack damage expression.
	DamageDice dice.Expression
	// XPReward is granted to the character on victory.
	XPReward int
	// ChallengeRating is an advisory difficulty hint.
	ChallengeRating float64
}

// FromTemplate stamps a live Enemy from a template at full HP.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: CurrentHP equals tmpl.MaxHP; the instance ID is unique.
func FromTemplate(tmpl *rules.EnemyTemplate) *Enemy {
	return &Enemy{
		Core: entity.Core{
			Name:        tmpl.Name,
			MaxHP:       tmpl.MaxHP,
			CurrentHP:   tmpl.MaxHP,
			ArmorClass:  tmpl.AC,
			AttackBonus: tmpl.AttackBonus,
			Abilities:   entity.FromMap(tmpl.Abilities),
		},
		ID:              uuid.NewString(),
		Type:            tmpl.ID,
		Description:     tmpl.Description,
		DamageDice:      tmpl.DamageExpr(),
		XPReward:        tmpl.XPReward,
		ChallengeRating: tmpl.ChallengeRating,
	}
}
