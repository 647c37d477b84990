package combat

import (
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// AttackResult holds the outcome of a single attack roll against a target.
type AttackResult struct {
	// AttackTotal is the full attack roll: d20 + attack bonuses.
	AttackTotal int
	// Hit is true when AttackTotal met or beat the target's armor class.
	Hit bool
	// Damage is the damage to apply on a hit; zero on a miss. Never negative.
	Damage int
	// DamageRoll holds the individual damage die values on a hit.
	DamageRoll []int
}

// ResolveAttack performs an attack roll for attacker vs target and, on a
// hit, rolls damage. Damage is dmgExpr + dmgBonus, floored at zero; the
// caller applies it.
//
// Precondition: attacker and target must be non-nil and alive; roller must
// be non-nil; dmgExpr must come from dice.Parse.
// Postcondition: Returns a fully populated AttackResult; no state is mutated.
func ResolveAttack(attacker, target entity.Combatant, atkBonus int, dmgExpr dice.Expression, dmgBonus int, roller *dice.Roller) AttackResult {
	total := attacker.AttackRoll(roller.Source()) + atkBonus
	if total < target.Defense() {
		return AttackResult{AttackTotal: total}
	}

	roll := roller.Roll(dmgExpr)
	damage := roll.Total() + dmgBonus
	if damage < 0 {
		damage = 0
	}
	return AttackResult{
		AttackTotal: total,
		Hit:         true,
		Damage:      damage,
		DamageRoll:  roll.Dice,
	}
}
