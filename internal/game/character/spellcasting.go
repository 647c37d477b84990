package character

import (
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// CastResult reports what a successful spell cast did.
type CastResult struct {
	// Amount is the damage dealt or HP healed.
	Amount int
	// TargetDied is true when a damage spell dropped the target to 0 HP.
	TargetDied bool
}

// CastSpell casts spell at target. Leveled spells consume one slot of their
// level; cantrips are free. Damage spells apply their roll to target, heal
// spells apply it to the caster.
//
// Precondition: spell must be non-nil; target must be non-nil for damage
// spells; roller must be non-nil.
// Postcondition: On ErrNoSlotsRemaining no slot is decremented and no effect
// is applied; otherwise exactly one slot is consumed for leveled spells and
// the effect is applied.
func (c *Character) CastSpell(spell *rules.Spell, target entity.Combatant, roller *dice.Roller) (CastResult, error) {
	if spell == nil {
		return CastResult{}, fmt.Errorf("cast spell: spell must not be nil")
	}

	if !spell.IsCantrip() {
		pool, ok := c.Slots[spell.Level]
		if !ok || pool.Remaining == 0 {
			return CastResult{}, fmt.Errorf("casting %s (level %d): %w", spell.Name, spell.Level, ErrNoSlotsRemaining)
		}
		pool.Remaining--
	}

	amount := roller.Roll(spell.EffectExpr()).Total()

	switch spell.Kind {
	case rules.SpellHeal:
		if err := c.Heal(amount); err != nil {
			return CastResult{}, err
		}
		return CastResult{Amount: amount}, nil
	case rules.SpellDamage:
		if target == nil {
			return CastResult{}, fmt.Errorf("cast %s: damage spell requires a target", spell.Name)
		}
		if err := target.TakeDamage(amount); err != nil {
			return CastResult{}, err
		}
		return CastResult{Amount: amount, TargetDied: !target.IsAlive()}, nil
	default:
		return CastResult{}, fmt.Errorf("cast %s: unknown spell kind %q", spell.Name, spell.Kind)
	}
}
