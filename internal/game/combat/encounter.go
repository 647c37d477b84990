package combat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/enemy"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// defaultNarrateTimeout bounds how long a single narration call may block
// the round loop before the fallback text is used.
const defaultNarrateTimeout = 5 * time.Second

// Narrator produces flavor text for an event. It may block on network I/O
// and may fail; the encounter always recovers with the deterministic
// fallback. Narration is a side channel and never alters combat state.
type Narrator interface {
	Narrate(ctx context.Context, ev Event) (string, error)
}

// PlayerAction is the character's chosen action for one turn.
type PlayerAction struct {
	Type ActionType
	// Spell must be set for ActionCast and is ignored otherwise.
	Spell *rules.Spell
}

// Encounter drives one complete combat between the character and a single
// enemy, from initiative roll to resolution. It is not safe for concurrent
// use; the session loop owns it exclusively.
type Encounter struct {
	// ID uniquely identifies the encounter in logs.
	ID string

	char   *character.Character
	foe    *enemy.Enemy
	roller *dice.Roller
	logger *zap.Logger

	narrator       Narrator
	narrateTimeout time.Duration

	state   State
	outcome Outcome
	round   int
	init    Initiative
	log     Log
}

// NewEncounter creates an encounter in StateNotStarted.
//
// Precondition: char, foe, and roller must be non-nil; logger may be nil.
func NewEncounter(char *character.Character, foe *enemy.Enemy, roller *dice.Roller, logger *zap.Logger) *Encounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encounter{
		ID:             uuid.NewString(),
		char:           char,
		foe:            foe,
		roller:         roller,
		logger:         logger,
		narrateTimeout: defaultNarrateTimeout,
	}
}

// SetNarrator installs a narrator with a bounded per-event timeout.
// A nil narrator or timeout <= 0 leaves narration on the fallback text.
func (e *Encounter) SetNarrator(n Narrator, timeout time.Duration) {
	e.narrator = n
	if timeout > 0 {
		e.narrateTimeout = timeout
	}
}

// State returns the encounter lifecycle state.
func (e *Encounter) State() State { return e.state }

// Outcome returns the terminal outcome, or OutcomeNone before resolution.
func (e *Encounter) Outcome() Outcome { return e.outcome }

// Round returns the number of rounds played so far.
func (e *Encounter) Round() int { return e.round }

// Initiative returns the fixed turn-order roll.
//
// Precondition: Start must have been called.
func (e *Encounter) Initiative() Initiative { return e.init }

// Enemy returns the opposing enemy instance.
func (e *Encounter) Enemy() *enemy.Enemy { return e.foe }

// Events returns a copy of the combat log so far.
func (e *Encounter) Events() []Event { return e.log.Events() }

// Start rolls initiative and fixes the turn order for the whole encounter.
//
// Precondition: the encounter must be in StateNotStarted.
// Postcondition: State() == StateInitiativeRolled; the order never changes.
func (e *Encounter) Start() error {
	if e.state != StateNotStarted {
		return fmt.Errorf("encounter %s already started (state %s)", e.ID, e.state)
	}
	e.init = RollInitiative(e.char, e.foe, e.roller.Source())
	e.state = StateInitiativeRolled

	e.logger.Info("encounter started",
		zap.String("encounter_id", e.ID),
		zap.String("character", e.char.Name),
		zap.String("enemy", e.foe.Name),
		zap.Int("player_initiative", e.init.PlayerRoll),
		zap.Int("enemy_initiative", e.init.EnemyRoll),
		zap.Bool("player_first", e.init.PlayerFirst),
	)
	return nil
}

// PlayRound executes one full round: both sides act in initiative order, the
// player with the given action and the enemy with its attack. Termination is
// checked after every action; a resolving action ends the round immediately
// and the other side's remaining turn is forfeited. A dead participant's
// turn is skipped, not an error.
//
// Precondition: Start has been called and the encounter is unresolved;
// action.Type must be ActionAttack, ActionCast (with Spell), or ActionFlee.
// Postcondition: Returned events are appended to the log with narration
// already applied; on resolution, Victory grants the enemy's XP reward.
func (e *Encounter) PlayRound(ctx context.Context, action PlayerAction) ([]Event, error) {
	if e.state == StateNotStarted {
		return nil, fmt.Errorf("encounter %s: initiative has not been rolled", e.ID)
	}
	if e.state == StateResolved {
		return nil, fmt.Errorf("encounter %s already resolved: %s", e.ID, e.outcome)
	}
	if err := validateAction(action); err != nil {
		return nil, err
	}

	e.round++
	var events []Event

	turns := []func(PlayerAction) []Event{e.playerTurn, e.enemyTurn}
	if !e.init.PlayerFirst {
		turns[0], turns[1] = turns[1], turns[0]
	}

	for _, turn := range turns {
		if e.state == StateResolved {
			break
		}
		events = append(events, turn(action)...)
	}

	for i := range events {
		events[i].Narrative = e.narrate(ctx, events[i])
		e.log.Append(events[i])
	}
	return events, nil
}

func validateAction(action PlayerAction) error {
	switch action.Type {
	case ActionAttack, ActionFlee:
		return nil
	case ActionCast:
		if action.Spell == nil {
			return errors.New("cast action requires a spell")
		}
		return nil
	default:
		return fmt.Errorf("invalid player action %q", action.Type)
	}
}

// playerTurn resolves the character's chosen action.
func (e *Encounter) playerTurn(action PlayerAction) []Event {
	if !e.char.IsAlive() {
		// Dead participants do not act; the turn is skipped silently.
		return nil
	}

	switch action.Type {
	case ActionFlee:
		e.outcome = OutcomeFled
		e.state = StateResolved
		e.logger.Info("character fled",
			zap.String("encounter_id", e.ID),
			zap.Int("round", e.round),
		)
		return []Event{newEvent(e.round, e.char.Name, ActionFlee, e.foe.Name, 0, EventFled, "")}

	case ActionCast:
		return e.playerCast(action.Spell)

	default:
		weapon := e.char.Weapon
		r := ResolveAttack(e.char, e.foe, weapon.AttackBonus, weapon.DamageExpr(), e.char.Abilities.Mod(weapon.BonusStat), e.roller)
		if !r.Hit {
			return []Event{newEvent(e.round, e.char.Name, ActionAttack, e.foe.Name, 0, EventMiss, weapon.Name)}
		}
		// Damage is non-negative by ResolveAttack's postcondition.
		_ = e.foe.TakeDamage(r.Damage)
		events := []Event{newEvent(e.round, e.char.Name, ActionAttack, e.foe.Name, r.Damage, EventHit, weapon.Name)}
		return append(events, e.checkTermination(e.char.Name)...)
	}
}

// playerCast delegates to the character's spellcasting. Slot exhaustion is a
// no-op turn surfaced as an event, never a round error.
func (e *Encounter) playerCast(spell *rules.Spell) []Event {
	result, err := e.char.CastSpell(spell, e.foe, e.roller)
	if err != nil {
		if errors.Is(err, character.ErrNoSlotsRemaining) {
			e.logger.Debug("cast failed, no slots remaining",
				zap.String("encounter_id", e.ID),
				zap.String("spell", spell.Name),
			)
			return []Event{newEvent(e.round, e.char.Name, ActionCast, "", 0, EventNoEffect, spell.Name)}
		}
		// Unexpected casting failures also forfeit the turn but are logged loudly.
		e.logger.Error("cast failed", zap.String("spell", spell.Name), zap.Error(err))
		return []Event{newEvent(e.round, e.char.Name, ActionCast, "", 0, EventNoEffect, spell.Name)}
	}

	if spell.Kind == rules.SpellHeal {
		return []Event{newEvent(e.round, e.char.Name, ActionCast, e.char.Name, result.Amount, EventHealed, spell.Name)}
	}
	events := []Event{newEvent(e.round, e.char.Name, ActionCast, e.foe.Name, result.Amount, EventHit, spell.Name)}
	return append(events, e.checkTermination(e.char.Name)...)
}

// enemyTurn resolves the enemy's attack. Enemies always attack.
func (e *Encounter) enemyTurn(PlayerAction) []Event {
	if !e.foe.IsAlive() {
		return nil
	}

	r := ResolveAttack(e.foe, e.char, 0, e.foe.DamageDice, 0, e.roller)
	if !r.Hit {
		return []Event{newEvent(e.round, e.foe.Name, ActionAttack, e.char.Name, 0, EventMiss, "")}
	}
	_ = e.char.TakeDamage(r.Damage)
	events := []Event{newEvent(e.round, e.foe.Name, ActionAttack, e.char.Name, r.Damage, EventHit, "")}
	return append(events, e.checkTermination(e.foe.Name)...)
}

// checkTermination resolves the encounter when a side has died. Victory
// grants the enemy's XP reward; Defeat mutates nothing further.
func (e *Encounter) checkTermination(killer string) []Event {
	if !e.foe.IsAlive() {
		e.outcome = OutcomeVictory
		e.state = StateResolved

		levels, err := e.char.GainExperience(e.foe.XPReward)
		if err != nil {
			e.logger.Error("granting experience", zap.Error(err))
		}
		e.logger.Info("encounter won",
			zap.String("encounter_id", e.ID),
			zap.Int("round", e.round),
			zap.Int("xp_reward", e.foe.XPReward),
			zap.Int("levels_gained", levels),
		)
		return []Event{newEvent(e.round, e.foe.Name, ActionDeath, killer, 0, EventDied, "")}
	}

	if !e.char.IsAlive() {
		e.outcome = OutcomeDefeat
		e.state = StateResolved
		e.logger.Info("encounter lost",
			zap.String("encounter_id", e.ID),
			zap.Int("round", e.round),
		)
		return []Event{newEvent(e.round, e.char.Name, ActionDeath, killer, 0, EventDied, "")}
	}

	return nil
}

// narrate produces the flavor line for ev, preferring the narrator but
// always falling back to the deterministic text on failure, timeout, or
// when no narrator is installed.
func (e *Encounter) narrate(ctx context.Context, ev Event) string {
	fallback := FallbackNarrative(ev)
	if e.narrator == nil {
		return fallback
	}

	nctx, cancel := context.WithTimeout(ctx, e.narrateTimeout)
	defer cancel()

	text, err := e.narrator.Narrate(nctx, ev)
	if err != nil {
		e.logger.Warn("narration unavailable, using fallback",
			zap.String("encounter_id", e.ID),
			zap.String("event_id", ev.ID),
			zap.Error(err),
		)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}
