// Package combat implements the turn-based encounter engine: initiative,
// the round loop, attack and spell resolution, and the append-only event log.
package combat

// State tracks the encounter lifecycle.
type State int

const (
	// StateNotStarted is the zero value before initiative is rolled.
	StateNotStarted State = iota
	// StateInitiativeRolled means turn order is fixed and rounds may run.
	StateInitiativeRolled
	// StateResolved is terminal; see Outcome for how the encounter ended.
	StateResolved
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateInitiativeRolled:
		return "initiative rolled"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of an encounter.
type Outcome int

const (
	// OutcomeNone means the encounter has not resolved yet.
	OutcomeNone Outcome = iota
	// OutcomeVictory means the enemy died and the character survived.
	OutcomeVictory
	// OutcomeDefeat means the character died.
	OutcomeDefeat
	// OutcomeFled means the character fled; no rewards, no penalty.
	OutcomeFled
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "unresolved"
	}
}

// ActionType identifies what a participant did on a turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionCast
	ActionFlee
	// ActionDeath is a system event recording that a participant died.
	ActionDeath
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionCast:
		return "cast"
	case ActionFlee:
		return "flee"
	case ActionDeath:
		return "death"
	default:
		return "unknown"
	}
}
