package combat

import "github.com/google/uuid"

// EventOutcome classifies what an action produced.
type EventOutcome int

const (
	// EventHit means an attack or damage spell landed.
	EventHit EventOutcome = iota
	// EventMiss means an attack failed against the target's armor class.
	EventMiss
	// EventHealed means a healing effect was applied to the actor.
	EventHealed
	// EventNoEffect means the action resolved as a no-op turn, e.g. a cast
	// attempted with no remaining spell slots.
	EventNoEffect
	// EventFled means the actor left the encounter.
	EventFled
	// EventDied means the subject of the event was killed.
	EventDied
)

// String returns a human-readable outcome label.
func (o EventOutcome) String() string {
	switch o {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventHealed:
		return "healed"
	case EventNoEffect:
		return "no effect"
	case EventFled:
		return "fled"
	case EventDied:
		return "died"
	default:
		return "unknown"
	}
}

// Event records one resolved action within an encounter.
//
// Events are immutable once appended to the Log; Narrative is the only field
// written after resolution, and only before the append.
type Event struct {
	// ID uniquely identifies the event.
	ID string
	// Round is the 1-based round number the event occurred in.
	Round int
	// Actor is the display name of the acting participant.
	Actor string
	// Action is what the actor did.
	Action ActionType
	// Target is the display name of the affected participant; empty for
	// self-targeted or system events.
	Target string
	// Amount is the damage dealt or HP healed; zero for misses and no-ops.
	Amount int
	// Outcome classifies the result.
	Outcome EventOutcome
	// Detail is the deterministic description of the event, e.g. the spell
	// name or the reason a turn had no effect.
	Detail string
	// Narrative is the flavor text shown to the player. It is either the
	// narrator's response or the deterministic fallback; it never feeds
	// back into combat state.
	Narrative string
}

// newEvent constructs an Event with a fresh ID.
func newEvent(round int, actor string, action ActionType, target string, amount int, outcome EventOutcome, detail string) Event {
	return Event{
		ID:      uuid.NewString(),
		Round:   round,
		Actor:   actor,
		Action:  action,
		Target:  target,
		Amount:  amount,
		Outcome: outcome,
		Detail:  detail,
	}
}

// Log is the append-only sequence of events for one encounter.
//
// Invariant: events are only ever appended; existing entries never change.
type Log struct {
	events []Event
}

// Append adds an event to the log.
func (l *Log) Append(ev Event) {
	l.events = append(l.events, ev)
}

// Events returns a copy of the logged events in order.
//
// Postcondition: Mutating the returned slice does not affect the log.
func (l *Log) Events() []Event {
	cp := make([]Event, len(l.events))
	copy(cp, l.events)
	return cp
}

// Len returns the number of logged events.
func (l *Log) Len() int { return len(l.events) }
