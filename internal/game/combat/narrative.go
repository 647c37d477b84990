package combat

import "fmt"

// FallbackNarrative returns the deterministic flavor line for an event. It is
// used whenever the narrator is disabled or fails, so a narration outage can
// never change what the player is told happened.
//
// Postcondition: Returns a non-empty string for every known action/outcome pair.
func FallbackNarrative(ev Event) string {
	switch ev.Action {
	case ActionAttack:
		if ev.Outcome == EventMiss {
			return fmt.Sprintf("%s attacks %s but misses.", ev.Actor, ev.Target)
		}
		return fmt.Sprintf("%s hits %s for %d damage.", ev.Actor, ev.Target, ev.Amount)
	case ActionCast:
		switch ev.Outcome {
		case EventNoEffect:
			return fmt.Sprintf("%s tries to cast %s, but has no spell slots left.", ev.Actor, ev.Detail)
		case EventHealed:
			return fmt.Sprintf("%s casts %s and recovers %d HP.", ev.Actor, ev.Detail, ev.Amount)
		default:
			return fmt.Sprintf("%s casts %s at %s for %d damage.", ev.Actor, ev.Detail, ev.Target, ev.Amount)
		}
	case ActionFlee:
		return fmt.Sprintf("%s flees the battle.", ev.Actor)
	case ActionDeath:
		return fmt.Sprintf("%s falls, slain by %s.", ev.Actor, ev.Target)
	default:
		return fmt.Sprintf("%s hesitates.", ev.Actor)
	}
}
