package combat

import (
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// Initiative records the turn-order roll made once at encounter start.
// The order is fixed for the whole encounter and never re-rolled.
type Initiative struct {
	// PlayerRoll is the character's d20 + DEX modifier total.
	PlayerRoll int
	// EnemyRoll is the enemy's d20 + DEX modifier total.
	EnemyRoll int
	// PlayerFirst is true when the character acts first each round.
	PlayerFirst bool
}

// RollInitiative rolls d20 + DEX modifier for each side and fixes the turn
// order. A strictly higher total acts first; ties go to the higher DEX
// modifier, and a full tie goes to the player.
//
// Precondition: player, foe, and src must be non-nil.
// Postcondition: Returns a fully populated Initiative.
func RollInitiative(player, foe entity.Combatant, src dice.Source) Initiative {
	playerRoll := src.Intn(20) + 1 + player.DexModifier()
	enemyRoll := src.Intn(20) + 1 + foe.DexModifier()

	playerFirst := playerRoll > enemyRoll
	if playerRoll == enemyRoll {
		playerFirst = player.DexModifier() >= foe.DexModifier()
	}

	return Initiative{
		PlayerRoll:  playerRoll,
		EnemyRoll:   enemyRoll,
		PlayerFirst: playerFirst,
	}
}
