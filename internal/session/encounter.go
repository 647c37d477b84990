package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// runEncounter spawns a random enemy and drives the encounter round by
// round until it resolves. Malformed action input re-prompts without
// spending the round.
func (s *Session) runEncounter(ctx context.Context) error {
	foe, err := s.factory.SpawnRandom(s.roller.Source())
	if err != nil {
		return err
	}

	enc := combat.NewEncounter(s.char, foe, s.roller, s.logger)
	if s.narrator != nil {
		enc.SetNarrator(s.narrator, s.narrateTimeout)
	}
	if err := enc.Start(); err != nil {
		return err
	}

	s.writeLine("")
	s.writeLine(fmt.Sprintf("A %s appears!", foe.Name))
	if foe.Description != "" {
		s.writeLine(foe.Description)
	}
	init := enc.Initiative()
	s.writeLine(fmt.Sprintf("Initiative: you %d, %s %d.", init.PlayerRoll, foe.Name, init.EnemyRoll))
	if init.PlayerFirst {
		s.writeLine("You act first.")
	} else {
		s.writeLine(fmt.Sprintf("The %s acts first.", foe.Name))
	}

	for enc.State() != combat.StateResolved {
		s.writeStatus(enc)

		action, err := s.promptAction()
		if err != nil {
			return err
		}

		events, err := enc.PlayRound(ctx, action)
		if err != nil {
			s.logger.Error("playing round", zap.Error(err))
			s.writeLine("Something went wrong resolving the round.")
			continue
		}
		for _, ev := range events {
			s.writeLine(FormatEvent(ev))
		}
	}

	s.writeOutcome(enc)
	return nil
}

// promptAction reads one player action, re-prompting until valid.
func (s *Session) promptAction() (combat.PlayerAction, error) {
	for {
		line, err := s.prompt("[attack / cast <spell> / flee] > ")
		if err != nil {
			return combat.PlayerAction{}, err
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			s.writeLine("Choose an action.")
			continue
		}

		switch fields[0] {
		case "attack", "a":
			return combat.PlayerAction{Type: combat.ActionAttack}, nil
		case "flee", "f", "run":
			return combat.PlayerAction{Type: combat.ActionFlee}, nil
		case "cast", "c":
			if len(fields) < 2 {
				s.listSpells()
				continue
			}
			spell := s.findSpell(strings.Join(fields[1:], " "))
			if spell == nil {
				s.writeLine("You don't know that spell.")
				s.listSpells()
				continue
			}
			return combat.PlayerAction{Type: combat.ActionCast, Spell: spell}, nil
		default:
			s.writeLine("Choose an action.")
		}
	}
}

// findSpell matches a known spell by ID or name, case-insensitively and
// treating spaces and underscores alike.
func (s *Session) findSpell(query string) *rules.Spell {
	normalize := func(v string) string {
		return strings.ReplaceAll(strings.ToLower(v), " ", "_")
	}
	q := normalize(query)
	for _, spell := range s.char.Spells {
		if normalize(spell.ID) == q || normalize(spell.Name) == q {
			return spell
		}
	}
	return nil
}

// listSpells prints the character's known spells with slot availability.
func (s *Session) listSpells() {
	if len(s.char.Spells) == 0 {
		s.writeLine("You know no spells.")
		return
	}
	s.writeLine("Known spells:")
	for _, spell := range s.char.Spells {
		if spell.IsCantrip() {
			s.writeLine(fmt.Sprintf("  %s (cantrip, %s)", spell.Name, spell.EffectDice))
			continue
		}
		s.writeLine(fmt.Sprintf("  %s (level %d, %s, slots %d/%d)",
			spell.Name, spell.Level, spell.EffectDice,
			s.char.SlotsRemaining(spell.Level), s.char.Slots[spell.Level].Max))
	}
}

// writeStatus prints both sides' hit points before the action prompt.
func (s *Session) writeStatus(enc *combat.Encounter) {
	curC, maxC := s.char.HP()
	curF, maxF := enc.Enemy().HP()
	s.writeLine("")
	s.writeLine(fmt.Sprintf("%s: %d/%d HP   %s: %d/%d HP",
		s.char.Name, curC, maxC, enc.Enemy().Name, curF, maxF))
}

// writeOutcome summarizes the resolved encounter.
func (s *Session) writeOutcome(enc *combat.Encounter) {
	s.writeLine("")
	switch enc.Outcome() {
	case combat.OutcomeVictory:
		s.writeLine(fmt.Sprintf("Victory! You defeated the %s and gained %d XP.",
			enc.Enemy().Name, enc.Enemy().XPReward))
		s.writeLine(fmt.Sprintf("Level %d, %d/%d XP toward next level.",
			s.char.Level, s.char.Experience, s.char.XPToNextLevel()))
	case combat.OutcomeDefeat:
		s.writeLine(fmt.Sprintf("The %s has bested you.", enc.Enemy().Name))
	case combat.OutcomeFled:
		s.writeLine("You escape with your life, and nothing else.")
	}
}
