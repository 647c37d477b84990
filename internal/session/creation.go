package session

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// startingSpellIDs are granted at creation when present in the loaded
// tables. Entries missing from custom content are skipped.
var startingSpellIDs = []string{"magic_missile", "cure_wounds"}

// createCharacter runs the interactive creation flow: name, race menu, then
// the rolled build. Malformed input re-prompts; io.EOF aborts.
func (s *Session) createCharacter() (*character.Character, error) {
	name, err := s.promptName()
	if err != nil {
		return nil, err
	}

	race, err := s.promptRace()
	if err != nil {
		return nil, err
	}

	spellIDs := make([]string, 0, len(startingSpellIDs))
	for _, id := range startingSpellIDs {
		if _, err := s.tables.Spell(id); err == nil {
			spellIDs = append(spellIDs, id)
		}
	}

	char, err := character.Build(name, race, s.tables, spellIDs, s.baseHP, s.roller)
	if err != nil {
		return nil, fmt.Errorf("building character: %w", err)
	}

	s.writeLine("")
	s.writeLine(fmt.Sprintf("%s the %s steps onto the road.", char.Name, race.Name))
	s.write(FormatCharacter(char))
	return char, nil
}

// promptName asks for a character name until a non-empty one is given.
func (s *Session) promptName() (string, error) {
	for {
		line, err := s.prompt("Enter your character's name: ")
		if err != nil {
			return "", err
		}
		if line == "" {
			s.writeLine("A name is required.")
			continue
		}
		return line, nil
	}
}

// promptRace shows the numbered race menu until a valid choice is made.
func (s *Session) promptRace() (*rules.Race, error) {
	races := s.tables.Races()
	for {
		s.writeLine("")
		s.writeLine("Choose your race:")
		for i, r := range races {
			s.writeLine(fmt.Sprintf("  %d. %s%s", i+1, r.Name, raceBonusSummary(r)))
			if r.Description != "" {
				s.writeLine("     " + r.Description)
			}
		}
		line, err := s.prompt(fmt.Sprintf("Select race [1-%d]: ", len(races)))
		if err != nil {
			return nil, err
		}

		choice := 0
		if _, err := fmt.Sscanf(line, "%d", &choice); err != nil || choice < 1 || choice > len(races) {
			s.writeLine("Invalid selection.")
			continue
		}
		return races[choice-1], nil
	}
}

// raceBonusSummary renders the racial ability bonuses, e.g. " (+2 dex, +1 cha)".
func raceBonusSummary(r *rules.Race) string {
	var parts []string
	for _, ability := range rules.AbilityNames {
		if bonus := r.Bonuses[ability]; bonus != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", bonus, ability))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
