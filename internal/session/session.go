// Package session runs the interactive adventure loop: character creation,
// the town menu, and combat encounters, all over a line-oriented reader and
// writer. The loop never crashes on malformed input; it re-prompts.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/enemy"
	"github.com/cory-johannsen/dndgame/internal/game/rules"
)

// Options configures a Session.
type Options struct {
	Tables  *rules.Tables
	Roller  *dice.Roller
	Factory *enemy.Factory
	// Narrator is optional; nil runs on deterministic flavor text alone.
	Narrator combat.Narrator
	// NarrateTimeout bounds each narration call; zero uses the engine default.
	NarrateTimeout time.Duration
	// BaseHP is the pre-modifier hit point base for new characters.
	BaseHP int
	Logger *zap.Logger
	In     io.Reader
	Out    io.Writer
}

// Session owns one player's run of the game from creation to quit or death.
// It implements the server Service interface so the lifecycle can manage it.
type Session struct {
	tables         *rules.Tables
	roller         *dice.Roller
	factory        *enemy.Factory
	narrator       combat.Narrator
	narrateTimeout time.Duration
	baseHP         int
	logger         *zap.Logger

	in   *bufio.Reader
	out  io.Writer
	char *character.Character
	quit atomic.Bool
}

// New creates a Session from opts.
//
// Precondition: Tables, Roller, Factory, In, and Out must be non-nil.
func New(opts Options) (*Session, error) {
	if opts.Tables == nil {
		return nil, errors.New("session: tables must not be nil")
	}
	if opts.Roller == nil {
		return nil, errors.New("session: roller must not be nil")
	}
	if opts.Factory == nil {
		return nil, errors.New("session: factory must not be nil")
	}
	if opts.In == nil || opts.Out == nil {
		return nil, errors.New("session: in and out must not be nil")
	}
	if opts.BaseHP < 1 {
		opts.BaseHP = character.DefaultBaseHP
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Session{
		tables:         opts.Tables,
		roller:         opts.Roller,
		factory:        opts.Factory,
		narrator:       opts.Narrator,
		narrateTimeout: opts.NarrateTimeout,
		baseHP:         opts.BaseHP,
		logger:         opts.Logger,
		in:             bufio.NewReader(opts.In),
		out:            opts.Out,
	}, nil
}

// Start runs the session until quit, death, or EOF.
func (s *Session) Start() error {
	return s.Run(context.Background())
}

// Stop requests the loop to exit at the next prompt.
func (s *Session) Stop() {
	s.quit.Store(true)
}

// Character returns the session's character, nil before creation completes.
func (s *Session) Character() *character.Character { return s.char }

// Run drives the whole session. EOF on input is a clean quit, never an error.
func (s *Session) Run(ctx context.Context) error {
	s.writeLine("Welcome, adventurer.")

	char, err := s.createCharacter()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.writeLine("Farewell.")
			return nil
		}
		return err
	}
	s.char = char
	s.logger.Info("character created",
		zap.String("name", char.Name),
		zap.String("race", char.Race.ID),
		zap.Int("max_hp", char.MaxHP),
	)

	for !s.quit.Load() {
		s.writeLine("")
		s.writeLine("What would you like to do?")
		s.writeLine("  1. Fight a monster")
		s.writeLine("  2. View character")
		s.writeLine("  3. Change weapon")
		s.writeLine("  4. Rest")
		s.writeLine("  5. Quit")

		line, err := s.prompt("> ")
		if err != nil {
			s.writeLine("Farewell.")
			return nil
		}

		switch strings.ToLower(line) {
		case "1", "fight":
			if err := s.runEncounter(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					s.writeLine("Farewell.")
					return nil
				}
				return err
			}
			if !s.char.IsAlive() {
				s.writeLine("")
				s.writeLine(fmt.Sprintf("%s has fallen. The adventure ends here.", s.char.Name))
				return nil
			}
		case "2", "view", "view character":
			s.write(FormatCharacter(s.char))
		case "3", "weapon", "change weapon":
			if err := s.changeWeapon(); err != nil {
				s.writeLine("Farewell.")
				return nil
			}
		case "4", "rest":
			s.char.Rest()
			cur, max := s.char.HP()
			s.writeLine(fmt.Sprintf("You rest and recover. HP %d/%d, all spell slots restored.", cur, max))
		case "5", "quit", "exit", "q":
			s.writeLine("Farewell.")
			return nil
		default:
			s.writeLine("Invalid selection.")
		}
	}

	s.writeLine("Farewell.")
	return nil
}

// changeWeapon shows the weapon table and equips the chosen entry.
func (s *Session) changeWeapon() error {
	weapons := s.tables.Weapons()
	for {
		s.writeLine("Choose a weapon (or 'cancel'):")
		for i, w := range weapons {
			s.writeLine(fmt.Sprintf("  %d. %s (%s %s)", i+1, w.Name, w.DamageDice, w.DamageType))
		}
		line, err := s.prompt(fmt.Sprintf("Select [1-%d]: ", len(weapons)))
		if err != nil {
			return err
		}
		if strings.ToLower(line) == "cancel" {
			return nil
		}
		choice := 0
		if _, err := fmt.Sscanf(line, "%d", &choice); err != nil || choice < 1 || choice > len(weapons) {
			s.writeLine("Invalid selection.")
			continue
		}
		w := weapons[choice-1]
		if err := s.char.EquipWeapon(w); err != nil {
			return err
		}
		s.writeLine(fmt.Sprintf("You equip the %s.", w.Name))
		return nil
	}
}

// prompt writes the prompt and reads one trimmed line. io.EOF means the
// player closed the input stream.
func (s *Session) prompt(p string) (string, error) {
	s.write(p)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			// A final unterminated line still counts as input.
			return strings.TrimSpace(line), nil
		}
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) write(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Session) writeLine(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}
