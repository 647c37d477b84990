// Package narrator generates flavor text for combat events with the
// Anthropic Messages API. Narration is strictly a presentation concern; the
// combat engine treats any failure here as recoverable and substitutes its
// deterministic fallback text.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/combat"
)

// ErrNarrationUnavailable wraps every failure to obtain narration, whether
// transport, API, or an empty response. Callers fall back on it.
var ErrNarrationUnavailable = errors.New("narrator: narration unavailable")

// systemPrompt frames the model as a terse dungeon master. One or two
// sentences keeps round output readable and token cost low.
const systemPrompt = `You are a dungeon master narrating a turn-based fantasy battle. ` +
	`Describe the event you are given in one or two vivid sentences of second-person prose. ` +
	`Never change any numbers or outcomes, never add events that did not happen, and never address the player out of character.`

const defaultMaxTokens = 256

// Service narrates combat events via the Anthropic Messages API.
type Service struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    *zap.Logger
}

// NewService creates a narrator backed by the given API key and model name.
//
// Precondition: apiKey and model must be non-empty; logger may be nil.
func NewService(apiKey, model string, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("narrator: api key must not be empty")
	}
	if model == "" {
		return nil, errors.New("narrator: model must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     anthropic.Model(model),
		maxTokens: defaultMaxTokens,
		logger:    logger,
	}, nil
}

var _ combat.Narrator = (*Service)(nil)

// Narrate asks the model to describe ev. The returned text is flavor only;
// the caller keeps its deterministic fallback authoritative.
//
// Postcondition: Returns non-empty text, or an error wrapping
// ErrNarrationUnavailable. Combat state is never read or written here beyond
// the event's own fields.
func (s *Service) Narrate(ctx context.Context, ev combat.Event) (string, error) {
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(EventPrompt(ev))),
		},
	})
	if err != nil {
		s.logger.Warn("narration request failed",
			zap.String("event_id", ev.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrNarrationUnavailable, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrNarrationUnavailable)
	}
	return text, nil
}

// EventPrompt renders the factual summary of an event handed to the model.
// It states outcome and numbers explicitly so the model has nothing to invent.
func EventPrompt(ev combat.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d. ", ev.Round)
	sb.WriteString(combat.FallbackNarrative(ev))
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (using %s)", ev.Detail)
	}
	sb.WriteString(" Narrate this moment.")
	return sb.String()
}

// Disabled is the narrator used when no API key is configured. Every call
// reports ErrNarrationUnavailable so the engine uses its fallback text.
type Disabled struct{}

var _ combat.Narrator = Disabled{}

// Narrate always fails with ErrNarrationUnavailable.
func (Disabled) Narrate(context.Context, combat.Event) (string, error) {
	return "", ErrNarrationUnavailable
}
