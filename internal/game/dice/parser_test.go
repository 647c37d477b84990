package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

func TestParse_ValidExpressions(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		count int
		sides int
		mod   int
	}{
		{"bare die", "d20", 1, 20, 0},
		{"count and sides", "2d6", 2, 6, 0},
		{"positive modifier", "2d6+3", 2, 6, 3},
		{"negative modifier", "4d8-2", 4, 8, -2},
		{"single die with modifier", "1d4+1", 1, 4, 1},
		{"uppercase D", "1D12", 1, 12, 0},
		{"surrounding whitespace", " 3d6 ", 3, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := dice.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.count, e.Count)
			assert.Equal(t, tt.sides, e.Sides)
			assert.Equal(t, tt.mod, e.Modifier)
		})
	}
}

func TestParse_InvalidExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"no d", "206"},
		{"zero count", "0d6"},
		{"negative count", "-1d6"},
		{"zero sides", "2d0"},
		{"one side", "2d1"},
		{"garbage", "banana"},
		{"missing sides", "2d"},
		{"garbage modifier", "2d6+x"},
		{"garbage count", "xd6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dice.Parse(tt.expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, dice.ErrInvalidNotation)
		})
	}
}

func TestParse_PreservesRaw(t *testing.T) {
	e, err := dice.Parse("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, "2d6+3", e.Raw)
}
