package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count >= 1, Sides >= 2 after successful Parse.
type Expression struct {
	Raw      string // original input string
	Count    int    // number of dice
	Sides    int    // faces per die
	Modifier int    // flat modifier (may be negative)
}

// MinTotal returns the smallest total Roll can produce: Count + Modifier.
func (e Expression) MinTotal() int { return e.Count + e.Modifier }

// MaxTotal returns the largest total Roll can produce: Count*Sides + Modifier.
func (e Expression) MaxTotal() int { return e.Count*e.Sides + e.Modifier }

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression, or an error wrapping
// ErrInvalidNotation describing the violation.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", ErrInvalidNotation)
	}

	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("%w: missing 'd' in %q", ErrInvalidNotation, raw)
	}

	// Count is the part before 'd'; defaults to 1 when omitted.
	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: die count in %q: %v", ErrInvalidNotation, raw, err)
		}
		count = n
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("%w: die count in %q must be >= 1", ErrInvalidNotation, raw)
	}

	// Split sides and optional signed modifier. The first '+' or '-' after
	// position 0 begins the modifier.
	rest := s[dIdx+1:]
	modOffset := -1
	for i := 1; i < len(rest); i++ {
		if rest[i] == '+' || rest[i] == '-' {
			modOffset = i
			break
		}
	}

	sidesStr, modStr := rest, ""
	if modOffset >= 0 {
		sidesStr = rest[:modOffset]
		modStr = rest[modOffset:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: die sides in %q: %v", ErrInvalidNotation, raw, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("%w: die sides in %q must be >= 2", ErrInvalidNotation, raw)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: modifier in %q: %v", ErrInvalidNotation, raw, err)
		}
	}

	return Expression{
		Raw:      raw,
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}, nil
}
