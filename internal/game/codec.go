package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is wrapped by every card or arrow text that fails to decode.
var ErrDecode = errors.New("decode card")

// ParseCard decodes the 4-character card code "<power><class><phys><mag>",
// e.g. "1M23". Stats are single hex digits and the class letter is one of
// P, M, X or A in either case. The returned card has no arrows.
func ParseCard(text string) (Card, error) {
	chars := []rune(text)
	if len(chars) != 4 {
		return Card{}, fmt.Errorf("%w: %q: want 4 characters, got %d", ErrDecode, text, len(chars))
	}
	power, err := parseHexDigit(chars[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: power: %v", ErrDecode, text, err)
	}
	class, err := parseClass(chars[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrDecode, text, err)
	}
	physDef, err := parseHexDigit(chars[2])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: physical defense: %v", ErrDecode, text, err)
	}
	magDef, err := parseHexDigit(chars[3])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: magical defense: %v", ErrDecode, text, err)
	}
	return Card{
		Power:           power,
		Class:           class,
		PhysicalDefense: physDef,
		MagicalDefense:  magDef,
	}, nil
}

// ParseCardWithArrows decodes a card code and an arrow list together.
func ParseCardWithArrows(code, arrows string) (Card, error) {
	c, err := ParseCard(code)
	if err != nil {
		return Card{}, err
	}
	a, err := ParseArrows(arrows)
	if err != nil {
		return Card{}, err
	}
	return c.WithArrows(a), nil
}

func parseHexDigit(r rune) (uint8, error) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), nil
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, nil
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", r)
	}
}

func parseClass(r rune) (Class, error) {
	switch r {
	case 'p', 'P':
		return ClassPhysical, nil
	case 'm', 'M':
		return ClassMagical, nil
	case 'x', 'X':
		return ClassFlexible, nil
	case 'a', 'A':
		return ClassAssault, nil
	default:
		return 0, fmt.Errorf("unknown class letter %q", r)
	}
}

const hexDigits = "0123456789ABCDEF"

// String encodes the card as its 4-character code. It is the inverse of
// ParseCard for every card with valid stats.
func (c Card) String() string {
	if !c.Valid() {
		return "????"
	}
	return string([]byte{
		hexDigits[c.Power],
		c.Class.Letter(),
		hexDigits[c.PhysicalDefense],
		hexDigits[c.MagicalDefense],
	})
}

// ParseArrows decodes a list of compass abbreviations separated by commas or
// spaces, e.g. "N, NE, sw". An empty string or "-" means no arrows.
func ParseArrows(text string) (Arrows, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var a Arrows
	for _, f := range fields {
		if f == "-" {
			continue
		}
		d, ok := directionByAbbrev[strings.ToUpper(f)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown arrow %q", ErrDecode, f)
		}
		a = a.With(d)
	}
	return a, nil
}

var directionByAbbrev = func() map[string]Direction {
	m := make(map[string]Direction, len(Directions))
	for _, d := range Directions {
		m[d.Abbrev()] = d
	}
	return m
}()
