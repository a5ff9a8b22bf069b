package game

import (
	"errors"
	"fmt"
)

// MaxStat is the highest value a 4-bit card stat can hold.
const MaxStat = 0x0F

// ErrInvalidStat is returned when a stat does not fit in 4 bits.
var ErrInvalidStat = errors.New("card stat out of range")

// Card is the static description of a card. Cards are values; copying one
// never shares state.
type Card struct {
	Power           uint8
	Class           Class
	PhysicalDefense uint8
	MagicalDefense  uint8
	Arrows          Arrows
}

// NewCard builds a card with no arrows, rejecting stats above MaxStat.
func NewCard(power uint8, class Class, physDef, magDef uint8) (Card, error) {
	for _, v := range []uint8{power, physDef, magDef} {
		if v > MaxStat {
			return Card{}, fmt.Errorf("%w: %d", ErrInvalidStat, v)
		}
	}
	if class < ClassPhysical || class > ClassAssault {
		return Card{}, fmt.Errorf("unknown class %d", class)
	}
	return Card{
		Power:           power,
		Class:           class,
		PhysicalDefense: physDef,
		MagicalDefense:  magDef,
	}, nil
}

// WithArrows returns a copy of the card carrying the given arrows.
func (c Card) WithArrows(a Arrows) Card {
	c.Arrows = a
	return c
}

// Valid reports whether every stat fits in 4 bits.
func (c Card) Valid() bool {
	return c.Power <= MaxStat && c.PhysicalDefense <= MaxStat && c.MagicalDefense <= MaxStat
}

// OffenseLevel returns the level this card attacks with.
func (c Card) OffenseLevel() uint8 {
	if c.Class == ClassAssault {
		return max(c.Power, c.PhysicalDefense, c.MagicalDefense)
	}
	return c.Power
}

// DefenseLevel returns the level of defender that c has to beat. The
// attacker's class picks the stat: physical attacks hit physical defense,
// magical attacks hit magical defense, flexible attacks hit the weaker
// defense and assault attacks hit the weakest stat overall.
func (c Card) DefenseLevel(defender Card) uint8 {
	switch c.Class {
	case ClassMagical:
		return defender.MagicalDefense
	case ClassFlexible:
		return min(defender.PhysicalDefense, defender.MagicalDefense)
	case ClassAssault:
		return min(defender.PhysicalDefense, defender.MagicalDefense, defender.Power)
	default:
		return defender.PhysicalDefense
	}
}

// OwnedCard is a card plus the color of the player controlling it.
type OwnedCard struct {
	Card
	Color Color
}

func NewOwnedCard(card Card, color Color) OwnedCard {
	return OwnedCard{Card: card, Color: color}
}

// PlacedCard is an owned card sitting on the board. Row and Column never
// change once the card is placed.
type PlacedCard struct {
	OwnedCard
	Row    int
	Column int
}

func (pc PlacedCard) String() string {
	return fmt.Sprintf("%s (%s) at (%d,%d)", pc.Card, pc.Color, pc.Row, pc.Column)
}
