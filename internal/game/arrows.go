package game

import "strings"

// Direction points from a card toward one of its eight neighbors.
//
// The numeric order is the order Board.Neighbors enumerates neighbors in.
type Direction int

const (
	West Direction = iota
	East
	North
	Northwest
	Northeast
	South
	Southwest
	Southeast
)

// Directions lists every direction in enumeration order.
var Directions = [8]Direction{West, East, North, Northwest, Northeast, South, Southwest, Southeast}

func (d Direction) String() string {
	switch d {
	case West:
		return "West"
	case East:
		return "East"
	case North:
		return "North"
	case Northwest:
		return "Northwest"
	case Northeast:
		return "Northeast"
	case South:
		return "South"
	case Southwest:
		return "Southwest"
	case Southeast:
		return "Southeast"
	default:
		return "Unknown"
	}
}

// Abbrev returns the compass abbreviation ("N", "SW", ...).
func (d Direction) Abbrev() string {
	switch d {
	case West:
		return "W"
	case East:
		return "E"
	case North:
		return "N"
	case Northwest:
		return "NW"
	case Northeast:
		return "NE"
	case South:
		return "S"
	case Southwest:
		return "SW"
	case Southeast:
		return "SE"
	default:
		return "?"
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case West:
		return East
	case East:
		return West
	case North:
		return South
	case South:
		return North
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	case Northeast:
		return Southwest
	default:
		return Northeast
	}
}

// Offset returns the row and column deltas toward the neighbor.
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case West:
		return 0, -1
	case East:
		return 0, 1
	case North:
		return -1, 0
	case Northwest:
		return -1, -1
	case Northeast:
		return -1, 1
	case South:
		return 1, 0
	case Southwest:
		return 1, -1
	default:
		return 1, 1
	}
}

// bit is the position of the direction's flag in an Arrows mask, clockwise
// from North in the high bit.
func (d Direction) bit() uint {
	switch d {
	case North:
		return 7
	case Northeast:
		return 6
	case East:
		return 5
	case Southeast:
		return 4
	case South:
		return 3
	case Southwest:
		return 2
	case West:
		return 1
	default:
		return 0
	}
}

// Arrows is an 8-bit mask with one flag per compass direction.
type Arrows uint8

// ArrowsOf builds a mask from a list of directions.
func ArrowsOf(dirs ...Direction) Arrows {
	var a Arrows
	for _, d := range dirs {
		a = a.With(d)
	}
	return a
}

// Has reports whether the card projects an arrow toward d.
func (a Arrows) Has(d Direction) bool {
	return a&(1<<d.bit()) != 0
}

func (a Arrows) With(d Direction) Arrows {
	return a | 1<<d.bit()
}

func (a Arrows) Without(d Direction) Arrows {
	return a &^ (1 << d.bit())
}

// Count returns the number of arrows set.
func (a Arrows) Count() int {
	n := 0
	for _, d := range Directions {
		if a.Has(d) {
			n++
		}
	}
	return n
}

// RelationFrom decides what a card with arrows a can do to the neighbor lying
// in direction d whose arrows are other.
func (a Arrows) RelationFrom(d Direction, other Arrows) ArrowRelation {
	attack := a.Has(d)
	defend := other.Has(d.Opposite())
	switch {
	case attack && defend:
		return RelationBattle
	case attack:
		return RelationTake
	default:
		return RelationIgnore
	}
}

// compassOrder is the clockwise order arrows are written in.
var compassOrder = [8]Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

// String renders the arrows clockwise from North, e.g. "N,E,SW".
// An empty mask renders as "-".
func (a Arrows) String() string {
	var parts []string
	for _, d := range compassOrder {
		if a.Has(d) {
			parts = append(parts, d.Abbrev())
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
