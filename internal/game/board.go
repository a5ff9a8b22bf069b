package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/tetramaster/internal/log"
)

const (
	BoardSize = 4
	MaxBlocks = 6

	// MaxBattlePasses bounds how many times a placement's battles are
	// resolved again after draws. Once exhausted the placement ends with no
	// further captures.
	MaxBattlePasses = 256
)

// Handle addresses a placed card in a board's arena. Handles stay valid for
// the life of the board.
type Handle int

// NoCard is the handle of an unoccupied space.
const NoCard Handle = -1

type SpaceKind int

const (
	SpaceEmpty SpaceKind = iota
	SpaceBlock
	SpaceCard
)

// Space is one square of the grid. Card is NoCard unless Kind is SpaceCard.
type Space struct {
	Kind SpaceKind
	Card Handle
}

func (s Space) IsBlock() bool { return s.Kind == SpaceBlock }
func (s Space) IsEmpty() bool { return s.Kind == SpaceEmpty }
func (s Space) IsCard() bool  { return s.Kind == SpaceCard }

var emptySpace = Space{Kind: SpaceEmpty, Card: NoCard}

// Square is a 1-indexed board coordinate.
type Square struct {
	Row    int
	Column int
}

func (sq Square) String() string {
	return fmt.Sprintf("(%d,%d)", sq.Row, sq.Column)
}

// Neighbor is one of the eight squares around a placed card.
type Neighbor struct {
	Direction Direction
	OnBoard   bool
	Card      Handle // NoCard unless the square holds a card
}

// Occupied reports whether the neighbor square holds a card.
func (n Neighbor) Occupied() bool {
	return n.OnBoard && n.Card != NoCard
}

// Board is the 4×4 grid. It owns every card placed on it; callers see cards
// through handles, and only the board recolors them.
//
// A Board is not safe for concurrent use.
type Board struct {
	spaces [BoardSize][BoardSize]Space
	cards  []PlacedCard

	// Logger receives placement, battle and capture events. May be nil.
	Logger log.EventLogger
	// Turn is stamped on logged events.
	Turn int
}

// NewBoard returns a board with every space empty.
func NewBoard() *Board {
	b := &Board{}
	for r := range b.spaces {
		for c := range b.spaces[r] {
			b.spaces[r][c] = emptySpace
		}
	}
	return b
}

// GenerateBoard fills the board row by row. Each space has a 1-in-4 chance of
// becoming a block until MaxBlocks blocks exist.
func GenerateBoard(src Source) *Board {
	b := NewBoard()
	blocks := 0
	for r := 1; r <= BoardSize; r++ {
		for c := 1; c <= BoardSize; c++ {
			if blocks < MaxBlocks && src.Intn(4) == 0 {
				b.SetBlock(r, c)
				blocks++
			}
		}
	}
	return b
}

// checkSquare panics on coordinates outside 1..BoardSize. Callers validate
// coordinates before reaching the board.
func checkSquare(row, col int) {
	if row < 1 || row > BoardSize || col < 1 || col > BoardSize {
		panic(fmt.Sprintf("board square (%d,%d) out of range", row, col))
	}
}

// OnBoard reports whether (row, col) lies on the grid.
func OnBoard(row, col int) bool {
	return row >= 1 && row <= BoardSize && col >= 1 && col <= BoardSize
}

// Space returns the space at (row, col).
func (b *Board) Space(row, col int) Space {
	checkSquare(row, col)
	return b.spaces[row-1][col-1]
}

// SetBlock makes (row, col) unplayable, discarding whatever was there.
func (b *Board) SetBlock(row, col int) {
	checkSquare(row, col)
	b.spaces[row-1][col-1] = Space{Kind: SpaceBlock, Card: NoCard}
}

// Blocks returns the number of block spaces.
func (b *Board) Blocks() int {
	n := 0
	for r := range b.spaces {
		for _, s := range b.spaces[r] {
			if s.IsBlock() {
				n++
			}
		}
	}
	return n
}

// AddCard places card at (row, col) and returns its handle. The space is
// overwritten unconditionally; callers must check it is empty first.
func (b *Board) AddCard(row, col int, card OwnedCard) Handle {
	checkSquare(row, col)
	h := Handle(len(b.cards))
	b.cards = append(b.cards, PlacedCard{OwnedCard: card, Row: row, Column: col})
	b.spaces[row-1][col-1] = Space{Kind: SpaceCard, Card: h}
	return h
}

// RemoveCard empties (row, col) and returns the card that was there, if any.
// The removed card's handle must not be used again.
func (b *Board) RemoveCard(row, col int) (OwnedCard, bool) {
	checkSquare(row, col)
	s := b.spaces[row-1][col-1]
	b.spaces[row-1][col-1] = emptySpace
	if !s.IsCard() {
		return OwnedCard{}, false
	}
	return b.cards[s.Card].OwnedCard, true
}

// Card returns a copy of the placed card behind h.
func (b *Board) Card(h Handle) PlacedCard {
	return b.cards[h]
}

// CardAt returns the handle of the card at (row, col).
func (b *Board) CardAt(row, col int) (Handle, bool) {
	s := b.Space(row, col)
	if !s.IsCard() {
		return NoCard, false
	}
	return s.Card, true
}

// Cards returns the handles of every card on the board in row-major order.
func (b *Board) Cards() []Handle {
	var hs []Handle
	for r := range b.spaces {
		for _, s := range b.spaces[r] {
			if s.IsCard() {
				hs = append(hs, s.Card)
			}
		}
	}
	return hs
}

// EmptySpaces returns every playable vacant square in row-major order.
func (b *Board) EmptySpaces() []Square {
	var sqs []Square
	for r := range b.spaces {
		for c, s := range b.spaces[r] {
			if s.IsEmpty() {
				sqs = append(sqs, Square{Row: r + 1, Column: c + 1})
			}
		}
	}
	return sqs
}

// Score counts the cards each color controls.
func (b *Board) Score() (blue, red int) {
	for _, h := range b.Cards() {
		if b.cards[h].Color == Blue {
			blue++
		} else {
			red++
		}
	}
	return blue, red
}

// Neighbors lists the eight squares around the card at (row, col) in the
// order West, East, North, Northwest, Northeast, South, Southwest,
// Southeast. It returns nil if (row, col) holds no card.
func (b *Board) Neighbors(row, col int) []Neighbor {
	if !b.Space(row, col).IsCard() {
		return nil
	}
	ns := make([]Neighbor, 0, len(Directions))
	for _, d := range Directions {
		dr, dc := d.Offset()
		r, c := row+dr, col+dc
		n := Neighbor{Direction: d, Card: NoCard}
		if OnBoard(r, c) {
			n.OnBoard = true
			if s := b.spaces[r-1][c-1]; s.IsCard() {
				n.Card = s.Card
			}
		}
		ns = append(ns, n)
	}
	return ns
}

// relation is an opposing neighbor and what the attacker may do to it.
type relation struct {
	card     Handle
	relation ArrowRelation
}

// relations computes the relation from h toward every neighbor controlled by
// the other color, in neighbor order.
func (b *Board) relations(h Handle) []relation {
	self := b.cards[h]
	var rels []relation
	for _, n := range b.Neighbors(self.Row, self.Column) {
		if !n.Occupied() {
			continue
		}
		other := b.cards[n.Card]
		if other.Color == self.Color {
			continue
		}
		rels = append(rels, relation{
			card:     n.Card,
			relation: self.Arrows.RelationFrom(n.Direction, other.Arrows),
		})
	}
	return rels
}

// RunBattles resolves the aggression of the card just placed at (row, col).
//
// Battles are fought in neighbor order. A won battle flips the defender and
// runs its combo. A lost battle flips the attacker, runs the defender's combo
// from the attacker's square and ends the turn. A draw starts the whole
// sequence over from the current board. If no battle was lost, every
// opposing neighbor the card can take without a battle is flipped.
func (b *Board) RunBattles(src Source, row, col int) {
	h, ok := b.CardAt(row, col)
	if !ok {
		return
	}
	for pass := 1; pass <= MaxBattlePasses; pass++ {
		if !b.battlePass(src, h) {
			return
		}
		b.log(log.NewBattleDrawEvent(b.Turn, b.cards[h].Color.String(), b.cards[h].Card.String(), pass))
	}
}

// battlePass runs one pass of battles for h. The relations are fixed when the
// pass starts, so a defender flipped by an earlier combo is still fought. It
// returns true if a draw interrupted the pass.
func (b *Board) battlePass(src Source, h Handle) (drew bool) {
	rels := b.relations(h)
	for _, rel := range rels {
		if rel.relation != RelationBattle {
			continue
		}
		attacker := b.cards[h]
		defender := b.cards[rel.card]

		result := Battle(src, attacker.Card, defender.Card)
		b.log(log.NewBattleEvent(b.Turn, attacker.Color.String(), attacker.Card.String(), attacker.Row, attacker.Column,
			defender.Card.String(), defender.Row, defender.Column, result.String()))

		switch result {
		case BattleAttacker:
			b.recolor(rel.card, attacker.Color, log.NewCaptureEvent)
			b.doCombo(h, rel.card)
		case BattleDefender:
			b.recolor(h, defender.Color, log.NewCaptureEvent)
			b.doCombo(rel.card, h)
			return false
		case BattleDraw:
			return true
		}
	}

	color := b.cards[h].Color
	for _, rel := range rels {
		if rel.relation == RelationTake && b.cards[rel.card].Color != color {
			b.recolor(rel.card, color, log.NewTakeEvent)
		}
	}
	return false
}

// doCombo flips every neighbor of loser that loser's arrows reach and that
// winner does not already control. Combos are one ply deep.
func (b *Board) doCombo(winner, loser Handle) {
	color := b.cards[winner].Color
	from := b.cards[loser]
	var flips []Handle
	for _, n := range b.Neighbors(from.Row, from.Column) {
		if !n.Occupied() {
			continue
		}
		other := b.cards[n.Card]
		if other.Color == color {
			continue
		}
		if from.Arrows.RelationFrom(n.Direction, other.Arrows) == RelationIgnore {
			continue
		}
		flips = append(flips, n.Card)
	}
	for _, f := range flips {
		b.recolor(f, color, log.NewComboEvent)
	}
}

type recolorEvent func(turn int, player, card string, row, col int) log.GameEvent

func (b *Board) recolor(h Handle, color Color, event recolorEvent) {
	pc := &b.cards[h]
	pc.Color = color
	b.log(event(b.Turn, color.String(), pc.Card.String(), pc.Row, pc.Column))
}

func (b *Board) log(event log.GameEvent) {
	if b.Logger != nil {
		b.Logger.Log(event)
	}
}

// String renders the grid one row per line: "XXXX" for blocks, blanks for
// empty spaces and the card code plus b/r for cards.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.spaces {
		for c, s := range b.spaces[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch s.Kind {
			case SpaceBlock:
				sb.WriteString("[XXXX  ]")
			case SpaceCard:
				pc := b.cards[s.Card]
				fmt.Fprintf(&sb, "[%s %c]", pc.Card, colorMark(pc.Color))
			default:
				sb.WriteString("[      ]")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func colorMark(c Color) byte {
	if c == Blue {
		return 'b'
	}
	return 'r'
}
