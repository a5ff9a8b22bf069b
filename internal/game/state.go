package game

import (
	"fmt"
)

// Move places one card from the acting player's hand.
type Move struct {
	Player    Color
	HandIndex int
	Row       int
	Column    int
	Card      Card // informational; the hand is authoritative
}

func (m Move) String() string {
	return fmt.Sprintf("Place %s (%s) at (%d,%d)", m.Card, m.Card.Arrows, m.Row, m.Column)
}

// GameState holds the complete state of a match.
type GameState struct {
	Board      *Board
	Hands      [2][]OwnedCard
	Turn       int // number of placements made so far
	TurnPlayer Color

	// Match result
	Winner int // 0 (Blue), 1 (Red) or -1 (draw / not over)
	Over   bool
	Result string
}

// NewGameState creates a fresh match state on the given board.
func NewGameState(board *Board) *GameState {
	return &GameState{
		Board:  board,
		Winner: -1,
	}
}

// Hand returns the cards the given player still holds.
func (gs *GameState) Hand(player Color) []OwnedCard {
	return gs.Hands[player]
}

// RemoveFromHand removes and returns the card at index i.
func (gs *GameState) RemoveFromHand(player Color, i int) OwnedCard {
	hand := gs.Hands[player]
	card := hand[i]
	gs.Hands[player] = append(hand[:i:i], hand[i+1:]...)
	return card
}

// LegalMoves lists every (card, empty square) pair for player.
func (gs *GameState) LegalMoves(player Color) []Move {
	var moves []Move
	empty := gs.Board.EmptySpaces()
	for i, c := range gs.Hands[player] {
		for _, sq := range empty {
			moves = append(moves, Move{
				Player:    player,
				HandIndex: i,
				Row:       sq.Row,
				Column:    sq.Column,
				Card:      c.Card,
			})
		}
	}
	return moves
}

// CheckOver ends the match once both hands are empty or the board is full.
// Returns true if the match is over.
func (gs *GameState) CheckOver() bool {
	if gs.Over {
		return true
	}
	handsEmpty := len(gs.Hands[Blue]) == 0 && len(gs.Hands[Red]) == 0
	if !handsEmpty && len(gs.Board.EmptySpaces()) > 0 {
		return false
	}

	blue, red := gs.Board.Score()
	gs.Over = true
	switch {
	case blue > red:
		gs.Winner = int(Blue)
		gs.Result = fmt.Sprintf("Blue wins %d-%d", blue, red)
	case red > blue:
		gs.Winner = int(Red)
		gs.Result = fmt.Sprintf("Red wins %d-%d", red, blue)
	default:
		gs.Winner = -1
		gs.Result = fmt.Sprintf("Draw %d-%d", blue, red)
	}
	return true
}
