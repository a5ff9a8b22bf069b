package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/tetramaster/internal/game"
	"github.com/peterkuimelis/tetramaster/internal/log"
)

// StreamController implements game.PlayerController over a stream
// connection.
type StreamController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player game.Color
	mu     sync.Mutex
}

// NewStreamController creates a new controller for the given connection.
func NewStreamController(conn net.Conn, player game.Color) *StreamController {
	return &StreamController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// Player returns the color this controller plays.
func (sc *StreamController) Player() game.Color {
	return sc.player
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state *game.GameState, player game.Color) *StateView {
	board := state.Board
	blue, red := board.Score()
	sv := &StateView{
		You:           player.String(),
		OpponentCards: len(state.Hand(player.Opponent())),
		Score:         map[string]int{game.Blue.String(): blue, game.Red.String(): red},
		Turn:          state.Turn,
		IsYourTurn:    !state.Over && state.TurnPlayer == player,
	}

	for r := 1; r <= game.BoardSize; r++ {
		for c := 1; c <= game.BoardSize; c++ {
			sv.Board[r-1][c-1] = CellViewAt(board, r, c)
		}
	}

	sv.Hand = []CardView{}
	for i, oc := range state.Hand(player) {
		sv.Hand = append(sv.Hand, CardView{Index: i, Code: oc.Card.String(), Arrows: oc.Arrows.String()})
	}
	return sv
}

// CellViewAt creates a CellView for one board square.
func CellViewAt(board *game.Board, row, col int) CellView {
	s := board.Space(row, col)
	switch {
	case s.IsBlock():
		return CellView{Block: true}
	case s.IsCard():
		pc := board.Card(s.Card)
		return CellView{Card: &CardView{
			Index:  int(s.Card),
			Code:   pc.Card.String(),
			Arrows: pc.Arrows.String(),
			Color:  pc.Color.String(),
		}}
	default:
		return CellView{}
	}
}

// EventViewOf converts a logged event for the wire.
func EventViewOf(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Row:     event.Row,
		Column:  event.Column,
		Details: event.Details,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (sc *StreamController) send(msg ServerMessage) error {
	return sc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (sc *StreamController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := sc.dec.Decode(&msg)
	return msg, err
}

// ChooseMove implements game.PlayerController. A move that matches none of
// the legal moves is answered with an "error" message and asked again.
func (sc *StreamController) ChooseMove(ctx context.Context, state *game.GameState, moves []game.Move) (game.Move, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		msg := ServerMessage{
			Type:  "choose_move",
			State: BuildStateView(state, sc.player),
		}
		if err := sc.send(msg); err != nil {
			return game.Move{}, fmt.Errorf("send choose_move: %w", err)
		}

		resp, err := sc.recv()
		if err != nil {
			return game.Move{}, fmt.Errorf("recv move: %w", err)
		}
		if resp.Type == "move" {
			for _, m := range moves {
				if m.HandIndex == resp.HandIndex && m.Row == resp.Row && m.Column == resp.Column {
					return m, nil
				}
			}
		}

		reject := ServerMessage{
			Type:  "error",
			Error: fmt.Sprintf("illegal move: card %d at (%d,%d)", resp.HandIndex+1, resp.Row, resp.Column),
		}
		if err := sc.send(reject); err != nil {
			return game.Move{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// SendGameOver sends a game_over message with the final state to the client.
func (sc *StreamController) SendGameOver(state *game.GameState) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ServerMessage{
		Type:   "game_over",
		State:  BuildStateView(state, sc.player),
		Winner: state.Winner,
		Result: state.Result,
	})
}

// Notify implements game.PlayerController.
func (sc *StreamController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.send(ServerMessage{Type: "notify", Event: EventViewOf(event)})
}
