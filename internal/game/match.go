package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/log"
)

// ErrIllegalMove is returned by Match.Place for moves the rules do not allow.
var ErrIllegalMove = errors.New("illegal move")

// PlayerController is the interface that the random AI, stream (terminal or
// browser) players and MCP players implement.
type PlayerController interface {
	// ChooseMove presents the legal moves and waits for the player to pick one.
	ChooseMove(ctx context.Context, state *GameState, moves []Move) (Move, error)

	// Notify sends a match event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// FirstPlayer selects who places the first card.
type FirstPlayer int

const (
	FirstRandom FirstPlayer = iota
	FirstBlue
	FirstRed
)

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Board  *Board    // nil to generate one
	Hands  [2][]Card // Blue's and Red's hands; nil to deal HandSize random cards
	Logger log.EventLogger
	Source Source // randomness for dealing, the board and every battle
	Seed   int64  // RNG seed when Source is nil (0 for random)
	First  FirstPlayer
}

// Match orchestrates a whole game between Blue and Red.
type Match struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	src         Source
	ctx         context.Context
}

// NewMatch creates a new match from the given config and player controllers.
func NewMatch(cfg MatchConfig, blue, red PlayerController) *Match {
	src := cfg.Source
	if src == nil {
		src = config.MustSource(cfg.Seed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	board := cfg.Board
	if board == nil {
		board = GenerateBoard(src)
	}

	gs := NewGameState(board)
	m := &Match{
		State:       gs,
		Controllers: [2]PlayerController{blue, red},
		Logger:      logger,
		src:         src,
		ctx:         context.Background(),
	}
	board.Logger = matchLogger{m}

	for _, player := range []Color{Blue, Red} {
		cards := cfg.Hands[player]
		if cards == nil {
			cards = RandomHand(src, HandSize)
		}
		codes := make([]string, 0, len(cards))
		for _, c := range cards {
			gs.Hands[player] = append(gs.Hands[player], NewOwnedCard(c, player))
			codes = append(codes, c.String())
		}
		m.log(log.NewDealEvent(player.String(), codes))
	}

	switch cfg.First {
	case FirstBlue:
		gs.TurnPlayer = Blue
	case FirstRed:
		gs.TurnPlayer = Red
	default:
		gs.TurnPlayer = Color(src.Intn(2))
	}
	if len(gs.Hands[gs.TurnPlayer]) == 0 {
		gs.TurnPlayer = gs.TurnPlayer.Opponent()
	}
	m.finishIfOver()

	return m
}

// Source returns the randomness the match draws from.
func (m *Match) Source() Source {
	return m.src
}

// Run executes the match loop. Returns the winner (0 Blue, 1 Red, or -1 for
// a draw).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	gs := m.State

	for !gs.Over {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		tp := gs.TurnPlayer
		moves := gs.LegalMoves(tp)
		if len(moves) == 0 {
			return gs.Winner, fmt.Errorf("%s has no legal move", tp)
		}

		chosen, err := m.Controllers[tp].ChooseMove(ctx, gs, moves)
		if err != nil {
			return gs.Winner, err
		}
		if err := m.Place(chosen); err != nil {
			return gs.Winner, err
		}
	}

	return gs.Winner, nil
}

// Place plays move for the turn player: the card leaves the hand, is placed
// and its battles are resolved. The turn then passes to the opponent, unless
// the opponent has no cards left.
func (m *Match) Place(move Move) error {
	gs := m.State
	tp := gs.TurnPlayer
	switch {
	case gs.Over:
		return fmt.Errorf("%w: match is over", ErrIllegalMove)
	case move.Player != tp:
		return fmt.Errorf("%w: it is %s's turn", ErrIllegalMove, tp)
	case move.HandIndex < 0 || move.HandIndex >= len(gs.Hands[tp]):
		return fmt.Errorf("%w: no card %d in %s's hand", ErrIllegalMove, move.HandIndex, tp)
	case !OnBoard(move.Row, move.Column):
		return fmt.Errorf("%w: square (%d,%d) is off the board", ErrIllegalMove, move.Row, move.Column)
	case !gs.Board.Space(move.Row, move.Column).IsEmpty():
		return fmt.Errorf("%w: square (%d,%d) is not empty", ErrIllegalMove, move.Row, move.Column)
	}

	gs.Turn++
	gs.Board.Turn = gs.Turn
	m.log(log.NewTurnEvent(gs.Turn, tp.String()))

	card := gs.RemoveFromHand(tp, move.HandIndex)
	gs.Board.AddCard(move.Row, move.Column, card)
	m.log(log.NewPlaceEvent(gs.Turn, tp.String(), card.Card.String(), move.Row, move.Column))
	gs.Board.RunBattles(m.src, move.Row, move.Column)

	next := tp.Opponent()
	if len(gs.Hands[next]) > 0 {
		gs.TurnPlayer = next
	}
	m.finishIfOver()
	return nil
}

func (m *Match) finishIfOver() {
	gs := m.State
	if gs.Over || !gs.CheckOver() {
		return
	}
	blue, red := gs.Board.Score()
	if gs.Winner < 0 {
		m.log(log.NewTieEvent(gs.Turn, blue, red))
		return
	}
	m.log(log.NewWinEvent(gs.Turn, Color(gs.Winner).String(), blue, red))
}

// log records an event and forwards it to both controllers.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		if m.Controllers[i] != nil {
			_ = m.Controllers[i].Notify(m.ctx, event)
		}
	}
}

// matchLogger routes board events through the match so controllers see them.
type matchLogger struct {
	m *Match
}

func (l matchLogger) Log(event log.GameEvent) { l.m.log(event) }
func (l matchLogger) Events() []log.GameEvent { return l.m.Logger.Events() }
