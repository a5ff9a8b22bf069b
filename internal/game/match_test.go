package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/peterkuimelis/tetramaster/internal/log"
)

func TestRandomMatchCompletes(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		cfg := MatchConfig{Seed: seed, Logger: log.Discard}
		blue := NewRandomController(rand.New(rand.NewSource(seed * 3)))
		red := NewRandomController(rand.New(rand.NewSource(seed * 5)))
		m := NewMatch(cfg, blue, red)

		winner, err := m.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		gs := m.State
		if !gs.Over {
			t.Fatalf("seed %d: match not over", seed)
		}
		if len(gs.Hands[Blue]) != 0 || len(gs.Hands[Red]) != 0 {
			t.Errorf("seed %d: cards left in hand", seed)
		}
		b, r := gs.Board.Score()
		if b+r != 2*HandSize {
			t.Errorf("seed %d: %d cards on board, want %d", seed, b+r, 2*HandSize)
		}
		switch {
		case b > r && winner != int(Blue),
			r > b && winner != int(Red),
			b == r && winner != -1:
			t.Errorf("seed %d: winner %d with score %d-%d", seed, winner, b, r)
		}
	}
}

func TestSeededMatchesAreReproducible(t *testing.T) {
	play := func() string {
		logger := log.NewMemoryLogger()
		cfg := MatchConfig{Seed: 42, Logger: logger}
		m := NewMatch(cfg,
			NewRandomController(rand.New(rand.NewSource(1))),
			NewRandomController(rand.New(rand.NewSource(2))))
		if _, err := m.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		return log.FormatAll(logger.Events())
	}
	if a, b := play(), play(); a != b {
		t.Errorf("same seed produced different matches:\n%s\n---\n%s", a, b)
	}
}

func TestScriptedMatchWithoutArrowsIsADraw(t *testing.T) {
	var hands [2][]Card
	for range HandSize {
		hands[Blue] = append(hands[Blue], zeroCard(t))
		hands[Red] = append(hands[Red], zeroCard(t))
	}
	blue := NewScriptedController(t, "blue")
	red := NewScriptedController(t, "red")
	for c := 1; c <= 4; c++ {
		blue.AddPlace(1, c)
		red.AddPlace(2, c)
	}
	blue.AddPlace(3, 1)
	red.AddPlace(3, 2)

	cfg := MatchConfig{
		Board:  NewBoard(),
		Hands:  hands,
		Source: newScriptedSource(t),
		First:  FirstBlue,
	}
	m, logger := runMatchToCompletion(t, cfg, blue, red)

	if m.State.Winner != -1 {
		t.Errorf("winner = %d, want draw", m.State.Winner)
	}
	if m.State.Result != "Draw 5-5" {
		t.Errorf("result = %q", m.State.Result)
	}
	if n := len(logger.EventsOfType(log.EventPlace)); n != 10 {
		t.Errorf("place events = %d, want 10", n)
	}
	if logger.LastEvent().Type != log.EventTie {
		t.Errorf("last event = %s, want tie", logger.LastEvent().Type)
	}
	// Both players hear about everything, including the other's moves.
	if len(blue.events) != len(logger.Events()) || len(red.events) != len(logger.Events()) {
		t.Errorf("notifications: blue %d, red %d, logged %d",
			len(blue.events), len(red.events), len(logger.Events()))
	}
}

func TestMatchTakeDecidesWinner(t *testing.T) {
	hands := [2][]Card{
		Blue: {zeroCard(t, East)},
		Red:  {zeroCard(t)},
	}
	blue := NewScriptedController(t, "blue").AddPlace(1, 1)
	red := NewScriptedController(t, "red").AddPlace(1, 2)

	cfg := MatchConfig{
		Board:  NewBoard(),
		Hands:  hands,
		Source: newScriptedSource(t),
		First:  FirstRed,
	}
	m, logger := runMatchToCompletion(t, cfg, blue, red)

	if m.State.Winner != int(Blue) {
		t.Errorf("winner = %d, want Blue (%s)", m.State.Winner, m.State.Result)
	}
	if n := len(logger.EventsOfType(log.EventTake)); n != 1 {
		t.Errorf("take events = %d, want 1", n)
	}
	if last := logger.LastEvent(); last.Type != log.EventWin || last.Player != "Blue" {
		t.Errorf("last event = %+v", last)
	}
}

func TestPlayerWithEmptyHandIsSkipped(t *testing.T) {
	hands := [2][]Card{
		Blue: {zeroCard(t), zeroCard(t), zeroCard(t)},
		Red:  {zeroCard(t)},
	}
	cfg := MatchConfig{Board: NewBoard(), Hands: hands, Source: newScriptedSource(t), First: FirstBlue}
	m := NewMatch(cfg, nil, nil)

	play := func(player Color, row, col int) {
		t.Helper()
		if err := m.Place(Move{Player: player, Row: row, Column: col}); err != nil {
			t.Fatal(err)
		}
	}
	play(Blue, 1, 1)
	play(Red, 1, 2)
	play(Blue, 1, 3)
	if m.State.TurnPlayer != Blue {
		t.Fatalf("turn player = %s, want Blue while Red has no cards", m.State.TurnPlayer)
	}
	play(Blue, 1, 4)
	if !m.State.Over || m.State.Winner != int(Blue) {
		t.Errorf("over=%v winner=%d", m.State.Over, m.State.Winner)
	}
}

func TestPlaceRejectsIllegalMoves(t *testing.T) {
	board := NewBoard()
	board.SetBlock(4, 4)
	hands := [2][]Card{
		Blue: {zeroCard(t), zeroCard(t)},
		Red:  {zeroCard(t)},
	}
	cfg := MatchConfig{Board: board, Hands: hands, Source: newScriptedSource(t), First: FirstBlue}
	m := NewMatch(cfg, nil, nil)
	if err := m.Place(Move{Player: Blue, Row: 1, Column: 1}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		move Move
	}{
		{"wrong player", Move{Player: Blue, Row: 2, Column: 2}},
		{"bad hand index", Move{Player: Red, HandIndex: 1, Row: 2, Column: 2}},
		{"negative hand index", Move{Player: Red, HandIndex: -1, Row: 2, Column: 2}},
		{"off board", Move{Player: Red, Row: 0, Column: 2}},
		{"occupied", Move{Player: Red, Row: 1, Column: 1}},
		{"block", Move{Player: Red, Row: 4, Column: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Place(tt.move); !errors.Is(err, ErrIllegalMove) {
				t.Errorf("Place(%+v) = %v, want ErrIllegalMove", tt.move, err)
			}
		})
	}
	if m.State.Turn != 1 || len(m.State.Hands[Red]) != 1 {
		t.Error("rejected moves must not change the state")
	}

	if err := m.Place(Move{Player: Red, Row: 2, Column: 2}); err != nil {
		t.Fatal(err)
	}
	if err := m.Place(Move{Player: Blue, Row: 3, Column: 3}); err != nil {
		t.Fatal(err)
	}
	if err := m.Place(Move{Player: Blue, Row: 3, Column: 4}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("move after the end = %v, want ErrIllegalMove", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMatch(MatchConfig{Seed: 3}, NewRandomController(rand.New(rand.NewSource(1))), NewRandomController(rand.New(rand.NewSource(2))))
	if _, err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestBoardEventsReachControllers(t *testing.T) {
	hands := [2][]Card{
		Blue: {zeroCard(t, West)},
		Red:  {zeroCard(t, East)},
	}
	blue := NewScriptedController(t, "blue").AddPlace(1, 2)
	red := NewScriptedController(t, "red").AddPlace(1, 1)
	cfg := MatchConfig{
		Board:  NewBoard(),
		Hands:  hands,
		Source: newScriptedSource(t, attackerWinsRolls...),
		First:  FirstRed,
	}
	runMatchToCompletion(t, cfg, blue, red)

	var sawBattle, sawCapture bool
	for _, e := range blue.events {
		switch e.Type {
		case log.EventBattle:
			sawBattle = true
		case log.EventCapture:
			sawCapture = true
		}
	}
	if !sawBattle || !sawCapture {
		t.Errorf("blue saw battle=%v capture=%v", sawBattle, sawCapture)
	}
}
