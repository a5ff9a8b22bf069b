package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/peterkuimelis/tetramaster/internal/log"
)

// scriptedSource returns queued values in order, then falls back to a seeded
// generator if one is set. Used in tests to force battle outcomes.
type scriptedSource struct {
	t        *testing.T
	values   []int
	pos      int
	calls    int
	fallback *rand.Rand
}

func newScriptedSource(t *testing.T, values ...int) *scriptedSource {
	return &scriptedSource{t: t, values: values}
}

func (s *scriptedSource) then(values ...int) *scriptedSource {
	s.values = append(s.values, values...)
	return s
}

func (s *scriptedSource) Intn(n int) int {
	s.calls++
	if s.pos < len(s.values) {
		v := s.values[s.pos]
		s.pos++
		if v < 0 || v >= n {
			s.t.Fatalf("scripted value %d out of range [0,%d) at draw %d", v, n, s.pos)
		}
		return v
	}
	if s.fallback != nil {
		return s.fallback.Intn(n)
	}
	s.t.Fatalf("scripted source exhausted after %d draws", s.pos)
	return 0
}

// exhausted reports whether every scripted value was consumed.
func (s *scriptedSource) exhausted() bool {
	return s.pos == len(s.values)
}

// constSource always returns the same value, clamped to the range.
type constSource int

func (c constSource) Intn(n int) int {
	if int(c) >= n {
		return n - 1
	}
	return int(c)
}

// Battle scripts for cards whose offense and defense levels are both 0:
// max attack roll, max defense roll, attack score, defense score.
var (
	attackerWinsRolls = []int{15, 0, 0, 0}
	defenderWinsRolls = []int{0, 15, 0, 0}
	drawRolls         = []int{0, 0, 0, 0}
)

// ScriptedController is a PlayerController that plays a predefined list of
// squares, always with the first card in hand.
type ScriptedController struct {
	t       *testing.T
	name    string
	squares []Square
	pos     int
	events  []log.GameEvent
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddPlace(row, col int) *ScriptedController {
	sc.squares = append(sc.squares, Square{Row: row, Column: col})
	return sc
}

func (sc *ScriptedController) ChooseMove(ctx context.Context, state *GameState, moves []Move) (Move, error) {
	if sc.pos >= len(sc.squares) {
		// Default: first legal move
		return moves[0], nil
	}
	want := sc.squares[sc.pos]
	sc.pos++
	for _, m := range moves {
		if m.HandIndex == 0 && m.Row == want.Row && m.Column == want.Column {
			return m, nil
		}
	}
	sc.t.Fatalf("[%s] scripted square %s is not a legal move", sc.name, want)
	return Move{}, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// --- Test card helpers ---

func mustCard(t *testing.T, code string, arrows ...Direction) Card {
	t.Helper()
	c, err := ParseCard(code)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", code, err)
	}
	return c.WithArrows(ArrowsOf(arrows...))
}

// zeroCard has every stat at 0, so its battles are driven only by the
// scripted rolls above.
func zeroCard(t *testing.T, arrows ...Direction) Card {
	t.Helper()
	return mustCard(t, "0P00", arrows...)
}

func place(b *Board, row, col int, card Card, color Color) Handle {
	return b.AddCard(row, col, NewOwnedCard(card, color))
}

func colorAt(t *testing.T, b *Board, row, col int) Color {
	t.Helper()
	h, ok := b.CardAt(row, col)
	if !ok {
		t.Fatalf("no card at (%d,%d)", row, col)
	}
	return b.Card(h).Color
}

// snapshot captures every space and color for equality checks.
func snapshot(b *Board) string {
	return b.String()
}

// runMatchToCompletion runs a match and returns the logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, blue, red PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger

	m := NewMatch(cfg, blue, red)
	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, m.State.Result)
	t.Logf("Board:\n%s", m.State.Board)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return m, logger
}
