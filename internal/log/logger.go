package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Discard ---

type discardLogger struct{}

func (discardLogger) Log(GameEvent)       {}
func (discardLogger) Events() []GameEvent { return nil }

// Discard is an EventLogger that drops every event.
var Discard EventLogger = discardLogger{}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	player := e.Player
	// Pad player to 5 chars for alignment
	for len(player) < 5 {
		player += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, player, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func square(row, col int) string {
	return fmt.Sprintf("(%d,%d)", row, col)
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, player),
	}
}

func NewDealEvent(player string, cards []string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventDeal,
		Details: fmt.Sprintf("%s is dealt %s", player, strings.Join(cards, " ")),
	}
}

func NewPlaceEvent(turn int, player, card string, row, col int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlace,
		Card:    card,
		Row:     row,
		Column:  col,
		Details: fmt.Sprintf("%s places %s at %s", player, card, square(row, col)),
	}
}

// NewBattleEvent places the event at the attacker's square; the defender's
// square is named in Details.
func NewBattleEvent(turn int, player, attacker string, row, col int, defender string, defRow, defCol int, result string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventBattle,
		Card:    attacker,
		Row:     row,
		Column:  col,
		Details: fmt.Sprintf("%s at %s battles %s at %s: %s", attacker, square(row, col), defender, square(defRow, defCol), result),
	}
}

func NewBattleDrawEvent(turn int, player, attacker string, pass int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventBattleDraw,
		Card:    attacker,
		Details: fmt.Sprintf("%s drew, resolving battles again (pass %d)", attacker, pass),
	}
}

func NewCaptureEvent(turn int, player, card string, row, col int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCapture,
		Card:    card,
		Row:     row,
		Column:  col,
		Details: fmt.Sprintf("%s at %s is captured by %s", card, square(row, col), player),
	}
}

func NewTakeEvent(turn int, player, card string, row, col int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTake,
		Card:    card,
		Row:     row,
		Column:  col,
		Details: fmt.Sprintf("%s at %s is taken by %s", card, square(row, col), player),
	}
}

func NewComboEvent(turn int, player, card string, row, col int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCombo,
		Card:    card,
		Row:     row,
		Column:  col,
		Details: fmt.Sprintf("Combo! %s at %s flips to %s", card, square(row, col), player),
	}
}

func NewWinEvent(turn int, winner string, blue, red int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (Blue %d - Red %d)", winner, blue, red),
	}
}

func NewTieEvent(turn int, blue, red int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTie,
		Details: fmt.Sprintf("Draw (Blue %d - Red %d)", blue, red),
	}
}
