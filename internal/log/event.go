package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPlace
	EventBattle
	EventBattleDraw // battle tied, the placement's battles are resolved again
	EventCapture    // card recoloured by winning or losing a battle
	EventTake       // card recoloured without a roll
	EventCombo
	EventWin
	EventTie
	EventDeal
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPlace:
		return "Place"
	case EventBattle:
		return "Battle"
	case EventBattleDraw:
		return "BattleDraw"
	case EventCapture:
		return "Capture"
	case EventTake:
		return "Take"
	case EventCombo:
		return "Combo"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	case EventDeal:
		return "Deal"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 outside a match)
	Player  string    // acting colour ("Blue" or "Red")
	Type    EventType // event type
	Card    string    // card code (if applicable)
	Row     int       // board row of Card (0 if not on the board)
	Column  int       // board column of Card
	Details string    // human-readable detail string
}
