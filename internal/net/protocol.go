package net

// Message types for the JSON protocol spoken over a stream connection
// (a pipe, TCP or a WebSocket).

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_move" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "error": the last move was rejected and choose_move follows again
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner int    `json:"winner"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Row     int    `json:"row,omitempty"`
	Column  int    `json:"column,omitempty"`
	Details string `json:"details"`
}

// CardView describes one card in hand or on the board.
type CardView struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Arrows string `json:"arrows"`
	Color  string `json:"color,omitempty"`
}

// CellView describes one board square.
type CellView struct {
	Block bool      `json:"block,omitempty"`
	Card  *CardView `json:"card,omitempty"`
}

// StateView is the match state from one player's perspective. The
// opponent's hand is only counted.
type StateView struct {
	You           string         `json:"you"`
	Board         [4][4]CellView `json:"board"`
	Hand          []CardView     `json:"hand"`
	OpponentCards int            `json:"opponent_cards"`
	Score         map[string]int `json:"score"`
	Turn          int            `json:"turn"`
	IsYourTurn    bool           `json:"is_your_turn"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "move": hand index is 0-based, row and column are 1..4
	HandIndex int `json:"hand_index"`
	Row       int `json:"row"`
	Column    int `json:"column"`
}
