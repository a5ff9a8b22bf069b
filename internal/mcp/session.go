package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/tetramaster/internal/game"
	"github.com/peterkuimelis/tetramaster/internal/net"
)

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	SessionID string          `json:"session_id"`
	Seed      int64           `json:"seed,omitempty"`
	Events    []net.EventView `json:"events"`
	State     *net.StateView  `json:"state,omitempty"`
	GameOver  bool            `json:"game_over"`
	Winner    string          `json:"winner,omitempty"`
	Result    string          `json:"result,omitempty"`
}

// GameSession is one match between the MCP player (Blue) and the random AI
// (Red).
type GameSession struct {
	ID   string
	Seed int64

	playMu sync.Mutex // serializes moves and state reads
	match  *game.Match
	ai     *game.RandomController

	mu     sync.Mutex
	events []net.EventView
}

// NewGameSession deals a new match. hand, if non-nil, is the MCP player's
// hand; otherwise both hands are random. The AI replies immediately if it
// moves first.
func NewGameSession(seed int64, hand []game.Card) *GameSession {
	src := rand.New(rand.NewSource(seed))
	sess := &GameSession{
		ID:   uuid.NewString(),
		Seed: seed,
		ai:   game.NewRandomController(src),
	}

	cfg := game.MatchConfig{Source: src}
	cfg.Hands[game.Blue] = hand
	sess.match = game.NewMatch(cfg, NewMCPController(game.Blue, sess), sess.ai)
	// The random AI never fails to choose.
	_ = sess.aiReply(context.Background())
	return sess
}

// Place plays the MCP player's card, then lets the AI answer until it is the
// MCP player's turn again or the match is over.
func (s *GameSession) Place(ctx context.Context, handIndex, row, col int) (*ToolResponse, error) {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	if err := s.match.Place(game.Move{Player: game.Blue, HandIndex: handIndex, Row: row, Column: col}); err != nil {
		return nil, err
	}
	if err := s.aiReply(ctx); err != nil {
		return nil, err
	}
	return s.response(), nil
}

// Snapshot reports the events since the last response and the current state.
func (s *GameSession) Snapshot() *ToolResponse {
	s.playMu.Lock()
	defer s.playMu.Unlock()
	return s.response()
}

func (s *GameSession) aiReply(ctx context.Context) error {
	gs := s.match.State
	for !gs.Over && gs.TurnPlayer == game.Red {
		move, err := s.ai.ChooseMove(ctx, gs, gs.LegalMoves(game.Red))
		if err != nil {
			return err
		}
		if err := s.match.Place(move); err != nil {
			return fmt.Errorf("ai move: %w", err)
		}
	}
	return nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev net.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []net.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// response reports the events since the last response and the current state
// from the MCP player's side.
func (s *GameSession) response() *ToolResponse {
	gs := s.match.State
	resp := &ToolResponse{
		SessionID: s.ID,
		Seed:      s.Seed,
		Events:    s.drainEvents(),
		State:     net.BuildStateView(gs, game.Blue),
		GameOver:  gs.Over,
		Result:    gs.Result,
	}
	if gs.Over {
		resp.Winner = "Draw"
		if gs.Winner >= 0 {
			resp.Winner = game.Color(gs.Winner).String()
		}
	}
	return resp
}

// SessionStore holds live sessions keyed by id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*GameSession
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*GameSession)}
}

// Add stores a session.
func (st *SessionStore) Add(sess *GameSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID] = sess
}

// Get looks a session up by id.
func (st *SessionStore) Get(id string) (*GameSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Remove forgets a session.
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// respondJSON marshals a tool response to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
