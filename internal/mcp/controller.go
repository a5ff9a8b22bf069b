package mcp

import (
	"context"
	"errors"

	"github.com/peterkuimelis/tetramaster/internal/game"
	"github.com/peterkuimelis/tetramaster/internal/log"
	"github.com/peterkuimelis/tetramaster/internal/net"
)

// errToolDriven is returned when the match loop asks the MCP player for a
// move: its moves arrive through the place_card tool instead.
var errToolDriven = errors.New("mcp player moves through place_card")

// MCPController implements game.PlayerController for the player driven by
// MCP tool calls. It records every match event into the session so the next
// tool response can report them.
type MCPController struct {
	player  game.Color
	session *GameSession
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player game.Color, session *GameSession) *MCPController {
	return &MCPController{player: player, session: session}
}

// ChooseMove implements game.PlayerController.
func (c *MCPController) ChooseMove(ctx context.Context, state *game.GameState, moves []game.Move) (game.Move, error) {
	return game.Move{}, errToolDriven
}

// Notify implements game.PlayerController.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(*net.EventViewOf(event))
	return nil
}
