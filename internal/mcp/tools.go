package mcp

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/game"
)

// sessions holds every running match (many per stdio process).
var sessions = NewSessionStore()

// handsFile is the path to the hands YAML file, set by main.
var handsFile string

// seeds draws match seeds when start_game is called without one. Nil uses
// crypto/rand.
var (
	seedsMu sync.Mutex
	seeds   *rand.Rand
)

// SetHandsFile sets the path to the hands YAML file.
func SetHandsFile(path string) {
	handsFile = path
}

// SetSeed makes the seeds of unseeded matches and battles reproducible.
// Zero restores crypto/rand seeding.
func SetSeed(seed int64) {
	seedsMu.Lock()
	defer seedsMu.Unlock()
	if seed == 0 {
		seeds = nil
		return
	}
	seeds = rand.New(rand.NewSource(seed))
}

func nextSeed() (int64, error) {
	seedsMu.Lock()
	defer seedsMu.Unlock()
	if seeds == nil {
		return config.NewSeed()
	}
	return seeds.Int63(), nil
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(battleTool(), handleBattle)
	s.AddTool(parseCardTool(), handleParseCard)
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(placeCardTool(), handlePlaceCard)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func battleTool() mcp.Tool {
	return mcp.NewTool("battle",
		mcp.WithDescription("Resolve one Tetra Master battle between two cards given as 4-character codes "+
			"(power, class P/M/X/A, physical defense, magical defense; e.g. 1M23)."),
		mcp.WithString("attacker", mcp.Required(), mcp.Description("Attacking card code")),
		mcp.WithString("defender", mcp.Required(), mcp.Description("Defending card code")),
		mcp.WithBoolean("explain", mcp.Description("Include a step-by-step narration of the rolls")),
		mcp.WithNumber("seed", mcp.Description("Seed for the rolls (omit for random)")),
	)
}

func parseCardTool() mcp.Tool {
	return mcp.NewTool("parse_card",
		mcp.WithDescription("Decode a card code and optional arrow list and report its stats."),
		mcp.WithString("code", mcp.Required(), mcp.Description("4-character card code, e.g. 1M23")),
		mcp.WithString("arrows", mcp.Description("Comma-separated arrows, e.g. 'N, NE, SW'")),
	)
}

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a Tetra Master match. You play Blue against a random AI playing Red on a 4x4 board. "+
			"Returns the session id, the events so far and your view of the board."),
		mcp.WithNumber("seed", mcp.Description("Seed for the board, hands and battles (omit for random)")),
		mcp.WithNumber("hand", mcp.Description("Your hand number from the hands file (1-indexed; omit for a random hand)")),
	)
}

func placeCardTool() mcp.Tool {
	return mcp.NewTool("place_card",
		mcp.WithDescription("Place a card from your hand on an empty square. The AI's reply is played before this returns."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_game")),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row 1-4, top to bottom")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Column 1-4, left to right")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current state and accumulated events without making a move. Read-only."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_game")),
	)
}

// --- Tool handlers ---

// BattleResponse is the JSON result of the battle tool.
type BattleResponse struct {
	Attacker  string `json:"attacker"`
	Defender  string `json:"defender"`
	Result    string `json:"result"`
	Seed      int64  `json:"seed"`
	Narration string `json:"narration,omitempty"`
}

func handleBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	attacker, err := game.ParseCard(request.GetString("attacker", ""))
	if err != nil {
		return mcp.NewToolResultError("First card (attacker) was invalid."), nil
	}
	defender, err := game.ParseCard(request.GetString("defender", ""))
	if err != nil {
		return mcp.NewToolResultError("Second card (defender) was invalid."), nil
	}

	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		if seed, err = nextSeed(); err != nil {
			return mcp.NewToolResultErrorf("Could not seed battle: %v", err), nil
		}
	}
	src := rand.New(rand.NewSource(seed))

	resp := BattleResponse{Attacker: attacker.String(), Defender: defender.String(), Seed: seed}
	if request.GetBool("explain", false) {
		var sb strings.Builder
		resp.Result = game.ExplainBattle(src, attacker, defender, &sb).String()
		resp.Narration = sb.String()
	} else {
		resp.Result = game.Battle(src, attacker, defender).String()
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// CardResponse is the JSON result of the parse_card tool.
type CardResponse struct {
	Code            string `json:"code"`
	Power           int    `json:"power"`
	Class           string `json:"class"`
	PhysicalDefense int    `json:"physical_defense"`
	MagicalDefense  int    `json:"magical_defense"`
	OffenseLevel    int    `json:"offense_level"`
	Arrows          string `json:"arrows"`
}

func handleParseCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := game.ParseCardWithArrows(request.GetString("code", ""), request.GetString("arrows", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid card: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(CardResponse{
		Code:            c.String(),
		Power:           int(c.Power),
		Class:           c.Class.String(),
		PhysicalDefense: int(c.PhysicalDefense),
		MagicalDefense:  int(c.MagicalDefense),
		OffenseLevel:    int(c.OffenseLevel()),
		Arrows:          c.Arrows.String(),
	})), nil
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		var err error
		if seed, err = nextSeed(); err != nil {
			return mcp.NewToolResultErrorf("Could not seed game: %v", err), nil
		}
	}

	var hand []game.Card
	if n := request.GetInt("hand", 0); n != 0 {
		_, cards, err := game.HandByNumber(handsFile, n)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load hand: %v", err), nil
		}
		hand = cards
	}

	sess := NewGameSession(seed, hand)
	resp := sess.Snapshot()
	if !resp.GameOver {
		sessions.Add(sess)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlaceCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	sess, ok := sessions.Get(id)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown session %q. Use start_game first.", id), nil
	}

	handIndex := request.GetInt("hand_index", -1)
	row := request.GetInt("row", 0)
	col := request.GetInt("column", 0)

	resp, err := sess.Place(ctx, handIndex, row, col)
	if errors.Is(err, game.ErrIllegalMove) {
		return mcp.NewToolResultErrorf("Invalid move: %v", err), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Error playing move: %v", err), nil
	}

	if resp.GameOver {
		sessions.Remove(id)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	sess, ok := sessions.Get(id)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown session %q. Use start_game first.", id), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}
