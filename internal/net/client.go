package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/peterkuimelis/tetramaster/internal/log"
)

// Client reads server messages from a connection and provides a terminal
// REPL for choosing moves.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a client that reads commands from in and renders to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// RunREPL reads server messages and handles them interactively until the
// match is over.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_move":
			c.renderState(msg.State)
			move, err := c.readMove(len(msg.State.Hand))
			if err != nil {
				return err
			}
			if err := enc.Encode(move); err != nil {
				return fmt.Errorf("send move: %w", err)
			}

		case "error":
			fmt.Fprintln(c.out, msg.Error)

		case "game_over":
			c.renderState(msg.State)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	fmt.Fprintln(c.out, log.FormatEvent(log.GameEvent{Turn: ev.Turn, Player: ev.Player, Details: ev.Details}))
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "      1        2        3        4")
	var onBoard []string
	for r, row := range sv.Board {
		fmt.Fprintf(c.out, "%d  ", r+1)
		for col, cell := range row {
			fmt.Fprintf(c.out, " %s", formatCell(cell))
			if cell.Card != nil {
				onBoard = append(onBoard, fmt.Sprintf("(%d,%d) %s %s", r+1, col+1, cell.Card.Code, cell.Card.Arrows))
			}
		}
		fmt.Fprintln(c.out)
	}
	if len(onBoard) > 0 {
		fmt.Fprintf(c.out, "Arrows: %s\n", strings.Join(onBoard, "  "))
	}

	turnInfo := fmt.Sprintf("Turn %d | You: %s | Blue %d - Red %d",
		sv.Turn, sv.You, sv.Score["Blue"], sv.Score["Red"])
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(sv.Hand) > 0 {
		fmt.Fprintf(c.out, "Hand:")
		for _, cv := range sv.Hand {
			fmt.Fprintf(c.out, "  [%d] %s %s", cv.Index+1, cv.Code, cv.Arrows)
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintf(c.out, "Opponent holds %d cards\n", sv.OpponentCards)
}

func formatCell(cell CellView) string {
	switch {
	case cell.Block:
		return "[XXXX  ]"
	case cell.Card != nil:
		mark := "r"
		if cell.Card.Color == "Blue" {
			mark = "b"
		}
		return fmt.Sprintf("[%s %s]", cell.Card.Code, mark)
	default:
		return "[      ]"
	}
}

// readMove prompts for "card row column" until the input is well formed.
// Legality is checked by the server.
func (c *Client) readMove(handSize int) (ClientMessage, error) {
	for {
		fmt.Fprint(c.out, "card row col> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return ClientMessage{}, fmt.Errorf("read input: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			fmt.Fprintln(c.out, "Enter three numbers: card, row, column (e.g. 1 2 3)")
			continue
		}
		var nums [3]int
		valid := true
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 {
				valid = false
				break
			}
			nums[i] = n
		}
		if !valid || nums[0] > handSize {
			fmt.Fprintf(c.out, "Card must be between 1 and %d, row and column between 1 and 4\n", handSize)
			continue
		}
		return ClientMessage{Type: "move", HandIndex: nums[0] - 1, Row: nums[1], Column: nums[2]}, nil
	}
}
