package net

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/game"
)

// HostConfig configures a match with one remote player.
type HostConfig struct {
	Match  game.MatchConfig
	Player game.Color // the remote player's color

	// Opponent plays the other color. Nil plays the random AI.
	Opponent game.PlayerController
}

// Host runs a match with the player on conn, then sends game_over. The
// connection is left open.
func Host(ctx context.Context, conn net.Conn, cfg HostConfig) (*game.Match, error) {
	mc := cfg.Match
	if mc.Source == nil {
		src, _, err := config.Source(config.Config{Seed: mc.Seed})
		if err != nil {
			return nil, err
		}
		mc.Source = src
	}
	opponent := cfg.Opponent
	if opponent == nil {
		opponent = game.NewRandomController(mc.Source)
	}

	remote := NewStreamController(conn, cfg.Player)
	var ctrls [2]game.PlayerController
	ctrls[cfg.Player] = remote
	ctrls[cfg.Player.Opponent()] = opponent

	m := game.NewMatch(mc, ctrls[game.Blue], ctrls[game.Red])
	if _, err := m.Run(ctx); err != nil {
		return m, fmt.Errorf("match error: %w", err)
	}
	if err := remote.SendGameOver(m.State); err != nil {
		return m, fmt.Errorf("send game_over: %w", err)
	}
	return m, nil
}

// PlayConfig configures a local terminal match.
type PlayConfig struct {
	Host HostConfig
	In   io.Reader
	Out  io.Writer
}

// Play runs a match in the terminal: the REPL talks to the match over an
// in-memory pipe.
func Play(ctx context.Context, cfg PlayConfig) (*game.Match, error) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()

	errCh := make(chan error, 1)
	go func() {
		err := NewClient(clientConn, cfg.In, cfg.Out).RunREPL(ctx)
		clientConn.Close()
		errCh <- err
	}()

	m, hostErr := Host(ctx, serverConn, cfg.Host)
	if hostErr != nil {
		serverConn.Close()
	}
	replErr := <-errCh
	if hostErr != nil {
		return m, hostErr
	}
	return m, replErr
}
