package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/game"
	tmnet "github.com/peterkuimelis/tetramaster/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		err = runPlay(cfg, os.Args[2:], os.Stdin, os.Stdout)
	case "battle":
		err = runBattle(cfg, os.Args[2:], os.Stdout)
	case "card":
		err = runCard(os.Args[2:], os.Stdout)
	default:
		printUsage(os.Stdout)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tetra-cli play [--hands FILE] [--hand N] [--seed S]")
	fmt.Fprintln(w, "  tetra-cli battle ATTACKER DEFENDER [--explain] [--seed S]")
	fmt.Fprintln(w, "  tetra-cli card CODE [--arrows LIST]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  play    Play a match as Blue against the random AI")
	fmt.Fprintln(w, "  battle  Resolve one battle between two cards")
	fmt.Fprintln(w, "  card    Decode a card code and show its stats")
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments, and returns the positional ones.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func runPlay(cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	handsFile := fs.String("hands", cfg.HandsFile, "path to hands file")
	hand := fs.Int("hand", 0, "your hand number from the hands file (0 for a random hand)")
	seed := fs.Int64("seed", cfg.Seed, "random seed (0 for random)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Seed = *seed
	src, usedSeed, err := config.Source(cfg)
	if err != nil {
		return err
	}

	mc := game.MatchConfig{Source: src}
	if *hand > 0 {
		name, cards, err := game.HandByNumber(*handsFile, *hand)
		if err != nil {
			return fmt.Errorf("load hand: %w", err)
		}
		fmt.Fprintf(out, "Playing %s (%d cards)\n", name, len(cards))
		mc.Hands[game.Blue] = cards
	}
	fmt.Fprintf(out, "Seed %d. You are Blue. Enter moves as: card row column\n", usedSeed)

	_, err = tmnet.Play(context.Background(), tmnet.PlayConfig{
		Host: tmnet.HostConfig{Match: mc, Player: game.Blue},
		In:   in,
		Out:  out,
	})
	return err
}

func runBattle(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("battle", flag.ContinueOnError)
	explain := fs.Bool("explain", false, "narrate every roll")
	seed := fs.Int64("seed", cfg.Seed, "random seed (0 for random)")
	cards, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(cards) != 2 {
		return fmt.Errorf("battle needs exactly two cards, got %d", len(cards))
	}

	attacker, err := game.ParseCard(cards[0])
	if err != nil {
		return fmt.Errorf("attacker: %w", err)
	}
	defender, err := game.ParseCard(cards[1])
	if err != nil {
		return fmt.Errorf("defender: %w", err)
	}

	cfg.Seed = *seed
	src, _, err := config.Source(cfg)
	if err != nil {
		return err
	}

	var result game.BattleResult
	if *explain {
		result = game.ExplainBattle(src, attacker, defender, out)
	} else {
		result = game.Battle(src, attacker, defender)
	}
	fmt.Fprintf(out, "%s vs %s: %s\n", attacker, defender, result)
	return nil
}

func runCard(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("card", flag.ContinueOnError)
	arrows := fs.String("arrows", "", "comma-separated arrows, e.g. N,NE,SW")
	codes, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		return fmt.Errorf("card needs a code")
	}

	for _, code := range codes {
		c, err := game.ParseCardWithArrows(code, *arrows)
		if err != nil {
			return err
		}
		lo, hi, _ := game.StatRange(c.OffenseLevel())
		fmt.Fprintf(out, "%s  %s card\n", c, strings.ToLower(c.Class.String()))
		fmt.Fprintf(out, "  power %d, physical defense %d, magical defense %d\n",
			c.Power, c.PhysicalDefense, c.MagicalDefense)
		fmt.Fprintf(out, "  offense level %d (max attack %d-%d)\n", c.OffenseLevel(), lo, hi)
		fmt.Fprintf(out, "  arrows %s\n", c.Arrows)
	}
	return nil
}
