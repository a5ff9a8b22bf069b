// Command battle resolves one battle between two cards given on the command
// line, e.g. "battle 1M23 2P34 explain".
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	src, _, err := config.Source(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	run(os.Args[1:], os.Stdout, src)
}

func run(args []string, out io.Writer, src game.Source) {
	if len(args) < 2 {
		fmt.Fprintln(out, "Usage: battle card_1 card_2 (explain)")
		fmt.Fprintln(out, "Specify two cards (e.g. 1M23 2P34). Attacker first, defender second.")
		return
	}
	attacker, err := game.ParseCard(args[0])
	if err != nil {
		fmt.Fprintln(out, "First card (attacker) was invalid.")
		return
	}
	defender, err := game.ParseCard(args[1])
	if err != nil {
		fmt.Fprintln(out, "Second card (defender) was invalid.")
		return
	}

	var result game.BattleResult
	if len(args) > 2 && strings.EqualFold(args[2], "explain") {
		result = game.ExplainBattle(src, attacker, defender, out)
	} else {
		result = game.Battle(src, attacker, defender)
	}

	switch result {
	case game.BattleAttacker:
		fmt.Fprintln(out, "Attacker wins!")
	case game.BattleDefender:
		fmt.Fprintln(out, "Defender wins!")
	default:
		fmt.Fprintln(out, "Draw!")
	}
}
