package game

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
)

func TestBattleScriptedOutcomes(t *testing.T) {
	a := zeroCard(t)
	d := zeroCard(t)
	tests := []struct {
		name  string
		rolls []int
		want  BattleResult
	}{
		{"attacker", attackerWinsRolls, BattleAttacker},
		{"defender", defenderWinsRolls, BattleDefender},
		{"draw", drawRolls, BattleDraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newScriptedSource(t, tt.rolls...)
			if got := Battle(src, a, d); got != tt.want {
				t.Errorf("Battle() = %s, want %s", got, tt.want)
			}
			if !src.exhausted() {
				t.Errorf("Battle drew %d numbers, want %d", src.pos, len(tt.rolls))
			}
		})
	}
}

// TestBattleSubtractsScores: the final score is max minus the rolled score,
// so a high max with a high roll can still lose.
func TestBattleSubtractsScores(t *testing.T) {
	attacker := mustCard(t, "FP00") // level 15: max in [240,255]
	defender := mustCard(t, "0P00") // level 0: max in [0,15]
	// max attack 255, max defense 10, attack score 250 (final 5),
	// defense score 2 (final 8).
	src := newScriptedSource(t, 15, 10, 250, 2)
	if got := Battle(src, attacker, defender); got != BattleDefender {
		t.Errorf("Battle() = %s, want Defender wins", got)
	}
}

func TestBattleAlwaysReturnsOneResult(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		a := RandomCard(rng)
		d := RandomCard(rng)
		switch Battle(rng, a, d) {
		case BattleAttacker, BattleDefender, BattleDraw:
		default:
			t.Fatalf("unexpected result for %s vs %s", a, d)
		}
	}
}

func TestBattlePanicsOnInvalidCard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a card with power 16")
		}
	}()
	Battle(constSource(0), Card{Power: 16}, Card{})
}

// TestExplainBattleMatchesBattle: both paths draw the same numbers and reach
// the same outcome.
func TestExplainBattleMatchesBattle(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		setup := rand.New(rand.NewSource(seed))
		a := RandomCard(setup)
		d := RandomCard(setup)

		plain := Battle(rand.New(rand.NewSource(seed)), a, d)
		explained := ExplainBattle(rand.New(rand.NewSource(seed)), a, d, io.Discard)
		if plain != explained {
			t.Fatalf("seed %d: Battle=%s ExplainBattle=%s for %s vs %s", seed, plain, explained, a, d)
		}
	}
}

func TestExplainBattleNarratesEveryStep(t *testing.T) {
	var buf bytes.Buffer
	attacker := mustCard(t, "1M23")
	defender := mustCard(t, "2P34")
	// attacker level 1 → max 16+5; defender magical defense 4 → max 64+3
	src := newScriptedSource(t, 5, 3, 1, 60)
	got := ExplainBattle(src, attacker, defender, &buf)
	if got != BattleAttacker {
		t.Errorf("ExplainBattle() = %s, want Attacker wins", got)
	}

	out := buf.String()
	for _, want := range []string{
		"Attacker: 1M23",
		"Defender: 2P34",
		"a magical card",
		"between 16 and 31",
		"max attack score is 21",
		"between 64 and 79",
		"max defense score is 67",
		"21 - 1 = 20",
		"67 - 60 = 7",
		"the attacker wins",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("narration missing %q:\n%s", want, out)
		}
	}
}

// TestStrongAttackerIsFavored: FP00 attacks 0P0F's physical defense of 0.
func TestStrongAttackerIsFavored(t *testing.T) {
	attacker := mustCard(t, "FP00")
	defender := mustCard(t, "0P0F")
	if attacker.OffenseLevel() != 15 {
		t.Fatalf("offense level = %d, want 15", attacker.OffenseLevel())
	}
	if attacker.DefenseLevel(defender) != 0 {
		t.Fatalf("defense level = %d, want 0", attacker.DefenseLevel(defender))
	}

	rng := rand.New(rand.NewSource(2024))
	const trials = 5000
	counts := map[BattleResult]int{}
	for i := 0; i < trials; i++ {
		counts[Battle(rng, attacker, defender)]++
	}
	t.Logf("attacker=%d defender=%d draw=%d", counts[BattleAttacker], counts[BattleDefender], counts[BattleDraw])

	if counts[BattleAttacker] < trials*8/10 {
		t.Errorf("attacker won %d/%d, want at least 80%%", counts[BattleAttacker], trials)
	}
	if counts[BattleDefender] == 0 {
		t.Error("defender never won; both outcomes should be possible")
	}
}
