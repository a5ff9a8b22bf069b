package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runBattle(args ...string) string {
	var out bytes.Buffer
	run(args, &out, rand.New(rand.NewSource(1)))
	return out.String()
}

func TestUsage(t *testing.T) {
	usage := "Usage: battle card_1 card_2 (explain)\n" +
		"Specify two cards (e.g. 1M23 2P34). Attacker first, defender second.\n"
	assert.Equal(t, usage, runBattle())
	assert.Equal(t, usage, runBattle("1M23"))
}

func TestInvalidCards(t *testing.T) {
	assert.Equal(t, "First card (attacker) was invalid.\n", runBattle("1M2", "2P34"))
	assert.Equal(t, "Second card (defender) was invalid.\n", runBattle("1M23", "2Q34"))
	assert.Equal(t, "First card (attacker) was invalid.\n", runBattle("", ""))
}

func TestVerdict(t *testing.T) {
	verdicts := []string{"Attacker wins!\n", "Defender wins!\n", "Draw!\n"}
	assert.Contains(t, verdicts, runBattle("1M23", "2P34"))
	assert.Contains(t, verdicts, runBattle("fa0b", "0p0f", "ignored"))
}

func TestExplainIsCaseInsensitive(t *testing.T) {
	plain := runBattle("1M23", "2P34")
	for _, word := range []string{"explain", "EXPLAIN", "Explain"} {
		out := runBattle("1M23", "2P34", word)
		assert.Contains(t, out, "Attacker: 1M23")
		assert.True(t, strings.HasSuffix(out, plain), "same seed, same verdict")
	}
}
