package game

import (
	"fmt"
	"io"
	"strings"
)

// Battle resolves a single battle between two cards.
//
// Both sides roll a max score from their level's range, then roll a score in
// [0, max] which is subtracted from the max. The higher remainder wins; equal
// remainders are a draw. Battle panics if either card has a stat above
// MaxStat, which ParseCard and NewCard never produce.
func Battle(src Source, attacker, defender Card) BattleResult {
	return resolveBattle(src, attacker, defender, nil)
}

// ExplainBattle resolves a battle exactly like Battle, drawing the same
// numbers in the same order, and writes each step to w.
func ExplainBattle(src Source, attacker, defender Card, w io.Writer) BattleResult {
	return resolveBattle(src, attacker, defender, &narrator{w: w})
}

// narrator writes battle steps; a nil narrator stays silent.
type narrator struct {
	w io.Writer
}

func (n *narrator) say(format string, args ...any) {
	if n == nil {
		return
	}
	fmt.Fprintf(n.w, format+"\n", args...)
}

func (n *narrator) describe(role string, c Card) {
	if n == nil {
		return
	}
	n.say("%s: %s (power %d, physical defense %d, magical defense %d, class %s, arrows %s)",
		role, c, c.Power, c.PhysicalDefense, c.MagicalDefense, c.Class, c.Arrows)
}

func resolveBattle(src Source, attacker, defender Card, n *narrator) BattleResult {
	n.describe("Attacker", attacker)
	n.describe("Defender", defender)

	attackStat, defenseStat := classStats(attacker.Class)
	n.say("The attacker is %s, so its %s is tested against the defender's %s.",
		classArticle(attacker.Class), attackStat, defenseStat)

	attackLevel := attacker.OffenseLevel()
	defenseLevel := attacker.DefenseLevel(defender)

	maxAttack := mustRoll(src, attackLevel, n, "attacker", "attack")
	maxDefense := mustRoll(src, defenseLevel, n, "defender", "defense")

	attackScore := src.Intn(maxAttack + 1)
	n.say("The attacker rolls between 0 and its max attack score: %d.", attackScore)
	defenseScore := src.Intn(maxDefense + 1)
	n.say("The defender rolls between 0 and its max defense score: %d.", defenseScore)

	finalAttack := maxAttack - attackScore
	n.say("Attacker final score: %d - %d = %d.", maxAttack, attackScore, finalAttack)
	finalDefense := maxDefense - defenseScore
	n.say("Defender final score: %d - %d = %d.", maxDefense, defenseScore, finalDefense)

	switch {
	case finalAttack == finalDefense:
		n.say("The final scores are equal: the battle is a draw.")
		return BattleDraw
	case finalAttack > finalDefense:
		n.say("The attacker's final score is higher: the attacker wins.")
		return BattleAttacker
	default:
		n.say("The defender's final score is higher: the defender wins.")
		return BattleDefender
	}
}

func mustRoll(src Source, level uint8, n *narrator, role, kind string) int {
	lo, hi, err := StatRange(level)
	if err != nil {
		panic(fmt.Sprintf("invalid card: %v", err))
	}
	n.say("The %s's level is %d, so its max %s score is rolled between %d and %d.", role, level, kind, lo, hi)
	score, _ := RollStat(src, level)
	n.say("The %s's max %s score is %d.", role, kind, score)
	return score
}

func classStats(c Class) (attack, defense string) {
	switch c {
	case ClassMagical:
		return "power", "magical defense"
	case ClassFlexible:
		return "power", "lower defense"
	case ClassAssault:
		return "highest stat", "lowest stat"
	default:
		return "power", "physical defense"
	}
}

func classArticle(c Class) string {
	if c == ClassAssault {
		return "an assault card"
	}
	return fmt.Sprintf("a %s card", strings.ToLower(c.String()))
}
