package game

import (
	"context"

	"github.com/peterkuimelis/tetramaster/internal/log"
)

// RandomController picks a random card from its hand and places it on a
// random empty square.
type RandomController struct {
	src Source
}

// NewRandomController creates a random player drawing from src.
func NewRandomController(src Source) *RandomController {
	return &RandomController{src: src}
}

// ChooseMove implements PlayerController.
func (rc *RandomController) ChooseMove(ctx context.Context, state *GameState, moves []Move) (Move, error) {
	hand := state.Hand(state.TurnPlayer)
	idx := rc.src.Intn(len(hand))

	var candidates []Move
	for _, mv := range moves {
		if mv.HandIndex == idx {
			candidates = append(candidates, mv)
		}
	}
	if len(candidates) == 0 {
		return moves[rc.src.Intn(len(moves))], nil
	}
	return candidates[rc.src.Intn(len(candidates))], nil
}

// Notify implements PlayerController.
func (rc *RandomController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
