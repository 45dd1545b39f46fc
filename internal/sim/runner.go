package sim

import (
	"fmt"
	"math/rand"

	"github.com/blokus-rl/blokus-engine/internal/game"
	"github.com/blokus-rl/blokus-engine/internal/game/core"
)

// Result summarizes one finished playout
type Result struct {
	Winner     int // game.NoWinner on a draw
	Returns    []float64
	Scores     [core.NumPlayers]int
	Placements int // applied non-pass actions
	Turns      int // applied actions including passes
}

// RandomPlayout drives a game to terminal by picking uniformly among the
// legal actions each turn. A full game applies at most 84 placements
// (21 pieces by 4 players); the turn count can be slightly higher because
// finished players still take nominal pass turns.
func RandomPlayout(e *game.Engine, rng *rand.Rand) (Result, error) {
	var res Result

	for !e.IsTerminal() {
		legal := e.LegalActions()
		if len(legal) == 0 {
			return res, fmt.Errorf("player %d has no legal actions in a non-terminal game", e.CurrentPlayer())
		}
		action := legal[rng.Intn(len(legal))]
		if action != e.Catalog().PassAction() {
			res.Placements++
		}
		if err := e.ApplyAction(action); err != nil {
			return res, fmt.Errorf("applying action %d: %w", action, err)
		}
		res.Turns++
	}

	gs := e.GameState()
	res.Winner = gs.Winner
	res.Returns = e.Returns()
	for i := range gs.Players {
		res.Scores[i] = gs.Players[i].Score
	}
	return res, nil
}
