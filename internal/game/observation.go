package game

import "github.com/blokus-rl/blokus-engine/internal/game/core"

// ObservationTensor exports the board as a flattened row-major grid with one
// scalar per cell: 0 for empty, otherwise player index + 1.
func (e *Engine) ObservationTensor() []float32 {
	out := make([]float32, len(e.gs.Board.Cells))
	for i, cell := range e.gs.Board.Cells {
		if cell != core.CellEmpty {
			out[i] = float32(cell) + 1
		}
	}
	return out
}
