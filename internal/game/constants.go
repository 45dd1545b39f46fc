package game

import (
	"github.com/blokus-rl/blokus-engine/internal/config"
)

// Board geometry functions
func BoardRows() int {
	return config.Get().Game.Board.Rows
}

func BoardCols() int {
	return config.Get().Game.Board.Cols
}
