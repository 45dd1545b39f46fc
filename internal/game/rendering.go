package game

import (
	"fmt"
	"strings"

	"github.com/blokus-rl/blokus-engine/internal/game/core"
)

// This file contains the human-readable board and action rendering.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

var playerColors = [core.NumPlayers]string{ColorRed, ColorBlue, ColorGreen, ColorYellow}

const (
	emptySymbol   = "·"
	playerSymbols = "1234"
)

// String returns a colored text rendering of the board with row and column
// headers.
func (e *Engine) String() string {
	rows, cols := e.gs.Board.Rows, e.gs.Board.Cols

	// Each cell takes 2 chars plus ANSI codes; headers and newlines on top
	estimatedSize := (cols*12 + 4) * (rows + 1)

	var sb strings.Builder
	sb.Grow(estimatedSize)

	sb.WriteString("   ")
	for col := 0; col < cols; col++ {
		sb.WriteString(fmt.Sprintf("%2d", col%100))
	}
	sb.WriteString("\n")

	for row := 0; row < rows; row++ {
		sb.WriteString(fmt.Sprintf("%2d ", row%100))
		for col := 0; col < cols; col++ {
			cell := e.gs.Board.Cells[e.gs.Board.Idx(row, col)]
			if cell == core.CellEmpty {
				sb.WriteString(ColorGray + " " + emptySymbol + ColorReset)
			} else {
				sb.WriteString(playerColors[cell] + " " + string(playerSymbols[cell]) + ColorReset)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ActionString renders one action: the piece name with its absolute cells,
// or "pass" for the sentinel action.
func (e *Engine) ActionString(action int) (string, error) {
	if action < 0 || action > e.catalog.PassAction() {
		return "", fmt.Errorf("action %d: %w", action, core.ErrInvalidAction)
	}
	if action == e.catalog.PassAction() {
		return "pass", nil
	}

	mv := &e.catalog.Moves[action]
	var sb strings.Builder
	sb.WriteString(e.catalog.Pieces[mv.Piece].Name)
	sb.WriteString(" at ")
	for i, c := range mv.Cells {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String(), nil
}
