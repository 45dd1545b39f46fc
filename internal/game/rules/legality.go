package rules

import "github.com/blokus-rl/blokus-engine/internal/game/core"

// StartCorners returns the reserved first-move cell for each player: a
// player's opening placement must cover their own board corner.
func StartCorners(rows, cols int) [core.NumPlayers]core.Coordinate {
	return [core.NumPlayers]core.Coordinate{
		core.NewCoordinate(rows-1, cols-1),
		core.NewCoordinate(rows-1, 0),
		core.NewCoordinate(0, 0),
		core.NewCoordinate(0, cols-1),
	}
}

// IsLegalFirst checks the first-move rule: the placement must cover the
// player's start corner. Every other legality check is bypassed on a first
// move because the board holds nothing of the player's color yet.
func (m *Move) IsLegalFirst(start core.Coordinate) bool {
	return m.Covers(start)
}

// IsLegal checks the corner-contact rule against the current board for a
// player who has already placed: no occupied cell may be covered, no cell of
// the player's own color may touch the placement edge-to-edge, and at least
// one cell of the player's own color must touch it diagonally.
//
// Piece availability is the caller's concern; the move itself has no view of
// per-player piece bookkeeping.
func (m *Move) IsLegal(b *core.Board, player core.Cell) bool {
	return !m.overlaps(b) && !m.touchesOwnEdge(b, player) && m.touchesOwnCorner(b, player)
}

func (m *Move) overlaps(b *core.Board) bool {
	for _, c := range m.Cells {
		if !b.IsEmpty(c) {
			return true
		}
	}
	return false
}

func (m *Move) touchesOwnEdge(b *core.Board, player core.Cell) bool {
	for _, c := range m.Neighbors {
		if b.Owner(c) == player {
			return true
		}
	}
	return false
}

func (m *Move) touchesOwnCorner(b *core.Board, player core.Cell) bool {
	for _, c := range m.Corners {
		if b.Owner(c) == player {
			return true
		}
	}
	return false
}
