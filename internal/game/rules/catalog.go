// Package rules holds the precomputed move catalog and the placement
// legality rules. The catalog is built once per board geometry, is immutable
// afterwards, and is shared read-only across every game spawned from it.
package rules

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/blokus-rl/blokus-engine/internal/game/core"
	"github.com/blokus-rl/blokus-engine/internal/game/piece"
)

// Move is a concrete placement: a piece orientation translated to an absolute
// board position, plus the adjacency metadata derived from it. All three
// coordinate sets are sorted row-major.
type Move struct {
	Index int
	Piece int // index into the catalog's piece set

	// Cells the placement occupies.
	Cells []core.Coordinate
	// Neighbors are in-bounds cells edge-adjacent to the placement but not
	// part of it.
	Neighbors []core.Coordinate
	// Corners are in-bounds cells corner-adjacent to the placement that are
	// neither part of it nor edge-adjacent to any of its cells. A cell never
	// counts as both edge and corner contact.
	Corners []core.Coordinate
}

// Covers reports whether the placement occupies the given cell
func (m *Move) Covers(c core.Coordinate) bool {
	for _, cell := range m.Cells {
		if cell.Equal(c) {
			return true
		}
	}
	return false
}

// Catalog is the exhaustive set of placements that fit on an empty board of
// the given geometry, indexed densely in generation order.
type Catalog struct {
	Rows, Cols int
	Pieces     []piece.Piece
	Moves      []Move
}

// NewCatalog enumerates every (piece, orientation, position) triple that fits
// on the board. Pieces are walked in set order, orientations in discovery
// order, positions row-major; the resulting index order is deterministic and
// identical across rebuilds.
func NewCatalog(rows, cols int, pieces []piece.Piece, logger zerolog.Logger) *Catalog {
	cat := &Catalog{Rows: rows, Cols: cols, Pieces: pieces}

	for pieceIdx, p := range pieces {
		for _, orientation := range p.Orientations() {
			height, width := shapeBounds(orientation)
			for row := 0; row+height <= rows; row++ {
				for col := 0; col+width <= cols; col++ {
					cat.Moves = append(cat.Moves, buildMove(
						len(cat.Moves), pieceIdx, orientation, row, col, rows, cols))
				}
			}
		}
	}

	logger.Info().
		Int("rows", rows).
		Int("cols", cols).
		Int("pieces", len(pieces)).
		Int("moves", len(cat.Moves)).
		Msg("Move catalog built")

	return cat
}

// NumMoves returns the number of concrete placements in the catalog
func (c *Catalog) NumMoves() int { return len(c.Moves) }

// PassAction is the sentinel action index taken when no placement is legal
func (c *Catalog) PassAction() int { return len(c.Moves) }

// NumActions is the size of the action space: every placement plus the pass
// action.
func (c *Catalog) NumActions() int { return len(c.Moves) + 1 }

// Move returns the placement with the given index
func (c *Catalog) Move(idx int) (*Move, error) {
	if idx < 0 || idx >= len(c.Moves) {
		return nil, fmt.Errorf("move %d: %w", idx, core.ErrInvalidAction)
	}
	return &c.Moves[idx], nil
}

func shapeBounds(s piece.Shape) (height, width int) {
	for _, c := range s {
		if c.Row+1 > height {
			height = c.Row + 1
		}
		if c.Col+1 > width {
			width = c.Col + 1
		}
	}
	return height, width
}

func buildMove(index, pieceIdx int, orientation piece.Shape, row, col, rows, cols int) Move {
	cells := make([]core.Coordinate, len(orientation))
	occupied := make(map[core.Coordinate]struct{}, len(orientation))
	for i, offset := range orientation {
		c := core.NewCoordinate(offset.Row+row, offset.Col+col)
		cells[i] = c
		occupied[c] = struct{}{}
	}

	neighborSet := make(map[core.Coordinate]struct{})
	for _, cell := range cells {
		for _, d := range core.OrthogonalOffsets {
			candidate := cell.Add(d)
			if !candidate.IsValid(rows, cols) {
				continue
			}
			if _, taken := occupied[candidate]; taken {
				continue
			}
			neighborSet[candidate] = struct{}{}
		}
	}

	cornerSet := make(map[core.Coordinate]struct{})
	for _, cell := range cells {
		for _, d := range core.DiagonalOffsets {
			candidate := cell.Add(d)
			if !candidate.IsValid(rows, cols) {
				continue
			}
			if _, taken := occupied[candidate]; taken {
				continue
			}
			if _, edge := neighborSet[candidate]; edge {
				continue
			}
			cornerSet[candidate] = struct{}{}
		}
	}

	return Move{
		Index:     index,
		Piece:     pieceIdx,
		Cells:     cells,
		Neighbors: sortedCoordinates(neighborSet),
		Corners:   sortedCoordinates(cornerSet),
	}
}

func sortedCoordinates(set map[core.Coordinate]struct{}) []core.Coordinate {
	out := make([]core.Coordinate, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
