// Package piece defines the fixed set of 21 Blokus polyomino pieces and the
// orientation enumeration used to build the move catalog.
package piece

import (
	"sort"

	"github.com/blokus-rl/blokus-engine/internal/common"
	"github.com/blokus-rl/blokus-engine/internal/game/core"
)

// NumPieces is the size of the standard piece set
const NumPieces = 21

// Shape is a canonicalized set of cell offsets: sorted row-major, anchored so
// the minimum row and minimum column are both zero.
type Shape []core.Coordinate

// Equal checks set equality of two canonical shapes
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// canonicalize anchors a shape to the zero row/column and sorts it row-major
func canonicalize(cells []core.Coordinate) Shape {
	minRow, minCol := cells[0].Row, cells[0].Col
	for _, c := range cells[1:] {
		minRow = common.Min(minRow, c.Row)
		minCol = common.Min(minCol, c.Col)
	}

	out := make(Shape, len(cells))
	for i, c := range cells {
		out[i] = core.NewCoordinate(c.Row-minRow, c.Col-minCol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// rotate90 rotates a shape a quarter turn and re-canonicalizes.
// Canonicalization absorbs the translation, so the bare (r, c) -> (-c, r)
// mapping is enough.
func rotate90(s Shape) Shape {
	cells := make([]core.Coordinate, len(s))
	for i, c := range s {
		cells[i] = core.NewCoordinate(-c.Col, c.Row)
	}
	return canonicalize(cells)
}

// flip mirrors a shape across its horizontal axis and re-canonicalizes
func flip(s Shape) Shape {
	cells := make([]core.Coordinate, len(s))
	for i, c := range s {
		cells[i] = core.NewCoordinate(-c.Row, c.Col)
	}
	return canonicalize(cells)
}

// Piece is an immutable named polyomino shape
type Piece struct {
	Name  string
	Cells Shape
}

// Size returns the number of cells in the piece
func (p Piece) Size() int { return len(p.Cells) }

// BoundingBox returns the height and width of the canonical shape
func (p Piece) BoundingBox() (rows, cols int) {
	for _, c := range p.Cells {
		rows = common.Max(rows, c.Row+1)
		cols = common.Max(cols, c.Col+1)
	}
	return rows, cols
}

// Orientations enumerates the distinct shapes reachable from the piece by
// 90 degree rotations and a horizontal flip: at most 8, deduplicated by set
// equality after canonicalization. The discovery order is fixed (base, flip,
// then rotation/flip pairs) because it determines move-index numbering in
// the catalog.
func (p Piece) Orientations() []Shape {
	var out []Shape

	appendUnique := func(candidate Shape) {
		for _, existing := range out {
			if existing.Equal(candidate) {
				return
			}
		}
		out = append(out, candidate)
	}

	rotated := p.Cells.Clone()
	appendUnique(rotated)
	appendUnique(flip(rotated))

	for i := 0; i < 3; i++ {
		rotated = rotate90(rotated)
		appendUnique(rotated)
		appendUnique(flip(rotated))
	}

	return out
}

func newPiece(name string, offsets ...[2]int) Piece {
	cells := make([]core.Coordinate, len(offsets))
	for i, o := range offsets {
		cells[i] = core.NewCoordinate(o[0], o[1])
	}
	return Piece{Name: name, Cells: canonicalize(cells)}
}

// StandardSet returns the 21 canonical Blokus pieces in fixed catalog order.
// The order is load-bearing: move indices are assigned by walking this slice.
func StandardSet() []Piece {
	return []Piece{
		newPiece("i1", [2]int{0, 0}),
		newPiece("i2", [2]int{0, 0}, [2]int{1, 0}),
		newPiece("i3", [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}),
		newPiece("i4", [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}),
		newPiece("i5", [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0}),
		newPiece("L5", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{1, 3}),
		newPiece("Y", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{1, 1}),
		newPiece("N", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2}, [2]int{1, 3}),
		newPiece("V3", [2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}),
		newPiece("U", [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 0}, [2]int{2, 1}),
		newPiece("V5", [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}),
		newPiece("Z5", [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{2, 2}),
		newPiece("X", [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}),
		newPiece("T5", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1}, [2]int{2, 1}),
		newPiece("W", [2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1}, [2]int{2, 2}),
		newPiece("P", [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 0}),
		newPiece("F", [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1}),
		newPiece("O4", [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}),
		newPiece("L4", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2}),
		newPiece("T4", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1}),
		newPiece("Z4", [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}),
	}
}

// TotalCells returns the summed cell count of a piece set; it is also the
// starting score of every player.
func TotalCells(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.Size()
	}
	return total
}
