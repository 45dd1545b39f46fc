package core

// Cell holds the contents of a single board cell.
// CellEmpty means unoccupied; 0..NumPlayers-1 are player colors.
type Cell int8

const (
	CellEmpty Cell = -1

	// NumPlayers is fixed: Blokus is a four-player game.
	NumPlayers = 4
)

// ValidPlayer checks that a player identifier names one of the four players.
// Player IDs double as indices into per-player records, so every boundary
// that accepts one validates it here first.
func ValidPlayer(p int) bool {
	return p >= 0 && p < NumPlayers
}

// Board is the placement grid.
type Board struct {
	Rows, Cols int
	Cells      []Cell // length = Rows*Cols (row-major)
}

// NewBoard creates an empty board with the given dimensions
func NewBoard(rows, cols int) *Board {
	b := &Board{Rows: rows, Cols: cols, Cells: make([]Cell, rows*cols)}
	for i := range b.Cells {
		b.Cells[i] = CellEmpty
	}
	return b
}

// Idx converts (row, col) to a row-major array index
func (b *Board) Idx(row, col int) int { return row*b.Cols + col }

// RC converts a row-major array index back to (row, col)
func (b *Board) RC(idx int) (int, int) { return idx / b.Cols, idx % b.Cols }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// At returns the cell contents at the given coordinates.
// Out-of-bounds coordinates are a caller-contract violation.
func (b *Board) At(c Coordinate) (Cell, error) {
	if !b.InBounds(c.Row, c.Col) {
		return CellEmpty, ErrInvalidCoordinates
	}
	return b.Cells[b.Idx(c.Row, c.Col)], nil
}

// Set writes the cell contents at the given coordinates
func (b *Board) Set(c Coordinate, cell Cell) error {
	if !b.InBounds(c.Row, c.Col) {
		return ErrInvalidCoordinates
	}
	b.Cells[b.Idx(c.Row, c.Col)] = cell
	return nil
}

// Owner returns the cell contents without a bounds check. Callers pass
// coordinates that were bounds-filtered at catalog build time.
func (b *Board) Owner(c Coordinate) Cell {
	return b.Cells[b.Idx(c.Row, c.Col)]
}

// IsEmpty reports whether the cell at c is unoccupied
func (b *Board) IsEmpty(c Coordinate) bool {
	return b.Owner(c) == CellEmpty
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Rows: b.Rows, Cols: b.Cols, Cells: cells}
}
