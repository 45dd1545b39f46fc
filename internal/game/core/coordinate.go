package core

import "fmt"

// Coordinate represents a position on the game board.
// Row 0 is the top edge, Col 0 is the left edge.
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, cols int) Coordinate {
	return Coordinate{
		Row: idx / cols,
		Col: idx % cols,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(cols int) int {
	return c.Row*cols + c.Col
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		Row: c.Row + other.Row,
		Col: c.Col + other.Col,
	}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// Less orders coordinates row-major. Geometry sets (move cells, neighbor and
// corner metadata) are kept sorted in this order so move enumeration and
// rendered output stay reproducible.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// OrthogonalOffsets are the four edge-adjacent cell offsets. The order is
// fixed; legality and metadata generation iterate it deterministically.
var OrthogonalOffsets = [4]Coordinate{
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
}

// DiagonalOffsets are the four corner-adjacent cell offsets
var DiagonalOffsets = [4]Coordinate{
	{Row: -1, Col: 1},
	{Row: -1, Col: -1},
	{Row: 1, Col: -1},
	{Row: 1, Col: 1},
}

// IsOrthogonalTo checks if this coordinate is edge-adjacent to another
func (c Coordinate) IsOrthogonalTo(other Coordinate) bool {
	for _, d := range OrthogonalOffsets {
		if c.Add(d).Equal(other) {
			return true
		}
	}
	return false
}

// IsDiagonalTo checks if this coordinate is corner-adjacent to another
func (c Coordinate) IsDiagonalTo(other Coordinate) bool {
	for _, d := range DiagonalOffsets {
		if c.Add(d).Equal(other) {
			return true
		}
	}
	return false
}
