// Package board implements the tile grid engine: random fill, flood-fill
// group selection, removal, column gravity and triple detection.
// It has no dependencies beyond the standard library to keep game logic pure
// and testable.
package board

import (
	"fmt"
	"strings"
)

// Tile is a cell value. Empty is 0; 1..MaxColors identify a tile color.
type Tile uint8

// Empty marks a cell with no tile.
const Empty Tile = 0

// MaxColors is the largest palette a grid can be filled with.
const MaxColors = 9

// Coord addresses a cell. Row 0 is the bottom row of the board.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Grid is a fixed-size rectangle of tiles stored in row-major order:
// index = row*W + col.
type Grid struct {
	w     int
	h     int
	cells []Tile
}

// New creates an empty grid of w columns and h rows.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	return &Grid{
		w:     w,
		h:     h,
		cells: make([]Tile, w*h),
	}, nil
}

// FromRows builds a grid from rows listed bottom first: rows[0] is row 0.
func FromRows(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidSize
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.w {
			return nil, ErrNonRectangular
		}
		copy(g.cells[r*g.w:(r+1)*g.w], row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.w + c.Col
}

func (g *Grid) coord(i int) Coord {
	return Coord{Row: i / g.w, Col: i % g.w}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.h && c.Col >= 0 && c.Col < g.w
}

// Get returns the tile at c, or Empty when c is out of bounds.
func (g *Grid) Get(c Coord) Tile {
	if !g.InBounds(c) {
		return Empty
	}
	return g.cells[g.index(c)]
}

// Set stores t at c. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = t
	}
}

// Column returns a copy of column col, bottom cell first.
func (g *Grid) Column(col int) []Tile {
	if col < 0 || col >= g.w {
		return nil
	}
	out := make([]Tile, g.h)
	for r := 0; r < g.h; r++ {
		out[r] = g.cells[r*g.w+col]
	}
	return out
}

// Rows returns a copy of the grid, bottom row first.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.h)
	for r := range rows {
		rows[r] = make([]Tile, g.w)
		copy(rows[r], g.cells[r*g.w:(r+1)*g.w])
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, t := range g.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, t := range g.cells {
		if t != Empty {
			n++
		}
	}
	return n
}

// IsCleared returns true if every cell is empty.
func (g *Grid) IsCleared() bool {
	return g.FilledCount() == 0
}

// String draws the grid top row first, one digit per tile and '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.w + 1) * g.h)
	for r := g.h - 1; r >= 0; r-- {
		for c := 0; c < g.w; c++ {
			t := g.cells[r*g.w+c]
			if t == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(t%10))
			}
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
