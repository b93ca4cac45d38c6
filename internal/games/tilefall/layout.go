package tilefall

import (
	"github.com/vovakirdan/tilefall/internal/board"
	"github.com/vovakirdan/tilefall/internal/core"
)

// Layout maps board cells to screen rectangles. Row 0 of the board is drawn
// at the bottom of the tile area.
type Layout struct {
	Origin core.Point // Top-left character of the top-left tile
	TileW  int
	TileH  int
	Cols   int
	Rows   int
}

// Bounds returns the screen area covered by tiles.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(l.Origin.X, l.Origin.Y, l.Cols*l.TileW, l.Rows*l.TileH)
}

// Frame returns the rectangle of the border drawn around the tiles.
func (l Layout) Frame() core.Rect {
	b := l.Bounds()
	return core.NewRect(b.X-1, b.Y-1, b.W+2, b.H+2)
}

// CellAt converts a screen position to a board coordinate by integer
// division by the tile size, inverting the vertical axis.
// Returns false if the position is outside the tile area.
func (l Layout) CellAt(x, y int) (board.Coord, bool) {
	if l.TileW <= 0 || l.TileH <= 0 || !l.Bounds().Contains(x, y) {
		return board.Coord{}, false
	}
	col := (x - l.Origin.X) / l.TileW
	fromTop := (y - l.Origin.Y) / l.TileH
	return board.C(l.Rows-1-fromTop, col), true
}

// TileRect returns the screen rectangle of a board cell.
func (l Layout) TileRect(c board.Coord) core.Rect {
	fromTop := l.Rows - 1 - c.Row
	return core.NewRect(l.Origin.X+c.Col*l.TileW, l.Origin.Y+fromTop*l.TileH, l.TileW, l.TileH)
}
