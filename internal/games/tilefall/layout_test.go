package tilefall

import (
	"testing"

	"github.com/vovakirdan/tilefall/internal/board"
	"github.com/vovakirdan/tilefall/internal/core"
)

func TestCellAtInvertsRows(t *testing.T) {
	l := Layout{Origin: core.Point{X: 10, Y: 5}, TileW: 4, TileH: 2, Cols: 3, Rows: 5}

	tests := []struct {
		name   string
		x, y   int
		want   board.Coord
		wantOK bool
	}{
		{"top-left is top row", 10, 5, board.C(4, 0), true},
		{"second line of a tile", 11, 6, board.C(4, 0), true},
		{"bottom-right is row 0", 21, 14, board.C(0, 2), true},
		{"middle", 15, 9, board.C(2, 1), true},
		{"left of board", 9, 5, board.Coord{}, false},
		{"right of board", 22, 5, board.Coord{}, false},
		{"above board", 10, 4, board.Coord{}, false},
		{"below board", 10, 15, board.Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CellAt(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("CellAt(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CellAt(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTileRectRoundTrip(t *testing.T) {
	l := Layout{Origin: core.Point{X: 3, Y: 2}, TileW: 4, TileH: 2, Cols: 7, Rows: 9}

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			c := board.C(row, col)
			r := l.TileRect(c)
			for y := r.Y; y < r.Bottom(); y++ {
				for x := r.X; x < r.Right(); x++ {
					got, ok := l.CellAt(x, y)
					if !ok || got != c {
						t.Fatalf("CellAt(%d,%d) = %v,%v, want %v", x, y, got, ok, c)
					}
				}
			}
		}
	}
}

func TestFrameSurroundsTiles(t *testing.T) {
	l := Layout{Origin: core.Point{X: 3, Y: 2}, TileW: 2, TileH: 1, Cols: 4, Rows: 3}
	f := l.Frame()
	want := core.NewRect(2, 1, 10, 5)
	if f != want {
		t.Errorf("Frame = %+v, want %+v", f, want)
	}
}
