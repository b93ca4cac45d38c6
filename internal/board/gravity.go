package board

// CompactColumn drops the tiles of one column to the bottom, keeping their
// order, and leaves the vacated cells empty at the top.
// Returns true if any tile moved.
func (g *Grid) CompactColumn(col int) bool {
	if col < 0 || col >= g.w {
		return false
	}

	moved := false
	write := 0
	for r := 0; r < g.h; r++ {
		t := g.cells[r*g.w+col]
		if t == Empty {
			continue
		}
		if write != r {
			g.cells[write*g.w+col] = t
			g.cells[r*g.w+col] = Empty
			moved = true
		}
		write++
	}
	return moved
}

// Compact applies CompactColumn to every column.
// Returns true if any tile moved. Compacting twice is a no-op.
func (g *Grid) Compact() bool {
	moved := false
	for col := 0; col < g.w; col++ {
		if g.CompactColumn(col) {
			moved = true
		}
	}
	return moved
}

// HasGaps reports whether any column holds an empty cell below a tile.
func (g *Grid) HasGaps() bool {
	for col := 0; col < g.w; col++ {
		sawEmpty := false
		for r := 0; r < g.h; r++ {
			if g.cells[r*g.w+col] == Empty {
				sawEmpty = true
			} else if sawEmpty {
				return true
			}
		}
	}
	return false
}
