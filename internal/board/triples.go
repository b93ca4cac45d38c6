package board

// tripleAxes holds the two opposite neighbors checked on each axis.
var tripleAxes = [2][2][2]int{
	{{0, -1}, {0, 1}}, // horizontal
	{{-1, 0}, {1, 0}}, // vertical
}

// IsTripleCenter reports whether c and both of its neighbors along some axis
// hold the same non-empty color. Missing neighbors at the border disqualify.
func (g *Grid) IsTripleCenter(c Coord) bool {
	color := g.Get(c)
	if color == Empty {
		return false
	}
	for _, axis := range tripleAxes {
		a := c.Add(axis[0][0], axis[0][1])
		b := c.Add(axis[1][0], axis[1][1])
		if !g.InBounds(a) || !g.InBounds(b) {
			continue
		}
		if g.Get(a) == color && g.Get(b) == color {
			return true
		}
	}
	return false
}

// ScanTriples finds every triple center and marks the whole group anchored
// there. Returns the union of those groups sorted row-major, or nil.
func (g *Grid) ScanTriples() []Coord {
	marked := make([]bool, len(g.cells))
	found := false

	for i := range g.cells {
		if marked[i] {
			continue
		}
		c := g.coord(i)
		if !g.IsTripleCenter(c) {
			continue
		}
		for _, m := range g.FindGroup(c) {
			marked[g.index(m)] = true
		}
		found = true
	}

	if !found {
		return nil
	}
	var out []Coord
	for i, m := range marked {
		if m {
			out = append(out, g.coord(i))
		}
	}
	return out
}
