package board

import "sort"

// neighborOffsets lists (dRow, dCol) for up, down, right, left.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FindGroup returns every cell reachable from seed through 4-directional
// steps over cells of the seed's color, sorted row-major. The result always
// contains seed. An empty or out-of-bounds seed yields nil.
//
// Time:   O(W·H).
// Memory: O(W·H) for the visited flags.
func (g *Grid) FindGroup(seed Coord) []Coord {
	color := g.Get(seed)
	if color == Empty {
		return nil
	}

	seen := make([]bool, len(g.cells))
	i0 := g.index(seed)
	seen[i0] = true
	queue := []int{i0}

	for qi := 0; qi < len(queue); qi++ {
		u := g.coord(queue[qi])
		for _, d := range neighborOffsets {
			v := u.Add(d[0], d[1])
			if !g.InBounds(v) || g.cells[g.index(v)] != color {
				continue
			}
			vi := g.index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}

	sort.Ints(queue)
	group := make([]Coord, len(queue))
	for i, idx := range queue {
		group[i] = g.coord(idx)
	}
	return group
}

// Remove empties every in-bounds coordinate and returns how many tiles were
// cleared. Colors are not checked.
func (g *Grid) Remove(coords []Coord) int {
	removed := 0
	for _, c := range coords {
		if !g.InBounds(c) {
			continue
		}
		i := g.index(c)
		if g.cells[i] != Empty {
			g.cells[i] = Empty
			removed++
		}
	}
	return removed
}
