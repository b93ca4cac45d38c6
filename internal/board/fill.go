package board

import "math/rand"

// Rules controls how a fresh grid is populated.
type Rules struct {
	Colors        int // Palette size K; tiles get values 1..K
	PopulatedRows int // Only rows below this index start non-empty
}

// Validate checks the rules against a grid of height h.
func (r Rules) Validate(h int) error {
	if r.Colors < 1 || r.Colors > MaxColors {
		return ErrInvalidColors
	}
	if r.PopulatedRows < 0 || r.PopulatedRows > h {
		return ErrInvalidRows
	}
	return nil
}

// Fill overwrites the grid: cells in the bottom PopulatedRows rows get a
// uniformly random color, the rest are emptied. Cells are drawn in row-major
// order so a seeded rng always yields the same board.
func (g *Grid) Fill(rng *rand.Rand, r Rules) error {
	if err := r.Validate(g.h); err != nil {
		return err
	}
	for i := range g.cells {
		if i/g.w < r.PopulatedRows {
			g.cells[i] = Tile(rng.Intn(r.Colors) + 1)
		} else {
			g.cells[i] = Empty
		}
	}
	return nil
}

// BreakTriples re-rolls triple centers among colors 1..colors until no cell
// is a triple center or passes run out. Reports whether the grid is free of
// triples. A single color can never be broken.
func (g *Grid) BreakTriples(rng *rand.Rand, colors, passes int) bool {
	if colors < 2 {
		return !g.hasTripleCenter()
	}
	for p := 0; p < passes; p++ {
		changed := false
		for i, t := range g.cells {
			if t == Empty || !g.IsTripleCenter(g.coord(i)) {
				continue
			}
			// Any color but the current one
			g.cells[i] = Tile((int(t)-1+1+rng.Intn(colors-1))%colors + 1)
			changed = true
		}
		if !changed {
			return true
		}
	}
	return !g.hasTripleCenter()
}

func (g *Grid) hasTripleCenter() bool {
	for i := range g.cells {
		if g.IsTripleCenter(g.coord(i)) {
			return true
		}
	}
	return false
}
