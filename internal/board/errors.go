package board

import "errors"

// Sentinel errors for grid construction and filling.
var (
	// ErrInvalidSize indicates a grid with no rows or no columns.
	ErrInvalidSize = errors.New("board: grid must have at least one row and one column")
	// ErrNonRectangular indicates input rows of differing lengths.
	ErrNonRectangular = errors.New("board: all rows must have the same length")
	// ErrInvalidColors indicates a palette size outside 1..MaxColors.
	ErrInvalidColors = errors.New("board: color count out of range")
	// ErrInvalidRows indicates a populated row count outside 0..height.
	ErrInvalidRows = errors.New("board: populated rows out of range")
)
