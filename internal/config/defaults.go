package config

import (
	_ "embed"
)

//go:embed defaults/tilefall.yaml
var defaultTilefallYAML []byte

// DefaultTilefallConfig returns the default configuration.
// It mirrors defaults/tilefall.yaml and is used if the embedded file
// cannot be parsed.
func DefaultTilefallConfig() TilefallConfig {
	return TilefallConfig{
		Board: BoardConfig{
			Width:         7,
			Height:        9,
			Colors:        4,
			PopulatedRows: 5,
			MoveLimit:     100,
		},
		Timing: TimingConfig{
			HighlightTicks:  30,
			LevelClearTicks: 120,
		},
		Display: DisplayConfig{
			TileWidth:  4,
			TileHeight: 2,
			Background: "default",
			Palette: []string{
				"red", "green", "yellow", "blue", "magenta",
				"cyan", "orange", "purple", "white",
			},
		},
		Scoring: ScoringConfig{
			PointsPerTile:    1,
			TripleMultiplier: 2,
		},
		Levels: []LevelConfig{
			{Name: "First Drops", Colors: 3, PopulatedRows: 3},
			{Name: "Stacking Up", Colors: 3, PopulatedRows: 5},
			{Name: "Four Colors", Colors: 4, PopulatedRows: 5, MoveLimit: 40},
			{Name: "Tall Towers", Colors: 4, PopulatedRows: 7, MoveLimit: 50},
			{Name: "Rainbow", Colors: 5, PopulatedRows: 7, MoveLimit: 60},
			{Name: "Full House", Colors: 6, PopulatedRows: 9, MoveLimit: 80},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				ExtraColors: 2,
				ExtraRows:   3,
			},
		},
	}
}
