// Package config provides YAML-based game configuration loading and
// difficulty management for tilefall.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilefall/internal/board"
	"github.com/vovakirdan/tilefall/internal/core"
)

// TilefallConfig contains all configuration for the tile game.
type TilefallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Display    DisplayConfig    `yaml:"display"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Levels     []LevelConfig    `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid. Colors, PopulatedRows and MoveLimit are the
// endless mode baseline; campaign levels override them.
type BoardConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	Colors        int `yaml:"colors"`
	PopulatedRows int `yaml:"populated_rows"`
	MoveLimit     int `yaml:"move_limit"` // Moves per endless session, 0 = unlimited
}

// TimingConfig defines delays in simulation ticks.
type TimingConfig struct {
	HighlightTicks  int `yaml:"highlight_ticks"`   // Outline shown before triples clear
	LevelClearTicks int `yaml:"level_clear_ticks"` // Banner shown between levels
}

// DisplayConfig defines how tiles are drawn in the terminal.
type DisplayConfig struct {
	TileWidth  int      `yaml:"tile_width"`
	TileHeight int      `yaml:"tile_height"`
	ShowLabels bool     `yaml:"show_labels"`
	Background string   `yaml:"background"`
	Palette    []string `yaml:"palette"` // Palette[i] colors tile value i+1
}

// ScoringConfig defines points awarded per cleared tile.
type ScoringConfig struct {
	PointsPerTile    int `yaml:"points_per_tile"`
	TripleMultiplier int `yaml:"triple_multiplier"`
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name          string `yaml:"name"`
	Colors        int    `yaml:"colors"`
	PopulatedRows int    `yaml:"populated_rows"`
	MoveLimit     int    `yaml:"move_limit"` // 0 means unlimited
}

// Rules returns the fill rules for this level.
func (l LevelConfig) Rules() board.Rules {
	return board.Rules{Colors: l.Colors, PopulatedRows: l.PopulatedRows}
}

// DifficultyConfig defines the endless mode progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraColors int `yaml:"extra_colors"` // Colors added at max difficulty
	ExtraRows   int `yaml:"extra_rows"`   // Populated rows added at max difficulty
}

// Sentinel errors returned by Validate.
var (
	ErrBoardSize  = errors.New("config: board size out of range")
	ErrTileSize   = errors.New("config: tile size out of range")
	ErrPalette    = errors.New("config: invalid palette")
	ErrTiming     = errors.New("config: negative timing")
	ErrNoLevels   = errors.New("config: no campaign levels")
	ErrLevelRules = errors.New("config: invalid level")
)

// MaxBoardSide bounds both board dimensions.
const MaxBoardSide = 32

// Validate checks the config for values the game cannot run with.
func (c TilefallConfig) Validate() error {
	b := c.Board
	if b.Width < 1 || b.Width > MaxBoardSide || b.Height < 1 || b.Height > MaxBoardSide {
		return fmt.Errorf("%w: %dx%d", ErrBoardSize, b.Width, b.Height)
	}
	if err := (board.Rules{Colors: b.Colors, PopulatedRows: b.PopulatedRows}).Validate(b.Height); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if b.MoveLimit < 0 {
		return fmt.Errorf("config: board: negative move limit %d", b.MoveLimit)
	}
	if c.Display.TileWidth < 1 || c.Display.TileHeight < 1 {
		return fmt.Errorf("%w: %dx%d", ErrTileSize, c.Display.TileWidth, c.Display.TileHeight)
	}
	if c.Timing.HighlightTicks < 0 || c.Timing.LevelClearTicks < 0 {
		return ErrTiming
	}
	if _, err := c.PaletteColors(); err != nil {
		return err
	}
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}

	maxColors := b.Colors + c.Difficulty.Scaling.ExtraColors
	for i, lvl := range c.Levels {
		if err := lvl.Rules().Validate(b.Height); err != nil {
			return fmt.Errorf("%w %d (%s): %w", ErrLevelRules, i+1, lvl.Name, err)
		}
		if lvl.MoveLimit < 0 {
			return fmt.Errorf("%w %d (%s): negative move limit", ErrLevelRules, i+1, lvl.Name)
		}
		maxColors = max(maxColors, lvl.Colors)
	}
	if len(c.Display.Palette) < min(maxColors, board.MaxColors) {
		return fmt.Errorf("%w: %d colors needed, %d given", ErrPalette, maxColors, len(c.Display.Palette))
	}
	return nil
}

// PaletteColors parses the palette and background. Index 0 of the result is
// the background; index i colors tile value i.
func (c TilefallConfig) PaletteColors() ([]core.Color, error) {
	bg := core.ColorDefault
	if c.Display.Background != "" {
		parsed, ok := core.ParseColor(c.Display.Background)
		if !ok {
			return nil, fmt.Errorf("%w: unknown background %q", ErrPalette, c.Display.Background)
		}
		bg = parsed
	}

	colors := make([]core.Color, 0, len(c.Display.Palette)+1)
	colors = append(colors, bg)
	for _, name := range c.Display.Palette {
		parsed, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown color %q", ErrPalette, name)
		}
		colors = append(colors, parsed)
	}
	return colors, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
