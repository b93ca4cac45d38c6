package config

import (
	"math"

	"github.com/vovakirdan/tilefall/internal/board"
)

// DifficultyManager calculates board parameters for endless refills based
// on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Rules returns the fill rules for a refill of a board of the given height,
// scaling base up by the current level.
func (d *DifficultyManager) Rules(base BoardConfig, score int, ticks int) board.Rules {
	level := d.Level(score, ticks)

	colors := base.Colors + int(level*float64(d.cfg.Scaling.ExtraColors))
	rows := base.PopulatedRows + int(level*float64(d.cfg.Scaling.ExtraRows))

	return board.Rules{
		Colors:        min(max(colors, 1), board.MaxColors),
		PopulatedRows: min(max(rows, 0), base.Height),
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
