package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilefall/internal/board"
)

// LoadTilefall loads the game configuration.
// Search order: customPath -> ~/.tilefall/configs/tilefall.yaml ->
// ./configs/tilefall.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func LoadTilefall(customPath string) (TilefallConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return TilefallConfig{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("tilefall.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", "tilefall.yaml")); err == nil {
		return cfg, nil
	}

	cfg, err := parse(defaultTilefallYAML)
	if err != nil {
		return DefaultTilefallConfig(), nil
	}
	return cfg, nil
}

func loadFile(path string) (TilefallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TilefallConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return TilefallConfig{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes YAML over the built-in defaults so partial files only
// override the keys they set.
func parse(data []byte) (TilefallConfig, error) {
	cfg := DefaultTilefallConfig()
	// Lists replace rather than merge
	cfg.Levels = nil
	cfg.Display.Palette = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TilefallConfig{}, fmt.Errorf("parse: %w", err)
	}

	defaults := DefaultTilefallConfig()
	if len(cfg.Levels) == 0 {
		cfg.Levels = defaults.Levels
	}
	if len(cfg.Display.Palette) == 0 {
		cfg.Display.Palette = defaults.Display.Palette
	}

	if err := cfg.Validate(); err != nil {
		return TilefallConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilefall", "configs", filename)
}

// ApplyTilefallPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyTilefallPreset(cfg *TilefallConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Board.Colors = fewerColors(cfg.Board.Colors)
		for i := range cfg.Levels {
			cfg.Levels[i].Colors = fewerColors(cfg.Levels[i].Colors)
			cfg.Levels[i].MoveLimit = 0
		}
	case DifficultyHard:
		limit := min(len(cfg.Display.Palette), board.MaxColors)
		cfg.Board.Colors = min(cfg.Board.Colors+1, limit)
		for i := range cfg.Levels {
			lvl := &cfg.Levels[i]
			lvl.Colors = min(lvl.Colors+1, limit)
			if lvl.MoveLimit > 0 {
				lvl.MoveLimit = int(math.Ceil(float64(lvl.MoveLimit) * 0.75))
			}
		}
	}
}

// fewerColors drops one color but never below two.
func fewerColors(n int) int {
	if n > 2 {
		return n - 1
	}
	return n
}

// ParsePreset converts a flag value to a preset.
// Returns an error for unknown names; the empty string is accepted.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
