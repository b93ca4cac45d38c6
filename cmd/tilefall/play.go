package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilefall/internal/games/tilefall"
	"github.com/vovakirdan/tilefall/internal/platform/tui"
	"github.com/vovakirdan/tilefall/internal/registry"
)

var (
	flagMode  string
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play tilefall",
	Long: `Start a game. Without --mode the mode, level and difficulty
picker is shown first.

Controls:
  Mouse click  - Remove the group under the cursor
  P/Space      - Pause
  L            - Toggle cell coordinates
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  B/Esc        - Back (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer colors, more moves
  normal - Level settings as configured
  hard   - More colors, fewer moves
  fixed  - Level settings as configured, no adjustment

Examples:
  tilefall play
  tilefall play --mode campaign --level 3
  tilefall play --mode endless --difficulty hard
  tilefall play --config ./my-levels.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: campaign or endless (empty shows the picker)")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (1-based)")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := gameSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tilefall.SetConfigPath(flagConfig)
	tilefall.SetDifficultyPreset(string(preset))

	cfg := runtimeConfig()
	sel := tui.TilefallSelection{Level: flagLevel, Difficulty: preset}

	switch flagMode {
	case "campaign":
	case "endless":
		sel.Mode = tui.TilefallModeEndless
	case "":
		picked, updatedCfg, selErr := tui.RunTilefallModeSelector(cfg, preset)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if picked == nil {
			return
		}
		sel = *picked
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want campaign or endless)\n", flagMode)
		os.Exit(1)
	}

	game, err := registry.Create(sel.GameID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	applySelection(game, sel)

	logger, logFile, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	store := openStore()
	_, runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
