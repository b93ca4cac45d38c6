package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilefall/internal/games/tilefall"
	"github.com/vovakirdan/tilefall/internal/platform/tui"
	"github.com/vovakirdan/tilefall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tilefall with the interactive menu",
	Long: `Start in interactive menu mode.

Pick tilefall, then choose campaign, endless or a starting level and
cycle the difficulty. Going back from a paused or finished game returns
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tilefall menu
  tilefall menu --fps 30
  tilefall menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	preset, err := gameSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tilefall.SetConfigPath(flagConfig)
	tilefall.SetDifficultyPreset(string(preset))

	logger, logFile, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		sel, updatedCfg, selErr := tui.RunTilefallModeSelector(cfg, preset)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		cfg = updatedCfg

		// User pressed back or quit
		if sel == nil {
			continue
		}
		preset = sel.Difficulty

		game, err := registry.Create(sel.GameID())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		applySelection(game, *sel)

		// Fresh board for every game unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}

// applySelection passes the picked start level and difficulty to the game
// itself rather than through package settings.
func applySelection(game registry.Game, sel tui.TilefallSelection) {
	tg, ok := game.(*tilefall.Game)
	if !ok {
		return
	}
	tg.StartAtLevel(sel.Level)
	if sel.Difficulty != "" {
		tg.UseDifficulty(sel.Difficulty)
	}
}
