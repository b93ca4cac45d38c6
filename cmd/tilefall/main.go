// tilefall is a click-to-clear tile puzzle for the terminal.
//
// Usage:
//
//	tilefall list              - List available game modes
//	tilefall play              - Play the campaign (or --mode endless)
//	tilefall menu              - Start menu with mode and level picker
//	tilefall serve             - Start SSH server for remote play
//	tilefall scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.tilefall/scores.db)
//	--config <path>      - Use a custom tilefall YAML config
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log <path>         - Write debug log to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilefall/internal/config"
	"github.com/vovakirdan/tilefall/internal/core"
	_ "github.com/vovakirdan/tilefall/internal/games/tilefall"
	"github.com/vovakirdan/tilefall/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilefall",
	Short: "Tilefall - clear the board one group at a time",
	Long: `Tilefall is a terminal tile puzzle. Click a group of same-colored
tiles to remove it. Tiles above the gap fall straight down their column,
and any three in a row or column that lines up clears again for a chain
bonus.

Available commands:
  list     - Show game modes
  play     - Play directly
  menu     - Interactive menu with mode, level and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  tilefall play
  tilefall play --mode endless --difficulty hard
  tilefall menu
  tilefall serve --ssh :2222
  tilefall scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilefall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tilefall config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug log to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// gameSettings validates the config and difficulty flags. The config file
// is loaded once here so a broken file is reported before the screen
// switches to the alternate buffer.
func gameSettings() (config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return "", err
	}
	if _, err := config.LoadTilefall(flagConfig); err != nil {
		return "", err
	}
	return preset, nil
}

// runtimeConfig builds the session config from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newLogger writes to --log when given. The terminal belongs to the game,
// so without the flag log output is dropped.
func newLogger() (*log.Logger, io.Closer, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilefall",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}
