package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilefall/internal/games/tilefall"
	"github.com/vovakirdan/tilefall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Long:  `Shows the registered game modes and the campaign levels of the active config.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	tilefall.SetConfigPath(flagConfig)
	if levels := tilefall.LevelNames(); len(levels) > 0 {
		fmt.Println()
		fmt.Println("Campaign levels:")
		for i, name := range levels {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'tilefall play --mode <campaign|endless>' to play.")
}
