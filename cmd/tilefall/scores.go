package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilefall/internal/registry"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game mode (default: tilefall).

Examples:
  tilefall scores
  tilefall scores tilefall_endless --limit 20
  tilefall scores --player ann
  tilefall scores tilefall --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show the best score of one player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "tilefall"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tilefall list' to see game modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scores for %s cleared.\n", title)
		return
	}

	if flagScoresPlayer != "" {
		best, err := store.PlayerBest(gameID, flagScoresPlayer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		if best == nil {
			fmt.Printf("No %s scores for %s yet.\n", title, flagScoresPlayer)
			return
		}
		fmt.Printf("%s best for %s: %d (level %d, %d moves, %s)\n",
			title, flagScoresPlayer, best.Score, best.Level, best.Moves,
			best.CreatedAt.Format("2006-01-02 15:04"))
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilefall play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Moves", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-5d  %s\n",
			i+1, player, entry.Score, entry.Level, entry.Moves,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Best level: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
}
