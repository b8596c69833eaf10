package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rpg2048/internal/bot"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048"
	"github.com/vovakirdan/rpg2048/internal/registry"
	"github.com/vovakirdan/rpg2048/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores (enemies defeated) for a mode. For the bot
mode, stored self-play runs are summarized too.

Examples:
  rpg2048 scores
  rpg2048 scores rpg2048_bot --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := rpg2048.IDPlayer
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'rpg2048 list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	best, err := store.HighScore(gameID)
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 && best == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rpg2048 play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Defeated", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "--------", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}

	if gameID == bot.GameID {
		return printRuns(store, gameID)
	}
	return nil
}

// printRuns lists the most recent stored self-play runs.
func printRuns(store *storage.Store, gameID string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving run stats: %w", err)
	}
	if stats.RunsCount == 0 {
		return nil
	}

	runs, err := store.RecentRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println()
	fmt.Printf("Bot runs: %d  best %d  avg %.1f  moves %d\n",
		stats.RunsCount, stats.BestDefeats, stats.AvgDefeats, stats.TotalMoves)
	fmt.Println()
	fmt.Printf("  %-8s  %-12s  %-8s  %-6s  %-11s  %s\n", "Run", "Seed", "Defeated", "Moves", "End", "Date")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-12d  %-8d  %-6d  %-11s  %s\n",
			shortID(r.ID), r.Seed, r.Defeated, r.Moves, r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
