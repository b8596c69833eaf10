package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rpg2048/internal/bot"
	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/replay"
	"github.com/vovakirdan/rpg2048/internal/storage"
)

var (
	flagBotGames   int
	flagBotWorkers int
	flagBotMaxTime time.Duration
	flagBotOut     string
	flagBotNoStore bool
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run headless bot self-play games",
	Long: `Play seeded games with the greedy bot under the logical clock, as
fast as the machine allows. Game i uses seed --seed + i. Every finished run
is stored in the scores database and the bot's high score is updated.
With --out, every bot turn is archived to a zstd-compressed parquet file.

Examples:
  rpg2048 bot
  rpg2048 bot --games 100 --workers 4 --seed 1
  rpg2048 bot --games 20 --out ./runs.parquet --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	botCmd.Flags().IntVar(&flagBotGames, "games", 10, "Number of games to play")
	botCmd.Flags().IntVar(&flagBotWorkers, "workers", 1, "Games played concurrently")
	botCmd.Flags().DurationVar(&flagBotMaxTime, "max-time", 30*time.Minute, "Logical time limit per game")
	botCmd.Flags().StringVar(&flagBotOut, "out", "", "Write every turn to this parquet file")
	botCmd.Flags().BoolVar(&flagBotNoStore, "no-store", false, "Do not store runs in the scores database")
}

func runBot(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "rpg2048-bot")
	if err != nil {
		return err
	}

	preset, err := difficulty()
	if err != nil {
		return err
	}
	battle, err := config.LoadBattle(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyBattlePreset(&battle, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := bot.Options{
		Games:   flagBotGames,
		Workers: flagBotWorkers,
		Seed:    seed,
		MaxTime: flagBotMaxTime,
		Config:  battle,
		Logger:  logger,
	}

	if !flagBotNoStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		opts.Runs = store
		opts.Scores = store.Keeper(bot.GameID)
	}
	if flagBotOut != "" {
		opts.Recorder = replay.NewRecorder()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting self-play", "games", opts.Games, "workers", opts.Workers, "seed", seed, "difficulty", preset)
	start := time.Now()
	results, playErr := bot.Play(ctx, opts)
	if playErr != nil && !errors.Is(playErr, context.Canceled) {
		return playErr
	}
	if errors.Is(playErr, context.Canceled) {
		logger.Warn("interrupted", "finished", len(results))
	}

	if opts.Recorder != nil {
		n, err := opts.Recorder.Flush(flagBotOut)
		if err != nil {
			return err
		}
		logger.Info("wrote replay", "path", flagBotOut, "turns", n)
	}

	printResults(results)

	sum, err := bot.Summarize(results)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Avg: %.2f  Moves: %d  (%s)\n",
		sum.Games, sum.BestDefeated, sum.AvgDefeated, sum.TotalMoves, time.Since(start).Round(time.Millisecond))

	reasons := make([]string, 0, len(sum.Reasons))
	for r := range sum.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  %-11s %d\n", r, sum.Reasons[r])
	}
	return nil
}

func printResults(results []bot.Result) {
	fmt.Printf("  %-20s  %-8s  %-6s  %-6s  %-10s  %s\n", "Seed", "Defeated", "Level", "Moves", "Clock", "End")
	for _, r := range results {
		fmt.Printf("  %-20d  %-8d  %-6d  %-6d  %-10s  %s\n",
			r.Seed, r.Defeated, r.MaxLevel+1, r.Moves, r.Duration.Round(time.Second), r.Reason)
	}
}
