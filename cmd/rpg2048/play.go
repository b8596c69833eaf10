package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rpg2048/internal/games/rpg2048"
	"github.com/vovakirdan/rpg2048/internal/platform/tui"
	"github.com/vovakirdan/rpg2048/internal/registry"
	"github.com/vovakirdan/rpg2048/internal/storage"
)

var flagDebug bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a battle",
	Long: `Start a battle. The mode is rpg2048 (you play) or rpg2048_bot
(watch the greedy bot play).

Controls:
  Arrows/WASD - Slide tiles
  P           - Pause
  R           - Restart (after game over or win)
  B/Esc       - Back (while paused or after game over)
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Debug keys (with --debug):
  F1          - Defeat the current enemy
  F2-F7       - Trigger block, burn, freeze, ghost, shuffle, delete

Difficulty options:
  easy   - Slower attacks, speeds up with each enemy defeated
  normal - Default attack pace, speeds up with each enemy defeated
  hard   - Faster attacks, speeds up with each enemy defeated
  fixed  - Attack pace from the config, no speed-up

Examples:
  rpg2048 play
  rpg2048 play rpg2048_bot
  rpg2048 play --difficulty hard
  rpg2048 play --config ./my-battle.yaml --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug keys F1-F7")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := rpg2048.IDPlayer
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'rpg2048 list' to see available modes", gameID)
	}

	preset, err := difficulty()
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	setupGames(preset, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the battle still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(flagDebug)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
