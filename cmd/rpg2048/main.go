// rpg2048 is a 2048 battle game for the terminal: every merge damages an
// enemy that fights back by blocking, burning, freezing, hiding, shuffling
// and deleting tiles.
//
// Usage:
//
//	rpg2048 list              - List available modes
//	rpg2048 play [mode]       - Play a battle (default: rpg2048)
//	rpg2048 menu              - Start menu to pick a mode interactively
//	rpg2048 serve             - Start SSH server for remote play
//	rpg2048 scores [mode]     - Show high scores
//	rpg2048 bot               - Run headless bot self-play games
//	rpg2048 roster            - Show the enemy roster per level
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.rpg2048/scores.db)
//	--config <path>       - Custom battle config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/core"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rpg2048",
	Short: "RPG 2048 - Battle enemies by merging tiles",
	Long: `RPG 2048 turns the 2048 sliding puzzle into a battle: each merge
deals damage to an enemy, and the enemy fights back by attacking the board.

Available commands:
  list     - Show the playable modes
  play     - Play a battle directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  bot      - Run headless bot games
  roster   - Show enemies and attacks per level

Examples:
  rpg2048 play
  rpg2048 play --difficulty hard
  rpg2048 menu
  rpg2048 serve --ssh :2222
  rpg2048 bot --games 20 --out ./runs.parquet`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnvDefaults,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rpg2048/scores.db", "Path to scores database (env RPG2048_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom battle config YAML (env RPG2048_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env RPG2048_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(rosterCmd)
}

// applyEnvDefaults loads .env and lets environment variables fill the flags
// the user did not set.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		env  string
		dst  *string
	}{
		{"db", config.EnvDB, &flagDBPath},
		{"config", config.EnvConfig, &flagConfig},
		{"log-level", config.EnvLogLevel, &flagLogLevel},
	} {
		if !cmd.Flags().Changed(f.name) {
			*f.dst = config.Env(f.env, *f.dst)
		}
	}
	return nil
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// tuiLogger returns a logger that never draws over the terminal UI: it
// writes to --log-file when given and discards otherwise. The returned
// closer releases the file.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := newLogger(f, "rpg2048")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

// difficulty parses the --difficulty flag. Empty means normal.
func difficulty() (config.DifficultyPreset, error) {
	return config.ParsePreset(flagDifficulty)
}

// setupGames applies the battle settings every new game picks up.
func setupGames(preset config.DifficultyPreset, logger *log.Logger) {
	rpg2048.SetConfigPath(flagConfig)
	rpg2048.SetDifficulty(preset)
	rpg2048.SetLogger(logger)
}

// runtimeConfig builds the platform config from the terminal size.
func runtimeConfig(debug bool) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Debug:    debug,
	}
}
