package bot

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
	"github.com/vovakirdan/rpg2048/internal/replay"
	"github.com/vovakirdan/rpg2048/internal/storage"
)

// End reasons of a self-play game.
const (
	ReasonNoMoves   = "no-moves"
	ReasonNoPieces  = "no-pieces"
	ReasonWon       = "won"
	ReasonStuck     = "stuck"
	ReasonTimeLimit = "time-limit"
	ReasonCancelled = "quit"
)

// GameID is the id bot runs are stored under.
const GameID = "rpg2048_bot"

// RunSaver persists finished runs.
type RunSaver interface {
	SaveRun(run storage.Run) (string, error)
}

// Options configures a self-play batch.
type Options struct {
	Games   int
	Workers int           // Games played concurrently, default 1
	Seed    int64         // Game i is seeded with Seed+i
	MaxTime time.Duration // Logical time limit per game, default 30m

	Config config.BattleConfig
	Logger *log.Logger

	Scores   engine.HighScoreStore // Optional, shared by every game
	Runs     RunSaver              // Optional
	Recorder *replay.Recorder      // Optional per-turn archive
}

// Result summarizes one self-play game.
type Result struct {
	RunID    string
	Seed     int64
	Defeated int
	MaxLevel int
	Moves    int
	Duration time.Duration
	Reason   string
}

// Play runs a batch of seeded games. Results are ordered by game index.
// On cancellation the finished games are returned with the context error.
func Play(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Games <= 0 {
		opts.Games = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxTime <= 0 {
		opts.MaxTime = 30 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	results := make([]Result, opts.Games)
	done := make([]bool, opts.Games)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := opts.Logger.With("worker", w)
			for i := range jobs {
				res := playOne(ctx, opts, opts.Seed+int64(i), logger)
				results[i] = res
				done[i] = res.Reason != ReasonCancelled
			}
		}()
	}

feed:
	for i := range opts.Games {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var out []Result
	for i, ok := range done {
		if ok {
			out = append(out, results[i])
		}
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func playOne(ctx context.Context, opts Options, seed int64, logger *log.Logger) Result {
	runID := uuid.NewString()
	sessionOpts := []engine.Option{engine.WithSeed(seed), engine.WithLogger(logger)}
	if opts.Scores != nil {
		sessionOpts = append(sessionOpts, engine.WithHighScores(opts.Scores))
	}
	s := engine.New(opts.Config, sessionOpts...)

	res := Result{RunID: runID, Seed: seed}
	interval := opts.Config.Timing.BotInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	for res.Reason == "" {
		if ctx.Err() != nil {
			res.Reason = ReasonCancelled
			break
		}
		s.Advance(interval)
		s.DrainUpdates()

		st := s.State()
		res.MaxLevel = max(res.MaxLevel, st.Enemy.Level)
		switch {
		case st.Over:
			res.Reason = ReasonNoMoves
			if st.Message == engine.MsgNoPieces {
				res.Reason = ReasonNoPieces
			}
			continue
		case st.Won:
			res.Reason = ReasonWon
			continue
		case st.Now >= opts.MaxTime:
			res.Reason = ReasonTimeLimit
			continue
		case !s.AcceptsInput():
			continue
		}

		dir, ok := Choose(st)
		if !ok {
			res.Reason = ReasonStuck
			continue
		}
		turn := s.BotMove(dir)
		if !turn.Accepted {
			continue
		}
		res.Moves++
		if opts.Recorder != nil {
			opts.Recorder.Add(turnRow(runID, seed, res.Moves, st, s, dir, turn))
		}
	}

	res.Defeated = s.Defeated()
	res.Duration = s.Now()
	logger.Debug("game finished", "seed", seed, "defeated", res.Defeated, "moves", res.Moves, "reason", res.Reason)

	if opts.Runs != nil && res.Reason != ReasonCancelled {
		_, err := opts.Runs.SaveRun(storage.Run{
			ID:        runID,
			GameID:    GameID,
			Player:    "bot",
			Seed:      seed,
			Defeated:  res.Defeated,
			MaxLevel:  res.MaxLevel,
			Moves:     res.Moves,
			Duration:  res.Duration,
			EndReason: res.Reason,
		})
		if err != nil {
			logger.Warn("failed to save run", "run", runID, "err", err)
		}
	}
	return res
}

// turnRow snapshots a bot turn. before is the state the move was chosen on.
func turnRow(runID string, seed int64, n int, before engine.State, s *engine.Session, dir engine.Direction, turn engine.Turn) replay.Row {
	g := turn.Result.Grid
	board := make([]int32, 0, engine.Size*engine.Size)
	for r := range engine.Size {
		for c := range engine.Size {
			board = append(board, int32(g[r][c]))
		}
	}
	hp := s.Enemy().HP
	if turn.Outcome.Defeated {
		hp = 0
	}
	return replay.Row{
		RunID:     runID,
		Seed:      seed,
		Turn:      int32(n),
		AtMillis:  before.Now.Milliseconds(),
		Level:     int32(before.Enemy.Level),
		Boss:      before.Enemy.Boss,
		Goal:      string(before.Enemy.Goal),
		EnemyHP:   int32(hp),
		Direction: dir.String(),
		Damage:    int32(turn.Outcome.Valid),
		Matched:   int32(turn.Outcome.Matched),
		Resisted:  turn.Outcome.Resisted,
		Defeated:  turn.Outcome.Defeated,
		Empty:     int32(len(g.EmptyCells())),
		MaxTile:   int32(g.MaxTile()),
		Board:     board,
	}
}

// ErrNoGames is returned by Summarize for an empty batch.
var ErrNoGames = errors.New("bot: no games played")

// Summary aggregates a batch of results.
type Summary struct {
	Games        int
	BestDefeated int
	AvgDefeated  float64
	TotalMoves   int
	Reasons      map[string]int
}

// Summarize aggregates results.
func Summarize(results []Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, ErrNoGames
	}
	sum := Summary{Games: len(results), Reasons: make(map[string]int)}
	total := 0
	for _, r := range results {
		sum.BestDefeated = max(sum.BestDefeated, r.Defeated)
		sum.TotalMoves += r.Moves
		sum.Reasons[r.Reason]++
		total += r.Defeated
	}
	sum.AvgDefeated = float64(total) / float64(len(results))
	return sum, nil
}
