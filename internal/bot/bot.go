// Package bot implements the greedy rpg2048 player and a headless runner that
// plays seeded games on the engine's logical clock.
package bot

import (
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
)

// Candidate is one simulated direction and how it scores.
type Candidate struct {
	Dir      engine.Direction
	Outcome  engine.DamageOutcome
	Empty    int
	MergeSum int
}

// better reports whether c ranks above o: a defeating move first, then
// accepted damage and target merges, then free space, then raw merge value.
func (c Candidate) better(o Candidate) bool {
	if c.Outcome.Defeated != o.Outcome.Defeated {
		return c.Outcome.Defeated
	}
	if c.Outcome.Valid != o.Outcome.Valid {
		return c.Outcome.Valid > o.Outcome.Valid
	}
	if c.Outcome.Matched != o.Outcome.Matched {
		return c.Outcome.Matched > o.Outcome.Matched
	}
	if c.Empty != o.Empty {
		return c.Empty > o.Empty
	}
	return c.MergeSum > o.MergeSum
}

// Candidates simulates every direction against the state and returns the
// ones that change the board, in engine.Directions order.
func Candidates(st engine.State) []Candidate {
	var out []Candidate
	for _, dir := range engine.Directions {
		res := engine.Slide(st.Grid, st.Frozen, dir)
		if !res.Changed {
			continue
		}
		c := Candidate{
			Dir:     dir,
			Outcome: st.Enemy.Preview(res.Damage, res.TargetMerges),
			Empty:   len(res.Grid.EmptyCells()),
		}
		for _, v := range res.Damage {
			c.MergeSum += v
		}
		for _, v := range res.TargetMerges {
			c.MergeSum += v
		}
		out = append(out, c)
	}
	return out
}

// Choose picks the best move for the state. ok is false when no direction
// changes the board. Ties keep the earliest direction.
func Choose(st engine.State) (dir engine.Direction, ok bool) {
	var best Candidate
	for i, c := range Candidates(st) {
		if i == 0 || c.better(best) {
			best = c
		}
		ok = true
	}
	return best.Dir, ok
}
