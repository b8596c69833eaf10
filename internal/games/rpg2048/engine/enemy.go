package engine

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/rpg2048/internal/config"
)

// GoalType is the condition that defeats an enemy.
type GoalType string

const (
	GoalHPDamage    GoalType = config.GoalHPDamage    // Any merge damage counts
	GoalHPFiltered  GoalType = config.GoalHPFiltered  // Only listed merge values count
	GoalMergeList   GoalType = config.GoalMergeList   // Any listed merge value wins instantly
	GoalBuildTile   GoalType = config.GoalBuildTile   // Building a listed tile wins instantly
	GoalTargetMerge GoalType = config.GoalTargetMerge // Merging into every static target wins
)

// Mechanics are the attacks an enemy may use.
type Mechanics struct {
	Block   bool
	Burn    bool
	Freeze  bool
	Ghost   bool
	Shuffle bool
	Delete  bool
}

// Allows reports whether the mechanics include the attack kind.
func (m Mechanics) Allows(k AttackKind) bool {
	switch k {
	case AttackBlock:
		return m.Block
	case AttackBurn:
		return m.Burn
	case AttackFreeze:
		return m.Freeze
	case AttackGhost:
		return m.Ghost
	case AttackShuffle:
		return m.Shuffle
	case AttackDelete:
		return m.Delete
	default:
		return false
	}
}

// Enemy is the opponent of a single level.
type Enemy struct {
	Name         string
	Level        int
	HP           int
	MaxHP        int
	Goal         GoalType
	GoalValues   []int
	TargetsToHit []int
	Text         string
	Boss         bool
	Mechanics
}

// DamageOutcome describes how a move's merges affected the enemy.
type DamageOutcome struct {
	Valid      int  // Damage subtracted from hp
	Matched    int  // Target merges accepted
	Resisted   bool // Some merge did not count toward the goal
	InstantWin bool // A non-hp goal was met
	Defeated   bool
}

// Alive reports whether the enemy still stands.
func (e *Enemy) Alive() bool {
	return e.HP > 0
}

// Clone returns a deep copy.
func (e Enemy) Clone() Enemy {
	e.GoalValues = slices.Clone(e.GoalValues)
	e.TargetsToHit = slices.Clone(e.TargetsToHit)
	return e
}

// ApplyDamage resolves one move's merge values against the goal.
// A defeated enemy ignores further damage.
func (e *Enemy) ApplyDamage(damage, targets []int) DamageOutcome {
	var out DamageOutcome
	if !e.Alive() {
		return out
	}

	switch e.Goal {
	case GoalHPDamage:
		for _, v := range damage {
			out.Valid += v
		}
	case GoalHPFiltered:
		for _, v := range damage {
			if slices.Contains(e.GoalValues, v) {
				out.Valid += v
			} else {
				out.Resisted = true
			}
		}
	case GoalMergeList, GoalBuildTile:
		for _, v := range damage {
			if slices.Contains(e.GoalValues, v) {
				out.InstantWin = true
			} else {
				out.Resisted = true
			}
		}
	case GoalTargetMerge:
		if len(targets) > 0 {
			for _, v := range targets {
				if i := slices.Index(e.TargetsToHit, v); i >= 0 {
					e.TargetsToHit = slices.Delete(e.TargetsToHit, i, i+1)
					out.Matched++
				}
			}
			if len(e.TargetsToHit) == 0 {
				out.InstantWin = true
			}
		}
		if len(damage) > 0 {
			out.Resisted = true
		}
	}

	if out.Valid > 0 {
		e.HP -= out.Valid
	}
	if out.InstantWin || e.HP <= 0 {
		e.HP = 0
		out.Defeated = true
	}
	return out
}

// Preview reports what ApplyDamage would do without changing the enemy.
func (e Enemy) Preview(damage, targets []int) DamageOutcome {
	c := e.Clone()
	return c.ApplyDamage(damage, targets)
}

// ShowsHPBar reports whether the goal is tracked through hit points.
func (e Enemy) ShowsHPBar() bool {
	return e.Goal == GoalHPDamage || e.Goal == GoalHPFiltered
}

// Progress returns target merges done and required. Both are zero for other goals.
func (e Enemy) Progress() (done, total int) {
	if e.Goal != GoalTargetMerge {
		return 0, 0
	}
	total = len(e.GoalValues)
	return total - len(e.TargetsToHit), total
}

// ConditionText returns the goal text, with progress once target merging has started.
func (e Enemy) ConditionText() string {
	done, total := e.Progress()
	if done > 0 {
		return fmt.Sprintf("%s (%d/%d)", e.Text, done, total)
	}
	return e.Text
}
