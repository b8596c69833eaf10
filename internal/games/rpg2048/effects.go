package rpg2048

import (
	"strings"
	"time"

	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
)

// Effect durations. Effects of delayed attacks last as long as the attack's
// own delay so the highlight ends when the board changes.
const (
	flashDuration  = 250 * time.Millisecond
	bannerDuration = 1500 * time.Millisecond
)

// EffectKind is the highlight drawn on a cell.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSpawn
	EffectMerge
	EffectDelete
	EffectBlock
	EffectBurn
	EffectFreeze
	EffectFrozenHit
	EffectGhost
	EffectShuffle
)

type cellEffect struct {
	kind EffectKind
	left time.Duration
}

// effects tracks short-lived highlights and the message banner.
type effects struct {
	timing     config.TimingConfig
	cells      [engine.Size][engine.Size]cellEffect
	banner     string
	bannerLeft time.Duration
}

func newEffects(timing config.TimingConfig) effects {
	return effects{timing: timing}
}

func (e *effects) mark(ps []engine.Pos, kind EffectKind, d time.Duration) {
	for _, p := range ps {
		e.cells[p.R][p.C] = cellEffect{kind: kind, left: d}
	}
}

func (e *effects) say(msg string) {
	e.banner = msg
	e.bannerLeft = bannerDuration
}

// absorb turns engine updates into highlights.
func (e *effects) absorb(updates []engine.Update) {
	for _, u := range updates {
		switch u.Kind {
		case engine.UpdateLevel:
			e.cells = [engine.Size][engine.Size]cellEffect{}
			e.mark(u.Spawned, EffectSpawn, flashDuration)
			e.say(u.Message + " appears!")
		case engine.UpdateMove:
			e.mark(u.Merged, EffectMerge, flashDuration)
			e.mark(u.FrozenHits, EffectFrozenHit, flashDuration)
		case engine.UpdateSpawn:
			e.mark(u.Spawned, EffectSpawn, flashDuration)
		case engine.UpdateAttack:
			e.absorbAttack(u)
		case engine.UpdateEffect:
			if u.Attack == engine.AttackBurn {
				e.mark(u.Spawned, EffectBurn, flashDuration)
			}
		case engine.UpdateDefeat, engine.UpdateGameOver, engine.UpdateWin:
			e.say(u.Message)
		}
	}
}

func (e *effects) absorbAttack(u engine.Update) {
	switch u.Attack {
	case engine.AttackBlock:
		e.mark(u.Blocked, EffectBlock, flashDuration)
	case engine.AttackBurn:
		e.mark(u.Burned, EffectBurn, e.timing.Burn)
	case engine.AttackFreeze:
		e.mark(u.Frozen, EffectFreeze, flashDuration)
	case engine.AttackGhost:
		e.mark(u.Ghosted, EffectGhost, flashDuration)
	case engine.AttackShuffle:
		e.mark(u.Shuffled, EffectShuffle, e.timing.Shuffle)
	case engine.AttackDelete:
		e.mark(u.Deleted, EffectDelete, e.timing.Delete)
	}
	e.say("Enemy uses " + strings.ToUpper(u.Attack.String()) + "!")
}

// step ages every effect by dt.
func (e *effects) step(dt time.Duration) {
	for r := range engine.Size {
		for c := range engine.Size {
			ce := &e.cells[r][c]
			if ce.kind == EffectNone {
				continue
			}
			ce.left -= dt
			if ce.left <= 0 {
				*ce = cellEffect{}
			}
		}
	}
	if e.bannerLeft > 0 {
		e.bannerLeft -= dt
		if e.bannerLeft <= 0 {
			e.banner = ""
		}
	}
}

// At returns the effect on a cell.
func (e *effects) At(p engine.Pos) EffectKind {
	return e.cells[p.R][p.C].kind
}

// Banner returns the current message, or "" when none is showing.
func (e *effects) Banner() string {
	return e.banner
}
