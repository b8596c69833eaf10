package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/rpg2048/internal/config"
)

// IsBossLevel reports whether the 0-based level is a boss fight.
func IsBossLevel(level int) bool {
	return (level+1)%10 == 0
}

// MechanicsForLevel returns the attacks unlocked at a 0-based level.
//
// Each band of ten levels introduces one attack, and its boss unlocks the
// next one: block from 9, burn from 19, freeze from 29, ghost from 39 and
// shuffle on the level-49 boss. From level 50 on the attacks cycle every ten
// levels and every boss also shuffles. Delete is always on.
func MechanicsForLevel(level int) Mechanics {
	m := Mechanics{Delete: true}
	switch {
	case level <= 8:
	case level <= 18:
		m.Block = true
	case level <= 28:
		m.Burn = true
	case level <= 38:
		m.Freeze = true
	case level <= 48:
		m.Ghost = true
	case level == 49:
		m.Shuffle = true
	default:
		m.Shuffle = IsBossLevel(level)
		switch ((level - 50) / 10) % 5 {
		case 1:
			m.Block = true
		case 2:
			m.Burn = true
		case 3:
			m.Freeze = true
		case 4:
			m.Ghost = true
		}
	}
	return m
}

// PoolForLevel returns the challenge pool that regular enemies of the level draw from.
func PoolForLevel(level int, pools config.PoolsConfig) []config.Challenge {
	switch {
	case level <= 8:
		return pools.Easy
	case level <= 18:
		return pools.Medium
	case level <= 28:
		return pools.Hard
	default:
		return pools.Epic
	}
}

// bossChallenge returns the boss entry for a boss level. The n-th boss
// (n = (level+1)/10) uses entry n, and the last entry once the list runs out.
func bossChallenge(level int, bosses []config.Challenge) config.Challenge {
	n := (level + 1) / 10
	return bosses[min(n, len(bosses))-1]
}

// NewEnemy builds the enemy for a 0-based level. The pool draw is the only
// random input.
func NewEnemy(level int, pools config.PoolsConfig, rng *rand.Rand) Enemy {
	boss := IsBossLevel(level)

	var ch config.Challenge
	if boss {
		ch = bossChallenge(level, pools.Bosses)
	} else {
		pool := PoolForLevel(level, pools)
		ch = pool[rng.Intn(len(pool))]
	}

	hp := ch.HP
	if !config.IsHPGoal(ch.Goal) {
		hp = 1
	}

	e := Enemy{
		Name:       fmt.Sprintf("Enemy Level %d", level+1),
		Level:      level,
		HP:         hp,
		MaxHP:      hp,
		Goal:       GoalType(ch.Goal),
		GoalValues: append([]int(nil), ch.Values...),
		Text:       ch.Text,
		Boss:       boss,
		Mechanics:  MechanicsForLevel(level),
	}
	if e.Goal == GoalTargetMerge {
		e.TargetsToHit = append([]int(nil), ch.Values...)
	}
	return e
}
