// Package engine implements the rpg2048 rules: the slide engine with walls,
// ghosts, static targets and frozen hits, the enemy goal machine, the attack
// scheduler on a logical clock, and the move processor that ties them together.
//
// The package never touches a terminal or a wall clock. Front-ends feed it
// directional intents and elapsed time, and read back state and view updates.
package engine

import (
	"math/rand"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// Cell encodings. Positive values are ordinary tiles.
const (
	Empty   = 0
	Blocked = -1
	Frozen  = -2
	Ghost   = -3

	// Static targets are stored as -(value + targetOffset).
	targetOffset = 100
)

// Grid is the 4x4 board, indexed [row][col].
type Grid [Size][Size]int

// Pos is a board position.
type Pos struct {
	R, C int
}

// TargetCell encodes a static target tile of the given value.
func TargetCell(value int) int {
	return -(value + targetOffset)
}

// TargetValue decodes a static target cell. ok is false for any other cell.
func TargetValue(cell int) (value int, ok bool) {
	if cell < -targetOffset {
		return -cell - targetOffset, true
	}
	return 0, false
}

// IsTile reports whether the cell holds an ordinary tile.
func IsTile(cell int) bool { return cell > 0 }

// IsTarget reports whether the cell holds a static target.
func IsTarget(cell int) bool { return cell < -targetOffset }

// isWall reports whether the cell splits a line into segments.
func isWall(cell int) bool { return cell == Blocked || cell == Frozen }

// At returns the cell at p.
func (g *Grid) At(p Pos) int { return g[p.R][p.C] }

// Set stores v at p.
func (g *Grid) Set(p Pos, v int) { g[p.R][p.C] = v }

// Cells returns the positions whose cell satisfies keep, in row-major order.
func (g *Grid) Cells(keep func(int) bool) []Pos {
	var out []Pos
	for r := range Size {
		for c := range Size {
			if keep(g[r][c]) {
				out = append(out, Pos{r, c})
			}
		}
	}
	return out
}

// EmptyCells returns all empty positions.
func (g *Grid) EmptyCells() []Pos {
	return g.Cells(func(v int) bool { return v == Empty })
}

// HasTileAtLeast reports whether any ordinary tile is >= v.
func (g *Grid) HasTileAtLeast(v int) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] > 0 && g[r][c] >= v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest ordinary tile, or 0.
func (g *Grid) MaxTile() int {
	best := 0
	for r := range Size {
		for c := range Size {
			best = max(best, g[r][c])
		}
	}
	return best
}

// Count returns the number of cells satisfying keep.
func (g *Grid) Count(keep func(int) bool) int {
	n := 0
	for r := range Size {
		for c := range Size {
			if keep(g[r][c]) {
				n++
			}
		}
	}
	return n
}

// Spawn places a 2 (with probability twoChance) or a 4 on a uniformly random
// empty cell. ok is false when the board has no empty cell.
func Spawn(g *Grid, rng *rand.Rand, twoChance float64) (Pos, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Pos{}, false
	}
	p := empty[rng.Intn(len(empty))]
	v := 4
	if rng.Float64() < twoChance {
		v = 2
	}
	g.Set(p, v)
	return p, true
}

// String renders the grid one row per line, for logs and test failures.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cellString(g[r][c]))
		}
	}
	return sb.String()
}

func cellString(v int) string {
	switch {
	case v == Empty:
		return "."
	case v == Blocked:
		return "#"
	case v == Frozen:
		return "*"
	case v == Ghost:
		return "?"
	case IsTarget(v):
		t, _ := TargetValue(v)
		return "T" + strconv.Itoa(t)
	default:
		return strconv.Itoa(v)
	}
}
