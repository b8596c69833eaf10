package engine

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// MoveResult is the outcome of sliding a grid in one direction.
type MoveResult struct {
	Grid         Grid
	Frozen       []FrozenSlot // Frozen records after hits; thawed cells are dropped
	Changed      bool
	Merged       []Pos // Final positions of merged tiles
	Damage       []int // Value of every tile-tile merge
	TargetMerges []int // Value of every tile-target merge
	FrozenHits   []Pos
	Thawed       []Pos // Frozen cells that reverted to their tile this move
}

// line returns the positions of line i ordered from the side tiles move toward.
func line(dir Direction, i int) [Size]Pos {
	var out [Size]Pos
	for k := range Size {
		switch dir {
		case DirLeft:
			out[k] = Pos{i, k}
		case DirRight:
			out[k] = Pos{i, Size - 1 - k}
		case DirUp:
			out[k] = Pos{k, i}
		case DirDown:
			out[k] = Pos{Size - 1 - k, i}
		}
	}
	return out
}

// Slide moves every tile in dir without mutating its inputs.
//
// Frozen cells are hit first: a tile directly in front of a frozen cell
// (on the side the line moves toward) whose value is at least the frozen
// value is destroyed and costs the cell one hit. Then each line is split at
// blocked and frozen walls and every segment is compacted and merged once.
func Slide(g Grid, frozen []FrozenSlot, dir Direction) MoveResult {
	res := MoveResult{
		Grid:   g,
		Frozen: append([]FrozenSlot(nil), frozen...),
	}

	for i := range Size {
		cells := line(dir, i)
		for k := 1; k < Size; k++ {
			target, attacker := cells[k], cells[k-1]
			if res.Grid.At(target) != Frozen || res.Grid.At(attacker) <= 0 {
				continue
			}
			idx := findFrozen(res.Frozen, target)
			if idx < 0 || res.Grid.At(attacker) < res.Frozen[idx].Value {
				continue
			}
			res.Grid.Set(attacker, Empty)
			res.Frozen[idx].Hits--
			res.FrozenHits = append(res.FrozenHits, target)
			res.Changed = true
			if res.Frozen[idx].Hits <= 0 {
				res.Grid.Set(target, res.Frozen[idx].Value)
				res.Thawed = append(res.Thawed, target)
				res.Frozen = append(res.Frozen[:idx], res.Frozen[idx+1:]...)
			}
		}
	}

	for i := range Size {
		cells := line(dir, i)
		var in [Size]int
		for k, p := range cells {
			in[k] = res.Grid.At(p)
		}

		ls := slideLine(in)
		for k, p := range cells {
			if ls.out[k] != in[k] {
				res.Changed = true
			}
			res.Grid.Set(p, ls.out[k])
		}
		for _, k := range ls.merged {
			res.Merged = append(res.Merged, cells[k])
		}
		res.Damage = append(res.Damage, ls.damage...)
		res.TargetMerges = append(res.TargetMerges, ls.targets...)
	}

	return res
}

type lineSlide struct {
	out     [Size]int
	merged  []int
	damage  []int
	targets []int
}

// slideLine compacts a single line toward index 0.
func slideLine(in [Size]int) lineSlide {
	var ls lineSlide
	start := 0
	for i := 0; i <= Size; i++ {
		if i < Size && !isWall(in[i]) {
			continue
		}
		if i < Size {
			ls.out[i] = in[i]
		}
		if i > start {
			ls.segment(in, start, i)
		}
		start = i + 1
	}
	return ls
}

type piece struct {
	value  int
	at     int // source index in the line
	merged bool
}

// segment compacts in[start:end]. Ghosts and static targets keep their
// cells; ghosts are invisible to merging while targets take part in it.
func (ls *lineSlide) segment(in [Size]int, start, end int) {
	var pieces []piece
	for k := start; k < end; k++ {
		if in[k] != Empty && in[k] != Ghost {
			pieces = append(pieces, piece{value: in[k], at: k})
		}
	}

	for j := 0; j+1 < len(pieces); j++ {
		cur, next := &pieces[j], &pieces[j+1]
		tv, curTarget := TargetValue(cur.value)
		nv, nextTarget := TargetValue(next.value)
		switch {
		case cur.value > 0 && cur.value == next.value:
			cur.value *= 2
			cur.merged = true
			ls.damage = append(ls.damage, cur.value)
			next.value = Empty
		case cur.value > 0 && nextTarget && cur.value == nv:
			ls.targets = append(ls.targets, cur.value)
			cur.value, next.value = Empty, Empty
		case curTarget && next.value > 0 && next.value == tv:
			ls.targets = append(ls.targets, next.value)
			cur.value, next.value = Empty, Empty
		}
	}

	pinned := make(map[int]bool)
	for k := start; k < end; k++ {
		if in[k] == Ghost {
			ls.out[k] = Ghost
			pinned[k] = true
		}
	}
	var movers []piece
	for _, p := range pieces {
		switch {
		case p.value == Empty:
		case IsTarget(p.value):
			ls.out[p.at] = p.value
			pinned[p.at] = true
		default:
			movers = append(movers, p)
		}
	}

	k := start
	for _, p := range movers {
		for pinned[k] {
			k++
		}
		ls.out[k] = p.value
		if p.merged {
			ls.merged = append(ls.merged, k)
		}
		k++
	}
}
