package engine

import "slices"

// BlockedSlot remembers the value hidden under a blocked cell.
type BlockedSlot struct {
	ID int
	Pos
	Value int
}

// FrozenSlot remembers a frozen tile and the hits left to break it.
type FrozenSlot struct {
	ID int
	Pos
	Value int
	Hits  int
}

// GhostSlot remembers the tile concealed by a ghost cell. Shuffled ghosts
// no longer revert on their own.
type GhostSlot struct {
	ID int
	Pos
	Value    int
	Shuffled bool
}

func findFrozen(slots []FrozenSlot, p Pos) int {
	return slices.IndexFunc(slots, func(s FrozenSlot) bool { return s.Pos == p })
}

// FrozenAt returns the frozen record at p, if any.
func FrozenAt(slots []FrozenSlot, p Pos) (FrozenSlot, bool) {
	if i := findFrozen(slots, p); i >= 0 {
		return slots[i], true
	}
	return FrozenSlot{}, false
}

// GhostAt returns the ghost record at p, if any.
func GhostAt(slots []GhostSlot, p Pos) (GhostSlot, bool) {
	if i := slices.IndexFunc(slots, func(s GhostSlot) bool { return s.Pos == p }); i >= 0 {
		return slots[i], true
	}
	return GhostSlot{}, false
}
