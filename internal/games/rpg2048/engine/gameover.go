package engine

import "fmt"

// Game over messages.
const (
	MsgNoPieces = "No pieces left!"
	MsgNoMoves  = "No moves left!"
)

// HasValidMoves reports whether any move could still change the board: an
// empty cell, an equal tile pair or tile/target pair next to each other, a
// frozen cell next to a tile strong enough to hit it, or any ghost.
func HasValidMoves(g Grid, frozen []FrozenSlot) bool {
	if len(g.EmptyCells()) > 0 {
		return true
	}

	for r := range Size {
		for c := range Size {
			if c+1 < Size && canPair(g[r][c], g[r][c+1]) {
				return true
			}
			if r+1 < Size && canPair(g[r][c], g[r+1][c]) {
				return true
			}
		}
	}

	for r := range Size {
		for c := range Size {
			if g[r][c] != Frozen {
				continue
			}
			slot, ok := FrozenAt(frozen, Pos{r, c})
			if !ok {
				continue
			}
			for _, n := range neighbors(Pos{r, c}) {
				if v := g.At(n); v > 0 && v >= slot.Value {
					return true
				}
			}
		}
	}

	return g.Count(func(v int) bool { return v == Ghost }) > 0
}

// canPair reports whether two adjacent cells could merge.
func canPair(a, b int) bool {
	if a > 0 && a == b {
		return true
	}
	if tv, ok := TargetValue(b); ok && a > 0 && a == tv {
		return true
	}
	if tv, ok := TargetValue(a); ok && b > 0 && b == tv {
		return true
	}
	return false
}

func neighbors(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	if p.R > 0 {
		out = append(out, Pos{p.R - 1, p.C})
	}
	if p.R < Size-1 {
		out = append(out, Pos{p.R + 1, p.C})
	}
	if p.C > 0 {
		out = append(out, Pos{p.R, p.C - 1})
	}
	if p.C < Size-1 {
		out = append(out, Pos{p.R, p.C + 1})
	}
	return out
}

// checkGameOver ends the game when no tile is left or no move is possible.
func (s *Session) checkGameOver() {
	if s.won || s.over {
		return
	}
	if s.grid.Count(IsTile) == 0 {
		s.gameOver(MsgNoPieces)
		return
	}
	if !HasValidMoves(s.grid, s.frozen) {
		s.gameOver(MsgNoMoves)
	}
}

func (s *Session) gameOver(msg string) {
	s.over = true
	s.overMessage = msg
	s.paused = true
	s.clearTimers()
	s.saveHighScore()
	s.log.Debug("game over", "reason", msg, "defeated", s.defeated)
	s.emit(Update{Kind: UpdateGameOver, Message: msg})
}

// checkWin sets the won flag once the win tile appears.
func (s *Session) checkWin() {
	if s.won {
		return
	}
	win := s.cfg.Board.WinTile
	if s.grid.Count(func(v int) bool { return v == win }) == 0 {
		return
	}
	s.won = true
	s.clearTimers()
	s.log.Debug("win tile reached", "tile", win)
	s.emit(Update{Kind: UpdateWin, Message: fmt.Sprintf("You reached %d!", win)})
}

// spawnTile places one new tile and reports it.
func (s *Session) spawnTile() {
	p, ok := Spawn(&s.grid, s.rng, s.cfg.Board.TwoChance)
	u := Update{Kind: UpdateSpawn}
	if ok {
		u.Spawned = []Pos{p}
	}
	s.emit(u)
}
