package engine

import (
	"slices"
)

// attack runs one attack. Every attack is a silent no-op when its guards
// fail or it finds nothing to hit.
func (s *Session) attack(k AttackKind) {
	switch k {
	case AttackBlock:
		s.block()
	case AttackBurn:
		s.burn()
	case AttackFreeze:
		s.freeze()
	case AttackGhost:
		s.ghost()
	case AttackShuffle:
		s.shuffle()
	case AttackDelete:
		s.punish(1, s.scheduleDelete)
	}
}

// DebugAttack triggers an attack immediately, subject to its usual guards.
// It ignores the enemy's mechanics and does not touch the attack clocks.
func (s *Session) DebugAttack(k AttackKind) {
	s.log.Debug("debug attack", "kind", k)
	if k == AttackDelete {
		s.punish(1, nil)
		return
	}
	s.attack(k)
}

func (s *Session) newSlotID() int {
	s.nextSlotID++
	return s.nextSlotID
}

func (s *Session) pick(cells []Pos) Pos {
	return cells[s.rng.Intn(len(cells))]
}

// block walls off a random non-negative cell, empty cells included, and
// restores it after the hold time.
func (s *Session) block() {
	if s.locked || s.paused || len(s.blocked) >= s.pace.MaxBlocks {
		return
	}
	cells := s.grid.Cells(func(v int) bool { return v >= 0 })
	if len(cells) == 0 {
		return
	}
	p := s.pick(cells)
	slot := BlockedSlot{ID: s.newSlotID(), Pos: p, Value: s.grid.At(p)}
	s.blocked = append(s.blocked, slot)
	s.grid.Set(p, Blocked)
	s.log.Debug("attack", "kind", AttackBlock, "pos", p, "value", slot.Value)
	s.emit(Update{Kind: UpdateAttack, Attack: AttackBlock, Blocked: []Pos{p}})

	id := slot.ID
	s.after(s.cfg.Timing.BlockHold, func() { s.unblock(id) })
}

// unblock restores a blocked slot at its current position. It waits for the
// lock to be released, retrying at a fixed interval.
func (s *Session) unblock(id int) {
	if s.locked {
		s.after(s.cfg.Timing.LockRetry, func() { s.unblock(id) })
		return
	}
	i := slices.IndexFunc(s.blocked, func(b BlockedSlot) bool { return b.ID == id })
	if i < 0 {
		return
	}
	slot := s.blocked[i]
	if s.grid.At(slot.Pos) == Blocked {
		s.grid.Set(slot.Pos, slot.Value)
	}
	s.blocked = slices.Delete(s.blocked, i, i+1)
	s.emit(Update{Kind: UpdateRevert, Attack: AttackBlock})
}

// burn halves one random tile of at least BurnMinTile after the burn delay.
// The value read at selection time is the one halved.
func (s *Session) burn() {
	if s.locked || s.paused || !s.enemy.Alive() {
		return
	}
	minTile := s.cfg.Attacks.BurnMinTile
	cells := s.grid.Cells(func(v int) bool { return v > 0 && v >= minTile })
	if len(cells) == 0 {
		return
	}

	s.locked = true
	p := s.pick(cells)
	val := s.grid.At(p)
	s.log.Debug("attack", "kind", AttackBurn, "pos", p, "value", val)
	s.emit(Update{Kind: UpdateAttack, Attack: AttackBurn, Burned: []Pos{p}})

	s.after(s.cfg.Timing.Burn, func() {
		nv := val / 2
		s.grid.Set(p, nv)
		s.locked = false
		u := Update{Kind: UpdateEffect, Attack: AttackBurn}
		if nv > 0 {
			u.Spawned = []Pos{p}
		}
		s.emit(u)
		s.checkGameOver()
	})
}

// freeze turns a random tile into a frozen cell that needs FreezeHits hits to break.
func (s *Session) freeze() {
	if s.locked || s.paused || len(s.frozen) >= s.cfg.Attacks.MaxFrozen {
		return
	}
	cells := s.grid.Cells(IsTile)
	if len(cells) == 0 {
		return
	}
	p := s.pick(cells)
	slot := FrozenSlot{ID: s.newSlotID(), Pos: p, Value: s.grid.At(p), Hits: s.cfg.Attacks.FreezeHits}
	s.frozen = append(s.frozen, slot)
	s.grid.Set(p, Frozen)
	s.log.Debug("attack", "kind", AttackFreeze, "pos", p, "value", slot.Value)
	s.emit(Update{Kind: UpdateAttack, Attack: AttackFreeze, Frozen: []Pos{p}})
}

// ghost hides a random tile for the ghost hold time.
func (s *Session) ghost() {
	if s.locked || s.paused || len(s.ghosts) >= s.cfg.Attacks.MaxGhosts {
		return
	}
	cells := s.grid.Cells(IsTile)
	if len(cells) == 0 {
		return
	}
	p := s.pick(cells)
	slot := GhostSlot{ID: s.newSlotID(), Pos: p, Value: s.grid.At(p)}
	s.ghosts = append(s.ghosts, slot)
	s.grid.Set(p, Ghost)
	s.log.Debug("attack", "kind", AttackGhost, "pos", p, "value", slot.Value)
	s.emit(Update{Kind: UpdateAttack, Attack: AttackGhost, Ghosted: []Pos{p}})

	id := slot.ID
	s.after(s.cfg.Timing.GhostHold, func() { s.unghost(id) })
}

// unghost reveals a ghost. A ghost that was shuffled since it appeared stays.
func (s *Session) unghost(id int) {
	if s.locked {
		s.after(s.cfg.Timing.LockRetry, func() { s.unghost(id) })
		return
	}
	i := slices.IndexFunc(s.ghosts, func(g GhostSlot) bool { return g.ID == id })
	if i < 0 || s.ghosts[i].Shuffled {
		return
	}
	slot := s.ghosts[i]
	if s.grid.At(slot.Pos) == Ghost {
		s.grid.Set(slot.Pos, slot.Value)
	}
	s.ghosts = slices.Delete(s.ghosts, i, i+1)
	s.emit(Update{Kind: UpdateRevert, Attack: AttackGhost})
}

// shuffle permutes all sixteen cells, carrying slot records along, and holds
// the lock until the shuffle delay has passed.
func (s *Session) shuffle() {
	if s.locked || s.paused {
		return
	}
	s.locked = true

	perm := s.rng.Perm(Size * Size)
	old := s.grid
	moved := make(map[Pos]Pos, Size*Size)
	var shuffled []Pos
	for i, j := range perm {
		from := Pos{i / Size, i % Size}
		to := Pos{j / Size, j % Size}
		moved[from] = to
		s.grid.Set(to, old.At(from))
		if old.At(from) != Empty {
			shuffled = append(shuffled, to)
		}
	}
	for i := range s.blocked {
		s.blocked[i].Pos = moved[s.blocked[i].Pos]
	}
	for i := range s.frozen {
		s.frozen[i].Pos = moved[s.frozen[i].Pos]
	}
	for i := range s.ghosts {
		s.ghosts[i].Pos = moved[s.ghosts[i].Pos]
		s.ghosts[i].Shuffled = true
	}

	s.log.Debug("attack", "kind", AttackShuffle)
	s.emit(Update{Kind: UpdateAttack, Attack: AttackShuffle, Shuffled: shuffled})

	s.after(s.cfg.Timing.Shuffle, func() {
		s.locked = false
		s.emit(Update{Kind: UpdateEffect, Attack: AttackShuffle})
		s.checkGameOver()
	})
}

// punish deletes up to count tiles by weighted selection after the delete
// delay. done runs once the deletion finished or was skipped.
func (s *Session) punish(count int, done func()) {
	finish := func() {
		if done != nil {
			done()
		}
	}
	if s.locked || s.paused || !s.enemy.Alive() || count <= 0 {
		finish()
		return
	}

	picks := PickDeletions(s.grid, count, s.cfg.Punish, s.rng)
	if len(picks) == 0 {
		finish()
		return
	}

	s.locked = true
	deleted := make([]Pos, len(picks))
	for i, t := range picks {
		deleted[i] = t.Pos
	}
	s.log.Debug("attack", "kind", AttackDelete, "requested", count, "picked", len(picks))
	s.emit(Update{Kind: UpdateAttack, Attack: AttackDelete, Deleted: deleted})

	s.after(s.cfg.Timing.Delete, func() {
		for _, p := range deleted {
			if s.grid.At(p) > 0 {
				s.grid.Set(p, Empty)
			}
		}
		s.locked = false
		s.emit(Update{Kind: UpdateEffect, Attack: AttackDelete})
		finish()
		s.checkGameOver()
	})
}
