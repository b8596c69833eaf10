package engine

import (
	"sort"
	"time"
)

// AttackKind identifies an enemy attack.
type AttackKind int

// Attacks due at the same instant fire in this order.
const (
	AttackBlock AttackKind = iota
	AttackBurn
	AttackFreeze
	AttackGhost
	AttackShuffle
	AttackDelete
	numAttacks
)

// AttackKinds lists every attack in firing order.
var AttackKinds = [...]AttackKind{AttackBlock, AttackBurn, AttackFreeze, AttackGhost, AttackShuffle, AttackDelete}

// String returns the attack name.
func (k AttackKind) String() string {
	switch k {
	case AttackBlock:
		return "block"
	case AttackBurn:
		return "burn"
	case AttackFreeze:
		return "freeze"
	case AttackGhost:
		return "ghost"
	case AttackShuffle:
		return "shuffle"
	case AttackDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseAttackKind returns the attack with the given name.
func ParseAttackKind(name string) (AttackKind, bool) {
	for _, k := range AttackKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// timer is one attack clock. Repeating timers advance by every after firing;
// the delete timer is one-shot and re-armed by its own completion.
type timer struct {
	armed bool
	next  time.Duration
	every time.Duration
}

// delayed is an effect queued on the logical clock.
type delayed struct {
	at  time.Duration
	seq uint64
	run func()
}

// after queues fn to run d from now. Effects due at the same instant run in
// the order they were queued.
func (s *Session) after(d time.Duration, fn func()) {
	s.seq++
	e := delayed{at: s.now + d, seq: s.seq, run: fn}
	i := sort.Search(len(s.pending), func(i int) bool {
		p := s.pending[i]
		return p.at > e.at || (p.at == e.at && p.seq > e.seq)
	})
	s.pending = append(s.pending, delayed{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = e
}

// Advance moves the logical clock forward by dt, firing every queued effect
// and attack that falls due on the way. Queued effects run before attacks
// due at the same instant.
func (s *Session) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	limit := s.now + dt
	for {
		at, run, ok := s.nextEvent(limit)
		if !ok {
			break
		}
		s.now = at
		run()
	}
	s.now = limit
}

func (s *Session) nextEvent(limit time.Duration) (time.Duration, func(), bool) {
	var (
		best  = limit + 1
		run   func()
		found bool
	)
	if len(s.pending) > 0 && s.pending[0].at <= limit {
		best = s.pending[0].at
		found = true
		run = func() {
			e := s.pending[0]
			s.pending = s.pending[1:]
			e.run()
		}
	}
	for _, k := range AttackKinds {
		t := s.timers[k]
		if t.armed && t.next <= limit && t.next < best {
			best = t.next
			found = true
			kind := k
			run = func() { s.fireTimer(kind) }
		}
	}
	return best, run, found
}

func (s *Session) fireTimer(k AttackKind) {
	t := &s.timers[k]
	if k == AttackDelete {
		t.armed = false
	} else {
		t.next += t.every
	}
	s.attack(k)
}

// startTimers arms every attack the enemy uses with the level pace.
func (s *Session) startTimers() {
	s.scheduleDelete()
	s.arm(AttackBlock, s.pace.Block)
	s.arm(AttackBurn, s.pace.Burn)
	s.arm(AttackFreeze, s.pace.Freeze)
	s.arm(AttackGhost, s.pace.Ghost)
	s.arm(AttackShuffle, s.pace.Shuffle)
}

func (s *Session) arm(k AttackKind, every time.Duration) {
	s.timers[k] = timer{}
	if !s.enemy.Allows(k) || every <= 0 {
		return
	}
	s.timers[k] = timer{armed: true, next: s.now + every, every: every}
}

// scheduleDelete arms the one-shot delete timer with a random delay in
// [DeleteMin, DeleteMax). It stays disarmed while paused; resuming re-arms it.
func (s *Session) scheduleDelete() {
	s.timers[AttackDelete] = timer{}
	if !s.enemy.Delete || s.paused {
		return
	}
	delay := s.pace.DeleteMin
	if span := s.pace.DeleteMax - s.pace.DeleteMin; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span)))
	}
	s.timers[AttackDelete] = timer{armed: true, next: s.now + delay}
}

func (s *Session) clearTimers() {
	s.timers = [numAttacks]timer{}
}

// TimerArmed reports whether the attack clock is running and when it fires next.
func (s *Session) TimerArmed(k AttackKind) (time.Duration, bool) {
	if k < 0 || k >= numAttacks {
		return 0, false
	}
	t := s.timers[k]
	return t.next, t.armed
}
