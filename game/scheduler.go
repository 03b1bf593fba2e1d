package game

import (
	"sort"
	"time"
)

// scheduledCall is a one-shot callback due at a game-clock instant
type scheduledCall struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Scheduler runs delayed callbacks on game time. Game time only advances
// while the session is running, so pausing freezes every pending call.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	pending []scheduledCall
}

// NewScheduler creates a scheduler at game time zero
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make([]scheduledCall, 0, 8)}
}

// Now returns the current game time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// DelayedCall schedules fn to run once, d after the current game time
func (s *Scheduler) DelayedCall(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, scheduledCall{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves game time forward by dt and runs every call that became due,
// in due order. Calls scheduled from inside a callback wait for the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	s.now += dt

	var due []scheduledCall
	kept := s.pending[:0]
	for _, c := range s.pending {
		if c.due <= s.now {
			due = append(due, c)
		} else {
			kept = append(kept, c)
		}
	}
	s.pending = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, c := range due {
		c.fn()
	}
}

// Pending returns how many calls are waiting
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Reset drops every pending call and rewinds game time to zero
func (s *Scheduler) Reset() {
	s.now = 0
	s.pending = s.pending[:0]
}
