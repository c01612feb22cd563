package fsm

import "sort"

// scheduledCall is one deadline entry: run fn once the machine clock
// reaches at.
type scheduledCall struct {
	at float64
	fn func()
}

// Scheduler replaces coroutine-style "wait, then resume" sequences with
// deadline entries checked each tick. Nothing blocks; the tick simply runs
// whatever has come due.
type Scheduler struct {
	pending []scheduledCall
}

// After schedules fn to run once now+delay is reached.
func (s *Scheduler) After(now, delay float64, fn func()) {
	call := scheduledCall{at: now + delay, fn: fn}
	i := sort.Search(len(s.pending), func(i int) bool {
		return s.pending[i].at > call.at
	})
	s.pending = append(s.pending, scheduledCall{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = call
}

// Run executes every entry due at now, in deadline order.
func (s *Scheduler) Run(now float64) {
	for len(s.pending) > 0 && s.pending[0].at <= now {
		call := s.pending[0]
		s.pending = s.pending[1:]
		call.fn()
	}
}

// Clear drops all pending entries, used on despawn and session teardown.
func (s *Scheduler) Clear() {
	s.pending = nil
}
