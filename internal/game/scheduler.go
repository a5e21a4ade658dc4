package game

import "sort"

// TimerID identifies a scheduled effect. The zero value is never issued.
type TimerID uint64

// timer is one pending deferred effect.
type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Scheduler is the simulation's logical clock and deferred-effect queue.
// Effects never run on their own goroutine: Advance only moves the clock and
// RunDue fires whatever has come due, so callers choose the point in the
// frame step at which deferred state changes land.
type Scheduler struct {
	now     float64
	nextID  TimerID
	pending []*timer
}

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Advance moves the clock forward. Non-positive deltas are ignored.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
}

// After schedules fn to run once the clock reaches now+delay.
// A negative delay is treated as zero.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 || !finite(delay) {
		delay = 0
	}
	s.nextID++
	s.pending = append(s.pending, &timer{id: s.nextID, due: s.now + delay, fn: fn})
	return s.nextID
}

// Cancel drops a pending timer. Unknown or already-fired ids are ignored.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.pending {
		if t.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// RunDue fires every timer whose due time has been reached, earliest first
// and in scheduling order for ties. Timers scheduled by a firing callback
// wait for the next RunDue even if already due. Returns how many fired.
func (s *Scheduler) RunDue() int {
	var due, keep []*timer
	for _, t := range s.pending {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.pending = keep
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of timers not yet fired.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Reset drops every pending timer and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.pending = nil
	s.now = 0
}
