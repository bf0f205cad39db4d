package playercam

import (
	"cmp"
	"slices"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Time is the per-step frame clock resource.
type Time struct {
	Time time.Time
	Dt   time.Duration
}

type TimeModule struct{}

func (mod TimeModule) Install(host *Host) {
	host.AddResources(&Time{
		Time: host.Clock().Now(),
		Dt:   0,
	})
}

func (t *Time) advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
}

// Scheduler defers a call until at least delay has elapsed. Calls always run
// on the host loop, never concurrently.
type Scheduler interface {
	CallLater(delay time.Duration, fn func())
}

type deferredCall struct {
	due time.Time
	seq uint64
	fn  func()
}

// FrameScheduler queues deferred calls and runs the due ones from RunDue.
type FrameScheduler struct {
	clock   Clock
	pending []deferredCall
	seq     uint64
}

func NewFrameScheduler(clock Clock) *FrameScheduler {
	return &FrameScheduler{clock: clock}
}

func (s *FrameScheduler) CallLater(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.pending = append(s.pending, deferredCall{
		due: s.clock.Now().Add(delay),
		seq: s.seq,
		fn:  fn,
	})
}

// RunDue runs every call due at or before now, earliest first, and returns how
// many ran. Calls scheduled while running wait for the next RunDue.
func (s *FrameScheduler) RunDue(now time.Time) int {
	if len(s.pending) == 0 {
		return 0
	}

	var due, later []deferredCall
	for _, c := range s.pending {
		if c.due.After(now) {
			later = append(later, c)
		} else {
			due = append(due, c)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.pending = later

	slices.SortFunc(due, func(a, b deferredCall) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, c := range due {
		c.fn()
	}
	return len(due)
}

func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// NextDue reports when the earliest pending call becomes due.
func (s *FrameScheduler) NextDue() (time.Time, bool) {
	if len(s.pending) == 0 {
		return time.Time{}, false
	}
	next := s.pending[0].due
	for _, c := range s.pending[1:] {
		if c.due.Before(next) {
			next = c.due
		}
	}
	return next, true
}
