package revision

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultAutoCleanDelay is the quiet period after the last paste.
const DefaultAutoCleanDelay = 500 * time.Millisecond

// SchedulerState is idle or pending.
type SchedulerState int

const (
	Idle SchedulerState = iota
	Pending
)

func (s SchedulerState) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Scheduler is a trailing-edge debounce for auto-clean on paste. Each Paste
// re-arms the timer; the trigger runs once the timer expires with no newer
// paste. The trigger runs on the timer goroutine.
type Scheduler struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	delay   time.Duration
	trigger func()
	state   SchedulerState
	timer   clockwork.Timer
	gen     uint64
	stopped bool
}

// NewScheduler returns an idle scheduler. A nil clock means the real clock;
// a non-positive delay means DefaultAutoCleanDelay.
func NewScheduler(clock clockwork.Clock, delay time.Duration, trigger func()) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultAutoCleanDelay
	}
	return &Scheduler{clock: clock, delay: delay, trigger: trigger}
}

// Paste records a paste event and (re)arms the timer.
func (s *Scheduler) Paste() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.state = Pending
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen != s.gen || s.state != Pending {
		s.mu.Unlock()
		return
	}
	s.state = Idle
	s.timer = nil
	trigger := s.trigger
	s.mu.Unlock()

	if trigger != nil {
		trigger()
	}
}

// Cancel drops any armed timer and returns to idle. The scheduler stays usable.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
}

// Stop cancels any armed timer permanently. Later pastes are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
	s.stopped = true
}

func (s *Scheduler) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// A timer that already fired sees a stale generation and does nothing.
	s.gen++
	s.state = Idle
}

// State returns the current debounce state.
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Delay returns the configured quiet period.
func (s *Scheduler) Delay() time.Duration { return s.delay }
