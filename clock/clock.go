package clock

import (
	"fmt"
	"sync"
	"time"
)

// Boards without a battery-backed RTC boot with the OS clock near the
// epoch. Anything earlier than this year cannot be a real wall-clock
// reference.
const minValidYear = 2024

// Clock is the wall-clock capability consumed by the scheduler and the
// menu. Now reports valid=false when the backing time source has no
// confirmed reference (fresh boot, lost backup power); callers must
// treat such a reading as unusable rather than as an error.
type Clock interface {
	Now() (time.Time, bool)
	Set(hour, minute int) error
}

// System is a Clock backed by the OS clock plus a settable offset.
// It reports invalid until either the OS clock looks plausible or
// Set has been called.
type System struct {
	mu     sync.Mutex
	offset time.Duration
	valid  bool
}

// NewSystem creates a System clock. The reference is considered
// confirmed when the OS clock already reads a plausible year.
func NewSystem() *System {
	return &System{valid: time.Now().Year() >= minValidYear}
}

// Now implements Clock.Now.
func (s *System) Now() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Add(s.offset), s.valid
}

// Set implements Clock.Set. It moves the clock to hour:minute on the
// current date and marks the reference confirmed.
func (s *System) Set(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("set clock: invalid time %02d:%02d", hour, minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Add(s.offset)
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	s.offset += target.Sub(now)
	s.valid = true
	return nil
}
