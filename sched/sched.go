package sched

import (
	"context"
	"log"
	"time"

	"coopdoor/clock"
	"coopdoor/store"
)

// DefaultInterval is the scheduler tick period.
const DefaultInterval = 5 * time.Second

const day = 24 * 60 * 60 // seconds

// Runner dispatches a timed motion on an actuator identity. Dispatch
// must return without awaiting the motion so one long motion cannot
// delay evaluation of the remaining entries in a pass.
type Runner interface {
	Dispatch(id string, speedPercent int, duration float64) error
}

// Scheduler periodically walks the store and fires entries that are
// due. It runs independently of the menu; the store is the only thing
// the two share.
type Scheduler struct {
	store    *store.Store
	clock    clock.Clock
	runner   Runner
	interval time.Duration
}

// New creates a Scheduler. A non-positive interval selects
// DefaultInterval.
func New(st *store.Store, clk clock.Clock, runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{store: st, clock: clk, runner: runner, interval: interval}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// Tick runs one evaluation pass over every schedule entry.
func (s *Scheduler) Tick() {
	now, valid := s.clock.Now()
	if !valid {
		log.Printf("Scheduler: clock has no reference, skipping pass")
		return
	}
	nowEpoch := now.Unix()

	for _, id := range s.store.IDs() {
		e := s.store.Get(id)

		if e.NextFire == 0 {
			if e.OneShot {
				// Fired one-shots stay dormant until re-armed.
				continue
			}
			if e.Disabled() {
				continue
			}
			next := nextOccurrence(now, *e.Hour, *e.Minute)
			if s.store.AdvanceNextFire(id, e, next.Unix()) {
				log.Printf("Scheduler: %q next run at %s", id, next.Format("2006-01-02 15:04"))
			}
			continue
		}

		if nowEpoch <= e.NextFire {
			continue
		}

		log.Printf("Scheduler: %q due (scheduled %d, now %d), running", id, e.NextFire, nowEpoch)
		if err := s.runner.Dispatch(store.BaseID(id), e.SpeedPercent(), e.Duration); err != nil {
			log.Printf("Scheduler: entry %q: %v", id, err)
			continue
		}

		// Advance by exactly one day instead of recomputing from the
		// wall clock: a slow pass can neither skip a day nor fire
		// twice. One-shots go dormant instead. The advance only lands
		// if no UI commit touched the entry while the motion was being
		// dispatched; a stale advance would resurrect a timestamp the
		// user just reset.
		next := int64(0)
		if !e.OneShot {
			next = e.NextFire + day
		}
		if !s.store.AdvanceNextFire(id, e, next) {
			log.Printf("Scheduler: %q changed during the run, not advancing", id)
		}
	}
}

// nextOccurrence returns the next moment hour:minute comes around: today
// if it has not passed yet, otherwise tomorrow.
func nextOccurrence(now time.Time, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.Before(candidate) {
		return candidate
	}
	return candidate.Add(24 * time.Hour)
}
