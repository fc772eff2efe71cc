package motor

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// action binds an actuator identity to one direction of one physical
// motor.
type action struct {
	motor    Motor
	motorKey string
	open     bool
}

// Runner owns the registered motors and dispatches timed motions. A
// dispatch starts the motion and schedules the stop; it never blocks
// the caller, so neither the menu loop nor a scheduler pass waits out
// a motion.
type Runner struct {
	mu      sync.Mutex
	actions map[string]action
	stops   map[string]*time.Timer // keyed by motorKey
}

// NewRunner creates an empty Runner.
func NewRunner() *Runner {
	return &Runner{
		actions: make(map[string]action),
		stops:   make(map[string]*time.Timer),
	}
}

// Register binds an actuator identity to a direction of a motor.
// motorKey groups the two directions of one physical motor so a new
// motion replaces whatever the motor was doing.
func (r *Runner) Register(id string, m Motor, motorKey string, open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = action{motor: m, motorKey: motorKey, open: open}
}

// Dispatch starts the motion for the actuator identity at the given
// speed and schedules a stop after the duration. A motion already
// running on the same motor is superseded: the drive direction changes
// immediately and the stop timer is re-armed.
func (r *Runner) Dispatch(id string, speedPercent int, duration float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actions[id]
	if !ok {
		return fmt.Errorf("no actuator registered for %q", id)
	}

	var err error
	if a.open {
		err = a.motor.Open(speedPercent)
	} else {
		err = a.motor.Close(speedPercent)
	}
	if err != nil {
		return fmt.Errorf("drive %q: %w", id, err)
	}

	if t := r.stops[a.motorKey]; t != nil {
		t.Stop()
	}
	d := time.Duration(duration * float64(time.Second))
	motor := a.motor
	key := a.motorKey
	r.stops[a.motorKey] = time.AfterFunc(d, func() {
		if err := motor.Stop(); err != nil {
			log.Printf("Motor: stop %q: %v", key, err)
		}
	})

	log.Printf("Motor: %q running at %d%% for %.1fs", id, speedPercent, duration)
	return nil
}

// Stop halts one physical motor immediately and cancels its pending
// stop timer. Used by limit switches and shutdown.
func (r *Runner) Stop(motorKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked(motorKey)
}

func (r *Runner) stopLocked(motorKey string) {
	if t := r.stops[motorKey]; t != nil {
		t.Stop()
		delete(r.stops, motorKey)
	}
	for _, a := range r.actions {
		if a.motorKey == motorKey {
			if err := a.motor.Stop(); err != nil {
				log.Printf("Motor: stop %q: %v", motorKey, err)
			}
			return
		}
	}
}

// StopAll halts every motor. Called on shutdown.
func (r *Runner) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make(map[string]bool)
	for _, a := range r.actions {
		keys[a.motorKey] = true
	}
	for key := range keys {
		r.stopLocked(key)
	}
}
