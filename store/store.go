package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// oneShotSuffix marks the transient "run now" entry derived from an
// actuator identity.
const oneShotSuffix = "!"

// maxDuration is the longest motion the entry screen can represent.
const maxDuration = 999.9 // seconds

// Entry is the configured schedule for one actuator identity.
//
// NextFire is derived bookkeeping: zero means "not yet scheduled" for a
// recurring entry and "already fired, dormant" for a one-shot. It is
// never persisted; it is recomputed from hour/minute after a restart.
type Entry struct {
	Hour     *int    `json:"h,omitempty"`
	Minute   *int    `json:"m,omitempty"`
	Speed    float64 `json:"p"` // fraction of full speed, 0.0-1.0
	Duration float64 `json:"d"` // seconds
	OneShot  bool    `json:"1,omitempty"`
	NextFire int64   `json:"-"` // epoch seconds
}

// Disabled reports whether the entry has no configured time of day.
func (e *Entry) Disabled() bool {
	return e.Hour == nil || e.Minute == nil
}

// SpeedPercent returns the speed as an integer percentage clamped to
// the 0-100 range the actuator accepts.
func (e *Entry) SpeedPercent() int {
	pct := int(e.Speed*100 + 0.5)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func defaultEntry() *Entry {
	return &Entry{Speed: 1.0, Duration: 1.0}
}

// OneShotID returns the identity of the pending one-shot entry for an
// actuator identity.
func OneShotID(id string) string {
	return id + oneShotSuffix
}

// BaseID strips the one-shot marker, yielding the actuator identity an
// entry acts on.
func BaseID(id string) string {
	return strings.TrimSuffix(id, oneShotSuffix)
}

// Store maps actuator identities to schedule entries and keeps them in
// sync with a durable file.
//
// The UI path mutates through Update/ArmOneShot, which persist
// synchronously. The scheduler only touches NextFire, which is
// ephemeral and therefore never written back.
type Store struct {
	mu      sync.Mutex
	fs      afero.Fs
	path    string
	entries map[string]*Entry
}

// Open loads the store from path. A missing or corrupt file is not an
// error: the store starts empty and every entry takes its defaults.
func Open(fs afero.Fs, path string) *Store {
	s := &Store{fs: fs, path: path, entries: make(map[string]*Entry)}

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Printf("Store: no saved state (%v), using defaults", err)
		return s
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		log.Printf("Store: corrupt state file %s (%v), using defaults", path, err)
		s.entries = make(map[string]*Entry)
		return s
	}

	for id, e := range s.entries {
		if e == nil {
			s.entries[id] = defaultEntry()
			continue
		}
		sanitize(id, e)
	}
	log.Printf("Store: loaded %d entries from %s", len(s.entries), path)
	return s
}

// sanitize resets out-of-domain fields to their defaults so a bad file
// can never produce an impossible schedule.
func sanitize(id string, e *Entry) {
	if e.Hour != nil && (*e.Hour < 0 || *e.Hour > 23) {
		log.Printf("Store: entry %q has hour %d out of range, disabling", id, *e.Hour)
		e.Hour = nil
	}
	if e.Minute != nil && (*e.Minute < 0 || *e.Minute > 59) {
		log.Printf("Store: entry %q has minute %d out of range, disabling", id, *e.Minute)
		e.Minute = nil
	}
	if e.Speed < 0 || e.Speed > 1 {
		e.Speed = 1.0
	}
	if e.Duration <= 0 {
		e.Duration = 1.0
	}
	// Four digits of tenths is the most the entry screen can show; a
	// larger stored value would silently reopen as a smaller one.
	if e.Duration > maxDuration {
		log.Printf("Store: entry %q duration %.1fs exceeds %.1fs, clamping", id, e.Duration, maxDuration)
		e.Duration = maxDuration
	}
}

// IDs returns all entry identities in a stable order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns a copy of the entry for id, creating it with defaults if
// it does not exist yet. Creation is in-memory only; nothing is
// persisted until a UI mutation commits.
func (s *Store) Get(id string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.entry(id)
}

func (s *Store) entry(id string) *Entry {
	e, ok := s.entries[id]
	if !ok {
		e = defaultEntry()
		s.entries[id] = e
	}
	return e
}

// Update applies fn to the entry for id (created with defaults if
// absent) and synchronously persists the store. This is the UI commit
// path; the whole mutation is one atomic unit relative to the
// scheduler.
func (s *Store) Update(id string, fn func(*Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.entry(id))
	return s.saveLocked()
}

// SetNextFire records the derived next-fire timestamp for id. Scheduler
// bookkeeping only; intentionally not persisted.
func (s *Store) SetNextFire(id string, epoch int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.NextFire = epoch
	}
}

// AdvanceNextFire moves the derived timestamp from the state the
// scheduler read to next, refusing when a UI commit changed the entry
// in between: edits replace the Hour/Minute pointers and reset
// NextFire, so either difference marks the caller's copy as stale.
// Returns whether the write happened.
func (s *Store) AdvanceNextFire(id string, seen Entry, next int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.NextFire != seen.NextFire || e.Hour != seen.Hour || e.Minute != seen.Minute {
		return false
	}
	e.NextFire = next
	return true
}

// ArmOneShot inserts or replaces the pending one-shot entry for the
// actuator identity id, due immediately. Speed and duration are copied
// from the recurring entry. At most one pending one-shot exists per
// identity.
func (s *Store) ArmOneShot(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.entry(id)
	s.entries[OneShotID(id)] = &Entry{
		Speed:    base.Speed,
		Duration: base.Duration,
		OneShot:  true,
		NextFire: now.Unix(),
	}
	return s.saveLocked()
}

// ClearNextFires drops the derived timestamps of all recurring entries
// so they are recomputed against the new wall clock on the next
// scheduler pass. Dormant one-shots stay dormant.
func (s *Store) ClearNextFires() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if !e.OneShot {
			e.NextFire = 0
		}
	}
}

func (s *Store) saveLocked() error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}
