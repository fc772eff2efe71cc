package screen

import (
	"fmt"
	"log"

	"coopdoor/clock"
	"coopdoor/display"
	"coopdoor/store"
)

// MotorRef names one configured motor in the menu tree. The identity
// prefix yields the actuator identities the store and scheduler use:
// prefix "a" gives "ao" (open) and "ac" (close).
type MotorRef struct {
	Name string
	ID   string
}

// OpenID returns the actuator identity of the motor's opening action.
func (r MotorRef) OpenID() string { return r.ID + "o" }

// CloseID returns the actuator identity of the motor's closing action.
func (r MotorRef) CloseID() string { return r.ID + "c" }

// Scenes builds the concrete scene tree over the app's store and
// clock. Every motor scene is produced by the same constructors,
// parameterized by actuator identity.
type Scenes struct {
	Store  *store.Store
	Clock  clock.Clock
	Motors []MotorRef
}

// Root returns the constructor of the idle scene the manager starts in.
func (sc *Scenes) Root() Ctor {
	return func(m *Manager, parent Scene) Scene {
		return &Idle{Base: NewBase(m, nil, "Idle"), scenes: sc}
	}
}

// Idle is the root scene: a blank screen showing the wall clock, or a
// "Clock not set" notice while the time reference is missing. Esc
// enters the main menu.
type Idle struct {
	Base
	scenes *Scenes
}

// HandleEvent implements Scene.HandleEvent.
func (s *Idle) HandleEvent(e Event) {
	if e.Key == KeyEsc {
		s.Mgr.SwitchToNew(s.scenes.mainMenu)
	}
}

// Commands implements Scene.Commands.
func (s *Idle) Commands() []display.Command {
	now, valid := s.scenes.Clock.Now()
	if !valid {
		return []display.Command{display.Write(valueRow, 4, "Clock not set")}
	}
	return []display.Command{display.Write(valueRow, 8, now.Format("15:04"))}
}

func (sc *Scenes) mainMenu(m *Manager, parent Scene) Scene {
	items := make([]Item, 0, len(sc.Motors)+1)
	for _, ref := range sc.Motors {
		items = append(items, Item{Title: ref.Name, Ctor: sc.motorMenu(ref)})
	}
	items = append(items, Item{Title: "System time", Ctor: sc.systemTime})
	return NewMenu(m, parent, "Main menu", items)
}

func (sc *Scenes) motorMenu(ref MotorRef) Ctor {
	return func(m *Manager, parent Scene) Scene {
		items := []Item{
			{Title: "Opening settings", Ctor: sc.actionMenu(ref.OpenID(), "Opening")},
			{Title: "Closing settings", Ctor: sc.actionMenu(ref.CloseID(), "Closing")},
		}
		return NewMenu(m, parent, ref.Name, items)
	}
}

func (sc *Scenes) actionMenu(id, label string) Ctor {
	return func(m *Manager, parent Scene) Scene {
		items := []Item{
			{Title: "Run now", Ctor: sc.runNow(id, label)},
			{Title: "Time", Ctor: sc.timeEntry(id)},
			{Title: "Speed", Ctor: sc.speedEntry(id)},
			{Title: "Duration", Ctor: sc.durationEntry(id)},
		}
		return NewMenu(m, parent, label, items)
	}
}

// runNow arms a one-shot entry for the identity, due immediately. An
// un-fired one-shot already pending for the identity is replaced.
func (sc *Scenes) runNow(id, label string) Ctor {
	return func(m *Manager, parent Scene) Scene {
		return &Confirm{
			Base:    NewBase(m, parent, "Run now"),
			message: fmt.Sprintf("%s: run now?", label),
			action: func() error {
				// A one-shot is an epoch stamp; without a time
				// reference the stamp would be garbage and fire at
				// some arbitrary point once the clock is set.
				now, valid := sc.Clock.Now()
				if !valid {
					return fmt.Errorf("clock not set")
				}
				return sc.Store.ArmOneShot(id, now)
			},
		}
	}
}

func (sc *Scenes) timeEntry(id string) Ctor {
	return func(m *Manager, parent Scene) Scene {
		return NewTime(m, parent, TimeConfig{
			Title: "Time",
			Load: func() (int, int, bool) {
				e := sc.Store.Get(id)
				if e.Disabled() {
					return 0, 0, false
				}
				return *e.Hour, *e.Minute, true
			},
			Save: func(hour, minute int, set bool) error {
				return sc.Store.Update(id, func(e *store.Entry) {
					if set {
						h, m := hour, minute
						e.Hour, e.Minute = &h, &m
					} else {
						e.Hour, e.Minute = nil, nil
					}
					// The old derived timestamp describes the old
					// time of day.
					e.NextFire = 0
				})
			},
		})
	}
}

func (sc *Scenes) speedEntry(id string) Ctor {
	return func(m *Manager, parent Scene) Scene {
		return NewNumber(m, parent, NumberConfig{
			Title: "Speed",
			Unit:  UnitPercent,
			Load:  func() float64 { return sc.Store.Get(id).Speed },
			Save: func(v float64) error {
				return sc.Store.Update(id, func(e *store.Entry) { e.Speed = v })
			},
		})
	}
}

func (sc *Scenes) durationEntry(id string) Ctor {
	return func(m *Manager, parent Scene) Scene {
		return NewNumber(m, parent, NumberConfig{
			Title: "Duration",
			Unit:  UnitSeconds,
			Load:  func() float64 { return sc.Store.Get(id).Duration },
			Save: func(v float64) error {
				return sc.Store.Update(id, func(e *store.Entry) { e.Duration = v })
			},
		})
	}
}

// systemTime edits the wall clock itself. Disabling is not a valid
// clock value here, and a successful set drops all derived timestamps
// so recurring entries recompute against the new clock instead of
// misfiring after a large jump.
func (sc *Scenes) systemTime(m *Manager, parent Scene) Scene {
	return NewTime(m, parent, TimeConfig{
		Title: "System time",
		Load: func() (int, int, bool) {
			now, valid := sc.Clock.Now()
			if !valid {
				return 0, 0, false
			}
			return now.Hour(), now.Minute(), true
		},
		Save: func(hour, minute int, set bool) error {
			if !set {
				return fmt.Errorf("system time cannot be unset")
			}
			if err := sc.Clock.Set(hour, minute); err != nil {
				return err
			}
			sc.Store.ClearNextFires()
			return nil
		},
	})
}

// Confirm is a message scene: OK runs the configured action and pops,
// Esc backs out without running it.
type Confirm struct {
	Base
	message string
	action  func() error
}

// HandleEvent implements Scene.HandleEvent.
func (s *Confirm) HandleEvent(e Event) {
	switch e.Key {
	case KeyEsc:
		s.Mgr.SwitchToParent()
	case KeyOK:
		if err := s.action(); err != nil {
			log.Printf("Screen: %s: %v", s.Title(), err)
			return
		}
		s.Mgr.SwitchToParent()
	}
}

// Commands implements Scene.Commands.
func (s *Confirm) Commands() []display.Command {
	return append([]display.Command{
		display.Write(valueRow, 0, s.message),
	}, legend("<Cancel", "", "", "   OK>")...)
}
