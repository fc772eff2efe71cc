package screen

import (
	"fmt"
	"log"

	"coopdoor/display"
)

// digitUnset is the sentinel a time digit wraps into at the end of its
// range. A fully unset time means "no schedule configured".
const digitUnset = -1

// TimeConfig configures a clock-time entry scene.
type TimeConfig struct {
	Title string

	// Load returns the stored time; set=false pre-populates all digits
	// as unset.
	Load func() (hour, minute int, set bool)

	// Save commits a confirmed time. set=false means the schedule was
	// explicitly disabled. Returning an error keeps the scene open.
	Save func(hour, minute int, set bool) error
}

// Time is the clock-time flavor of the numeric entry scene. Its digits
// carry an extra unset state and wrap within the clock domain.
type Time struct {
	Base
	cfg    TimeConfig
	digits [4]int
}

// NewTime creates a time entry scene pre-populated from cfg.Load.
func NewTime(m *Manager, parent Scene, cfg TimeConfig) *Time {
	s := &Time{Base: NewBase(m, parent, cfg.Title), cfg: cfg}
	if h, min, set := cfg.Load(); set {
		s.digits = [4]int{h / 10, h % 10, min / 10, min % 10}
	} else {
		s.digits = [4]int{digitUnset, digitUnset, digitUnset, digitUnset}
	}
	return s
}

// increment advances one digit. The hour tens digit wraps within 0-2
// and every digit wraps through unset as an explicit end-of-range
// value, which is how a schedule gets disabled.
func (s *Time) increment(pos int) {
	d := s.digits[pos]
	switch {
	case d == digitUnset:
		d = 0
	case pos == 0 && d == 2:
		d = digitUnset
	case d == 9:
		d = digitUnset
	default:
		d++
	}
	s.digits[pos] = d
}

// decode turns the digits into a clock time. All digits unset decodes
// as "disabled"; a partially unset or out-of-range time is invalid.
func (s *Time) decode() (hour, minute int, set bool, err error) {
	allUnset := true
	for _, d := range s.digits {
		if d != digitUnset {
			allUnset = false
			break
		}
	}
	if allUnset {
		return 0, 0, false, nil
	}
	for _, d := range s.digits {
		if d == digitUnset {
			return 0, 0, false, fmt.Errorf("partially unset time")
		}
	}
	hour = s.digits[0]*10 + s.digits[1]
	minute = s.digits[2]*10 + s.digits[3]
	if hour > 23 || minute > 59 {
		return 0, 0, false, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return hour, minute, true, nil
}

// HandleEvent implements Scene.HandleEvent.
func (s *Time) HandleEvent(e Event) {
	switch e.Key {
	case KeyA, KeyB, KeyC, KeyD:
		s.increment(int(e.Key))
		s.Mgr.Render()
	case KeyEsc:
		s.Mgr.SwitchToParent()
	case KeyOK:
		h, m, set, err := s.decode()
		if err != nil {
			log.Printf("Screen: %s: ignoring invalid value: %v", s.Title(), err)
			return
		}
		if err := s.cfg.Save(h, m, set); err != nil {
			log.Printf("Screen: %s: save: %v", s.Title(), err)
			return
		}
		s.Mgr.SwitchToParent()
	}
}

// Commands implements Scene.Commands.
func (s *Time) Commands() []display.Command {
	cmds := []display.Command{
		display.Write(0, 0, s.Title()),
	}
	for i, d := range s.digits {
		cmds = append(cmds, display.Write(valueRow, digit0Col+i*digitStep, digitString(d)))
	}
	cmds = append(cmds, display.Write(valueRow, colonCol, ":"))
	cmds = append(cmds, legend("<Cancel", "", "", "   OK>")...)
	return cmds
}
