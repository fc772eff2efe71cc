package screen

import (
	"fmt"
	"log"
	"math"

	"coopdoor/display"
)

// Digit layout on the value row.
const (
	valueRow  = 1
	digit0Col = 4
	digitStep = 4
	pointCol  = 14
	suffixCol = 18
	colonCol  = 10
)

// Unit selects the transform layered on the raw 4-digit integer.
type Unit int

const (
	// UnitInt edits the raw integer directly.
	UnitInt Unit = iota
	// UnitPercent edits thousandths of full scale, shown as NN.N%.
	UnitPercent
	// UnitSeconds edits tenths of a second, shown as NNN.Ns.
	UnitSeconds
)

// NumberConfig configures one flavor of the numeric entry scene. The
// flavors differ only in data, not in type: unit transform, where the
// value comes from and where a confirmed value goes.
type NumberConfig struct {
	Title string
	Unit  Unit

	// Load returns the stored value used to pre-populate the digits.
	Load func() float64

	// Save commits a successfully decoded value. Returning an error
	// keeps the scene open.
	Save func(v float64) error
}

// Number is the generic 4-digit entry scene.
type Number struct {
	Base
	cfg    NumberConfig
	digits [4]int
}

// NewNumber creates a numeric entry scene pre-populated from
// cfg.Load.
func NewNumber(m *Manager, parent Scene, cfg NumberConfig) *Number {
	s := &Number{Base: NewBase(m, parent, cfg.Title), cfg: cfg}
	s.setDigits(cfg.Load())
	return s
}

// raw packs the digits into their integer value.
func (s *Number) raw() int {
	return s.digits[0]*1000 + s.digits[1]*100 + s.digits[2]*10 + s.digits[3]
}

// setDigits pre-populates the digits from a stored value, rounding up
// to the digit quantum so a reopened value never reads smaller than
// what was stored.
func (s *Number) setDigits(v float64) {
	var raw int
	switch s.cfg.Unit {
	case UnitPercent:
		raw = int(math.Ceil(v * 1000))
	case UnitSeconds:
		raw = int(math.Ceil(v * 10))
	default:
		raw = int(math.Ceil(v))
	}
	if raw < 0 {
		raw = 0
	}
	if raw > 9999 {
		raw = 9999
	}
	for i := 3; i >= 0; i-- {
		s.digits[i] = raw % 10
		raw /= 10
	}
}

// decode turns the digits into the domain value, or fails when the
// raw integer falls outside the unit's domain.
func (s *Number) decode() (float64, error) {
	raw := s.raw()
	switch s.cfg.Unit {
	case UnitPercent:
		if raw > 1000 {
			return 0, fmt.Errorf("percentage %d out of range", raw)
		}
		return float64(raw) / 1000.0, nil
	case UnitSeconds:
		return float64(raw) / 10.0, nil
	default:
		return float64(raw), nil
	}
}

// increment advances one digit, wrapping within its domain.
func (s *Number) increment(pos int) {
	d := s.digits[pos] + 1
	limit := 9
	if pos == 0 && s.cfg.Unit == UnitPercent {
		// Thousandths never exceed 1000, so the leading digit only
		// reaches 1.
		limit = 1
	}
	if d > limit {
		d = 0
	}
	s.digits[pos] = d
}

// HandleEvent implements Scene.HandleEvent. An undecodable value is
// silently kept on screen for correction; nothing is saved partially.
func (s *Number) HandleEvent(e Event) {
	switch e.Key {
	case KeyA, KeyB, KeyC, KeyD:
		s.increment(int(e.Key))
		s.Mgr.Render()
	case KeyEsc:
		s.Mgr.SwitchToParent()
	case KeyOK:
		v, err := s.decode()
		if err != nil {
			log.Printf("Screen: %s: ignoring invalid value: %v", s.Title(), err)
			return
		}
		if err := s.cfg.Save(v); err != nil {
			log.Printf("Screen: %s: save: %v", s.Title(), err)
			return
		}
		s.Mgr.SwitchToParent()
	}
}

// Commands implements Scene.Commands.
func (s *Number) Commands() []display.Command {
	cmds := []display.Command{
		display.Write(0, 0, s.Title()),
	}
	for i, d := range s.digits {
		cmds = append(cmds, display.Write(valueRow, digit0Col+i*digitStep, digitString(d)))
	}
	switch s.cfg.Unit {
	case UnitPercent:
		cmds = append(cmds,
			display.Write(valueRow, pointCol, "."),
			display.Write(valueRow, suffixCol, "%"))
	case UnitSeconds:
		cmds = append(cmds,
			display.Write(valueRow, pointCol, "."),
			display.Write(valueRow, suffixCol, "s"))
	}
	cmds = append(cmds, legend("<Cancel", "", "", "   OK>")...)
	return cmds
}

// digitString renders one digit; zero is drawn as a wide "O" for
// legibility and the unset sentinel as a dash.
func digitString(d int) string {
	switch {
	case d == digitUnset:
		return "-"
	case d == 0:
		return "O"
	default:
		return fmt.Sprintf("%d", d)
	}
}
