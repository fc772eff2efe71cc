//go:build linux

package motor

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO implements Motor with two plain output lines on an H-bridge.
// There is no speed control: any non-zero speed runs the motor flat
// out.
type GPIO struct {
	phase1 *gpiocdev.Line
	phase2 *gpiocdev.Line
}

// NewGPIO creates an on/off motor on the given phase pins.
func NewGPIO(chip string, phase1, phase2 int) (*GPIO, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	l1, err := gpiocdev.RequestLine(chip, phase1, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request gpio line %d: %w", phase1, err)
	}
	l2, err := gpiocdev.RequestLine(chip, phase2, gpiocdev.AsOutput(0))
	if err != nil {
		l1.Close()
		return nil, fmt.Errorf("request gpio line %d: %w", phase2, err)
	}

	return &GPIO{phase1: l1, phase2: l2}, nil
}

// Open implements Motor.Open.
func (g *GPIO) Open(speedPercent int) error {
	if clampPercent(speedPercent) == 0 {
		return g.Stop()
	}
	if err := g.phase2.SetValue(0); err != nil {
		return err
	}
	return g.phase1.SetValue(1)
}

// Close implements Motor.Close.
func (g *GPIO) Close(speedPercent int) error {
	if clampPercent(speedPercent) == 0 {
		return g.Stop()
	}
	if err := g.phase1.SetValue(0); err != nil {
		return err
	}
	return g.phase2.SetValue(1)
}

// Stop implements Motor.Stop.
func (g *GPIO) Stop() error {
	err1 := g.phase1.SetValue(0)
	err2 := g.phase2.SetValue(0)
	if err1 != nil {
		return err1
	}
	return err2
}

// Release implements Motor.Release.
func (g *GPIO) Release() error {
	g.Stop()
	g.phase1.Close()
	g.phase2.Close()
	return nil
}
