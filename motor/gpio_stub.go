//go:build !linux

package motor

import "errors"

// ErrNotSupported is returned when GPIO motor control is requested on
// a platform without GPIO character devices.
var ErrNotSupported = errors.New("gpio motor not supported on this platform")

// GPIO is a stub for non-linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-linux platforms.
func NewGPIO(chip string, phase1, phase2 int) (*GPIO, error) {
	return nil, ErrNotSupported
}

// Open implements Motor.Open.
func (g *GPIO) Open(speedPercent int) error { return ErrNotSupported }

// Close implements Motor.Close.
func (g *GPIO) Close(speedPercent int) error { return ErrNotSupported }

// Stop implements Motor.Stop.
func (g *GPIO) Stop() error { return nil }

// Release implements Motor.Release.
func (g *GPIO) Release() error { return nil }
