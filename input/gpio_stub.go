//go:build !linux

package input

import (
	"context"
	"errors"

	"coopdoor/screen"
)

// ErrNotSupported is returned when GPIO button input is requested on a
// platform without GPIO character devices.
var ErrNotSupported = errors.New("gpio buttons not supported on this platform")

// Buttons is a stub for non-linux platforms.
type Buttons struct{}

// NewButtons returns an error on non-linux platforms.
func NewButtons(chip string, pins []int) (*Buttons, error) {
	return nil, ErrNotSupported
}

// Read implements Source.Read.
func (b *Buttons) Read(ctx context.Context) (screen.Key, error) {
	return 0, ErrNotSupported
}

// Close implements Source.Close.
func (b *Buttons) Close() error {
	return nil
}
