package input

import (
	"context"

	"coopdoor/screen"
)

// Source is the interface for all key input implementations.
// Implementations block until a key is pressed or the context is
// cancelled; releases are never reported.
type Source interface {
	Read(ctx context.Context) (screen.Key, error)
	Close() error
}

// Config holds common configuration for input implementations.
type Config struct {
	Type   string `yaml:"type"`   // "evdev", "gpio", "serial", "none"
	Device string `yaml:"device"` // e.g. "/dev/input/event0", "/dev/serial0"
	Chip   string `yaml:"chip"`   // GPIO chip, e.g. "gpiochip0"
	Pins   []int  `yaml:"pins"`   // six button pins: A, B, C, D, Esc, OK
	Baud   int    `yaml:"baud"`   // baud rate for serial keypads
}

// New creates a Source based on the provided configuration.
func New(cfg Config) (Source, error) {
	switch cfg.Type {
	case "evdev":
		return NewKeyboard(cfg.Device)
	case "gpio":
		return NewButtons(cfg.Chip, cfg.Pins)
	case "serial":
		return NewSerial(cfg.Device, cfg.Baud)
	default:
		return &Noop{}, nil
	}
}

// Noop implements Source for configurations without an input device;
// Read blocks until the context is cancelled.
type Noop struct{}

// Read implements Source.Read.
func (n *Noop) Read(ctx context.Context) (screen.Key, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// Close implements Source.Close.
func (n *Noop) Close() error {
	return nil
}
