package input

import (
	"context"
	"fmt"
	"time"

	"github.com/tarm/serial"

	"coopdoor/screen"
)

// Serial implements Source for a serial-attached keypad that sends one
// ASCII byte per key press: A-D for the soft keys, E for escape, K for
// confirm. Anything else is ignored.
type Serial struct {
	port   *serial.Port
	device string
}

// NewSerial creates a serial keypad source.
func NewSerial(device string, baud int) (*Serial, error) {
	if baud == 0 {
		baud = 9600
	}
	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	return &Serial{port: port, device: device}, nil
}

// Read implements Source.Read.
func (s *Serial) Read(ctx context.Context) (screen.Key, error) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		n, err := s.port.Read(buf)
		if err != nil || n == 0 {
			continue // timeout, try again
		}

		switch buf[0] {
		case 'A', 'a':
			return screen.KeyA, nil
		case 'B', 'b':
			return screen.KeyB, nil
		case 'C', 'c':
			return screen.KeyC, nil
		case 'D', 'd':
			return screen.KeyD, nil
		case 'E', 'e':
			return screen.KeyEsc, nil
		case 'K', 'k':
			return screen.KeyOK, nil
		}
	}
}

// Close implements Source.Close.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
