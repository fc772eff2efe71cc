//go:build linux

package input

import (
	"context"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"coopdoor/screen"
)

const debounceButton = 10 * time.Millisecond

// Buttons implements Source for a six-button panel wired to GPIO
// lines, one per key in A, B, C, D, Esc, OK order.
type Buttons struct {
	lines  []*gpiocdev.Line
	events chan screen.Key
}

// NewButtons requests the six button lines with pull-ups and debounced
// falling-edge events (buttons short to ground when pressed).
func NewButtons(chip string, pins []int) (*Buttons, error) {
	if len(pins) != 6 {
		return nil, fmt.Errorf("gpio input needs 6 pins (A,B,C,D,Esc,OK), got %d", len(pins))
	}
	if chip == "" {
		chip = "gpiochip0"
	}

	b := &Buttons{events: make(chan screen.Key, 8)}
	for i, pin := range pins {
		key := screen.Key(i)
		line, err := gpiocdev.RequestLine(chip, pin,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithDebounce(debounceButton),
			gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
				select {
				case b.events <- key:
				default:
					// Input loop is behind; drop rather than block the
					// event handler.
				}
			}))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request gpio line %d: %w", pin, err)
		}
		b.lines = append(b.lines, line)
	}

	return b, nil
}

// Read implements Source.Read.
func (b *Buttons) Read(ctx context.Context) (screen.Key, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case key := <-b.events:
		return key, nil
	}
}

// Close implements Source.Close.
func (b *Buttons) Close() error {
	for _, line := range b.lines {
		line.Close()
	}
	b.lines = nil
	return nil
}
