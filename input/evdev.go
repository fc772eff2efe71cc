package input

import (
	"context"
	"fmt"
	"log"

	"github.com/kenshaw/evdev"

	"coopdoor/screen"
)

// keymap translates a development keyboard to the six-button panel:
// 1-4 are the soft keys, arrows double as up/down, Esc and Enter are
// back and confirm.
var keymap = map[evdev.KeyType]screen.Key{
	evdev.Key1:     screen.KeyA,
	evdev.Key2:     screen.KeyB,
	evdev.Key3:     screen.KeyC,
	evdev.Key4:     screen.KeyD,
	evdev.KeyUp:    screen.KeyB,
	evdev.KeyDown:  screen.KeyC,
	evdev.KeyEscape: screen.KeyEsc,
	evdev.KeyLeft:  screen.KeyEsc,
	evdev.KeyEnter: screen.KeyOK,
	evdev.KeyRight: screen.KeyOK,
}

// Keyboard implements Source for an evdev input device.
type Keyboard struct {
	device *evdev.Evdev
}

// NewKeyboard creates a keyboard source on the specified input device.
func NewKeyboard(device string) (*Keyboard, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	log.Printf("Input: opened keyboard device %s", dev.Name())
	return &Keyboard{device: dev}, nil
}

// Read implements Source.Read.
func (k *Keyboard) Read(ctx context.Context) (screen.Key, error) {
	ch := k.device.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case event := <-ch:
			if event == nil {
				return 0, fmt.Errorf("keyboard device closed")
			}

			switch event.Type.(type) {
			case evdev.KeyType:
				if event.Value != 1 {
					continue
				}
				if key, ok := keymap[evdev.KeyType(event.Code)]; ok {
					return key, nil
				}
			}
		}
	}
}

// Close implements Source.Close.
func (k *Keyboard) Close() error {
	if k.device == nil {
		return nil
	}
	return k.device.Close()
}
