package sensor

import (
	"fmt"
	"log"

	"github.com/warthog618/gpio"
)

// Config holds configuration for one limit switch.
type Config struct {
	Pin   *int   `yaml:"pin"`
	Motor string `yaml:"motor"` // key of the motor this switch stops
}

// Limit watches an end-of-travel switch. The switch shorts its pin to
// ground when the door reaches the end of travel; the callback then
// stops the associated motor early instead of letting the duration
// timer run out.
type Limit struct {
	pin   *gpio.Pin
	motor string
}

// New sets up the limit switches described by cfgs, invoking onTrip
// with the configured motor key when one fires. Returns nil when no
// switch is configured. The process-wide GPIO mapping is opened on
// first use.
func New(cfgs []Config, onTrip func(motor string)) ([]*Limit, error) {
	var limits []*Limit
	for _, cfg := range cfgs {
		if cfg.Pin == nil {
			continue
		}
		if len(limits) == 0 {
			if err := gpio.Open(); err != nil {
				return nil, fmt.Errorf("open gpio: %w", err)
			}
		}

		l := &Limit{pin: gpio.NewPin(*cfg.Pin), motor: cfg.Motor}
		l.pin.Input()
		l.pin.PullUp()

		motorKey := cfg.Motor
		if err := l.pin.Watch(gpio.EdgeFalling, func(pin *gpio.Pin) {
			log.Printf("Sensor: limit switch for %q tripped", motorKey)
			onTrip(motorKey)
		}); err != nil {
			Release(limits)
			return nil, fmt.Errorf("watch pin %d: %w", *cfg.Pin, err)
		}
		limits = append(limits, l)
	}
	return limits, nil
}

// Release unwatches all switches and closes the GPIO mapping.
func Release(limits []*Limit) {
	for _, l := range limits {
		l.pin.Unwatch()
	}
	if len(limits) > 0 {
		gpio.Close()
	}
}
