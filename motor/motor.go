package motor

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// Motor is the interface for all motor control implementations. Speed
// is an integer percent, clamped to [0,100] before the hardware
// mapping.
type Motor interface {
	// Open drives the motor in the opening direction.
	Open(speedPercent int) error

	// Close drives the motor in the closing direction.
	Close(speedPercent int) error

	// Stop cuts the drive.
	Stop() error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for motor implementations.
type Config struct {
	Type   string `yaml:"type"`    // "pwm", "gpio", "none"
	Chip   string `yaml:"chip"`    // GPIO chip for the "gpio" type
	Phase1 *int   `yaml:"phase1"`  // H-bridge phase pin
	Phase2 *int   `yaml:"phase2"`  // H-bridge phase pin
	PWMPin *int   `yaml:"pwm_pin"` // speed pin ("pwm" type only)
}

// New creates a Motor based on the provided configuration.
func New(cfg Config) (Motor, error) {
	if cfg.Phase1 == nil || cfg.Phase2 == nil {
		return &Noop{}, nil
	}

	switch cfg.Type {
	case "pwm":
		if cfg.PWMPin == nil {
			return nil, fmt.Errorf("pwm motor needs pwm_pin")
		}
		hw, err := govattu.Open()
		if err != nil {
			return nil, fmt.Errorf("open gpio: %w", err)
		}
		return NewPWM(hw, uint8(*cfg.Phase1), uint8(*cfg.Phase2), uint8(*cfg.PWMPin))
	case "gpio":
		return NewGPIO(cfg.Chip, *cfg.Phase1, *cfg.Phase2)
	default:
		return &Noop{}, nil
	}
}

// clampPercent bounds a speed to the accepted 0-100 range.
func clampPercent(speed int) int {
	if speed < 0 {
		return 0
	}
	if speed > 100 {
		return 100
	}
	return speed
}
