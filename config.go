package main

import (
	"coopdoor/display"
	"coopdoor/input"
	"coopdoor/motor"
	"coopdoor/sensor"
)

// MotorConfig describes one physical door motor. The identity prefix
// yields the actuator identities used throughout: prefix "a" gives
// "ao" (open) and "ac" (close).
type MotorConfig struct {
	Name  string       `yaml:"name"` // menu label, e.g. "Motor A"
	ID    string       `yaml:"id"`   // identity prefix, e.g. "a"
	Drive motor.Config `yaml:"drive"`
}

// Config is the main configuration structure for coopdoor.
type Config struct {
	// Path of the durable schedule file
	StateFile string `yaml:"state_file"`

	// Scheduler tick period in seconds (default 5)
	TickSecs int `yaml:"tick_secs"`

	// Display configuration
	Display display.Config `yaml:"display"`

	// Input configuration
	Input input.Config `yaml:"input"`

	// Motor configuration
	Motors []MotorConfig `yaml:"motors"`

	// Optional end-of-travel switches
	Limits []sensor.Config `yaml:"limits"`
}
