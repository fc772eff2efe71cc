package motor

import (
	"github.com/hjkoskel/govattu"
)

const (
	pwmClock = 19
	pwmRange = 20000
)

// PWM implements Motor with an H-bridge: two phase pins select the
// direction and a PWM pin carries the speed.
type PWM struct {
	hw     govattu.Vattu
	phase1 uint8
	phase2 uint8
	pwmPin uint8
}

// NewPWM creates a PWM-driven motor.
func NewPWM(hw govattu.Vattu, phase1, phase2, pwmPin uint8) (*PWM, error) {
	hw.PinMode(phase1, govattu.ALToutput)
	hw.PinMode(phase2, govattu.ALToutput)
	hw.PinMode(pwmPin, govattu.ALT5) // ALT5 for PWM0
	hw.PwmSetMode(true, true, false, false)
	hw.PwmSetClock(pwmClock)
	hw.Pwm0SetRange(pwmRange)

	p := &PWM{
		hw:     hw,
		phase1: phase1,
		phase2: phase2,
		pwmPin: pwmPin,
	}
	p.Stop()
	return p, nil
}

// duty maps a speed percent linearly onto the PWM range.
func duty(speedPercent int) uint32 {
	return uint32(pwmRange * clampPercent(speedPercent) / 100)
}

// Open implements Motor.Open.
func (p *PWM) Open(speedPercent int) error {
	p.hw.PinSet(p.phase1)
	p.hw.PinClear(p.phase2)
	p.hw.Pwm0Set(duty(speedPercent))
	return nil
}

// Close implements Motor.Close.
func (p *PWM) Close(speedPercent int) error {
	p.hw.PinClear(p.phase1)
	p.hw.PinSet(p.phase2)
	p.hw.Pwm0Set(duty(speedPercent))
	return nil
}

// Stop implements Motor.Stop.
func (p *PWM) Stop() error {
	p.hw.Pwm0Set(0)
	p.hw.PinClear(p.phase1)
	p.hw.PinClear(p.phase2)
	return nil
}

// Release implements Motor.Release.
func (p *PWM) Release() error {
	p.Stop()
	return p.hw.Close()
}
