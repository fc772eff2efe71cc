package motor

import "log"

// Noop implements Motor but only logs.
// Used when no motor hardware is configured.
type Noop struct{}

// Open implements Motor.Open.
func (n *Noop) Open(speedPercent int) error {
	log.Printf("Motor: open at %d%% (noop)", speedPercent)
	return nil
}

// Close implements Motor.Close.
func (n *Noop) Close(speedPercent int) error {
	log.Printf("Motor: close at %d%% (noop)", speedPercent)
	return nil
}

// Stop implements Motor.Stop.
func (n *Noop) Stop() error {
	return nil
}

// Release implements Motor.Release.
func (n *Noop) Release() error {
	return nil
}
