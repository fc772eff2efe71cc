package display

// Noop implements Display but does nothing.
// Used when no display is configured.
type Noop struct{}

// Update implements Display.Update.
func (n *Noop) Update(cmds []Command) error {
	return nil
}

// Release implements Display.Release.
func (n *Noop) Release() error {
	return nil
}
