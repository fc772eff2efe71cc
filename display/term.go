package display

import (
	"fmt"
	"os"
	"strings"
)

// Term implements Display by printing each frame to stdout. Used for
// development and headless runs.
type Term struct{}

// Update implements Display.Update.
func (t *Term) Update(cmds []Command) error {
	grid := Compose(cmds)
	border := "+" + strings.Repeat("-", Cols) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	for _, line := range grid.Lines() {
		b.WriteString("|" + line + "|\n")
	}
	b.WriteString(border + "\n")

	_, err := fmt.Fprint(os.Stdout, b.String())
	return err
}

// Release implements Display.Release.
func (t *Term) Release() error {
	return nil
}
