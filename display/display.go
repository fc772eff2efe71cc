package display

import "errors"

var errScreenNotCompiled = errors.New("framebuffer display requested but screen support not compiled in")

// Grid geometry of the character display: four content rows plus one row
// for the button legend.
const (
	Rows = 5
	Cols = 21
)

// Command describes one write to the character grid. Only commands with
// Visible set are drawn; later commands overwrite earlier ones at the
// same cell.
type Command struct {
	Row     int
	Col     int
	Text    string
	Visible bool
}

// Write returns a visible Command for the given cell.
func Write(row, col int, text string) Command {
	return Command{Row: row, Col: col, Text: text, Visible: true}
}

// Display is the interface for all display sink implementations.
type Display interface {
	// Update redraws the whole grid from the given command list.
	Update(cmds []Command) error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for display implementations.
type Config struct {
	Type   string `yaml:"type"`   // "fb", "none"; anything else is terminal output
	Device string `yaml:"device"` // framebuffer device, e.g. "/dev/fb0"
	Splash string `yaml:"splash"` // optional PNG shown at startup (fb only)
}

// New creates a Display based on the provided configuration.
func New(cfg Config) (Display, error) {
	switch cfg.Type {
	case "fb":
		d, err := newFramebuffer(cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "none":
		return &Noop{}, nil
	default:
		// Terminal output is the default so a headless run still
		// shows the UI.
		return &Term{}, nil
	}
}

// Grid is the composed character matrix.
type Grid [Rows][Cols]rune

// Compose flattens a command list into a Grid. Invisible commands are
// skipped and out-of-bounds cells are clipped.
func Compose(cmds []Command) *Grid {
	var g Grid
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			g[r][c] = ' '
		}
	}
	for _, cmd := range cmds {
		if !cmd.Visible {
			continue
		}
		if cmd.Row < 0 || cmd.Row >= Rows {
			continue
		}
		col := cmd.Col
		for _, ch := range cmd.Text {
			if col >= Cols {
				break
			}
			if col >= 0 {
				g[cmd.Row][col] = ch
			}
			col++
		}
	}
	return &g
}

// Lines renders the grid as one string per row.
func (g *Grid) Lines() []string {
	lines := make([]string, Rows)
	for r := 0; r < Rows; r++ {
		lines[r] = string(g[r][:])
	}
	return lines
}
