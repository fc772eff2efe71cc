package screen

import "coopdoor/display"

// menuRows is the number of visible menu rows; the cursor marker sits
// on the bottom one and the window slides to keep the cursor there.
const (
	menuRows  = display.Rows - 1
	cursorRow = menuRows - 1
)

// Item is one selectable menu entry.
type Item struct {
	Title string
	Ctor  Ctor
}

// Menu is the composite scene: an ordered list of child scene
// constructors with a clamped cursor.
type Menu struct {
	Base
	items  []Item
	cursor int
}

// NewMenu creates a menu scene over the given items.
func NewMenu(m *Manager, parent Scene, title string, items []Item) *Menu {
	return &Menu{Base: NewBase(m, parent, title), items: items}
}

// Cursor returns the current cursor position.
func (s *Menu) Cursor() int {
	return s.cursor
}

// HandleEvent implements Scene.HandleEvent. Up/down clamp at the ends
// rather than wrapping.
func (s *Menu) HandleEvent(e Event) {
	switch e.Key {
	case KeyB:
		if s.cursor > 0 {
			s.cursor--
			s.Mgr.Render()
		}
	case KeyC:
		if s.cursor < len(s.items)-1 {
			s.cursor++
			s.Mgr.Render()
		}
	case KeyEsc:
		s.Mgr.SwitchToParent()
	case KeyOK:
		if len(s.items) > 0 {
			s.Mgr.SwitchToNew(s.items[s.cursor].Ctor)
		}
	}
}

// Commands implements Scene.Commands. The visible window is the run of
// entries ending at the cursor; entries outside it are omitted, not
// wrapped.
func (s *Menu) Commands() []display.Command {
	cmds := []display.Command{
		display.Write(cursorRow, 0, "*"),
	}
	cmds = append(cmds, legend("<Back ", "  Up  ", " Down ", "   OK>")...)

	for row := 0; row < menuRows; row++ {
		pos := s.cursor - cursorRow + row
		if pos >= 0 && pos < len(s.items) {
			cmds = append(cmds, display.Write(row, 1, s.items[pos].Title))
		}
	}
	return cmds
}
