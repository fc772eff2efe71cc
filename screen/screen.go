package screen

import "coopdoor/display"

// Key identifies one button on the control panel. The four soft keys
// double as digit increments in entry scenes and as up/down in menus.
type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyEsc
	KeyOK
)

// Event is one key press delivered to the active scene. Releases are
// filtered out by the input sources.
type Event struct {
	Key Key
}

// Scene is one unit of UI state. A scene renders a view, consumes
// input events and asks the Manager for navigation. Each scene keeps a
// reference to the scene it was pushed from; the chain of parents is
// the navigation stack.
type Scene interface {
	// HandleEvent processes an input event. The scene decides whether
	// to call back into the Manager (push, pop, or stay and re-render).
	HandleEvent(e Event)

	// Commands returns the scene's current view as display writes.
	Commands() []display.Command

	// Parent returns the scene to pop back to, or nil for a root scene.
	Parent() Scene

	// Title names the scene in menus and logs.
	Title() string
}

// Ctor builds a scene with the given parent. Menus hold Ctors, not
// scene instances: a child is created when navigated into and dropped
// when navigated out of.
type Ctor func(m *Manager, parent Scene) Scene

// Base carries the manager and parent references common to all scenes.
type Base struct {
	Mgr    *Manager
	parent Scene
	title  string
}

// NewBase creates a Base for embedding.
func NewBase(m *Manager, parent Scene, title string) Base {
	return Base{Mgr: m, parent: parent, title: title}
}

// Parent implements Scene.Parent.
func (b *Base) Parent() Scene {
	return b.parent
}

// Title implements Scene.Title.
func (b *Base) Title() string {
	return b.title
}

// Button legend layout: four labels on the last display row, one per
// soft key.
const (
	lastRow   = display.Rows - 1
	buttonCol = 5 // column stride of the legend labels
)

func legend(a, b, c, d string) []display.Command {
	return []display.Command{
		display.Write(lastRow, 0*buttonCol, a),
		display.Write(lastRow, 1*buttonCol, b),
		display.Write(lastRow, 2*buttonCol, c),
		display.Write(lastRow, 3*buttonCol, d),
	}
}
