package screen

import (
	"log"

	"coopdoor/display"
)

// Manager owns the navigation stack and the display. Exactly one scene
// is current at any time; the previous scene stays reachable as the
// parent of the new one until a root transition discards the chain.
//
// The Manager is driven from a single goroutine (the input loop) and
// is not safe for concurrent use. The scheduler never calls into it.
type Manager struct {
	disp    display.Display
	current Scene
}

// NewManager creates a Manager showing the given root scene.
func NewManager(disp display.Display, root Ctor) *Manager {
	m := &Manager{disp: disp}
	m.current = root(m, nil)
	m.Render()
	return m
}

// Current returns the active scene.
func (m *Manager) Current() Scene {
	return m.current
}

// SwitchToNew pushes a scene constructed with the current scene as its
// parent.
func (m *Manager) SwitchToNew(ctor Ctor) {
	m.current = ctor(m, m.current)
	m.Render()
}

// SwitchToParent pops back to the current scene's parent. At a root
// scene this is a no-op: the stack cannot be popped past the root.
func (m *Manager) SwitchToParent() {
	parent := m.current.Parent()
	if parent == nil {
		return
	}
	m.current = parent
	m.Render()
}

// SwitchToRoot replaces the whole stack with a fresh root scene.
func (m *Manager) SwitchToRoot(ctor Ctor) {
	m.current = ctor(m, nil)
	m.Render()
}

// Dispatch forwards an input event to the current scene.
func (m *Manager) Dispatch(e Event) {
	m.current.HandleEvent(e)
}

// Render redraws the display from the current scene's view. Called
// after every transition; scenes call it themselves after events that
// change their own state.
func (m *Manager) Render() {
	if err := m.disp.Update(m.current.Commands()); err != nil {
		log.Printf("Screen: render %s: %v", m.current.Title(), err)
	}
}
