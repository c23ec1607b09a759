// Package router keeps the stack of screens shown by the terminal front
// end. Screens navigate by returning the commands below; only the
// top-level model talks to the Router itself.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dongwha/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }
	// PopScreenMsg returns to the previous screen.
	PopScreenMsg struct{}
	// ReplaceScreenMsg swaps the active screen for Screen, e.g. a
	// finished game for its summary.
	ReplaceScreenMsg struct{ Screen screen.Screen }
)

// Open is a command that pushes s.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Back is a command that pops the active screen.
func Back() tea.Msg { return PopScreenMsg{} }

// Swap is a command that replaces the active screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router is a stack of screens whose bottom screen is never popped.
// Screens leaving the stack are closed if they implement screen.Closer.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) pop() {
	if len(r.stack) < 2 {
		return
	}
	closeScreen(r.stack[r.top()])
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
}

func (r *Router) replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.push(s)
	}
	closeScreen(r.stack[r.top()])
	r.stack[r.top()] = s
	return s.Init()
}

// CloseAll closes every screen on the stack, root included. The router
// keeps its stack so a final View still renders.
func (r *Router) CloseAll() {
	for i := r.top(); i >= 0; i-- {
		closeScreen(r.stack[i])
	}
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.push(msg.Screen)
	case PopScreenMsg:
		r.pop()
		return nil
	case ReplaceScreenMsg:
		return r.replace(msg.Screen)
	}
	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
