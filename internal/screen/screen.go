package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dongwha/internal/ui/layout"
)

// Screen is one page of the terminal front end.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header or footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen show a short status, such as the current
// level, on the right of the header.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens that own background work. The router
// calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}
