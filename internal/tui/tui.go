// Package tui is the root Bubble Tea model of the terminal front end.
package tui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/screens/home"
	"github.com/abhisek/dongwha/internal/screens/welcome"
	"github.com/abhisek/dongwha/internal/ui/layout"
)

// Options is what the home menu needs. See home.Options.
type Options = home.Options

// Model is the root Bubble Tea model.
type Model struct {
	router *router.Router
	width  int
	height int
}

// New starts on the welcome screen, which hands over to the home menu.
func New(opts Options) Model {
	w := welcome.New(func() screen.Screen { return home.New(opts) })
	return Model{router: router.New(w)}
}

func (m Model) Init() tea.Cmd {
	if s := m.router.Active(); s != nil {
		return s.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	// The splash screen draws the whole area.
	if title == "" {
		return m.router.View(m.width, m.height)
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m Model) keyHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "esc", Description: "뒤로"},
			{Key: "ctrl+c", Description: "끝내기"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "고르기"},
		{Key: "enter", Description: "선택"},
		{Key: "ctrl+c", Description: "끝내기"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
