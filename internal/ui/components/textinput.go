package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/ui/theme"
)

// TextInput is the answer line of a sentence puzzle: a bubbles text
// input that works on whole words and shows ✓ or ✗ once checked.
type TextInput struct {
	Model  textinput.Model
	marked bool
	passed bool
}

// NewTextInput returns a focused input limited to charLimit runes.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if !t.marked {
		return t.Model.View()
	}
	mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	if t.passed {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return t.Model.View() + " " + mark
}

func (t TextInput) Value() string { return t.Model.Value() }

// Words splits the typed text on whitespace.
func (t TextInput) Words() []string { return strings.Fields(t.Model.Value()) }

// SetValue replaces the text and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// AppendWord adds w after the typed words, leaving a trailing space so
// the next word can be typed straight away.
func (t *TextInput) AppendWord(w string) {
	t.SetValue(strings.Join(append(t.Words(), w), " ") + " ")
}

// Mark shows the result of checking the current text.
func (t *TextInput) Mark(passed bool) {
	t.marked, t.passed = true, passed
}

// Unmark drops the result mark and keeps the text for another try.
func (t *TextInput) Unmark() { t.marked = false }

// Reset clears the text and the mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.marked = false
}
