package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screens/home"
	"github.com/abhisek/dongwha/internal/ui/layout"
)

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestStartsOnWelcomeThenHome(t *testing.T) {
	m := New(Options{})
	require.NotNil(t, m.Init(), "welcome screen starts ticking")
	assert.Equal(t, "", m.router.Active().Title())

	m, cmd := step(t, m, tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, router.ReplaceScreenMsg{}, msg)

	m, _ = step(t, m, msg)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscOnlyPopsNestedScreens(t *testing.T) {
	m := New(Options{})
	_, cmd := step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the bottom screen does nothing")
}

func TestCtrlCQuits(t *testing.T) {
	m := New(Options{})
	_, cmd := step(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRender(t *testing.T) {
	m := New(Options{})
	assert.True(t, m.View().AltScreen)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, layout.RenderMinSizeMessage(30, 10), m.render())

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.render(), "★ 동화 ★", "splash fills the screen")

	_, cmd := step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = step(t, m, cmd())

	out := m.render()
	assert.Contains(t, out, "처음 화면")
	assert.Contains(t, out, "끝내기")
}
