package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of items. The cursor wraps around and never
// rests on a disabled item; digit keys activate the n-th item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index in direction dir, or -1.
func (m Menu) step(dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((m.Selected+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) activate(i int) (Menu, tea.Cmd) {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return m, nil
	}
	m.Selected = i
	if act := m.Items[i].Action; act != nil {
		return m, act()
	}
	return m, nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch s := kmsg.String(); s {
	case "up", "k", "shift+tab":
		if i := m.step(-1); i >= 0 {
			m.Selected = i
		}
	case "down", "j", "tab":
		if i := m.step(1); i >= 0 {
			m.Selected = i
		}
	case "enter", "space":
		return m.activate(m.Selected)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.activate(int(s[0] - '1'))
		}
	}
	return m, nil
}
