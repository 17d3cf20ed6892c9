package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of the hub menu. Detail is a short badge drawn
// after the label, such as a count.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the cursor over a list of items. The cursor never rests on
// a disabled item and wraps around at either end. Rendering is left to
// the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	return m
}

// SetItems swaps the items, keeping the cursor where it still fits.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if cur, ok := m.Current(); !ok || cur.Disabled {
		m.Selected = m.next(-1, 1)
	}
}

// Current returns the highlighted item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// next walks from index from in direction step, wrapping, and returns the
// first enabled item. With nothing enabled it returns 0.
func (m Menu) next(from, step int) int {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((from+i*step)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return 0
}

// Update moves the cursor on arrows, j/k, Home and End, and runs the
// highlighted action on Enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.Selected = m.next(m.Selected, -1)
	case "down", "j":
		m.Selected = m.next(m.Selected, 1)
	case "home", "g":
		m.Selected = m.next(-1, 1)
	case "end", "G":
		m.Selected = m.next(len(m.Items), -1)
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}
