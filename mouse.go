package tabstrip

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type region int

const (
	regionOutside region = iota
	regionBar
	regionTab
	regionToggle
	regionMenu
)

type hit struct {
	region region
	index  int // tab index for regionTab, overflow row for regionMenu, else -1
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	// Classify before mutating anything, so a press on the toggle or inside
	// the menu is never mistaken for an outside press.
	h := m.hitTest(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft, tea.MouseRight, tea.MouseMiddle:
		if m.open && h.region != regionToggle && h.region != regionMenu {
			m.Dismiss()
		}
		return m, nil

	case tea.MouseMotion:
		if m.open && h.region == regionMenu && h.index >= 0 {
			m.cursor = h.index
		}
		return m, nil

	case tea.MouseRelease:
		if h.region == regionOutside {
			return m, nil
		}
		var activate tea.Cmd
		if !m.Focused {
			activate = m.Activate()
		}
		switch h.region {
		case regionTab:
			return m, batch(activate, m.Select(m.items[h.index].ID))
		case regionToggle:
			m.Toggle()
		case regionMenu:
			if h.index >= 0 {
				return m, batch(activate, m.Select(m.Overflow()[h.index].ID))
			}
		}
		return m, activate
	}
	return m, nil
}

// batch drops nil commands so a lone command is returned as is rather than
// wrapped in a tea.BatchMsg.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return tea.Batch(valid...)
}

// hitTest maps a screen cell onto the part of the strip drawn there. The open
// menu is checked first since it is drawn on top.
func (m Model) hitTest(x, y int) hit {
	if len(m.items) == 0 {
		return hit{region: regionOutside, index: -1}
	}

	if m.open {
		menu := m.renderMenu()
		w, h := lipgloss.Width(menu), lipgloss.Height(menu)
		mx, my := m.menuOrigin(w)
		if x >= mx && x < mx+w && y >= my && y < my+h {
			row := y - my - borderTop(m.Styles.Menu) - m.Styles.Menu.GetPaddingTop()
			if row >= 0 && row < len(m.Overflow()) {
				return hit{region: regionMenu, index: row}
			}
			return hit{region: regionMenu, index: -1}
		}
	}

	bar := m.ViewBar()
	if y < m.y || y >= m.y+lipgloss.Height(bar) || x < m.x || x >= m.x+lipgloss.Width(bar) {
		return hit{region: regionOutside, index: -1}
	}

	cx := m.contentLeft()
	for i := 0; i < m.layout.VisibleCount(); i++ {
		w := lipgloss.Width(m.renderTab(i))
		if x >= cx && x < cx+w {
			return hit{region: regionTab, index: i}
		}
		cx += w
	}
	if m.layout.Overflowing() {
		if w := lipgloss.Width(m.renderToggle()); x >= cx && x < cx+w {
			return hit{region: regionToggle, index: -1}
		}
	}
	return hit{region: regionBar, index: -1}
}

// contentLeft is the screen column where the first tab starts.
func (m Model) contentLeft() int {
	return m.x + m.Styles.Bar.GetMarginLeft() + borderLeft(m.Styles.Bar) + m.Styles.Bar.GetPaddingLeft()
}

// toggleLeft is the screen column where the overflow toggle starts.
func (m Model) toggleLeft() int {
	x := m.contentLeft()
	for i := 0; i < m.layout.VisibleCount(); i++ {
		x += lipgloss.Width(m.renderTab(i))
	}
	return x
}

// menuOrigin places a menu of the given width directly below the bar with
// its right edge under the toggle's right edge, without leaving the strip's
// left bound.
func (m Model) menuOrigin(menuWidth int) (int, int) {
	right := m.toggleLeft() + lipgloss.Width(m.renderToggle())
	x := max(right-menuWidth, m.x)
	y := m.y + lipgloss.Height(m.Styles.Bar.Render("A"))
	return x, y
}

func borderLeft(s lipgloss.Style) int {
	if !s.GetBorderLeft() {
		return 0
	}
	return lipgloss.Width(s.GetBorderStyle().Left)
}

func borderTop(s lipgloss.Style) int {
	if !s.GetBorderTop() {
		return 0
	}
	return lipgloss.Height(s.GetBorderStyle().Top)
}
