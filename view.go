package tabstrip

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the bar with the overflow menu, when open, joined below it.
// Hosts that want the menu to float over their content should use ViewBar,
// ViewOverflow and Overlay instead.
func (m Model) View() string {
	bar := m.ViewBar()
	if bar == "" {
		return ""
	}
	menu, offset := m.ViewOverflow()
	if menu == "" {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, lipgloss.NewStyle().MarginLeft(offset).Render(menu))
}

// ViewBar renders the inline tabs followed by the overflow toggle when any
// tab is collapsed. It renders nothing for an empty sequence.
func (m Model) ViewBar() string {
	if len(m.items) == 0 {
		return ""
	}
	var views []string
	for i := 0; i < m.layout.VisibleCount(); i++ {
		views = append(views, m.renderTab(i))
	}
	if m.layout.Overflowing() {
		views = append(views, m.renderToggle())
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, views...)

	if m.width > 0 {
		if gap := m.width - lipgloss.Width(row); gap > 0 {
			fill := m.Styles.Bar.Copy().UnsetPadding().BorderTop(false).BorderRight(false).BorderBottom(false).BorderLeft(false).Margin(0)
			row = lipgloss.JoinHorizontal(lipgloss.Top, row, fill.Render(strings.Repeat(" ", gap)))
		}
	}
	return m.Styles.Bar.Render(row)
}

// ViewOverflow renders the open overflow menu and its column offset relative
// to the strip's left edge. It returns "" when the menu is closed.
func (m Model) ViewOverflow() (string, int) {
	if !m.open {
		return "", 0
	}
	menu := m.renderMenu()
	x, _ := m.menuOrigin(lipgloss.Width(menu))
	return menu, x - m.x
}

// OverflowLayer returns the open menu with its absolute screen position,
// ready for Overlay.
func (m Model) OverflowLayer() (content string, x, y int) {
	if !m.open {
		return "", 0, 0
	}
	menu := m.renderMenu()
	x, y = m.menuOrigin(lipgloss.Width(menu))
	return menu, x, y
}

func (m Model) renderTab(i int) string {
	style := m.Styles.Tab
	if m.items[i].ID == m.activeID {
		style = m.Styles.ActiveTab
	}
	return style.Render(m.items[i].Label)
}

func (m Model) renderToggle() string {
	style := m.Styles.More
	if indexOf(m.items, m.activeID) >= m.layout.VisibleCount() {
		style = m.Styles.MoreActive
	}
	return style.Render(m.cfg.moreLabel())
}

func (m Model) renderMenu() string {
	overflow := m.Overflow()
	widest := 0
	for _, item := range overflow {
		widest = max(widest, lipgloss.Width(item.Label))
	}

	rows := make([]string, 0, len(overflow))
	for j, item := range overflow {
		style := m.Styles.MenuItem
		if item.ID == m.activeID {
			style = m.Styles.MenuActive
		}
		if j == m.cursor {
			style = m.Styles.MenuCursor.Copy().Inherit(style)
		}
		label := item.Label + strings.Repeat(" ", widest-lipgloss.Width(item.Label))
		rows = append(rows, style.Render(label))
	}
	return m.Styles.Menu.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
