package tabstrip

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Bar        lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	More       lipgloss.Style
	MoreActive lipgloss.Style // toggle while the active tab is in the overflow
	Menu       lipgloss.Style
	MenuItem   lipgloss.Style
	MenuActive lipgloss.Style
	MenuCursor lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Bar: lipgloss.NewStyle().
			Background(lipgloss.Color("#F3F2EF")).
			Foreground(lipgloss.Color("#4B5563")),
		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#F3F2EF")).
			Foreground(lipgloss.Color("#4B5563")),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#F3F2EF")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Underline(true),
		More: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#E5E7EB")).
			Foreground(lipgloss.Color("#4B5563")),
		MoreActive: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#E5E7EB")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")),
		MenuItem: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#4B5563")),
		MenuActive: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#000000")).
			Bold(true),
		MenuCursor: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#F3F4F6")).
			Foreground(lipgloss.Color("#111111")),
	}
}
