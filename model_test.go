package tabstrip

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func profileTabs() []Item {
	return []Item{
		{ID: "home", Label: "Home"},
		{ID: "about", Label: "About Us"},
		{ID: "products", Label: "Products/Services"},
		{ID: "people", Label: "People"},
		{ID: "contact", Label: "Contact"},
		{ID: "updates", Label: "Updates"},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// measured drives m from a port holding the given measurement.
func measured(t *testing.T, m Model, p *Port, container int, widths []int) Model {
	t.Helper()
	if m.sub == nil {
		m.Watch(p)
	}
	p.Set(Measurement{ContainerWidth: container, ItemWidths: widths})
	msg := waitForMeasurement(m.sub)()
	require.IsType(t, measureMsg{}, msg)
	m, _ = m.Update(msg)
	return m
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDefaults(t *testing.T) {
	m := New(profileTabs())
	assert.Equal(t, "home", m.ActiveID())
	assert.Equal(t, 6, m.VisibleCount(), "all tabs assumed to fit before measuring")
	assert.False(t, m.OverflowOpen())

	m = New(profileTabs(), WithActive("contact"))
	assert.Equal(t, "contact", m.ActiveID())

	m = New(profileTabs(), WithActive("missing"))
	assert.Equal(t, "home", m.ActiveID())

	m = New(nil)
	assert.Equal(t, "", m.ActiveID())
	assert.Equal(t, 0, m.VisibleCount())
	assert.Equal(t, "", m.View())
}

func TestMalformedItems(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := New([]Item{
		{ID: "a", Label: "First"},
		{ID: "b"},
		{ID: "a", Label: "Second"},
		{Label: "no id"},
	}, WithLogger(zap.New(core)))

	require.Equal(t, []Item{{ID: "a", Label: "First"}, {ID: "b", Label: "b"}}, m.Items())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "dropped invalid or duplicate tabs", logs.All()[0].Message)
}

func TestSixTabsInFiveHundred(t *testing.T) {
	p := NewPort()
	m := New(profileTabs(), WithConfig(Config{ReservedWidth: 80}))
	defer m.Unwatch()

	m = measured(t, m, p, 500, repeat(120, 6))
	require.Equal(t, 3, m.VisibleCount())
	assert.Equal(t, []string{"home", "about", "products"}, ids(m.Inline()))

	m.Toggle()
	require.True(t, m.OverflowOpen())
	assert.Equal(t, []string{"people", "contact", "updates"}, ids(m.Overflow()))

	menu, _ := m.ViewOverflow()
	people := strings.Index(menu, "People")
	contact := strings.Index(menu, "Contact")
	updates := strings.Index(menu, "Updates")
	assert.True(t, people >= 0 && people < contact && contact < updates, menu)
}

func TestShrinkRecomputesAndCloses(t *testing.T) {
	p := NewPort()
	m := New(profileTabs(), WithConfig(Config{ReservedWidth: 80}))
	defer m.Unwatch()

	m = measured(t, m, p, 900, repeat(120, 6))
	require.Equal(t, 6, m.VisibleCount())
	m.Toggle()
	assert.False(t, m.OverflowOpen(), "nothing to show")

	m = measured(t, m, p, 500, repeat(120, 6))
	m.Toggle()
	require.True(t, m.OverflowOpen())

	m = measured(t, m, p, 510, repeat(120, 6))
	assert.Equal(t, 3, m.VisibleCount())
	assert.True(t, m.OverflowOpen(), "same partition keeps the menu")

	m = measured(t, m, p, 300, repeat(120, 6))
	assert.Equal(t, 1, m.VisibleCount())
	assert.False(t, m.OverflowOpen())
}

func TestSingleHugeTab(t *testing.T) {
	p := NewPort()
	m := New([]Item{{ID: "wide", Label: "Wide"}}, WithConfig(Config{ReservedWidth: 80}))
	defer m.Unwatch()

	m = measured(t, m, p, 400, []int{1000})
	require.Equal(t, 0, m.VisibleCount())
	assert.Contains(t, m.ViewBar(), DefaultMoreLabel)
	assert.NotContains(t, m.ViewBar(), "Wide")

	m.Toggle()
	require.True(t, m.OverflowOpen())
	assert.Contains(t, m.View(), "Wide")
}

func TestZeroWidthHoldsPartition(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	require.Equal(t, 2, m.VisibleCount())

	m.SetWidth(0)
	assert.Equal(t, 2, m.VisibleCount())

	m.SetWidth(40)
	assert.Equal(t, 2, m.VisibleCount(), "same inputs, same result")
}

func TestWindowSizeMsg(t *testing.T) {
	m := New(profileTabs())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 40, m.ContainerWidth())
	assert.Equal(t, 2, m.VisibleCount())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 20})
	assert.Equal(t, 6, m.VisibleCount())
	assert.NotContains(t, m.ViewBar(), DefaultMoreLabel)
}

func TestPortWinsOverWindowSize(t *testing.T) {
	p := NewPort()
	m := New(profileTabs(), WithConfig(Config{ReservedWidth: 80}))
	defer m.Unwatch()

	m = measured(t, m, p, 500, repeat(120, 6))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 10})
	assert.Equal(t, 500, m.ContainerWidth())
	assert.Equal(t, 3, m.VisibleCount())
}

func TestStaleMeasurementIgnored(t *testing.T) {
	p := NewPort()
	m := New(profileTabs(), WithConfig(Config{ReservedWidth: 80}))
	m.Watch(p)
	stale := m.sub
	m.Unwatch()

	m, cmd := m.Update(measureMsg{sub: stale, m: Measurement{ContainerWidth: 300, ItemWidths: repeat(120, 6)}})
	assert.Nil(t, cmd)
	assert.Equal(t, 6, m.VisibleCount())
}

func TestSetItemsDropsPortWidthsUntilRemeasured(t *testing.T) {
	p := NewPort()
	m := New(profileTabs(), WithConfig(Config{ReservedWidth: 10}))
	defer m.Unwatch()

	m = measured(t, m, p, 40, repeat(5, 6))
	require.Equal(t, 6, m.VisibleCount())

	// same length, much wider labels; the old port widths must not be reused
	wide := make([]Item, 6)
	for i := range wide {
		wide[i] = Item{ID: strings.Repeat("x", i+1), Label: strings.Repeat("W", 12)}
	}
	m.SetItems(wide)
	p.SetContainerWidth(40)
	m, _ = m.Update(waitForMeasurement(m.sub)())
	assert.Equal(t, 1, m.VisibleCount(), "tabs are measured from their labels until the port republishes widths")

	p.SetItemWidths(repeat(5, 6))
	m, _ = m.Update(waitForMeasurement(m.sub)())
	assert.Equal(t, 6, m.VisibleCount())
}

func TestSelectionDoesNotMovePartition(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	before := m.VisibleCount()
	for _, item := range profileTabs() {
		m.Select(item.ID)
		assert.Equal(t, before, m.VisibleCount())
	}
}

func TestSelectOverflowCloses(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	m.Toggle()
	require.True(t, m.OverflowOpen())

	msg := runCmd(t, m.Select("contact"))
	assert.Equal(t, SelectMsg{ID: "contact"}, msg)
	assert.Equal(t, "contact", m.ActiveID())
	assert.False(t, m.OverflowOpen())
}

func TestSelectInlineLeavesMenuAlone(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)

	m.Select("about")
	assert.False(t, m.OverflowOpen())

	m.Toggle()
	m.Select("home")
	assert.True(t, m.OverflowOpen())
	assert.Equal(t, "home", m.ActiveID())
}

func TestSelectUnknownIsIgnored(t *testing.T) {
	m := New(profileTabs())
	assert.Nil(t, m.Select("nope"))
	assert.Equal(t, "home", m.ActiveID())
}

func TestOnSelectCallback(t *testing.T) {
	type chosen string
	m := New(profileTabs(), WithOnSelect(func(id string) tea.Msg { return chosen(id) }))
	assert.Equal(t, chosen("people"), runCmd(t, m.Select("people")))
}

func TestToggleWithoutOverflowIsNoop(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(500)
	m.Toggle()
	assert.False(t, m.OverflowOpen())
}

func TestDismissAndDeactivate(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	m.Toggle()
	m.Dismiss()
	assert.False(t, m.OverflowOpen())

	m.Toggle()
	m.Deactivate()
	assert.False(t, m.OverflowOpen())
	assert.False(t, m.Focused)

	m, _ = m.Update(keyPress("m"))
	assert.False(t, m.OverflowOpen(), "blurred strip ignores keys")
}

func TestSetItemsRecomputes(t *testing.T) {
	m := New(profileTabs(), WithActive("updates"))
	m.SetWidth(40)
	m.Toggle()
	require.True(t, m.OverflowOpen())

	m.SetItems(profileTabs()[:2])
	assert.Equal(t, 2, m.VisibleCount())
	assert.False(t, m.OverflowOpen())
	assert.Equal(t, "home", m.ActiveID(), "removed active tab falls back to the first")

	m.SetItems(append([]Item{{ID: "news", Label: "News"}}, profileTabs()...))
	assert.Equal(t, "home", m.ActiveID())
	assert.Equal(t, 3, m.VisibleCount(), "News, Home and About Us fit beside the toggle")

	m.Toggle()
	require.True(t, m.OverflowOpen())
	m.SetItems(profileTabs())
	assert.Equal(t, 2, m.VisibleCount())
	assert.False(t, m.OverflowOpen(), "a moved partition closes the menu")
}

func TestConfigChangeRelayouts(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	require.Equal(t, 2, m.VisibleCount())

	m.SetConfig(Config{ReservedWidth: 30})
	assert.Equal(t, 1, m.VisibleCount())
	m.SetConfig(Config{MoreLabel: "…"})
	assert.Equal(t, 2, m.VisibleCount())
	assert.Contains(t, m.ViewBar(), "…")
}

func TestPartitionChangesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := New(profileTabs(), WithLogger(zap.New(core)))
	m.SetWidth(40)

	moved := logs.FilterMessage("tabs moved to overflow").All()
	require.Len(t, moved, 1)
	assert.Equal(t, int64(2), moved[0].ContextMap()["visible"])

	m.SetWidth(400)
	assert.Equal(t, 1, logs.FilterMessage("all tabs visible").FilterField(zap.Int("count", 6)).Len())
}

func TestKeyboard(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)

	m, cmd := m.Update(keyPress("right"))
	assert.Equal(t, SelectMsg{ID: "about"}, runCmd(t, cmd))
	m, _ = m.Update(keyPress("left"))
	m, _ = m.Update(keyPress("left"))
	assert.Equal(t, "updates", m.ActiveID(), "wraps around to the last tab")
	assert.False(t, m.OverflowOpen())

	m, _ = m.Update(keyPress("m"))
	require.True(t, m.OverflowOpen())
	assert.Equal(t, 3, m.cursor, "cursor starts on the active overflow tab")

	m, _ = m.Update(keyPress("down"))
	assert.Equal(t, 0, m.cursor)
	m, _ = m.Update(keyPress("down"))
	m, cmd = m.Update(keyPress("enter"))
	assert.Equal(t, SelectMsg{ID: "people"}, runCmd(t, cmd))
	assert.False(t, m.OverflowOpen())

	m, _ = m.Update(keyPress("down"))
	require.True(t, m.OverflowOpen())
	m, _ = m.Update(keyPress("esc"))
	assert.False(t, m.OverflowOpen())
}

func TestMouseOutsideDismissal(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	require.Equal(t, 2, m.VisibleCount())

	toggleX := m.toggleLeft()
	m, _ = m.Update(tea.MouseMsg{X: toggleX + 1, Y: 0, Type: tea.MouseLeft})
	m, _ = m.Update(tea.MouseMsg{X: toggleX + 1, Y: 0, Type: tea.MouseRelease})
	require.True(t, m.OverflowOpen())

	_, menuX, menuY := m.OverflowLayer()
	inside := tea.MouseMsg{X: menuX + 2, Y: menuY + 1 + borderTop(m.Styles.Menu)}

	inside.Type = tea.MouseLeft
	m, _ = m.Update(inside)
	assert.True(t, m.OverflowOpen(), "press inside the menu is not outside")

	m, _ = m.Update(tea.MouseMsg{X: toggleX, Y: 0, Type: tea.MouseLeft})
	assert.True(t, m.OverflowOpen(), "press on the toggle is not outside")

	m, _ = m.Update(tea.MouseMsg{X: 70, Y: 15, Type: tea.MouseLeft})
	assert.False(t, m.OverflowOpen())

	m.Toggle()
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Type: tea.MouseLeft})
	assert.False(t, m.OverflowOpen(), "press on an inline tab is outside the menu")
}

func TestMouseSelection(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)

	m, cmd := m.Update(tea.MouseMsg{X: 9, Y: 0, Type: tea.MouseRelease})
	assert.Equal(t, SelectMsg{ID: "about"}, runCmd(t, cmd))

	m.Toggle()
	_, menuX, menuY := m.OverflowLayer()
	row := menuY + borderTop(m.Styles.Menu) + 1

	m, _ = m.Update(tea.MouseMsg{X: menuX + 2, Y: row, Type: tea.MouseMotion})
	assert.Equal(t, 1, m.cursor)

	m, cmd = m.Update(tea.MouseMsg{X: menuX + 2, Y: row, Type: tea.MouseRelease})
	assert.Equal(t, SelectMsg{ID: "people"}, runCmd(t, cmd))
	assert.False(t, m.OverflowOpen())
	assert.Equal(t, "people", m.ActiveID())
}

func TestBatchSkipsNilCommands(t *testing.T) {
	one := func() tea.Msg { return SelectMsg{ID: "home"} }
	assert.Nil(t, batch(nil, nil))
	assert.Equal(t, SelectMsg{ID: "home"}, runCmd(t, batch(nil, one)))
	assert.IsType(t, tea.BatchMsg{}, runCmd(t, batch(one, one)))
}

func TestMouseActivatesBlurredStrip(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	m.Deactivate()

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Type: tea.MouseRelease})
	assert.True(t, m.Focused)
}

func TestMouseRespectsOrigin(t *testing.T) {
	m := New(profileTabs())
	m.SetWidth(40)
	m.SetOrigin(5, 3)

	m, cmd := m.Update(tea.MouseMsg{X: 1, Y: 0, Type: tea.MouseRelease})
	assert.Nil(t, cmd)
	m, cmd = m.Update(tea.MouseMsg{X: 6, Y: 3, Type: tea.MouseRelease})
	assert.Equal(t, SelectMsg{ID: "home"}, runCmd(t, cmd))
}

func TestViewRendersPartition(t *testing.T) {
	m := New(profileTabs(), WithActive("contact"))
	m.SetWidth(40)

	bar := m.ViewBar()
	assert.Equal(t, 40, lipgloss.Width(bar))
	assert.Contains(t, bar, "Home")
	assert.Contains(t, bar, "About Us")
	assert.NotContains(t, bar, "People")
	assert.Contains(t, bar, DefaultMoreLabel)

	assert.Equal(t, bar, m.View())
	m.Toggle()
	view := m.View()
	assert.Equal(t, 1+lipgloss.Height(m.renderMenu()), lipgloss.Height(view))
	for _, item := range m.Overflow() {
		assert.Contains(t, view, item.Label)
	}
}
