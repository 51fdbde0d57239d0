package tabstrip

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// SelectMsg is emitted when a tab is chosen, unless a callback was installed
// with WithOnSelect.
type SelectMsg struct {
	ID string
}

type measureMsg struct {
	sub *Subscription
	m   Measurement
}

// Option configures a Model in New.
type Option func(*Model)

// WithActive sets the initially active tab. Unknown ids fall back to the
// first tab.
func WithActive(id string) Option {
	return func(m *Model) { m.activeID = id }
}

func WithConfig(cfg Config) Option {
	return func(m *Model) { m.cfg = cfg }
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithOnSelect replaces the default SelectMsg with the message returned by fn.
func WithOnSelect(fn func(id string) tea.Msg) Option {
	return func(m *Model) { m.onSelect = fn }
}

func WithStyles(s Styles) Option {
	return func(m *Model) { m.Styles = s }
}

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.KeyMap = k }
}

// Model is a horizontal tab strip that keeps as many tabs inline as the
// container allows and collapses the rest into a "more" menu.
type Model struct {
	Styles  Styles
	KeyMap  KeyMap
	Focused bool

	items    []Item
	layout   Layout
	open     bool
	activeID string
	cursor   int // highlighted row of the overflow menu

	cfg        Config
	width      int
	x, y       int
	port       *Port
	sub        *Subscription
	portWidths []int
	widthsGen  uint64 // port widths at or below this generation are stale

	onSelect func(id string) tea.Msg
	logger   *zap.Logger
}

func New(items []Item, opts ...Option) Model {
	m := Model{
		Styles:  DefaultStyles(),
		KeyMap:  DefaultKeyMap(),
		Focused: true,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.SetItems(items)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetItems replaces the tab sequence and recomputes the partition. The
// active tab is kept when it is still present.
func (m *Model) SetItems(items []Item) {
	norm, dropped := normalizeItems(items)
	if len(dropped) > 0 {
		m.logger.Warn("dropped invalid or duplicate tabs", zap.Strings("ids", dropped))
	}
	prev := m.layout.VisibleCount()
	m.items = norm
	m.portWidths = nil
	if m.port != nil {
		m.widthsGen = m.port.widthsGen()
	}
	m.layout.Reset(len(norm))
	if indexOf(norm, m.activeID) < 0 {
		m.activeID = ""
		if len(norm) > 0 {
			m.activeID = norm[0].ID
		}
	}
	m.relayout(prev)
}

// SetWidth sets the container width in cells. Zero means not laid out yet
// and keeps the current partition.
func (m *Model) SetWidth(w int) {
	prev := m.layout.VisibleCount()
	m.width = max(w, 0)
	m.relayout(prev)
}

func (m *Model) SetConfig(cfg Config) {
	prev := m.layout.VisibleCount()
	m.cfg = cfg
	m.relayout(prev)
}

// SetOrigin records the screen cell of the strip's top-left corner, used for
// mouse hit testing.
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// Toggle opens or closes the overflow menu. It does nothing when no tab is
// in the overflow.
func (m *Model) Toggle() {
	if !m.layout.Overflowing() {
		return
	}
	m.open = !m.open
	if m.open {
		m.cursor = max(indexOf(m.Overflow(), m.activeID), 0)
	}
}

// Dismiss closes the overflow menu.
func (m *Model) Dismiss() {
	m.open = false
}

// Select makes id the active tab. Choosing a tab from the overflow closes the
// menu; choosing an inline tab leaves it alone. Unknown ids are ignored.
func (m *Model) Select(id string) tea.Cmd {
	i := indexOf(m.items, id)
	if i < 0 {
		return nil
	}
	if i >= m.layout.VisibleCount() {
		m.open = false
	}
	m.activeID = id
	if m.onSelect != nil {
		fn := m.onSelect
		return func() tea.Msg { return fn(id) }
	}
	return func() tea.Msg { return SelectMsg{ID: id} }
}

// Watch makes p the source of container and item widths. While watching,
// tea.WindowSizeMsg is ignored. The returned command must be run by the
// program; it re-arms itself after each measurement.
func (m *Model) Watch(p *Port) tea.Cmd {
	m.Unwatch()
	m.port = p
	m.widthsGen = 0
	if !m.Focused {
		return nil
	}
	return m.subscribe()
}

// Unwatch releases the port subscription and forgets the port.
func (m *Model) Unwatch() {
	m.release()
	m.port = nil
}

// Activate focuses the strip and re-acquires the port subscription released
// by Deactivate.
func (m *Model) Activate() tea.Cmd {
	m.Focused = true
	if m.port != nil && m.sub == nil {
		return m.subscribe()
	}
	return nil
}

// Deactivate blurs the strip, closes the menu and releases the port
// subscription.
func (m *Model) Deactivate() {
	m.Focused = false
	m.open = false
	m.release()
}

func (m *Model) subscribe() tea.Cmd {
	m.sub = m.port.Subscribe()
	return waitForMeasurement(m.sub)
}

func (m *Model) release() {
	if m.sub != nil {
		m.sub.Close()
		m.sub = nil
	}
	m.portWidths = nil
}

func waitForMeasurement(sub *Subscription) tea.Cmd {
	return func() tea.Msg {
		meas, ok := <-sub.C
		if !ok {
			return nil
		}
		return measureMsg{sub: sub, m: meas}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.port == nil {
			m.SetWidth(msg.Width - m.Styles.Bar.GetHorizontalFrameSize())
		}
		return m, nil

	case measureMsg:
		if msg.sub == nil || msg.sub != m.sub {
			return m, nil
		}
		m.portWidths = nil
		if msg.m.widthsGen > m.widthsGen && len(msg.m.ItemWidths) == len(m.items) {
			m.portWidths = msg.m.ItemWidths
		}
		if msg.m.ContainerWidth > 0 {
			m.SetWidth(msg.m.ContainerWidth)
		}
		return m, waitForMeasurement(m.sub)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.Focused || len(m.items) == 0 {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.open {
		overflow := m.Overflow()
		if len(overflow) == 0 {
			m.Dismiss()
			return m, nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Up):
			m.cursor = (m.cursor - 1 + len(overflow)) % len(overflow)
		case key.Matches(msg, m.KeyMap.Down):
			m.cursor = (m.cursor + 1) % len(overflow)
		case key.Matches(msg, m.KeyMap.Choose):
			return m, m.Select(overflow[m.cursor].ID)
		case key.Matches(msg, m.KeyMap.Dismiss), key.Matches(msg, m.KeyMap.More):
			m.Dismiss()
		case key.Matches(msg, m.KeyMap.Prev):
			m.Dismiss()
			return m, m.step(-1)
		case key.Matches(msg, m.KeyMap.Next):
			m.Dismiss()
			return m, m.step(1)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.KeyMap.Prev):
		return m, m.step(-1)
	case key.Matches(msg, m.KeyMap.Next):
		return m, m.step(1)
	case key.Matches(msg, m.KeyMap.More), key.Matches(msg, m.KeyMap.Down):
		m.Toggle()
	}
	return m, nil
}

// step selects the tab delta positions away from the active one, wrapping
// around the ends of the sequence.
func (m *Model) step(delta int) tea.Cmd {
	n := len(m.items)
	i := max(indexOf(m.items, m.activeID), 0)
	next := ((i+delta)%n + n) % n
	return m.Select(m.items[next].ID)
}

// relayout re-measures and applies the fit. prev is the visible count before
// the triggering change; if the partition moved, an open menu is closed.
func (m *Model) relayout(prev int) {
	m.layout.Apply(Measurement{
		ContainerWidth: m.width,
		ItemWidths:     m.itemWidths(),
	}, m.reservedWidth())

	if !m.layout.Overflowing() {
		m.open = false
	}
	if m.layout.VisibleCount() == prev {
		m.cursor = min(m.cursor, max(len(m.Overflow())-1, 0))
		return
	}
	m.open = false
	m.cursor = 0

	if !m.layout.Ready() {
		return
	}
	if m.layout.Overflowing() {
		m.logger.Debug("tabs moved to overflow",
			zap.Int("visible", m.layout.VisibleCount()),
			zap.Strings("labels", labels(m.Overflow())))
	} else {
		m.logger.Debug("all tabs visible", zap.Int("count", len(m.items)))
	}
}

// itemWidths returns the natural width of every tab. Port-supplied widths win
// when they match the tab count; otherwise tabs are measured in the inactive
// style so selection never moves the partition.
func (m Model) itemWidths() []int {
	if m.portWidths != nil && len(m.portWidths) == len(m.items) {
		return m.portWidths
	}
	widths := make([]int, len(m.items))
	for i, item := range m.items {
		widths[i] = lipgloss.Width(m.Styles.Tab.Render(item.Label))
	}
	return widths
}

func (m Model) reservedWidth() int {
	if m.cfg.ReservedWidth > 0 {
		return m.cfg.ReservedWidth
	}
	label := m.cfg.moreLabel()
	return max(
		lipgloss.Width(m.Styles.More.Render(label)),
		lipgloss.Width(m.Styles.MoreActive.Render(label)),
	)
}

func (m Model) VisibleCount() int   { return m.layout.VisibleCount() }
func (m Model) OverflowOpen() bool  { return m.open }
func (m Model) ActiveID() string    { return m.activeID }
func (m Model) ContainerWidth() int { return m.width }
func (m Model) Config() Config      { return m.cfg }

// Items returns a copy of the normalized tab sequence.
func (m Model) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Inline returns the tabs rendered in the row.
func (m Model) Inline() []Item {
	return append([]Item(nil), m.items[:m.layout.VisibleCount()]...)
}

// Overflow returns the tabs collapsed into the menu, in sequence order.
func (m Model) Overflow() []Item {
	return append([]Item(nil), m.items[m.layout.VisibleCount():]...)
}
