package tabstrip

// FitCount returns how many leading items fit inline in a container of the
// given width while leaving room for an overflow toggle of reservedWidth.
// Items are taken in order; the first one that would push the running total
// plus the reserved width past the container ends the inline prefix. If the
// scan never trips, every item is inline and no toggle is rendered.
// Negative inputs are treated as zero.
func FitCount(containerWidth int, widths []int, reservedWidth int) int {
	containerWidth = max(containerWidth, 0)
	reservedWidth = max(reservedWidth, 0)

	used := 0
	for i, w := range widths {
		w = max(w, 0)
		if used+w+reservedWidth > containerWidth {
			return i
		}
		used += w
	}
	return len(widths)
}

// Measurement is one reading of the space available to the strip and the
// natural width of every item, in terminal cells.
type Measurement struct {
	ContainerWidth int
	ItemWidths     []int

	widthsGen uint64 // bumped by Port on every ItemWidths publish
}

// Layout tracks the inline/overflow partition of an item sequence across
// measurements. The zero value describes an empty sequence.
type Layout struct {
	visible int
	n       int
	ready   bool
}

// NewLayout starts optimistic: all n items are assumed to fit until the first
// usable measurement arrives.
func NewLayout(n int) Layout {
	return Layout{visible: n, n: n}
}

// VisibleCount is the number of leading items rendered inline.
func (l Layout) VisibleCount() int { return l.visible }

// Len is the number of items being partitioned.
func (l Layout) Len() int { return l.n }

// Overflowing reports whether any item is in the overflow list.
func (l Layout) Overflowing() bool { return l.visible < l.n }

// Ready reports whether at least one nonzero measurement has been applied.
func (l Layout) Ready() bool { return l.ready }

// Reset adapts the layout to a new item count. Before the first measurement
// the optimistic all-fit state is kept; afterwards the previous count is held
// (clamped) until the caller applies a fresh measurement.
func (l *Layout) Reset(n int) {
	l.n = max(n, 0)
	if !l.ready {
		l.visible = l.n
		return
	}
	l.visible = min(l.visible, l.n)
}

// Apply recomputes the partition and reports whether the visible count
// changed. A zero container width means the container is not laid out yet;
// the previous partition is held. Widths of the wrong length are ignored.
func (l *Layout) Apply(m Measurement, reservedWidth int) bool {
	if m.ContainerWidth <= 0 || len(m.ItemWidths) != l.n {
		return false
	}
	l.ready = true
	next := FitCount(m.ContainerWidth, m.ItemWidths, reservedWidth)
	if next == l.visible {
		return false
	}
	l.visible = next
	return true
}
