package tabstrip

import "sync"

// Port is a reactive source of measurements. Producers (a resize watcher, a
// host layout engine, a test) push the container width and item widths;
// every Subscription receives the latest reading. Port is safe for
// concurrent use.
type Port struct {
	mu      sync.Mutex
	current Measurement
	gen     uint64
	subs    map[*Subscription]struct{}
}

// NewPort returns a port with no measurement yet (zero container width).
func NewPort() *Port {
	return &Port{subs: make(map[*Subscription]struct{})}
}

// Current returns a copy of the latest measurement.
func (p *Port) Current() Measurement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneMeasurement(p.current)
}

// SetContainerWidth publishes a new container width.
func (p *Port) SetContainerWidth(w int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current.ContainerWidth = w
	p.publish()
}

// SetItemWidths publishes new natural item widths.
func (p *Port) SetItemWidths(widths []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current.ItemWidths = append([]int(nil), widths...)
	p.gen++
	p.current.widthsGen = p.gen
	p.publish()
}

// Set publishes a complete measurement at once.
func (p *Port) Set(m Measurement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = cloneMeasurement(m)
	p.gen++
	p.current.widthsGen = p.gen
	p.publish()
}

// Subscribe registers a new subscriber. The current measurement, if any, is
// delivered immediately. The caller must Close the subscription when done.
func (p *Port) Subscribe() *Subscription {
	s := &Subscription{
		ch:   make(chan Measurement, 1),
		port: p,
	}
	s.C = s.ch

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.subs == nil {
		p.subs = make(map[*Subscription]struct{})
	}
	p.subs[s] = struct{}{}
	if p.current.ContainerWidth > 0 || len(p.current.ItemWidths) > 0 {
		s.offer(cloneMeasurement(p.current))
	}
	return s
}

// widthsGen returns the generation of the latest item widths.
func (p *Port) widthsGen() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Subscribers reports how many subscriptions are live.
func (p *Port) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// publish must be called with p.mu held.
func (p *Port) publish() {
	for s := range p.subs {
		s.offer(cloneMeasurement(p.current))
	}
}

// Subscription delivers measurements from a Port on C. Only the most recent
// undelivered measurement is kept. C is closed by Close.
type Subscription struct {
	C <-chan Measurement

	ch     chan Measurement
	port   *Port
	closed bool
}

// offer must be called with the port's mutex held.
func (s *Subscription) offer(m Measurement) {
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- m
}

// Close unregisters the subscription and closes C. It is safe to call more
// than once.
func (s *Subscription) Close() {
	if s == nil || s.port == nil {
		return
	}
	p := s.port
	p.mu.Lock()
	defer p.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(p.subs, s)
	close(s.ch)
}

func cloneMeasurement(m Measurement) Measurement {
	m.ItemWidths = append([]int(nil), m.ItemWidths...)
	return m
}
