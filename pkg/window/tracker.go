package window

import (
	"sync"

	"github.com/matzehuels/padd/pkg/observability"
	"github.com/matzehuels/padd/pkg/schedule"
)

// Measurement is the geometry a tracker windows against.
type Measurement struct {
	// ContainerTop is the container's top edge relative to the viewport top.
	ContainerTop float64
	// ViewportHeight is the visible height of the viewport.
	ViewportHeight float64
}

// Unsubscribe removes a range subscriber.
type Unsubscribe func()

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithBuffer sets the buffer zone in pixels. Negative values are ignored.
func WithBuffer(px float64) TrackerOption {
	return func(t *Tracker) {
		if px >= 0 {
			t.buffer = px
		}
	}
}

// WithScheduler routes recomputation through s. The tracker owns s and stops
// it on Close. The default runs recomputations synchronously.
func WithScheduler(s schedule.Scheduler) TrackerOption {
	return func(t *Tracker) {
		if s != nil {
			t.sched = s
		}
	}
}

// Tracker keeps the visible range of a mounted overlay current.
//
// Before the first measurement the tracker reports the full range, so a
// freshly mounted overlay renders everything rather than nothing. The host
// forwards intersection, resize and scroll signals; each stores the latest
// measurement and schedules one recomputation. Subscribers are notified only
// when the range actually changes.
//
// A Tracker is safe for concurrent use.
type Tracker struct {
	lineHeight float64
	buffer     float64
	sched      schedule.Scheduler

	mu       sync.Mutex
	total    int
	measured bool
	last     Measurement
	current  Range
	subs     map[int]func(Range)
	nextID   int
	closed   bool
}

// NewTracker creates a tracker over totalLines lines of lineHeight pixels.
func NewTracker(totalLines int, lineHeight float64, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		lineHeight: lineHeight,
		buffer:     DefaultBuffer,
		sched:      schedule.NewImmediate(),
		total:      max(totalLines, 0),
		subs:       make(map[int]func(Range)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.current = Full(t.total)
	return t
}

// Range returns the current visible range.
func (t *Tracker) Range() Range {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Intersect records that the container entered or left the viewport.
func (t *Tracker) Intersect(m Measurement) { t.signal(m) }

// Resize records a viewport or container resize.
func (t *Tracker) Resize(m Measurement) { t.signal(m) }

// Scroll records a scroll position change.
func (t *Tracker) Scroll(m Measurement) { t.signal(m) }

// SetTotal changes the number of lines, for example after the container
// height changed the row count.
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.total = max(total, 0)
	t.mu.Unlock()
	t.sched.Schedule(t.recompute)
}

func (t *Tracker) signal(m Measurement) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.last = m
	t.measured = true
	t.mu.Unlock()
	t.sched.Schedule(t.recompute)
}

func (t *Tracker) recompute() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	next := Full(t.total)
	if t.measured {
		next = ComputeVisibleRange(t.total, t.lineHeight, t.last.ContainerTop, t.last.ViewportHeight, t.buffer)
	}
	if next == t.current {
		t.mu.Unlock()
		return
	}
	t.current = next
	subs := make([]func(Range), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	observability.Observer().OnRangeChange(next.Start, next.End)
	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn for range changes.
func (t *Tracker) Subscribe(fn func(Range)) Unsubscribe {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || fn == nil {
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Close stops the scheduler and drops all subscribers. It is safe to call
// more than once and from within a subscriber.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.subs = nil
	t.mu.Unlock()
	t.sched.Stop()
}
