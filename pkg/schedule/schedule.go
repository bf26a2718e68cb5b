// Package schedule coalesces bursts of UI events into fewer recomputations.
//
// Resize and scroll signals arrive far more often than anything can be drawn.
// A [Scheduler] sits between the signal and the (pure) recomputation and
// decides when the recomputation actually runs:
//
//   - [Immediate] runs every callback synchronously (tests, batch rendering)
//   - [FrameThrottle] runs at most once per frame of a [FrameSource]
//   - [Debounce] runs once after a burst has been quiet for a delay
//
// Every scheduler can be stopped. Stop cancels pending work, and callbacks
// scheduled afterwards are dropped, so owners can stop a scheduler on
// teardown without checking whether a recomputation is in flight.
//
// Schedulers are safe for concurrent use.
package schedule

import (
	"slices"
	"sync"
	"time"
)

// DefaultFrameInterval approximates one display frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// DefaultDebounce is the trailing delay used for burst coalescing.
const DefaultDebounce = 16 * time.Millisecond

// Scheduler decides when a recomputation runs.
type Scheduler interface {
	// Schedule requests that fn runs. Implementations may run it
	// immediately, later, or replace it with a newer request.
	Schedule(fn func())

	// Stop cancels pending work. Later Schedule calls are ignored.
	Stop()
}

// =============================================================================
// Immediate
// =============================================================================

// Immediate runs callbacks synchronously on the calling goroutine.
type Immediate struct {
	mu      sync.Mutex
	stopped bool
}

// NewImmediate returns a synchronous scheduler.
func NewImmediate() *Immediate {
	return &Immediate{}
}

// Schedule runs fn unless the scheduler was stopped.
func (s *Immediate) Schedule(fn func()) {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if !stopped && fn != nil {
		fn()
	}
}

// Stop drops all later callbacks.
func (s *Immediate) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// =============================================================================
// Frame Throttle
// =============================================================================

// FrameSource delivers frame callbacks, like a browser's requestAnimationFrame.
type FrameSource interface {
	// RequestFrame arranges for fn to run on the next frame and returns a
	// function that cancels the request. fn must not be called synchronously
	// from within RequestFrame.
	RequestFrame(fn func()) (cancel func())
}

// FrameThrottle runs at most one callback per frame. Requests made while a
// frame is pending replace the pending callback, so the frame always runs the
// most recent one.
type FrameThrottle struct {
	frames FrameSource

	mu      sync.Mutex
	pending func()
	cancel  func()
	stopped bool
}

// NewFrameThrottle returns a scheduler aligned to frames.
func NewFrameThrottle(frames FrameSource) *FrameThrottle {
	return &FrameThrottle{frames: frames}
}

// Schedule records fn and requests a frame if none is pending.
func (t *FrameThrottle) Schedule(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = fn
	if t.cancel == nil {
		t.cancel = t.frames.RequestFrame(t.flush)
	}
}

func (t *FrameThrottle) flush() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.cancel = nil
	stopped := t.stopped
	t.mu.Unlock()

	if fn != nil && !stopped {
		fn()
	}
}

// Stop cancels the pending frame.
func (t *FrameThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = nil
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// TimerFrames is a FrameSource backed by a fixed interval timer.
type TimerFrames struct {
	interval time.Duration
}

// NewTimerFrames returns frames spaced by interval. Non-positive intervals
// use DefaultFrameInterval.
func NewTimerFrames(interval time.Duration) *TimerFrames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerFrames{interval: interval}
}

// RequestFrame runs fn after one interval.
func (f *TimerFrames) RequestFrame(fn func()) func() {
	timer := time.AfterFunc(f.interval, fn)
	return func() { timer.Stop() }
}

// ManualFrames is a FrameSource driven by explicit Tick calls. Hosts that
// already own a render loop call Tick once per drawn frame.
type ManualFrames struct {
	mu      sync.Mutex
	next    int
	pending map[int]func()
}

// NewManualFrames returns an idle frame source.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{pending: make(map[int]func())}
}

// RequestFrame queues fn for the next Tick.
func (f *ManualFrames) RequestFrame(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.pending[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.pending, id)
		f.mu.Unlock()
	}
}

// Pending returns the number of queued frame callbacks.
func (f *ManualFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Tick runs every queued callback in request order and returns how many ran.
func (f *ManualFrames) Tick() int {
	f.mu.Lock()
	ids := make([]int, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, f.pending[id])
		delete(f.pending, id)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// =============================================================================
// Debounce
// =============================================================================

// Debounce runs the most recent callback once no new request has arrived for
// the configured delay.
type Debounce struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	fn      func()
	gen     uint64
	stopped bool
}

// NewDebounce returns a trailing debouncer. Non-positive delays use
// DefaultDebounce.
func NewDebounce(delay time.Duration) *Debounce {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debounce{delay: delay}
}

// Schedule restarts the quiet period with fn as the pending callback.
func (d *Debounce) Schedule(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.fn = fn
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debounce) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels the pending callback.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
