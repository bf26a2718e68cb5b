// Package observe tracks the rendered size of overlay containers.
//
// An [Observer] subscribes to size-change notifications for one [Element]
// through a [Notifier], the way a browser host wires a ResizeObserver. On
// every notification it reads the element's bounds, rounds them to whole
// pixels and publishes [Dimensions] only when the rounded values differ from
// the last published pair, so sub-pixel layout jitter never reaches the
// geometry code.
//
// Observers are scoped resources: [Observer.Close] releases the notifier
// subscription exactly once, and is safe to call from any goroutine, from
// inside a subscriber, or while a notification is being delivered.
//
//	obs := observe.New(el, notifier)
//	defer obs.Close()
//	unsubscribe := obs.Subscribe(func(d observe.Dimensions) { ... })
//	defer unsubscribe()
package observe

import (
	"sync"

	"github.com/matzehuels/padd/pkg/measure"
	"github.com/matzehuels/padd/pkg/observability"
)

// Rect is the rendered box of an element in (possibly fractional) pixels.
type Rect struct {
	Width  float64
	Height float64
}

// Element is anything with a rendered size.
type Element interface {
	Bounds() Rect
}

// ElementFunc adapts a function to Element.
type ElementFunc func() Rect

// Bounds calls f.
func (f ElementFunc) Bounds() Rect { return f() }

// Dispose releases a subscription.
type Dispose func()

// Notifier delivers size-change notifications for an element.
type Notifier interface {
	// Notify calls fn whenever el may have changed size, until the returned
	// Dispose is called.
	Notify(el Element, fn func()) Dispose
}

// Dimensions is a rounded pixel size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Measure reads el's bounds rounded to whole pixels. A nil element measures
// as zero.
func Measure(el Element) Dimensions {
	if el == nil {
		return Dimensions{}
	}
	r := el.Bounds()
	return Dimensions{
		Width:  round(r.Width),
		Height: round(r.Height),
	}
}

func round(x float64) int {
	if x != x { // NaN
		return 0
	}
	return int(measure.Round(x))
}

// Observer publishes deduplicated dimension changes of one element.
type Observer struct {
	el Element

	mu      sync.Mutex
	last    Dimensions
	subs    map[int]func(Dimensions)
	nextID  int
	release Dispose
	closed  bool
}

// New starts observing el. A nil element yields an observer that always
// reports zero dimensions and holds no subscription. A nil notifier takes a
// single initial measurement.
func New(el Element, n Notifier) *Observer {
	o := &Observer{el: el, subs: make(map[int]func(Dimensions))}
	if el == nil {
		return o
	}
	o.last = Measure(el)
	if n != nil {
		o.release = n.Notify(el, o.update)
	}
	return o
}

// Dimensions returns the last published dimensions.
func (o *Observer) Dimensions() Dimensions {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Subscribe registers fn for dimension changes.
func (o *Observer) Subscribe(fn func(Dimensions)) Dispose {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || fn == nil {
		return func() {}
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *Observer) update() {
	d := Measure(o.el)

	o.mu.Lock()
	if o.closed || d == o.last {
		o.mu.Unlock()
		return
	}
	o.last = d
	subs := make([]func(Dimensions), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	observability.Observer().OnResize(d.Width, d.Height)
	for _, fn := range subs {
		fn(d)
	}
}

// Close releases the notifier subscription and drops subscribers.
func (o *Observer) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.subs = nil
	release := o.release
	o.release = nil
	o.mu.Unlock()

	if release != nil {
		release()
	}
}

// =============================================================================
// Broadcast Notifier
// =============================================================================

// Broadcast is a Notifier fired explicitly by the host, for example from a
// terminal resize event. It notifies every registered callback regardless of
// element.
type Broadcast struct {
	mu     sync.Mutex
	subs   map[int]func()
	nextID int
}

// NewBroadcast returns a notifier with no subscribers.
func NewBroadcast() *Broadcast {
	return &Broadcast{subs: make(map[int]func())}
}

// Notify registers fn.
func (b *Broadcast) Notify(_ Element, fn func()) Dispose {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Fire calls every registered callback.
func (b *Broadcast) Fire() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of live subscriptions.
func (b *Broadcast) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
