package window

import (
	"math"
	"testing"

	"github.com/matzehuels/padd/pkg/schedule"
)

func TestComputeVisibleRange(t *testing.T) {
	tests := []struct {
		name                        string
		total                       int
		lineHeight, top, vh, buffer float64
		want                        Range
	}{
		{"at top", 1000, 8, 0, 800, 160, Range{0, 120}},
		{"scrolled into container", 1000, 8, -400, 800, 160, Range{30, 170}},
		{"end clamps to total", 100, 8, -400, 800, 160, Range{30, 100}},
		{"no buffer", 1000, 8, -80, 80, 0, Range{10, 20}},
		{"container below viewport", 1000, 8, 300, 800, 0, Range{0, 100}},
		{"scrolled past container", 100, 8, -5000, 800, 160, Range{100, 100}},
		{"zero lines", 0, 8, 0, 800, 160, Range{}},
		{"negative lines", -5, 8, 0, 800, 160, Range{}},
		{"zero line height fails open", 50, 0, -400, 800, 160, Range{0, 50}},
		{"NaN line height fails open", 50, math.NaN(), 0, 800, 160, Range{0, 50}},
		{"negative viewport", 100, 8, 0, -10, 0, Range{0, 0}},
		{"fractional buffer rounds up", 100, 8, -80, 8, 1, Range{9, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeVisibleRange(tt.total, tt.lineHeight, tt.top, tt.vh, tt.buffer)
			if got != tt.want {
				t.Errorf("ComputeVisibleRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeVisibleRangeInvariant(t *testing.T) {
	values := []float64{
		math.Inf(-1), -1e12, -10000, -333.3, -8, -0.5, 0, 0.5, 7, 160, 799.9, 1e12,
		math.Inf(1), math.NaN(),
	}
	heights := []float64{0.5, 1, 8, 24, 1000}

	for _, total := range []int{1, 7, 100, MaxRows} {
		for _, lh := range heights {
			for _, top := range values {
				for _, vh := range values {
					for _, buf := range values {
						r := ComputeVisibleRange(total, lh, top, vh, buf)
						if r.Start < 0 || r.Start > r.End || r.End > total {
							t.Fatalf("ComputeVisibleRange(%d, %v, %v, %v, %v) = %+v violates 0 <= start <= end <= total",
								total, lh, top, vh, buf, r)
						}
					}
				}
			}
		}
	}
}

func TestRowCount(t *testing.T) {
	tests := []struct {
		height, base float64
		want         int
	}{
		{800, 8, 100},
		{801, 8, 101},
		{0, 8, 1},
		{-20, 8, 1},
		{1e9, 8, MaxRows},
		{100, 0, 1},
		{math.NaN(), 8, 1},
	}
	for _, tt := range tests {
		if got := RowCount(tt.height, tt.base); got != tt.want {
			t.Errorf("RowCount(%v, %v) = %d, want %d", tt.height, tt.base, got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if !r.Contains(2) || r.Contains(5) || r.Contains(1) {
		t.Errorf("Contains() is not half-open for %+v", r)
	}
	if got := Full(-3); got != (Range{}) {
		t.Errorf("Full(-3) = %+v, want zero range", got)
	}
}

func TestTrackerFailsOpen(t *testing.T) {
	tr := NewTracker(500, 8)
	defer tr.Close()
	if got := tr.Range(); got != Full(500) {
		t.Errorf("Range() before measurement = %+v, want %+v", got, Full(500))
	}
}

func TestTrackerPublishesChanges(t *testing.T) {
	tr := NewTracker(1000, 8, WithBuffer(0))
	defer tr.Close()

	var got []Range
	tr.Subscribe(func(r Range) { got = append(got, r) })

	tr.Intersect(Measurement{ContainerTop: 0, ViewportHeight: 80})
	tr.Scroll(Measurement{ContainerTop: 0, ViewportHeight: 80}) // unchanged
	tr.Scroll(Measurement{ContainerTop: -80, ViewportHeight: 80})
	tr.Resize(Measurement{ContainerTop: -80, ViewportHeight: 160})

	want := []Range{{0, 10}, {10, 20}, {10, 30}}
	if len(got) != len(want) {
		t.Fatalf("published %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("publish %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTrackerSetTotal(t *testing.T) {
	tr := NewTracker(10, 8, WithBuffer(0))
	defer tr.Close()
	tr.SetTotal(4)
	if got := tr.Range(); got != Full(4) {
		t.Errorf("Range() after SetTotal before measuring = %+v, want %+v", got, Full(4))
	}
	tr.Scroll(Measurement{ContainerTop: 0, ViewportHeight: 16})
	tr.SetTotal(1)
	if got := tr.Range(); got != (Range{0, 1}) {
		t.Errorf("Range() = %+v, want {0 1}", got)
	}
}

func TestTrackerThrottled(t *testing.T) {
	frames := schedule.NewManualFrames()
	tr := NewTracker(1000, 8, WithBuffer(0), WithScheduler(schedule.NewFrameThrottle(frames)))
	defer tr.Close()

	var calls int
	tr.Subscribe(func(Range) { calls++ })

	for top := 0.0; top > -800; top -= 8 {
		tr.Scroll(Measurement{ContainerTop: top, ViewportHeight: 80})
	}
	if calls != 0 {
		t.Fatalf("recomputed %d times before the frame", calls)
	}
	frames.Tick()
	if calls != 1 {
		t.Errorf("recomputed %d times in one frame, want 1", calls)
	}
	if got := tr.Range(); got != (Range{99, 109}) {
		t.Errorf("Range() = %+v, want the last scroll position {99 109}", got)
	}
}

func TestTrackerClose(t *testing.T) {
	frames := schedule.NewManualFrames()
	tr := NewTracker(1000, 8, WithScheduler(schedule.NewFrameThrottle(frames)))

	var calls int
	unsub := tr.Subscribe(func(Range) { calls++ })
	tr.Scroll(Measurement{ContainerTop: -4000, ViewportHeight: 80})
	tr.Close()
	tr.Close()
	unsub()

	frames.Tick()
	tr.Scroll(Measurement{ContainerTop: 0, ViewportHeight: 80})
	if calls != 0 {
		t.Errorf("subscriber called %d times after Close", calls)
	}
	if got := tr.Subscribe(func(Range) {}); got == nil {
		t.Error("Subscribe after Close returned nil unsubscribe")
	}
}

func TestTrackerCloseFromSubscriber(t *testing.T) {
	tr := NewTracker(1000, 8)
	tr.Subscribe(func(Range) { tr.Close() })
	tr.Scroll(Measurement{ContainerTop: -800, ViewportHeight: 80})
	tr.Scroll(Measurement{ContainerTop: -1600, ViewportHeight: 80})
}
