// Package window limits how many guide lines a tall overlay renders.
//
// A row overlay over a long page can need hundreds of 1px rows. Only the rows
// near the viewport are worth emitting; the rest are skipped and picked up
// again as the page scrolls. [ComputeVisibleRange] is the pure arithmetic,
// [Tracker] keeps it current for a mounted overlay.
//
// # Range Invariant
//
// Every range returned by this package satisfies
//
//	0 <= Start <= End <= totalLines
//
// for any scroll offset, viewport height and buffer, including NaN and
// infinite inputs.
//
// # Buffer
//
// The range is padded by a buffer zone above and below the viewport
// ([DefaultBuffer] pixels) so fast scrolling does not reveal missing rows
// before the next recomputation lands.
package window

import (
	"math"
)

// DefaultBuffer is the padding in pixels rendered beyond each viewport edge.
const DefaultBuffer = 160

// MaxRows caps the number of rows an overlay may hold.
const MaxRows = 1000

// Range is a half-open index window [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Full returns the range covering all total lines.
func Full(total int) Range {
	if total < 0 {
		total = 0
	}
	return Range{Start: 0, End: total}
}

// Len returns the number of lines in the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether index i lies in the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// ComputeVisibleRange returns the lines of a list of totalLines lines, each
// lineHeight pixels tall, that intersect the viewport plus bufferPx pixels on
// either side. containerTopOffset is the container's top edge relative to the
// viewport top; it is negative once the container has scrolled past the top.
//
// A non-positive line height cannot be windowed and yields the full range.
func ComputeVisibleRange(totalLines int, lineHeight, containerTopOffset, viewportHeight, bufferPx float64) Range {
	if totalLines <= 0 {
		return Range{}
	}
	if !(lineHeight > 0) || math.IsInf(lineHeight, 0) {
		return Full(totalLines)
	}

	viewportTop := finite(math.Max(0, -containerTopOffset))
	height := finite(math.Max(0, viewportHeight))
	buffer := finite(math.Max(0, bufferPx))
	bufferLines := math.Ceil(buffer / lineHeight)

	total := float64(totalLines)
	start := clamp(math.Floor(viewportTop/lineHeight)-bufferLines, 0, total)
	end := clamp(math.Ceil((viewportTop+height)/lineHeight)+bufferLines, 0, total)
	if end < start {
		end = start
	}
	return Range{Start: int(start), End: int(end)}
}

// RowCount returns the number of base-unit rows needed to cover height,
// clamped to [1, MaxRows].
func RowCount(height, base float64) int {
	if !(base > 0) || math.IsNaN(height) {
		return 1
	}
	return int(clamp(math.Ceil(height/base), 1, MaxRows))
}

// finite maps NaN to zero and infinities to the largest finite value.
func finite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Min(math.Max(x, lo), hi)
}
