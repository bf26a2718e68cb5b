package grid

import (
	"math"

	"github.com/matzehuels/padd/pkg/units"
)

// Track is one resolved column in container coordinates.
type Track struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Right returns the right edge of the track.
func (t Track) Right() float64 { return t.X + t.Width }

// Tracks resolves cfg into absolute pixel tracks for a container of the given
// width, the way a CSS grid engine would lay out the template returned by
// [Calculate]. Fractional and auto tracks share the free space; the column
// block is positioned with align. Invalid input yields nil.
func Tracks(containerWidth float64, cfg Config, align Align, opts ...Option) []Track {
	res := Calculate(containerWidth, cfg, opts...)
	if !res.Valid {
		return nil
	}
	o := newOptions(opts)
	o.ctx = o.ctx.WithParent(containerWidth)

	switch c := deref(cfg).(type) {
	case Line:
		gap, _ := lineGap(c, o)
		tracks := make([]Track, res.ColumnCount)
		for i := range tracks {
			tracks[i] = Track{X: float64(i) * (gap + 1), Width: 1}
		}
		return tracks

	case Pattern:
		sizes := make([]units.Value, len(c.Columns))
		for i, tok := range c.Columns {
			sizes[i], _ = units.Parse(tok)
		}
		return distribute(containerWidth, sizes, gapPixels(c.Gap, o), align, o)

	case Fixed:
		size := c.ColumnWidth
		if !size.IsSet() {
			size = units.MustParse(DefaultColumnWidth)
		}
		return distribute(containerWidth, repeat(size, c.Columns), gapPixels(c.Gap, o), align, o)

	case Auto:
		gap := gapPixels(c.Gap, o)
		w := c.ColumnWidth
		if w.IsAuto() || w.Unit == units.FR {
			return []Track{{X: 0, Width: containerWidth}}
		}
		// Relative widths report a single auto-fit track in the template;
		// drawing resolves them against the context to show the real fit.
		colPx, ok := w.Pixels(o.ctx)
		if !ok || colPx <= 0 {
			return []Track{{X: 0, Width: containerWidth}}
		}
		n, ok := autoCount(containerWidth, colPx, gap)
		if !ok {
			return nil
		}
		return distribute(containerWidth, repeat(units.Px(colPx), n), gap, align, o)
	}
	return nil
}

func deref(cfg Config) Config {
	switch c := cfg.(type) {
	case *Line:
		return *c
	case *Pattern:
		return *c
	case *Fixed:
		return *c
	case *Auto:
		return *c
	}
	return cfg
}

func repeat(v units.Value, n int) []units.Value {
	out := make([]units.Value, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// gapPixels converts a non-line gap for layout. "auto" resolves to zero.
func gapPixels(gap units.Value, o options) float64 {
	px, ok := autoGapPixels(gap, o)
	if !ok || px < 0 {
		return 0
	}
	return px
}

// distribute sizes fixed tracks first, then shares the remaining space
// between fr tracks (auto tracks count as 1fr).
func distribute(width float64, sizes []units.Value, gap float64, align Align, o options) []Track {
	if len(sizes) == 0 {
		return nil
	}
	widths := make([]float64, len(sizes))
	var fixed, fractions float64
	for i, s := range sizes {
		switch {
		case s.IsAuto():
			fractions++
		case s.Unit == units.FR:
			fractions += s.Num
		default:
			if px, ok := s.Pixels(o.ctx); ok && px > 0 {
				widths[i] = px
				fixed += px
			}
		}
	}

	gaps := gap * float64(len(sizes)-1)
	if fractions > 0 {
		free := math.Max(0, width-gaps-fixed)
		per := free / fractions
		for i, s := range sizes {
			switch {
			case s.IsAuto():
				widths[i] = per
			case s.Unit == units.FR:
				widths[i] = per * s.Num
			}
		}
	}

	used := gaps
	for _, w := range widths {
		used += w
	}
	x := align.Offset(width, used)
	tracks := make([]Track, len(sizes))
	for i, w := range widths {
		tracks[i] = Track{X: x, Width: w}
		x += w + gap
	}
	return tracks
}
