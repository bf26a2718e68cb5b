package units

import "math"

// Context supplies the environment for relative units.
type Context struct {
	ViewportWidth  float64 // vw, vmin, vmax
	ViewportHeight float64 // vh, vmin, vmax
	RootFontSize   float64 // rem, default 16
	ParentFontSize float64 // em, default 16
	ParentSize     float64 // %
}

// DefaultFontSize is the browser default font size.
const DefaultFontSize = 16

// DefaultContext is a 1280×800 viewport with browser default fonts.
var DefaultContext = Context{
	ViewportWidth:  1280,
	ViewportHeight: 800,
	RootFontSize:   DefaultFontSize,
	ParentFontSize: DefaultFontSize,
}

// WithParent returns a copy of c resolving percentages against size.
func (c Context) WithParent(size float64) Context {
	c.ParentSize = size
	return c
}

func (c Context) rootFont() float64 {
	if c.RootFontSize > 0 {
		return c.RootFontSize
	}
	return DefaultFontSize
}

func (c Context) parentFont() float64 {
	if c.ParentFontSize > 0 {
		return c.ParentFontSize
	}
	return DefaultFontSize
}

// Pixels converts v to pixels. It returns false for unset values, "auto",
// fr tracks and anything else without a pixel equivalent.
func (v Value) Pixels(ctx Context) (float64, bool) {
	if !v.set || v.auto || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	if v.Unit == None {
		return v.Num, true
	}
	if f, ok := absoluteFactors[v.Unit]; ok {
		return v.Num * f, true
	}

	switch v.Unit {
	case EM:
		return v.Num * ctx.parentFont(), true
	case REM:
		return v.Num * ctx.rootFont(), true
	case VH:
		return v.Num / 100 * ctx.ViewportHeight, true
	case VW:
		return v.Num / 100 * ctx.ViewportWidth, true
	case VMIN:
		return v.Num / 100 * math.Min(ctx.ViewportWidth, ctx.ViewportHeight), true
	case VMAX:
		return v.Num / 100 * math.Max(ctx.ViewportWidth, ctx.ViewportHeight), true
	case Percent:
		return v.Num / 100 * ctx.ParentSize, true
	}
	return 0, false
}

// ToPixels converts a CSS string to pixels.
func ToPixels(s string, ctx Context) (float64, bool) {
	v, err := Parse(s)
	if err != nil {
		return 0, false
	}
	return v.Pixels(ctx)
}

// NormalizeGridUnit rewrites v in pixels when it converts, and keeps the
// original representation otherwise (fr, auto).
func NormalizeGridUnit(v Value, ctx Context) string {
	if px, ok := v.Pixels(ctx); ok {
		return FormatNumber(px) + string(PX)
	}
	return v.String()
}
