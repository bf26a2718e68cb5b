package overlay

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/measure"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
)

// Indicator labels a spacer dimension; dimension is "height" or "width".
// Returning the empty string omits the label.
type Indicator func(value float64, dimension string) string

// DefaultIndicator labels a dimension with its pixel value, e.g. "24px".
func DefaultIndicator(value float64, _ string) string {
	return units.FormatNumber(value) + "px"
}

// Spacer reserves vertical or horizontal space snapped to the base unit.
type Spacer struct {
	Height     units.Value // unset means 100%
	Width      units.Value // unset means 100%
	Variant    Variant
	BaseUnit   float64 // default grid.DefaultBaseUnit
	ZIndex     int
	Color      string
	Visibility Visibility
	Indicator  Indicator // nil draws no labels
	Context    *units.Context
	Logger     *log.Logger
	ClassName  string
	Style      style.Style
}

var full = units.Of(100, units.Percent)

func (s Spacer) base() float64 {
	if s.BaseUnit > 0 {
		return s.BaseUnit
	}
	return grid.DefaultBaseUnit
}

func (s Spacer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Size returns the rendered height and width. Line spacers always fill their
// parent. Pixel sizes are truncated to a multiple of the base unit, so a
// spacer never exceeds the space it was given.
func (s Spacer) Size() (height, width units.Value) {
	if s.Variant == VariantLine {
		return full, full
	}
	return s.snap(s.Height), s.snap(s.Width)
}

func (s Spacer) snap(v units.Value) units.Value {
	if !v.IsSet() || v.IsAuto() {
		return full
	}
	ctx := units.DefaultContext
	if s.Context != nil {
		ctx = *s.Context
	}
	if v.Unit == units.Percent {
		return v
	}
	px, ok := v.Pixels(ctx)
	if !ok {
		return full
	}
	n := measure.SnapDown(px, s.base())
	if n != px {
		s.logger().Warn("spacer size is not a multiple of the base unit",
			"value", v.String(), "normalized", n, "unit", s.base())
	}
	return units.Px(n)
}

// Build renders the spacer inside a parentWidth × parentHeight box.
func (s Spacer) Build(parentWidth, parentHeight float64) *Node {
	h, w := s.Size()
	vis := s.Visibility.or(Visible)
	variant := s.Variant
	if variant == "" {
		variant = VariantFlat
	}

	internal := style.Style{
		"--padd-spacer-height": h.String(),
		"--padd-spacer-width":  w.String(),
		"--padd-base-unit":     units.FormatNumber(s.base()),
		"--padd-z-index":       strconv.Itoa(s.ZIndex),
	}
	if s.Color != "" {
		internal["--padd-spacer-color"] = s.Color
	}

	n := newNode(RoleSpacer, style.ClassNames("padd-spacer", vis.class(), s.ClassName))
	n.Style = style.Merge(internal, s.Style)
	n.Data["variant"] = string(variant)
	n.Data["visibility"] = string(vis)

	ctx := units.DefaultContext
	if s.Context != nil {
		ctx = *s.Context
	}
	fw, _ := w.Pixels(ctx.WithParent(parentWidth))
	fh, _ := h.Pixels(ctx.WithParent(parentHeight))
	n.Frame = &Frame{Width: fw, Height: fh}

	if !vis.Shown() || s.Indicator == nil {
		return n
	}
	for _, d := range []struct {
		name string
		v    units.Value
	}{{"height", h}, {"width", w}} {
		if !d.v.IsPixel() {
			continue
		}
		if label := s.Indicator(d.v.Num, d.name); label != "" {
			ind := newNode(RoleIndicator, "padd-spacer__indicator")
			ind.Text = label
			ind.Data["dimension"] = d.name
			n.Append(ind)
		}
	}
	return n
}
