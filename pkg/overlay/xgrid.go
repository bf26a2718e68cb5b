package overlay

import (
	"strconv"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/spacing"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
)

// XGrid draws vertical column guides.
type XGrid struct {
	Config     grid.Config
	Visibility Visibility
	Align      grid.Align
	Color      string          // default grid.DefaultColumnColor
	MaxWidth   grid.Responsive // unset means the full container width
	Padding    spacing.Padding
	ZIndex     int
	BaseUnit   float64        // line spacing when the line gap is unset
	Context    *units.Context // nil means units.DefaultContext
	ClassName  string
	Style      style.Style
}

func (x XGrid) context() units.Context {
	if x.Context != nil {
		return *x.Context
	}
	return units.DefaultContext
}

func (x XGrid) options() []grid.Option {
	opts := []grid.Option{grid.WithContext(x.context())}
	if x.BaseUnit > 0 {
		opts = append(opts, grid.WithBaseUnit(x.BaseUnit))
	}
	return opts
}

// outerWidth applies the max width to a container of width px.
func (x XGrid) outerWidth(width float64) float64 {
	mw := x.MaxWidth.Resolve(width)
	if !mw.IsSet() {
		return width
	}
	px, ok := mw.Pixels(x.context().WithParent(width))
	if !ok || px <= 0 || px >= width {
		return width
	}
	return px
}

// ContentWidth returns the width the columns are calculated for: the
// container width limited by MaxWidth, minus inline padding.
func (x XGrid) ContentWidth(width float64) float64 {
	return x.outerWidth(width) - x.Padding.Left() - x.Padding.Right()
}

// Calculate computes the column geometry for a container of the given width.
func (x XGrid) Calculate(width float64) grid.Result {
	if x.Config == nil {
		return grid.Invalid
	}
	return grid.Calculate(x.ContentWidth(width), x.Config, x.options()...)
}

// Build renders the column overlay for a width × height container. The
// calculation result is returned even when the overlay is not mounted, in
// which case the node is nil. An invalid result renders an empty container.
func (x XGrid) Build(width, height float64) (*Node, grid.Result) {
	res := x.Calculate(width)
	vis := x.Visibility.or(Visible)
	if !vis.Mounted() {
		return nil, res
	}

	align := x.Align
	if !align.Valid() {
		align = grid.DefaultAlign
	}
	color := x.Color
	if color == "" {
		color = grid.DefaultColumnColor
	}
	maxWidth := "100%"
	if v := x.MaxWidth.Base(units.Value{}); v.IsSet() {
		maxWidth = v.String()
	}

	variant := grid.VariantLine
	if x.Config != nil {
		variant = x.Config.Variant()
	}

	internal := style.Style{
		"--grid-template-columns": res.TemplateColumns,
		"--grid-gap":              res.EffectiveGap,
		"--grid-max-width":        maxWidth,
		"--grid-columns":          strconv.Itoa(res.ColumnCount),
		"--grid-justify":          string(align),
		"--grid-z-index":          strconv.Itoa(x.ZIndex),
		"--column-color":          color,
	}
	if !x.Padding.IsZero() {
		internal["--grid-padding"] = x.Padding.String()
	}
	if variant == grid.VariantLine {
		internal["--column-width"] = "1px"
	}

	outer := x.outerWidth(width)
	left := align.Offset(width, outer)

	n := newNode(RoleXGrid, style.ClassNames("padd-xgrid", vis.class(), x.ClassName))
	n.Style = style.Merge(style.Merge(internal, vis.style()), x.Style)
	n.Data["variant"] = string(variant)
	n.Data["valid"] = strconv.FormatBool(res.Valid)
	n.Frame = &Frame{X: left, Y: 0, Width: outer, Height: height}
	if len(x.MaxWidth) > 1 {
		n.CSS = x.MaxWidth.Rules(".padd-xgrid", "--grid-max-width")
	}

	content := x.ContentWidth(width)
	inner := &Frame{
		X:      left + x.Padding.Left(),
		Y:      x.Padding.Top(),
		Width:  max(content, 0),
		Height: max(height-x.Padding.Top()-x.Padding.Bottom(), 0),
	}
	cols := newNode(RoleColumns, "padd-xgrid__columns")
	cols.Frame = inner
	n.Append(cols)

	if !res.Valid {
		return n, res
	}

	tracks := grid.Tracks(content, x.Config, align, x.options()...)
	if len(tracks) != res.ColumnCount {
		tracks = nil
	}
	colClass := "padd-xgrid__column"
	if variant == grid.VariantLine {
		colClass = style.ClassNames(colClass, "padd-xgrid__column--line")
	}
	// Without pixel tracks the columns are laid out by the CSS template.
	if tracks == nil {
		colClass = style.ClassNames(colClass, "padd-xgrid__column--fluid")
	}
	for i := range res.ColumnCount {
		col := newNode(RoleColumn, colClass)
		col.Data["column-index"] = strconv.Itoa(i)
		if tracks != nil {
			col.Frame = &Frame{X: inner.X + tracks[i].X, Y: inner.Y, Width: tracks[i].Width, Height: inner.Height}
		}
		cols.Append(col)
	}
	return n, res
}
