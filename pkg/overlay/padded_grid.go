package overlay

import (
	"strconv"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
)

// GridState is the layout state of a PaddedGrid. It is replaced wholesale by
// Reduce, never mutated in place.
type GridState struct {
	Base     float64
	MaxWidth grid.Responsive
	Align    grid.Align
	ZIndex   int
	Styles   style.Style
}

// InitialGridState returns the default layout state.
func InitialGridState() GridState {
	return GridState{
		Base:   grid.DefaultBaseUnit,
		Align:  grid.DefaultAlign,
		ZIndex: grid.DefaultZIndex,
	}
}

// Action changes a GridState through Reduce.
type Action interface {
	reduce(GridState) GridState
}

// UpdateConfig sets the non-nil fields.
type UpdateConfig struct {
	Base     *float64
	MaxWidth grid.Responsive
	Align    *grid.Align
	ZIndex   *int
}

// UpdateStyles merges styles into the state's styles.
type UpdateStyles struct {
	Styles style.Style
}

func (a UpdateConfig) reduce(s GridState) GridState {
	if a.Base != nil {
		s.Base = *a.Base
	}
	if a.MaxWidth.IsSet() {
		s.MaxWidth = a.MaxWidth
	}
	if a.Align != nil {
		s.Align = *a.Align
	}
	if a.ZIndex != nil {
		s.ZIndex = *a.ZIndex
	}
	return s
}

func (a UpdateStyles) reduce(s GridState) GridState {
	merged := make(style.Style, len(s.Styles)+len(a.Styles))
	for k, v := range s.Styles {
		merged[k] = v
	}
	for k, v := range a.Styles {
		merged[k] = v
	}
	s.Styles = merged
	return s
}

// Reduce applies a to s and returns the new state.
func Reduce(s GridState, a Action) GridState {
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// Validated clamps the base unit to [grid.MinBaseUnit, grid.MaxBaseUnit] and
// drops an unknown alignment.
func (a UpdateConfig) Validated() UpdateConfig {
	if a.Base != nil {
		b := grid.ClampBaseUnit(*a.Base)
		a.Base = &b
	}
	if a.Align != nil && !a.Align.Valid() {
		a.Align = nil
	}
	return a
}

// Changes reports whether applying a to s would change it.
func (a UpdateConfig) Changes(s GridState) bool {
	next := a.reduce(s)
	return next.Base != s.Base || next.Align != s.Align || next.ZIndex != s.ZIndex ||
		next.MaxWidth.String() != s.MaxWidth.String()
}

// PaddedGrid is a max-width container that aligns its children.
type PaddedGrid struct {
	State     GridState
	Context   *units.Context
	ClassName string
	Style     style.Style
	Children  []*Node
}

// maxWidth returns the CSS max-width value for the state.
func (p PaddedGrid) maxWidth() string {
	v := p.State.MaxWidth.Base(units.Value{})
	if !v.IsSet() {
		return "none"
	}
	return v.String()
}

// InnerWidth returns the width of the content area inside a container of the
// given width.
func (p PaddedGrid) InnerWidth(width float64) float64 {
	v := p.State.MaxWidth.Resolve(width)
	if !v.IsSet() {
		return width
	}
	ctx := units.DefaultContext
	if p.Context != nil {
		ctx = *p.Context
	}
	px, ok := v.Pixels(ctx.WithParent(width))
	if !ok || px <= 0 || px > width {
		return width
	}
	return px
}

// Build renders the container in a width × height area. Children are laid
// out in the inner area and shifted by the alignment offset.
func (p PaddedGrid) Build(width, height float64) *Node {
	align := p.State.Align
	if !align.Valid() {
		align = grid.DefaultAlign
	}
	base := p.State.Base
	if base <= 0 {
		base = grid.DefaultBaseUnit
	}

	internal := style.Style{
		"--grid-base":      units.FormatNumber(base) + "px",
		"--grid-max-width": p.maxWidth(),
		"--grid-z-index":   strconv.Itoa(p.State.ZIndex),
		"max-width":        p.maxWidth(),
		"width":            "100%",
		"margin":           "0 auto",
	}

	n := newNode(RolePaddedGrid, style.ClassNames("padd-padded-grid", "padd-padded-grid--"+string(align), p.ClassName))
	n.Style = style.Merge(internal, p.State.Styles, p.Style)
	n.Data["grid-align"] = string(align)

	inner := p.InnerWidth(width)
	left := align.Offset(width, inner)
	n.Frame = &Frame{X: left, Width: inner, Height: height}
	if len(p.State.MaxWidth) > 1 {
		n.CSS = p.State.MaxWidth.Rules(".padd-padded-grid", "max-width")
	}
	for _, c := range p.Children {
		if c == nil {
			continue
		}
		c.Offset(left, 0)
		n.Append(c)
	}
	return n
}
