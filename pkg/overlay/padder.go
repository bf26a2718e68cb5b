package overlay

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/padd/pkg/spacing"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
)

// DefaultPadderBase is the spacer base unit inside padders and boxes.
const DefaultPadderBase = 1

// DefaultPadderColor is the spacer color inside padders.
const DefaultPadderColor = "var(--padder-color-flat)"

// Padder surrounds its children with visible spacers.
type Padder struct {
	Padding   spacing.Padding
	Width     string // CSS width, default fit-content
	Height    string // CSS height, default fit-content
	BaseUnit  float64
	Color     string
	Logger    *log.Logger
	ClassName string
	Style     style.Style
	Children  []*Node
}

// Build renders the padder in a width × height box. Children are shifted
// past the leading spacers.
func (p Padder) Build(width, height float64) *Node {
	base := p.BaseUnit
	if base <= 0 {
		base = DefaultPadderBase
	}
	color := p.Color
	if color == "" {
		color = DefaultPadderColor
	}

	n := newNode(RolePadder, style.ClassNames("padd-padder", p.ClassName))
	n.Style = style.Merge(style.Style{
		"--padder-width":  cssOr(p.Width, "fit-content"),
		"--padder-height": cssOr(p.Height, "fit-content"),
	}, p.Style)
	n.Frame = &Frame{Width: width, Height: height}

	spacer := func(w, h units.Value) Spacer {
		return Spacer{
			Width:      w,
			Height:     h,
			Variant:    VariantFlat,
			BaseUnit:   base,
			Color:      color,
			Visibility: Visible,
			Logger:     p.Logger,
		}
	}

	pad := p.Padding
	innerW := max(width-pad.Left()-pad.Right(), 0)

	if pad.Left() > 0 {
		n.Append(spacer(units.Px(pad.Left()), full).Build(width, height))
	}
	if pad.Top() > 0 {
		s := spacer(full, units.Px(pad.Top())).Build(innerW, height)
		s.Offset(pad.Left(), 0)
		n.Append(s)
	}
	for _, c := range p.Children {
		if c == nil {
			continue
		}
		c.Offset(pad.Left(), pad.Top())
		n.Append(c)
	}
	if pad.Bottom() > 0 {
		s := spacer(full, units.Px(pad.Bottom())).Build(innerW, height)
		s.Offset(pad.Left(), height-s.Frame.Height)
		n.Append(s)
	}
	if pad.Right() > 0 {
		s := spacer(units.Px(pad.Right()), full).Build(width, height)
		s.Offset(width-s.Frame.Width, 0)
		n.Append(s)
	}
	return n
}

func cssOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
