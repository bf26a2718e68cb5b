package overlay

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/padd/pkg/spacing"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
)

// Box pads its children. With Visibility None it is a plain padding box;
// otherwise the padding is drawn as a Padder with 1px-based spacers.
type Box struct {
	Padding    spacing.Padding
	Width      string
	Height     string
	Visibility Visibility // default None
	Logger     *log.Logger
	ClassName  string
	Style      style.Style
	Children   []*Node
}

// Build renders the box in a width × height area.
func (b Box) Build(width, height float64) *Node {
	if b.Visibility.or(None).Mounted() {
		return Padder{
			Padding:   b.Padding,
			Width:     b.Width,
			Height:    b.Height,
			BaseUnit:  DefaultPadderBase,
			Logger:    b.Logger,
			ClassName: b.ClassName,
			Style:     b.Style,
			Children:  b.Children,
		}.Build(width, height)
	}

	px := func(n float64) string { return units.FormatNumber(n) + "px" }
	pad := b.Padding
	n := newNode(RoleBox, style.ClassNames("padd-box", b.ClassName))
	n.Style = style.Merge(style.Style{
		"--box-block-start":  px(pad.Top()),
		"--box-block-end":    px(pad.Bottom()),
		"--box-inline-start": px(pad.Left()),
		"--box-inline-end":   px(pad.Right()),
		"--box-width":        cssOr(b.Width, "fit-content"),
		"--box-height":       cssOr(b.Height, "fit-content"),
	}, b.Style)
	n.Frame = &Frame{Width: width, Height: height}
	for _, c := range b.Children {
		if c == nil {
			continue
		}
		c.Offset(pad.Left(), pad.Top())
		n.Append(c)
	}
	return n
}
