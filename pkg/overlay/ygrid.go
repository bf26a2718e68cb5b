package overlay

import (
	"strconv"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/style"
	"github.com/matzehuels/padd/pkg/units"
	"github.com/matzehuels/padd/pkg/window"
)

// Variant selects how rows and spacers are drawn.
type Variant string

const (
	// VariantLine draws 1px lines.
	VariantLine Variant = "line"
	// VariantFlat draws full base-unit bands.
	VariantFlat Variant = "flat"
)

// ParseVariant parses a row or spacer variant. The empty string is VariantLine.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantLine, nil
	case VariantLine, VariantFlat:
		return v, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidVariant, "unknown variant %q (want line or flat)", s)
	}
}

// YGrid draws horizontal baseline rows, one per base unit.
type YGrid struct {
	Variant    Variant
	Visibility Visibility
	BaseUnit   float64     // row pitch, default grid.DefaultBaseUnit
	Height     units.Value // unset means the container height
	Color      string      // default grid.DefaultRowColor
	Context    *units.Context
	ClassName  string
	Style      style.Style
}

func (y YGrid) base() float64 {
	if y.BaseUnit > 0 {
		return y.BaseUnit
	}
	return grid.DefaultBaseUnit
}

// Rows returns the number of rows for a container of the given height.
func (y YGrid) Rows(containerHeight float64) int {
	h := containerHeight
	if y.Height.IsSet() {
		ctx := units.DefaultContext
		if y.Context != nil {
			ctx = *y.Context
		}
		if px, ok := y.Height.Pixels(ctx.WithParent(containerHeight)); ok {
			h = px
		}
	}
	return window.RowCount(h, y.base())
}

// Build renders the rows of visible for a width × containerHeight container.
// Rows outside visible are not emitted. It returns nil when not mounted.
func (y YGrid) Build(width, containerHeight float64, visible window.Range) *Node {
	vis := y.Visibility.or(Visible)
	if !vis.Mounted() {
		return nil
	}
	variant := y.Variant
	if variant == "" {
		variant = VariantLine
	}
	color := y.Color
	if color == "" {
		color = grid.DefaultRowColor
	}
	base := y.base()
	rows := y.Rows(containerHeight)
	start := min(max(visible.Start, 0), rows)
	end := min(max(visible.End, start), rows)

	height := "100%"
	if y.Height.IsSet() {
		height = y.Height.String()
	}

	n := newNode(RoleYGrid, style.ClassNames("padd-ygrid", vis.class(), y.ClassName))
	n.Style = style.Merge(style.Merge(style.Style{"--grid-height": height}, vis.style()), y.Style)
	n.Data["variant"] = string(variant)
	n.Data["rows"] = strconv.Itoa(rows)
	n.Data["visible-start"] = strconv.Itoa(start)
	n.Data["visible-end"] = strconv.Itoa(end)
	n.Frame = &Frame{Width: width, Height: float64(rows) * base}

	rowHeight := 1.0
	rowClass := "padd-ygrid__row"
	if variant == VariantFlat {
		rowHeight = base
		rowClass = style.ClassNames(rowClass, "padd-ygrid__row--flat")
	}
	for i := start; i < end; i++ {
		opacity := "1"
		if variant == VariantFlat && i%2 == 0 {
			opacity = "0"
		}
		top := float64(i) * base
		row := newNode(RoleRow, rowClass)
		row.Style = style.Style{
			"--row-top":     units.FormatNumber(top) + "px",
			"--row-color":   color,
			"--row-height":  units.FormatNumber(rowHeight) + "px",
			"--row-opacity": opacity,
		}
		row.Data["row-index"] = strconv.Itoa(i)
		row.Frame = &Frame{X: 0, Y: top, Width: width, Height: rowHeight}
		n.Append(row)
	}
	return n
}
