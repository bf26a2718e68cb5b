package grid

import (
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
)

// Defaults shared by every overlay.
const (
	DefaultBaseUnit    = 8
	DefaultColumns     = 9
	DefaultGap         = 8
	DefaultColumnWidth = "1fr"
	DefaultZIndex      = 0

	MinBaseUnit = 1
	MaxBaseUnit = 16

	// MaxRows caps the number of horizontal guide rows.
	MaxRows = 1000

	// MaxColumns caps the number of column tracks. Larger counts are
	// reported as Invalid.
	MaxColumns = 10000
)

// Default guide colors. They reference custom properties so a page theme can
// restyle the overlay.
const (
	DefaultColumnColor = "var(--grid-color-fixed)"
	DefaultRowColor    = "var(--grid-color-line)"
)

// Align positions the column block inside a wider container.
type Align string

// Alignments.
const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// DefaultAlign is used when no alignment is configured.
const DefaultAlign = AlignCenter

// Alignments lists every valid alignment in display order.
var Alignments = []Align{AlignStart, AlignCenter, AlignEnd}

// ParseAlign parses an alignment name. The empty string yields DefaultAlign.
func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return DefaultAlign, nil
	case AlignStart, AlignCenter, AlignEnd:
		return a, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidInput, "unknown alignment %q (want start, center or end)", s)
	}
}

// Valid reports whether a is one of the defined alignments.
func (a Align) Valid() bool {
	return a == AlignStart || a == AlignCenter || a == AlignEnd
}

// Offset returns the left offset of a block of width used inside width total.
// Blocks wider than the container are pinned to the start.
func (a Align) Offset(total, used float64) float64 {
	free := total - used
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignStart:
		return 0
	case AlignEnd:
		return free
	default:
		return free / 2
	}
}

// ClampBaseUnit limits base to [MinBaseUnit, MaxBaseUnit].
func ClampBaseUnit(base float64) float64 {
	switch {
	case base < MinBaseUnit:
		return MinBaseUnit
	case base > MaxBaseUnit:
		return MaxBaseUnit
	default:
		return base
	}
}
