package grid

import (
	"regexp"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/units"
)

// Variant discriminates the column sizing algorithms.
type Variant string

// Sizing variants.
const (
	VariantLine    Variant = "line"
	VariantPattern Variant = "pattern"
	VariantFixed   Variant = "fixed"
	VariantAuto    Variant = "auto"
)

// Variants lists every variant in display order.
var Variants = []Variant{VariantLine, VariantPattern, VariantFixed, VariantAuto}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantLine, VariantPattern, VariantFixed, VariantAuto:
		return v, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidVariant, "unknown grid variant %q (want line, pattern, fixed or auto)", s)
	}
}

// Config selects one column sizing algorithm. It is implemented only by
// [Line], [Pattern], [Fixed] and [Auto].
type Config interface {
	Variant() Variant
	Validate() error
	sealed()
}

// Line draws 1px vertical lines separated by Gap. An unset Gap uses the base unit.
type Line struct {
	Gap units.Value
}

// Pattern lays out an explicit list of column tracks.
type Pattern struct {
	Columns []string
	Gap     units.Value
}

// Fixed lays out Columns equal tracks of ColumnWidth (default "1fr").
type Fixed struct {
	Columns     int
	ColumnWidth units.Value
	Gap         units.Value
}

// Auto fits as many ColumnWidth tracks into the container as possible.
type Auto struct {
	ColumnWidth units.Value
	Gap         units.Value
}

func (Line) Variant() Variant    { return VariantLine }
func (Pattern) Variant() Variant { return VariantPattern }
func (Fixed) Variant() Variant   { return VariantFixed }
func (Auto) Variant() Variant    { return VariantAuto }

func (Line) sealed()    {}
func (Pattern) sealed() {}
func (Fixed) sealed()   {}
func (Auto) sealed()    {}

// Validate checks the line gap.
func (c Line) Validate() error {
	if c.Gap.IsAuto() {
		return nil
	}
	return validateGap(c.Gap)
}

// Validate checks every track token and the gap.
func (c Pattern) Validate() error {
	if len(c.Columns) == 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "pattern grid needs at least one column")
	}
	for i, tok := range c.Columns {
		if !ValidColumnToken(tok) {
			return perrors.Field("columns", tok, "column %d is not a valid track size", i)
		}
	}
	return validateGap(c.Gap)
}

// Validate checks the column count, track size and gap.
func (c Fixed) Validate() error {
	if c.Columns < 1 || c.Columns > MaxColumns {
		return perrors.Field("columns", c.Columns, "must be between 1 and %d", MaxColumns)
	}
	if c.ColumnWidth.IsSet() && !ValidColumnValue(c.ColumnWidth) {
		return perrors.Field("column_width", c.ColumnWidth.String(), "not a valid track size")
	}
	return validateGap(c.Gap)
}

// Validate checks the track size and gap.
func (c Auto) Validate() error {
	if !c.ColumnWidth.IsSet() {
		return perrors.Field("column_width", nil, "required for auto grids")
	}
	if !c.ColumnWidth.IsAuto() && !c.ColumnWidth.IsRelative() && c.ColumnWidth.Unit != units.FR {
		px, ok := c.ColumnWidth.Pixels(units.DefaultContext)
		if !ok || px <= 0 {
			return perrors.Field("column_width", c.ColumnWidth.String(), "must be positive")
		}
	}
	return validateGap(c.Gap)
}

// NewPattern builds a validated Pattern.
func NewPattern(gap units.Value, columns ...string) (Pattern, error) {
	p := Pattern{Columns: append([]string(nil), columns...), Gap: gap}
	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

// New builds and validates a Config for variant. Unused fields are ignored:
// columns applies to fixed grids, pattern to pattern grids and columnWidth to
// fixed and auto grids.
func New(variant Variant, gap units.Value, columns int, columnWidth units.Value, pattern []string) (Config, error) {
	var cfg Config
	switch variant {
	case VariantLine:
		cfg = Line{Gap: gap}
	case VariantPattern:
		cfg = Pattern{Columns: append([]string(nil), pattern...), Gap: gap}
	case VariantFixed:
		cfg = Fixed{Columns: columns, ColumnWidth: columnWidth, Gap: gap}
	case VariantAuto:
		cfg = Auto{ColumnWidth: columnWidth, Gap: gap}
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidVariant, "unknown grid variant %q", variant)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateGap(gap units.Value) error {
	if !gap.IsSet() || gap.IsAuto() {
		return nil
	}
	if gap.Unit == units.FR {
		return perrors.Field("gap", gap.String(), "fr is not a valid gap unit")
	}
	if gap.Num < 0 {
		return perrors.Field("gap", gap.String(), "must not be negative")
	}
	return nil
}

// columnTokenRegex is the track size grammar: a non-negative number with an
// optional px, fr, %, em or rem unit.
var columnTokenRegex = regexp.MustCompile(`^(?:\d+(?:\.\d+)?|\.\d+)(?:px|fr|%|em|rem)?$`)

// ValidColumnToken reports whether tok is a valid pattern track: a number
// with an optional px, fr, %, em or rem unit, or the literal "auto".
func ValidColumnToken(tok string) bool {
	tok = strings.TrimSpace(tok)
	return tok == "auto" || columnTokenRegex.MatchString(tok)
}

// ValidColumnValue applies the track grammar to a parsed value.
func ValidColumnValue(v units.Value) bool {
	if !v.IsSet() {
		return false
	}
	return ValidColumnToken(v.String())
}

// normalizeToken rewrites plain numbers as pixels.
func normalizeToken(tok string) string {
	tok = strings.TrimSpace(tok)
	if v, err := units.Parse(tok); err == nil && v.Unit == units.None && !v.IsAuto() {
		return v.String()
	}
	return tok
}
