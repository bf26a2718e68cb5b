package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/padd/pkg/units"
)

// Result is the computed CSS grid geometry for one container width.
type Result struct {
	TemplateColumns string `json:"template_columns"`
	ColumnCount     int    `json:"column_count"`
	EffectiveGap    string `json:"effective_gap"`
	Valid           bool   `json:"valid"`
}

// Invalid is returned for degenerate input.
var Invalid = Result{TemplateColumns: "none", ColumnCount: 0, EffectiveGap: "0px", Valid: false}

// Option configures a calculation.
type Option func(*options)

type options struct {
	ctx      units.Context
	baseUnit float64
}

// WithContext sets the context used to convert relative gaps and widths.
// The default is units.DefaultContext.
func WithContext(ctx units.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithBaseUnit sets the default spacing of line grids. Non-positive values
// are ignored.
func WithBaseUnit(base float64) Option {
	return func(o *options) {
		if base > 0 {
			o.baseUnit = base
		}
	}
}

func newOptions(opts []Option) options {
	o := options{ctx: units.DefaultContext, baseUnit: DefaultBaseUnit}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Calculate computes grid geometry for cfg inside a container of the given
// width. Degenerate input returns [Invalid].
func Calculate(containerWidth float64, cfg Config, opts ...Option) Result {
	if !(containerWidth > 0) || math.IsInf(containerWidth, 0) {
		return Invalid
	}
	o := newOptions(opts)
	o.ctx = o.ctx.WithParent(containerWidth)

	switch c := cfg.(type) {
	case Line:
		return calculateLine(containerWidth, c, o)
	case *Line:
		if c != nil {
			return calculateLine(containerWidth, *c, o)
		}
	case Pattern:
		return calculatePattern(c)
	case *Pattern:
		if c != nil {
			return calculatePattern(*c)
		}
	case Fixed:
		return calculateFixed(c)
	case *Fixed:
		if c != nil {
			return calculateFixed(*c)
		}
	case Auto:
		return calculateAuto(containerWidth, c, o)
	case *Auto:
		if c != nil {
			return calculateAuto(containerWidth, *c, o)
		}
	}
	return Invalid
}

func calculateLine(width float64, c Line, o options) Result {
	gap, ok := lineGap(c, o)
	if !ok {
		return Invalid
	}
	count, ok := columnCount(math.Floor(width/(gap+1)) + 1)
	if !ok {
		return Invalid
	}
	return Result{
		TemplateColumns: fmt.Sprintf("repeat(%d, 1px)", count),
		ColumnCount:     count,
		EffectiveGap:    units.FormatNumber(gap) + "px",
		Valid:           true,
	}
}

// lineGap returns the pixel gap between 1px lines.
func lineGap(c Line, o options) (float64, bool) {
	gap := c.Gap
	if !gap.IsSet() || gap.IsAuto() {
		gap = units.Px(o.baseUnit)
	}
	if validateGap(gap) != nil {
		return 0, false
	}
	px, ok := gap.Pixels(o.ctx)
	if !ok {
		return 0, false
	}
	return math.Max(0, px-1), true
}

func calculatePattern(c Pattern) Result {
	if len(c.Columns) == 0 {
		return Invalid
	}
	tracks := make([]string, len(c.Columns))
	for i, tok := range c.Columns {
		if !ValidColumnToken(tok) {
			return Invalid
		}
		tracks[i] = normalizeToken(tok)
	}
	gap, ok := formatGap(c.Gap)
	if !ok {
		return Invalid
	}
	return Result{
		TemplateColumns: strings.Join(tracks, " "),
		ColumnCount:     len(tracks),
		EffectiveGap:    gap,
		Valid:           true,
	}
}

func calculateFixed(c Fixed) Result {
	if c.Columns < 1 || c.Columns > MaxColumns {
		return Invalid
	}
	track := DefaultColumnWidth
	if c.ColumnWidth.IsSet() {
		if !ValidColumnValue(c.ColumnWidth) {
			return Invalid
		}
		track = c.ColumnWidth.String()
	}
	gap, ok := formatGap(c.Gap)
	if !ok {
		return Invalid
	}
	return Result{
		TemplateColumns: fmt.Sprintf("repeat(%d, %s)", c.Columns, track),
		ColumnCount:     c.Columns,
		EffectiveGap:    gap,
		Valid:           true,
	}
}

func calculateAuto(width float64, c Auto, o options) Result {
	gapStr, ok := formatGap(c.Gap)
	if !ok {
		return Invalid
	}
	w := c.ColumnWidth
	switch {
	case !w.IsSet():
		return Invalid
	case w.IsAuto():
		return Result{
			TemplateColumns: "repeat(auto-fit, minmax(0, 1fr))",
			ColumnCount:     1,
			EffectiveGap:    gapStr,
			Valid:           true,
		}
	case w.Unit == units.FR:
		return Result{TemplateColumns: w.String(), ColumnCount: 1, EffectiveGap: gapStr, Valid: true}
	case !w.IsAbsolute():
		return Result{
			TemplateColumns: fmt.Sprintf("repeat(auto-fit, %s)", w.String()),
			ColumnCount:     1,
			EffectiveGap:    gapStr,
			Valid:           true,
		}
	}

	colPx, ok := w.Pixels(o.ctx)
	if !ok || colPx <= 0 {
		return Invalid
	}
	gapPx, ok := autoGapPixels(c.Gap, o)
	if !ok {
		return Invalid
	}
	count, ok := autoCount(width, colPx, gapPx)
	if !ok {
		return Invalid
	}
	return Result{
		TemplateColumns: fmt.Sprintf("repeat(%d, %spx)", count, units.FormatNumber(colPx)),
		ColumnCount:     count,
		EffectiveGap:    gapStr,
		Valid:           true,
	}
}

// autoCount fits tracks of width col separated by gap into width. At least
// one track always fits.
func autoCount(width, col, gap float64) (int, bool) {
	return columnCount(math.Max(1, math.Floor((width+gap)/(col+gap))))
}

// columnCount converts a track count, rejecting counts above MaxColumns
// before they can overflow an int.
func columnCount(n float64) (int, bool) {
	if math.IsNaN(n) || n > MaxColumns {
		return 0, false
	}
	return int(n), true
}

// autoGapPixels converts the gap for arithmetic. "auto" counts as zero.
func autoGapPixels(gap units.Value, o options) (float64, bool) {
	switch {
	case !gap.IsSet():
		return DefaultGap, true
	case gap.IsAuto():
		return 0, true
	}
	return gap.Pixels(o.ctx)
}

// formatGap renders the CSS gap for non-line variants.
func formatGap(gap units.Value) (string, bool) {
	if validateGap(gap) != nil {
		return "", false
	}
	return units.Format(gap, DefaultGap), true
}
