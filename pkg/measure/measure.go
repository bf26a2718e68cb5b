// Package measure snaps CSS measurements to multiples of a base unit.
//
// A [System] converts any supported dimension to pixels with an explicit
// [units.Context] and rounds it to the nearest multiple of its base unit.
// Normalization never fails: "auto" normalizes to the base unit, and values
// that cannot be parsed or converted fall back to the base unit with an error
// diagnostic. Values that had to be moved produce a warning unless
// [WithSuppressWarnings] is given.
//
//	measure.Normalize(units.Px(103))                        // 104
//	measure.NormalizeString("1rem")                         // 16
//	measure.IsNormalized(units.Px(95), measure.WithUnit(5)) // true
package measure

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/observability"
	"github.com/matzehuels/padd/pkg/units"
)

// DefaultBaseUnit is the baseline grid size in pixels.
const DefaultBaseUnit = 8

// System normalizes measurements against a base unit.
// The zero value uses [DefaultBaseUnit], [units.DefaultContext] and discards diagnostics.
type System struct {
	BaseUnit float64        // Baseline in pixels; non-positive means DefaultBaseUnit
	Context  *units.Context // Relative unit context; nil means units.DefaultContext
	Logger   *log.Logger    // Diagnostics; nil discards
}

// Default is the package-level system used by Normalize, NormalizeString and IsNormalized.
var Default = System{BaseUnit: DefaultBaseUnit}

// Option adjusts a single normalization call.
type Option func(*call)

type call struct {
	unit     float64
	ctx      units.Context
	suppress bool
}

// WithUnit overrides the base unit for one call.
func WithUnit(u float64) Option {
	return func(c *call) {
		if u > 0 {
			c.unit = u
		}
	}
}

// WithContext overrides the relative unit context for one call.
func WithContext(ctx units.Context) Option {
	return func(c *call) { c.ctx = ctx }
}

// WithSuppressWarnings silences the "value was moved" warning.
// Fallback errors are still reported.
func WithSuppressWarnings() Option {
	return func(c *call) { c.suppress = true }
}

func (s System) resolve(opts []Option) call {
	c := call{unit: s.BaseUnit, ctx: units.DefaultContext}
	if c.unit <= 0 || math.IsNaN(c.unit) {
		c.unit = DefaultBaseUnit
	}
	if s.Context != nil {
		c.ctx = *s.Context
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (s System) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Unit returns the effective base unit.
func (s System) Unit() float64 {
	return s.resolve(nil).unit
}

// Normalize converts v to pixels and rounds it to the nearest multiple of the
// base unit. Halves round up, so 100 with base 8 becomes 104.
func (s System) Normalize(v units.Value, opts ...Option) float64 {
	c := s.resolve(opts)
	if v.IsAuto() {
		return c.unit
	}

	px, ok := v.Pixels(c.ctx)
	if !ok {
		s.fallback(v.String(), c, perrors.New(perrors.ErrCodeInvalidUnit, "cannot convert %q to pixels", v.String()))
		return c.unit
	}

	n := snap(px, c.unit)
	if n != px {
		observability.Measure().OnNormalize(v.String(), n, c.unit)
		if !c.suppress {
			s.logger().Warn("value normalized to match grid baseline",
				"value", v.String(), "normalized", n, "unit", c.unit)
		}
	}
	return n
}

// NormalizeString parses s and normalizes it. Unparseable input falls back to
// the base unit.
func (s System) NormalizeString(str string, opts ...Option) float64 {
	v, err := units.Parse(str)
	if err != nil {
		c := s.resolve(opts)
		s.fallback(str, c, err)
		return c.unit
	}
	return s.Normalize(v, opts...)
}

// IsNormalized reports whether v is already a multiple of the base unit.
// "auto" is always normalized; values without a pixel equivalent never are.
func (s System) IsNormalized(v units.Value, opts ...Option) bool {
	c := s.resolve(opts)
	if v.IsAuto() {
		return true
	}
	px, ok := v.Pixels(c.ctx)
	if !ok {
		return false
	}
	return snap(px, c.unit) == px
}

// snap rounds px to the nearest multiple of unit. IsNormalized compares
// against it rather than math.Mod, which disagrees with the rounded product
// once float multiples are no longer exact.
func snap(px, unit float64) float64 {
	return Round(px/unit) * unit
}

func (s System) fallback(value string, c call, err error) {
	observability.Measure().OnFallback(value, c.unit, err)
	s.logger().Error("measurement normalization failed",
		"value", value, "fallback", c.unit, "err", err)
}

// Normalize normalizes v with the Default system.
func Normalize(v units.Value, opts ...Option) float64 {
	return Default.Normalize(v, opts...)
}

// NormalizeString normalizes a CSS string with the Default system.
func NormalizeString(s string, opts ...Option) float64 {
	return Default.NormalizeString(s, opts...)
}

// IsNormalized checks v with the Default system.
func IsNormalized(v units.Value, opts ...Option) bool {
	return Default.IsNormalized(v, opts...)
}

// Round rounds to the nearest integer with halves rounded up, matching
// JavaScript's Math.round.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// SnapDown truncates n toward zero to a multiple of unit.
// Non-positive units leave n unchanged.
func SnapDown(n, unit float64) float64 {
	if unit <= 0 {
		return n
	}
	return n - math.Mod(n, unit)
}
