// Package units parses, converts and formats CSS dimension values.
//
// A [Value] is a number with an optional CSS unit, or the literal "auto".
// Plain numbers are pixels. Conversion to pixels never reads ambient state:
// relative units (em, rem, vh, vw, vmin, vmax, %) are resolved against an
// explicit [Context] supplied by the caller.
//
//	v, err := units.Parse("1.5rem")
//	px, ok := v.Pixels(units.DefaultContext) // 24, true
//	v.String()                               // "1.5rem"
//	units.Px(16).String()                    // "16px"
package units

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
)

// Unit is a CSS length unit.
type Unit string

// Supported units.
const (
	None    Unit = "" // plain number, treated as pixels
	PX      Unit = "px"
	EM      Unit = "em"
	REM     Unit = "rem"
	VH      Unit = "vh"
	VW      Unit = "vw"
	VMIN    Unit = "vmin"
	VMAX    Unit = "vmax"
	Percent Unit = "%"
	FR      Unit = "fr"
	IN      Unit = "in"
	CM      Unit = "cm"
	MM      Unit = "mm"
	PT      Unit = "pt"
	PC      Unit = "pc"
)

// AbsoluteUnits convert to pixels with a fixed factor.
var AbsoluteUnits = []Unit{PX, PT, PC, CM, MM, IN}

// RelativeUnits depend on a font, viewport or parent context.
var RelativeUnits = []Unit{EM, REM, VH, VW, VMIN, VMAX, Percent}

// absoluteFactors maps absolute units to pixels.
var absoluteFactors = map[Unit]float64{
	PX: 1,
	IN: 96,
	CM: 37.8,
	MM: 3.78,
	PT: 1.33,
	PC: 16,
}

var known = map[Unit]bool{
	PX: true, EM: true, REM: true, VH: true, VW: true, VMIN: true, VMAX: true,
	Percent: true, FR: true, IN: true, CM: true, MM: true, PT: true, PC: true,
}

// Value is a CSS dimension. The zero Value is unset.
type Value struct {
	Num  float64
	Unit Unit

	auto bool
	set  bool
}

// Auto is the literal CSS "auto".
var Auto = Value{auto: true, set: true}

// Px returns a pixel value.
func Px(n float64) Value { return Value{Num: n, Unit: PX, set: true} }

// Number returns a unitless value, interpreted as pixels.
func Number(n float64) Value { return Value{Num: n, set: true} }

// Of returns a value with the given unit.
func Of(n float64, u Unit) Value { return Value{Num: n, Unit: u, set: true} }

// IsSet reports whether v holds a value.
func (v Value) IsSet() bool { return v.set }

// IsAuto reports whether v is the literal "auto".
func (v Value) IsAuto() bool { return v.auto }

// IsPixel reports whether v is a plain number or a px value.
func (v Value) IsPixel() bool {
	return v.set && !v.auto && (v.Unit == None || v.Unit == PX)
}

// IsAbsolute reports whether v converts to pixels without context.
func (v Value) IsAbsolute() bool {
	if !v.set || v.auto {
		return false
	}
	if v.Unit == None {
		return true
	}
	_, ok := absoluteFactors[v.Unit]
	return ok
}

// IsRelative reports whether v needs a context to convert.
func (v Value) IsRelative() bool {
	if !v.set || v.auto {
		return false
	}
	for _, u := range RelativeUnits {
		if v.Unit == u {
			return true
		}
	}
	return false
}

// IsGridUnit reports whether v is an fr or percentage track size.
func (v Value) IsGridUnit() bool {
	return v.set && !v.auto && (v.Unit == FR || v.Unit == Percent)
}

// String formats v as CSS. Plain numbers get an explicit px suffix and unset
// values format as the empty string.
func (v Value) String() string {
	switch {
	case !v.set:
		return ""
	case v.auto:
		return "auto"
	case v.Unit == None:
		return FormatNumber(v.Num) + string(PX)
	default:
		return FormatNumber(v.Num) + string(v.Unit)
	}
}

// Or returns v when set, otherwise def.
func (v Value) Or(def Value) Value {
	if v.set {
		return v
	}
	return def
}

// FormatNumber renders n with the shortest representation that round-trips.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

var valueRegex = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))([a-z%]*)$`)

// Parse parses a CSS dimension such as "16px", "1.5rem", "20%", "1fr",
// "auto" or a plain number.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Value{}, perrors.New(perrors.ErrCodeInvalidUnit, "empty value")
	}
	if s == "auto" {
		return Auto, nil
	}

	m := valueRegex.FindStringSubmatch(s)
	if m == nil {
		return Value{}, perrors.New(perrors.ErrCodeInvalidUnit, "invalid CSS value: %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, perrors.Wrap(perrors.ErrCodeInvalidUnit, err, "invalid number in %q", s)
	}
	u := Unit(m[2])
	if u != None && !known[u] {
		return Value{}, perrors.New(perrors.ErrCodeInvalidUnit, "unknown unit %q in %q", u, s)
	}
	return Value{Num: n, Unit: u, set: true}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Format renders v as CSS, substituting def pixels when v is unset.
// "auto" and percentages are kept as-is.
func Format(v Value, def float64) string {
	if !v.set {
		return FormatNumber(def) + string(PX)
	}
	return v.String()
}

// FromAny converts a decoded TOML or JSON scalar into a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case int64:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, perrors.New(perrors.ErrCodeInvalidUnit, "non-finite number")
		}
		return Number(t), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return Value{}, nil
		}
		return Parse(t)
	case nil:
		return Value{}, nil
	default:
		return Value{}, perrors.New(perrors.ErrCodeInvalidUnit, "unsupported value type %T", x)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*v = Value{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalTOML accepts integers, floats and unit strings.
func (v *Value) UnmarshalTOML(data any) error {
	parsed, err := FromAny(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON encodes v as a CSS string.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts numbers and unit strings.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && s == "" {
		*v = Value{}
		return nil
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return fmt.Errorf("decode css value: %w", err)
	}
	*v = parsed
	return nil
}
