// Package spacing normalizes padding shorthands into block and inline pairs.
//
// Padding can be written in several shapes, all reduced to a [Padding]:
//
//	8                                  // every side
//	[8, 16]                            // [block, inline]
//	[8, 16, 24, 32]                    // [top, right, bottom, left]
//	{start = 8, end = 8, left = 16}    // named edges
//	{block = [8, 8], inline = 16}      // explicit pairs
//
// Values are pixels.
package spacing

import (
	"fmt"
	"math"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/measure"
	"github.com/matzehuels/padd/pkg/units"
)

// Pair holds the start and end of one axis.
type Pair [2]float64

// Uniform returns a pair with both ends set to n.
func Uniform(n float64) Pair { return Pair{n, n} }

// Start returns the leading value.
func (p Pair) Start() float64 { return p[0] }

// End returns the trailing value.
func (p Pair) End() float64 { return p[1] }

// Padding is spacing on the block (vertical) and inline (horizontal) axes.
type Padding struct {
	Block  Pair `json:"block"`
	Inline Pair `json:"inline"`
}

// All returns padding of n on every side.
func All(n float64) Padding {
	return Padding{Block: Uniform(n), Inline: Uniform(n)}
}

// Edges names each side explicitly.
type Edges struct {
	Start float64 // top
	End   float64 // bottom
	Left  float64
	Right float64
}

// FromEdges converts named edges.
func FromEdges(e Edges) Padding {
	return Padding{Block: Pair{e.Start, e.End}, Inline: Pair{e.Left, e.Right}}
}

// FromShorthand accepts one value (all sides), two values (block, inline) or
// four values (top, right, bottom, left).
func FromShorthand(values ...float64) (Padding, error) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Padding{}, perrors.New(perrors.ErrCodeInvalidInput, "padding must be finite")
		}
	}
	switch len(values) {
	case 1:
		return All(values[0]), nil
	case 2:
		return Padding{Block: Uniform(values[0]), Inline: Uniform(values[1])}, nil
	case 4:
		top, right, bottom, left := values[0], values[1], values[2], values[3]
		return Padding{Block: Pair{top, bottom}, Inline: Pair{left, right}}, nil
	default:
		return Padding{}, perrors.New(perrors.ErrCodeInvalidInput, "padding takes 1, 2 or 4 values, got %d", len(values))
	}
}

// Parse reads a CSS-like shorthand such as "8px 16px". Values must convert
// to pixels without context.
func Parse(s string) (Padding, error) {
	fields := strings.Fields(s)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := units.Parse(f)
		if err != nil {
			return Padding{}, err
		}
		if !v.IsAbsolute() {
			return Padding{}, perrors.New(perrors.ErrCodeInvalidUnit, "padding %q must be an absolute length", f)
		}
		values[i], _ = v.Pixels(units.Context{})
	}
	return FromShorthand(values...)
}

// IsZero reports whether every side is zero.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// Top, Right, Bottom and Left return single sides.
func (p Padding) Top() float64    { return p.Block[0] }
func (p Padding) Right() float64  { return p.Inline[1] }
func (p Padding) Bottom() float64 { return p.Block[1] }
func (p Padding) Left() float64   { return p.Inline[0] }

// Snap truncates every side to a multiple of base.
func (p Padding) Snap(base float64) Padding {
	s := func(n float64) float64 { return measure.SnapDown(n, base) }
	return Padding{
		Block:  Pair{s(p.Block[0]), s(p.Block[1])},
		Inline: Pair{s(p.Inline[0]), s(p.Inline[1])},
	}
}

// Validate rejects negative sides.
func (p Padding) Validate() error {
	for _, v := range []float64{p.Top(), p.Right(), p.Bottom(), p.Left()} {
		if v < 0 || math.IsNaN(v) {
			return perrors.Field("padding", p.String(), "sides must not be negative")
		}
	}
	return nil
}

// String renders the CSS padding shorthand (top right bottom left), using
// the shortest equivalent form.
func (p Padding) String() string {
	px := func(n float64) string { return units.FormatNumber(n) + "px" }
	switch {
	case p.Block[0] == p.Block[1] && p.Inline[0] == p.Inline[1] && p.Block[0] == p.Inline[0]:
		return px(p.Top())
	case p.Block[0] == p.Block[1] && p.Inline[0] == p.Inline[1]:
		return px(p.Top()) + " " + px(p.Left())
	default:
		return strings.Join([]string{px(p.Top()), px(p.Right()), px(p.Bottom()), px(p.Left())}, " ")
	}
}

// MarshalText renders the shorthand.
func (p Padding) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the shorthand.
func (p *Padding) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalTOML accepts every shape listed in the package documentation, plus
// shorthand strings.
func (p *Padding) UnmarshalTOML(data any) error {
	parsed, err := fromAny(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func fromAny(data any) (Padding, error) {
	switch t := data.(type) {
	case string:
		return Parse(t)
	case []any:
		values := make([]float64, len(t))
		for i, x := range t {
			n, err := number(x)
			if err != nil {
				return Padding{}, err
			}
			values[i] = n
		}
		return FromShorthand(values...)
	case map[string]any:
		return fromTable(t)
	default:
		n, err := number(data)
		if err != nil {
			return Padding{}, err
		}
		return FromShorthand(n)
	}
}

func fromTable(t map[string]any) (Padding, error) {
	_, hasBlock := t["block"]
	_, hasInline := t["inline"]
	if hasBlock || hasInline {
		var out Padding
		var err error
		if out.Block, err = pair(t["block"]); err != nil {
			return Padding{}, fmt.Errorf("block: %w", err)
		}
		if out.Inline, err = pair(t["inline"]); err != nil {
			return Padding{}, fmt.Errorf("inline: %w", err)
		}
		return out, nil
	}

	var e Edges
	for key, dst := range map[string]*float64{"start": &e.Start, "end": &e.End, "left": &e.Left, "right": &e.Right} {
		x, ok := t[key]
		if !ok {
			continue
		}
		n, err := number(x)
		if err != nil {
			return Padding{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	for key := range t {
		switch key {
		case "start", "end", "left", "right":
		default:
			return Padding{}, perrors.New(perrors.ErrCodeInvalidConfig, "unknown padding key %q", key)
		}
	}
	return FromEdges(e), nil
}

// pair reads a single spacing value: a number, a [start, end] array or a
// {start, end} table. Missing values are zero.
func pair(x any) (Pair, error) {
	switch t := x.(type) {
	case nil:
		return Pair{}, nil
	case []any:
		if len(t) != 2 {
			return Pair{}, perrors.New(perrors.ErrCodeInvalidInput, "spacing pair needs 2 values, got %d", len(t))
		}
		a, err := number(t[0])
		if err != nil {
			return Pair{}, err
		}
		b, err := number(t[1])
		if err != nil {
			return Pair{}, err
		}
		return Pair{a, b}, nil
	case map[string]any:
		var out Pair
		for i, key := range []string{"start", "end"} {
			if v, ok := t[key]; ok {
				n, err := number(v)
				if err != nil {
					return Pair{}, err
				}
				out[i] = n
			}
		}
		return out, nil
	default:
		n, err := number(x)
		if err != nil {
			return Pair{}, err
		}
		return Uniform(n), nil
	}
}

func number(x any) (float64, error) {
	v, err := units.FromAny(x)
	if err != nil {
		return 0, err
	}
	if !v.IsAbsolute() {
		return 0, perrors.New(perrors.ErrCodeInvalidUnit, "spacing %q must be an absolute length", v.String())
	}
	px, _ := v.Pixels(units.Context{})
	return px, nil
}
