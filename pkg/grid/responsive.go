package grid

import (
	"fmt"
	"sort"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/units"
)

// Breakpoint is a named container-query threshold.
type Breakpoint struct {
	Name     string
	MinWidth float64
}

// Breakpoints is the responsive breakpoint table, smallest first.
var Breakpoints = []Breakpoint{
	{Name: "base", MinWidth: 0},
	{Name: "sm", MinWidth: 640},
	{Name: "md", MinWidth: 768},
	{Name: "lg", MinWidth: 1024},
	{Name: "xl", MinWidth: 1280},
	{Name: "xxl", MinWidth: 1536},
}

// LookupBreakpoint finds a breakpoint by name.
func LookupBreakpoint(name string) (Breakpoint, bool) {
	for _, bp := range Breakpoints {
		if bp.Name == name {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// Responsive maps breakpoint names to values. A Responsive with only a
// "base" entry behaves like a plain value.
type Responsive map[string]units.Value

// Single returns a Responsive holding v at the base breakpoint.
func Single(v units.Value) Responsive {
	if !v.IsSet() {
		return nil
	}
	return Responsive{"base": v}
}

// Validate rejects unknown breakpoint names.
func (r Responsive) Validate() error {
	for name := range r {
		if _, ok := LookupBreakpoint(name); !ok {
			return perrors.New(perrors.ErrCodeInvalidInput, "unknown breakpoint %q", name)
		}
	}
	return nil
}

// IsSet reports whether any breakpoint holds a value.
func (r Responsive) IsSet() bool {
	for _, v := range r {
		if v.IsSet() {
			return true
		}
	}
	return false
}

// Resolve returns the value in effect for a container of the given width:
// the entry of the widest breakpoint whose minimum does not exceed width.
func (r Responsive) Resolve(width float64) units.Value {
	var out units.Value
	for _, bp := range Breakpoints {
		if bp.MinWidth > width {
			break
		}
		if v, ok := r[bp.Name]; ok && v.IsSet() {
			out = v
		}
	}
	return out
}

// Base returns the base value, falling back to def.
func (r Responsive) Base(def units.Value) units.Value {
	return r["base"].Or(def)
}

// Rules renders container-query rules setting property on selector, one
// rule per breakpoint in ascending order. The base value is unconditional.
//
//	.padd-xgrid { --grid-max-width: 100%; }
//	@container (min-width: 1024px) { .padd-xgrid { --grid-max-width: 960px; } }
func (r Responsive) Rules(selector, property string) string {
	var b strings.Builder
	for _, bp := range Breakpoints {
		v, ok := r[bp.Name]
		if !ok || !v.IsSet() {
			continue
		}
		decl := fmt.Sprintf("%s { %s: %s; }", selector, property, v.String())
		if bp.MinWidth == 0 {
			b.WriteString(decl)
		} else {
			fmt.Fprintf(&b, "@container (min-width: %spx) { %s }", units.FormatNumber(bp.MinWidth), decl)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the base value followed by breakpoint overrides, e.g.
// "100% sm:600px lg:960px".
func (r Responsive) String() string {
	var parts []string
	for _, bp := range Breakpoints {
		v, ok := r[bp.Name]
		if !ok || !v.IsSet() {
			continue
		}
		if bp.Name == "base" {
			parts = append(parts, v.String())
		} else {
			parts = append(parts, bp.Name+":"+v.String())
		}
	}
	return strings.Join(parts, " ")
}

// UnmarshalTOML accepts a plain value or a table keyed by breakpoint name.
func (r *Responsive) UnmarshalTOML(data any) error {
	table, ok := data.(map[string]any)
	if !ok {
		v, err := units.FromAny(data)
		if err != nil {
			return err
		}
		*r = Single(v)
		return nil
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Responsive, len(table))
	for _, name := range names {
		v, err := units.FromAny(table[name])
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidUnit, err, "breakpoint %q", name)
		}
		out[name] = v
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*r = out
	return nil
}
