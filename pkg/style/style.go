// Package style merges inline styles and class names for overlay nodes.
//
// Overlay components compute their own CSS custom properties (the grid
// template, gaps, colors) and let callers pass extra style and class names.
// [Merge] combines them: caller values win for plain properties, while custom
// properties in the overlay's own namespaces ([InternalPrefixes]) keep the
// computed value so a caller cannot desynchronize the rendered grid from its
// calculation.
package style

import (
	"slices"
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
)

// Style maps CSS property names to values.
type Style map[string]string

// InternalPrefixes are the custom property namespaces owned by the overlay.
var InternalPrefixes = []string{"--grid-", "--column-", "--row-", "--padd-", "--padder-", "--box-"}

// IsCustom reports whether prop is a CSS custom property.
func IsCustom(prop string) bool {
	return strings.HasPrefix(prop, "--")
}

// IsInternal reports whether prop belongs to an overlay namespace.
func IsInternal(prop string) bool {
	for _, p := range InternalPrefixes {
		if strings.HasPrefix(prop, p) {
			return true
		}
	}
	return false
}

// Merge layers caller styles over internal. Plain properties are overwritten
// by later styles. Internal custom properties already set by internal are
// kept; callers may add ones it does not set. Empty values are dropped.
func Merge(internal Style, caller ...Style) Style {
	out := make(Style, len(internal))
	for k, v := range internal {
		if v != "" {
			out[k] = v
		}
	}
	for _, s := range caller {
		for k, v := range s {
			if v == "" {
				continue
			}
			if IsInternal(k) {
				if _, owned := internal[k]; owned && internal[k] != "" {
					continue
				}
			}
			out[k] = v
		}
	}
	return out
}

// Set returns a copy of s with prop set to value. An empty value removes prop.
func (s Style) Set(prop, value string) Style {
	out := make(Style, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	if value == "" {
		delete(out, prop)
	} else {
		out[prop] = value
	}
	return out
}

// Keys returns the property names in a stable order: custom properties
// first, then plain properties, each sorted.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ca, cb := IsCustom(a), IsCustom(b)
		switch {
		case ca && !cb:
			return -1
		case !ca && cb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

// String renders s as an inline style attribute value.
func (s Style) String() string {
	var b strings.Builder
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s[k])
		b.WriteByte(';')
	}
	return b.String()
}

// Validate rejects property names and values that would escape an inline
// style attribute.
func (s Style) Validate() error {
	for _, k := range s.Keys() {
		if err := validateProperty(k); err != nil {
			return err
		}
		if err := perrors.ValidateStyleValue(k, s[k]); err != nil {
			return err
		}
	}
	return nil
}

func validateProperty(name string) error {
	if name == "" {
		return perrors.New(perrors.ErrCodeInvalidStyle, "empty style property")
	}
	for _, r := range name {
		ok := r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return perrors.New(perrors.ErrCodeInvalidStyle, "invalid style property %q", name)
		}
	}
	return nil
}

// ClassNames joins the non-empty class names with single spaces.
func ClassNames(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, strings.Fields(n)...)
	}
	return strings.Join(parts, " ")
}

// ValidateClassNames checks every class in a space separated list.
func ValidateClassNames(classes string) error {
	for _, c := range strings.Fields(classes) {
		if err := perrors.ValidateClassName(c); err != nil {
			return err
		}
	}
	return nil
}
