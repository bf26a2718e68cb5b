package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/style"
)

// Palette maps CSS custom properties to concrete colors. Sinks that cannot
// evaluate var() (SVG, terminal) resolve overlay colors through it.
type Palette map[string]string

// DefaultPalette holds the theme colors of the overlay stylesheet.
var DefaultPalette = Palette{
	"--grid-color-fixed":    "rgba(255, 0, 102, 0.12)",
	"--grid-color-line":     "rgba(0, 153, 255, 0.35)",
	"--spacer-color-line":   "rgba(255, 102, 0, 0.6)",
	"--spacer-color-flat":   "rgba(255, 102, 0, 0.15)",
	"--spacer-color-indice": "rgba(255, 102, 0, 1)",
	"--padder-color-flat":   "rgba(0, 204, 136, 0.2)",
	"--box-color":           "rgba(136, 0, 255, 0.4)",
}

// Resolve evaluates var(--name) and var(--name, fallback) references.
// Unknown variables without a fallback resolve to "currentColor"; plain
// colors are returned unchanged.
func (p Palette) Resolve(color string) string {
	for range 8 {
		c := strings.TrimSpace(color)
		if !strings.HasPrefix(c, "var(") || !strings.HasSuffix(c, ")") {
			return c
		}
		name, fallback, hasFallback := strings.Cut(c[len("var("):len(c)-1], ",")
		if v, ok := p[strings.TrimSpace(name)]; ok {
			color = v
			continue
		}
		if v, ok := DefaultPalette[strings.TrimSpace(name)]; ok {
			color = v
			continue
		}
		if !hasFallback {
			return "currentColor"
		}
		color = fallback
	}
	return "currentColor"
}

// Stylesheet renders the palette as :root custom properties.
func (p Palette) Stylesheet() string {
	merged := Palette{}
	for k, v := range DefaultPalette {
		merged[k] = v
	}
	for k, v := range p {
		merged[k] = v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(merged[k])
		b.WriteString(";")
	}
	b.WriteString(" }\n")
	return b.String()
}

// hidden reports whether n is mounted but invisible.
func hidden(n *overlay.Node) bool {
	return slices.Contains(strings.Fields(n.Class), "padd-hidden")
}

// walk visits the tree depth first, skipping hidden subtrees. vars holds
// the custom properties in effect for the node, inherited like CSS.
func walk(n *overlay.Node, vars map[string]string, fn func(n *overlay.Node, vars map[string]string)) {
	if n == nil || hidden(n) {
		return
	}
	own := make(map[string]string, len(vars)+len(n.Style))
	for k, v := range vars {
		own[k] = v
	}
	for k, v := range n.Style {
		if style.IsCustom(k) {
			own[k] = v
		}
	}
	fn(n, own)
	for _, c := range n.Children {
		walk(c, own, fn)
	}
}

// nodeColor returns the fill of a drawable node before palette resolution.
func nodeColor(n *overlay.Node, vars map[string]string) string {
	switch n.Role {
	case overlay.RoleColumn:
		if c := vars["--column-color"]; c != "" {
			return c
		}
		return "var(--grid-color-fixed)"
	case overlay.RoleRow:
		if c := vars["--row-color"]; c != "" {
			return c
		}
		return "var(--grid-color-line)"
	case overlay.RoleSpacer:
		if c := n.Style["--padd-spacer-color"]; c != "" {
			return c
		}
		if n.Data["variant"] == "line" {
			return "var(--spacer-color-line)"
		}
		return "var(--spacer-color-flat)"
	case overlay.RoleBox:
		return "var(--box-color)"
	}
	return ""
}
