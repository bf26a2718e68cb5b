package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/units"
)

const overlayCSS = `
    * { box-sizing: border-box; }
    body { margin: 0; }
    .padd-scene { position: relative; overflow: hidden; container-type: inline-size; }
    .padd-scene div { position: absolute; pointer-events: none; }
    .padd-padded-grid { z-index: var(--grid-z-index); }
    .padd-xgrid { z-index: var(--grid-z-index); }
    .padd-xgrid__columns { display: grid; grid-template-columns: var(--grid-template-columns); gap: var(--grid-gap); justify-content: var(--grid-justify); }
    .padd-xgrid__column { background: var(--column-color); }
    .padd-scene .padd-xgrid__column--fluid { position: static; }
    .padd-xgrid__column--line { width: var(--column-width, 1px); }
    .padd-ygrid__row { background: var(--row-color); opacity: var(--row-opacity); height: var(--row-height); }
    .padd-spacer { background: var(--padd-spacer-color, var(--spacer-color-flat)); z-index: var(--padd-z-index); }
    .padd-spacer .padd-spacer__indicator { position: static; font: 10px/1 ui-monospace, monospace; color: var(--spacer-color-indice); padding: 2px; }
    .padd-box { outline: 1px dashed var(--box-color); }
    .padd-hidden { visibility: hidden; opacity: 0; }`

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title      string
	palette    Palette
	stylesheet string
	fragment   bool
}

// WithTitle sets the document title.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithHTMLPalette overrides theme colors in the :root stylesheet.
func WithHTMLPalette(p Palette) HTMLOption { return func(r *htmlRenderer) { r.palette = p } }

// WithStylesheet appends raw CSS after the overlay stylesheet.
func WithStylesheet(css string) HTMLOption { return func(r *htmlRenderer) { r.stylesheet = css } }

// WithFragment renders only the <style> element and the scene markup, for
// embedding into an existing page.
func WithFragment() HTMLOption { return func(r *htmlRenderer) { r.fragment = true } }

// RenderHTML renders the scene as a standalone HTML document. Every node
// becomes an absolutely positioned div carrying its classes, inline custom
// properties and data attributes.
func RenderHTML(sc *overlay.Scene, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "padd overlay"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if !r.fragment {
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		buf.WriteString("  <meta charset=\"utf-8\">\n")
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	r.renderStyle(&buf, sc)
	if !r.fragment {
		buf.WriteString("</head>\n<body>\n")
	}
	if sc != nil && sc.Root != nil {
		renderNode(&buf, sc.Root, nil, 0)
	}
	if !r.fragment {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

func (r htmlRenderer) renderStyle(buf *bytes.Buffer, sc *overlay.Scene) {
	buf.WriteString("  <style>\n    ")
	buf.WriteString(r.palette.Stylesheet())
	buf.WriteString(strings.TrimPrefix(overlayCSS, "\n"))
	buf.WriteString("\n")
	if sc != nil && sc.Root != nil {
		sc.Root.Walk(func(n *overlay.Node, _ int) bool {
			for _, line := range strings.Split(strings.TrimSpace(n.CSS), "\n") {
				if line != "" {
					buf.WriteString("    " + line + "\n")
				}
			}
			return true
		})
	}
	if r.stylesheet != "" {
		buf.WriteString("    " + strings.TrimSpace(r.stylesheet) + "\n")
	}
	buf.WriteString("  </style>\n")
}

func renderNode(buf *bytes.Buffer, n, parent *overlay.Node, depth int) {
	indent := strings.Repeat("  ", depth+1)
	fmt.Fprintf(buf, "%s<div", indent)
	if n.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, html.EscapeString(n.Class))
	}
	if s := inlineStyle(n, parent); s != "" {
		fmt.Fprintf(buf, ` style="%s"`, html.EscapeString(s))
	}
	for _, k := range n.DataKeys() {
		fmt.Fprintf(buf, ` data-%s="%s"`, html.EscapeString(k), html.EscapeString(n.Data[k]))
	}
	buf.WriteString(">")

	if len(n.Children) == 0 {
		buf.WriteString(html.EscapeString(n.Text))
		buf.WriteString("</div>\n")
		return
	}
	buf.WriteString("\n")
	if n.Text != "" {
		fmt.Fprintf(buf, "%s  %s\n", indent, html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		renderNode(buf, c, frameOwner(n, parent), depth+1)
	}
	fmt.Fprintf(buf, "%s</div>\n", indent)
}

// frameOwner returns the nearest node with a frame, against which children
// are positioned.
func frameOwner(n, parent *overlay.Node) *overlay.Node {
	if n.Frame != nil {
		return n
	}
	return parent
}

// inlineStyle renders the node style plus its position relative to the
// nearest framed ancestor.
func inlineStyle(n, parent *overlay.Node) string {
	s := n.Style.String()
	if n.Frame == nil {
		return s
	}
	x, y := n.Frame.X, n.Frame.Y
	if parent != nil && parent.Frame != nil {
		x -= parent.Frame.X
		y -= parent.Frame.Y
	}
	px := func(v float64) string { return units.FormatNumber(v) + "px" }
	pos := fmt.Sprintf("left: %s; top: %s; width: %s; height: %s;",
		px(x), px(y), px(n.Frame.Width), px(n.Frame.Height))
	if n.Role == overlay.RoleScene {
		pos = fmt.Sprintf("width: %s; height: %s;", px(n.Frame.Width), px(n.Frame.Height))
	}
	if s == "" {
		return pos
	}
	return s + " " + pos
}
