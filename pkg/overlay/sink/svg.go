package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/padd/pkg/overlay"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    Palette
	background string
	labels     bool
}

// WithSVGPalette resolves overlay colors against p before DefaultPalette.
func WithSVGPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithBackground fills the canvas before drawing the overlay.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithoutLabels omits spacer indicator text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws the framed nodes of a scene: columns, rows, spacers and box
// outlines. Hidden subtrees are skipped.
func RenderSVG(sc *overlay.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var w, h float64
	if sc != nil {
		w, h = sc.Width, sc.Height
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			w, h, html.EscapeString(r.palette.Resolve(r.background)))
	}
	if sc != nil {
		walk(sc.Root, nil, func(n *overlay.Node, vars map[string]string) {
			r.renderNode(&buf, n, vars)
		})
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderNode(buf *bytes.Buffer, n *overlay.Node, vars map[string]string) {
	switch n.Role {
	case overlay.RoleColumn, overlay.RoleRow, overlay.RoleSpacer:
		if n.Frame == nil || n.Frame.Width <= 0 || n.Frame.Height <= 0 {
			return
		}
		opacity := 1.0
		if o, err := strconv.ParseFloat(vars["--row-opacity"], 64); err == nil && n.Role == overlay.RoleRow {
			opacity = o
		}
		if opacity <= 0 {
			return
		}
		f := n.Frame
		fmt.Fprintf(buf, `  <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
			n.Role, f.X, f.Y, f.Width, f.Height, html.EscapeString(r.palette.Resolve(nodeColor(n, vars))))
		if opacity < 1 {
			fmt.Fprintf(buf, ` fill-opacity="%s"`, strconv.FormatFloat(opacity, 'f', -1, 64))
		}
		buf.WriteString("/>\n")

		if n.Role == overlay.RoleSpacer && r.labels {
			r.renderIndicators(buf, n)
		}

	case overlay.RoleBox:
		if n.Frame == nil {
			return
		}
		f := n.Frame
		fmt.Fprintf(buf, `  <rect class="box" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
			f.X, f.Y, f.Width, f.Height, html.EscapeString(r.palette.Resolve(nodeColor(n, vars))))
	}
}

func (r svgRenderer) renderIndicators(buf *bytes.Buffer, n *overlay.Node) {
	color := html.EscapeString(r.palette.Resolve("var(--spacer-color-indice)"))
	line := 0
	for _, c := range n.Children {
		if c.Role != overlay.RoleIndicator || c.Text == "" {
			continue
		}
		line++
		fmt.Fprintf(buf, `  <text class="indicator" x="%.1f" y="%.1f" font-family="monospace" font-size="10" fill="%s">%s</text>`+"\n",
			n.Frame.X+2, n.Frame.Y+float64(line)*11, color, html.EscapeString(c.Text))
	}
}
