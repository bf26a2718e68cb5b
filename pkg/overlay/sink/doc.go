// Package sink renders overlay scenes into output formats.
//
// # Overview
//
// A "sink" transforms a built [overlay.Scene] into a final artifact:
//
//   - HTML: a standalone document (or fragment) with the overlay stylesheet
//   - SVG: geometry only, with var() colors resolved through a [Palette]
//   - JSON: grid result, tracks, rows and spacer frames for external tools
//   - Terminal: a character grid styled with lipgloss
//
// Each renderer takes functional options:
//
//	html := sink.RenderHTML(scene, sink.WithTitle("landing page"))
//	svg := sink.RenderSVG(scene, sink.WithBackground("#fff"))
//	data, err := sink.RenderJSON(scene, sink.WithJSONTree())
//	text := sink.RenderTerm(scene, sink.WithTermSize(120, 40))
//
// # Hidden Overlays
//
// Nodes with Visibility hidden are part of the tree. The HTML sink emits them
// with the padd-hidden class and the JSON sink reports their geometry; the
// SVG and terminal sinks skip them, since they draw only what is visible.
//
// # Colors
//
// Overlay colors default to CSS custom properties such as
// var(--grid-color-fixed). The HTML sink defines them on :root from
// [DefaultPalette]; SVG and terminal output resolve them with
// [Palette.Resolve].
package sink
