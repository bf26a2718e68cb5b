// Package pkg provides the core libraries for padd grid overlays.
//
// # Overview
//
// padd draws design-time guides over a page: a column overlay that mirrors a
// CSS grid, a baseline overlay of 1px rows every base unit, and optional
// spacer, padder and box samples. The pkg directory is organized into four
// areas:
//
//  1. Arithmetic - [units], [grid], [spacing], [measure] and [window]
//  2. Composition - [overlay] and its renderers in [overlay/sink]
//  3. Runtime - [observe] and [schedule] for resize and scroll signals
//  4. Orchestration - [config] and [pipeline]
//
// # Architecture
//
// The typical data flow through padd:
//
//	padd.toml
//	     ↓
//	[config] package (decode, defaults, validation)
//	     ↓
//	[pipeline] package (BuildLayers: settings → overlay layers)
//	     ↓
//	[overlay] package (layers → node tree for one width, height and row range)
//	     ↓
//	[overlay/sink] package (HTML, SVG, JSON or terminal text)
//
// # Quick Start
//
// Compute a column template and render an overlay:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/padd/pkg/config"
//	    "github.com/matzehuels/padd/pkg/grid"
//	    "github.com/matzehuels/padd/pkg/pipeline"
//	    "github.com/matzehuels/padd/pkg/units"
//	)
//
//	// 1. Compute the columns for a 1000px container
//	res := grid.Calculate(1000, grid.Auto{ColumnWidth: units.Px(100), Gap: units.Px(16)})
//	// res.TemplateColumns == "repeat(8, 100px)"
//
//	// 2. Render the configured overlays
//	s, _ := config.Load("padd.toml")
//	result, _ := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Settings: s,
//	    Width:    1280,
//	    Height:   2400,
//	    Formats:  []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [units] parses CSS lengths (px, rem, em, %, vw, vh, fr, auto) and converts
// them to pixels against a measurement [units.Context].
//
// [grid] maps a container width and one of four column variants (line,
// pattern, fixed, auto) to a grid-template-columns string, a column count and
// an effective gap. It also resolves responsive max widths and the x offset of
// every track.
//
// [spacing] expands one to four padding values into sides, like the CSS
// shorthand.
//
// [measure] snaps lengths to multiples of the base unit and reports values it
// had to move.
//
// [window] computes which baseline rows intersect the viewport plus a buffer,
// and keeps that range current for a scrolled overlay.
//
// [overlay] builds the node tree of every overlay component. Nodes carry
// style declarations and data attributes, never markup.
//
// [observe] and [schedule] turn resize and scroll signals into coalesced
// recomputations.
//
// [config] loads padd.toml; [pipeline] ties configuration, layers and sinks
// together with timing stats and [observability] hooks.
//
// # Thread Safety
//
// The arithmetic packages are pure. [window.Tracker], [observe.Observer] and
// the schedulers are safe for concurrent use. Layers and scenes are values and
// must not be mutated while a renderer reads them.
package pkg
