// Package grid computes CSS grid geometry for column guide overlays.
//
// # Overview
//
// A column overlay is described by exactly one sizing variant. [Config] is a
// closed sum type with four implementations:
//
//   - [Line]: 1px guide lines spaced by a gap (defaults to the base unit)
//   - [Pattern]: an explicit ordered list of column tracks ("1fr 2fr 1fr")
//   - [Fixed]: N equal columns of a given track size (default "1fr")
//   - [Auto]: as many fixed-width columns as fit the container
//
// [Calculate] turns a container width and a Config into a [Result] holding the
// grid-template-columns value, the column count and the effective gap. It is
// a pure function: identical inputs always produce identical results.
//
// # Degenerate Input
//
// Calculate never panics and never returns an error. A non-positive container
// width, a nil config, or any malformed track token yields [Invalid]:
//
//	Result{TemplateColumns: "none", ColumnCount: 0, EffectiveGap: "0px", Valid: false}
//
// Callers check [Result.Valid] before using the geometry.
//
// # Line Gap
//
// The line variant draws 1px tracks, so the CSS gap is the configured spacing
// minus one pixel. The gap is first converted to pixels with the injected
// [units.Context] and then reduced: a 1rem gap becomes 15px at a 16px root
// font size.
//
// # Track Geometry
//
// Sinks that draw the overlay themselves use [Tracks] to resolve a valid
// result into absolute pixel positions, including fr distribution and
// start/center/end alignment.
//
// # Example
//
//	res := grid.Calculate(1000, grid.Auto{ColumnWidth: units.Px(100), Gap: units.Px(16)})
//	// res.TemplateColumns == "repeat(8, 100px)", res.ColumnCount == 8
package grid
