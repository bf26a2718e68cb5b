// Package overlay builds grid overlay components into a renderer-neutral
// node tree.
//
// # Components
//
//   - [XGrid]: column guides computed by [grid.Calculate]
//   - [YGrid]: baseline rows, one per base unit, windowed to a visible range
//   - [Spacer]: a block snapped down to a multiple of the base unit
//   - [Padder]: visible spacers around content
//   - [Box]: a padding box, drawn as a Padder unless hidden entirely
//   - [PaddedGrid]: a max-width container aligning its children
//
// Each component has a Build method returning a [*Node]. Nodes carry the
// CSS classes, inline custom properties and data attributes a browser host
// would apply, plus a resolved pixel [Frame] for sinks that draw geometry.
//
// # Visibility
//
// [Visibility] is a tri-state. None returns a nil node (not mounted), Hidden
// returns nodes styled invisible, Visible returns drawn nodes.
//
// # Styles
//
// Caller styles are layered with [style.Merge]: plain properties from the
// caller win, internal custom properties (--grid-*, --row-*, ...) do not.
//
// # Scenes
//
// [Layers] composes components into a [Scene] for one container size:
//
//	sc := overlay.Layers{
//		Grid:  overlay.PaddedGrid{State: overlay.InitialGridState()},
//		XGrid: &overlay.XGrid{Config: grid.Fixed{Columns: 12}},
//		YGrid: &overlay.YGrid{},
//	}.Build(1280, 800, window.Range{Start: 0, End: 100})
package overlay
