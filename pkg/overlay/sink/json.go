package sink

import (
	"encoding/json"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/window"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	tree   bool
	source string
}

// WithJSONTree includes the full node tree in the output.
func WithJSONTree() JSONOption { return func(r *jsonRenderer) { r.tree = true } }

// WithJSONSource records the configuration file the scene was built from.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

type jsonOutput struct {
	Source  string        `json:"source,omitempty"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Grid    grid.Result   `json:"grid"`
	Rows    int           `json:"rows"`
	Visible window.Range  `json:"visible"`
	Columns []jsonRect    `json:"columns"`
	Lines   []jsonRect    `json:"lines"`
	Spacers []jsonSpacer  `json:"spacers,omitempty"`
	Tree    *overlay.Node `json:"tree,omitempty"`
}

type jsonRect struct {
	Index  string  `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonSpacer struct {
	jsonRect
	Variant string `json:"variant"`
}

// RenderJSON exports the scene geometry as pretty-printed JSON: the grid
// result, column tracks, emitted rows and spacer frames. Hidden overlays are
// included, since they are mounted.
func RenderJSON(sc *overlay.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Source:  r.source,
		Grid:    grid.Invalid,
		Columns: []jsonRect{},
		Lines:   []jsonRect{},
	}
	if sc == nil {
		return json.MarshalIndent(out, "", "  ")
	}
	out.Width, out.Height = sc.Width, sc.Height
	out.Grid, out.Rows, out.Visible = sc.Columns, sc.Rows, sc.Visible

	sc.Root.Walk(func(n *overlay.Node, _ int) bool {
		if n.Frame == nil {
			return true
		}
		rect := jsonRect{X: n.Frame.X, Y: n.Frame.Y, Width: n.Frame.Width, Height: n.Frame.Height}
		switch n.Role {
		case overlay.RoleColumn:
			rect.Index = n.Data["column-index"]
			out.Columns = append(out.Columns, rect)
		case overlay.RoleRow:
			rect.Index = n.Data["row-index"]
			out.Lines = append(out.Lines, rect)
		case overlay.RoleSpacer:
			out.Spacers = append(out.Spacers, jsonSpacer{jsonRect: rect, Variant: n.Data["variant"]})
		}
		return true
	})
	if r.tree {
		out.Tree = sc.Root
	}
	return json.MarshalIndent(out, "", "  ")
}
