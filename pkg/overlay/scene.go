package overlay

import (
	"strconv"

	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/window"
)

// Layers are the overlays composed into a scene. Nil layers are skipped.
type Layers struct {
	Grid   PaddedGrid
	XGrid  *XGrid
	YGrid  *YGrid
	Spacer *Spacer
	Padder *Padder
	Box    *Box
}

// Scene is a fully built overlay for one container size.
type Scene struct {
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Columns grid.Result  `json:"columns"`
	Rows    int          `json:"rows"`
	Visible window.Range `json:"visible"`
	Root    *Node        `json:"root"`
}

// Rows returns the row count the layers produce for a container height,
// or 0 without a row overlay.
func (l Layers) Rows(height float64) int {
	if l.YGrid == nil {
		return 0
	}
	return l.YGrid.Rows(height)
}

// Build composes the layers for a width × height container. Only rows inside
// visible are emitted.
//
// The tree is scene → padded-grid → {xgrid, ygrid, content}, where content
// nests spacer in padder in box, each present layer wrapping the next.
func (l Layers) Build(width, height float64, visible window.Range) *Scene {
	sc := &Scene{Width: width, Height: height, Visible: visible, Columns: grid.Invalid}

	root := newNode(RoleScene, "padd-scene")
	root.Data["width"] = strconv.FormatFloat(width, 'f', -1, 64)
	root.Data["height"] = strconv.FormatFloat(height, 'f', -1, 64)
	root.Frame = &Frame{Width: width, Height: height}

	inner := l.Grid.InnerWidth(width)
	var children []*Node

	if l.XGrid != nil {
		n, res := l.XGrid.Build(inner, height)
		sc.Columns = res
		children = append(children, n)
	}
	if l.YGrid != nil {
		sc.Rows = l.YGrid.Rows(height)
		children = append(children, l.YGrid.Build(inner, height, visible))
	}
	if content := l.content(inner, height); content != nil {
		children = append(children, content)
	}

	pg := l.Grid
	pg.Children = children
	root.Append(pg.Build(width, height))
	sc.Root = root
	return sc
}

func (l Layers) content(width, height float64) *Node {
	var n *Node
	if l.Spacer != nil {
		n = l.Spacer.Build(width, height)
	}
	if l.Padder != nil {
		p := *l.Padder
		if n != nil {
			p.Children = append(append([]*Node(nil), p.Children...), n)
		}
		n = p.Build(width, height)
	}
	if l.Box != nil {
		b := *l.Box
		if n != nil {
			b.Children = append(append([]*Node(nil), b.Children...), n)
		}
		n = b.Build(width, height)
	}
	if n == nil {
		return nil
	}
	c := newNode(RoleContent, "padd-content")
	c.Frame = &Frame{Width: width, Height: height}
	return c.Append(n)
}
