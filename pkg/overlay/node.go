package overlay

import (
	"maps"
	"slices"

	"github.com/matzehuels/padd/pkg/style"
)

// Roles identify what a node draws.
const (
	RoleXGrid      = "xgrid"
	RoleColumns    = "columns"
	RoleColumn     = "column"
	RoleYGrid      = "ygrid"
	RoleRow        = "row"
	RoleSpacer     = "spacer"
	RoleIndicator  = "indicator"
	RolePadder     = "padder"
	RoleBox        = "box"
	RolePaddedGrid = "padded-grid"
	RoleContent    = "content"
	RoleScene      = "scene"
)

// Frame is a resolved box in pixels, relative to the scene origin.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is one element of a rendered overlay. Sinks turn node trees into
// HTML, SVG, JSON or terminal output.
type Node struct {
	Role     string            `json:"role"`
	Class    string            `json:"class,omitempty"`
	Style    style.Style       `json:"style,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
	Text     string            `json:"text,omitempty"`
	CSS      string            `json:"css,omitempty"` // Extra stylesheet rules, e.g. container queries
	Frame    *Frame            `json:"frame,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

func newNode(role, class string) *Node {
	return &Node{Role: role, Class: class, Data: map[string]string{}}
}

// Append adds non-nil children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	var count int
	n.Walk(func(*Node, int) bool { count++; return true })
	return count
}

// Find returns every node with the given role, in document order.
func (n *Node) Find(role string) []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) bool {
		if node.Role == role {
			out = append(out, node)
		}
		return true
	})
	return out
}

// DataKeys returns the data attribute names in sorted order.
func (n *Node) DataKeys() []string {
	return slices.Sorted(maps.Keys(n.Data))
}

// Offset shifts the frames of n and its descendants by dx, dy.
func (n *Node) Offset(dx, dy float64) {
	n.Walk(func(node *Node, _ int) bool {
		if node.Frame != nil {
			node.Frame.X += dx
			node.Frame.Y += dy
		}
		return true
	})
}
