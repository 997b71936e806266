// SPDX-License-Identifier: Unlicense OR MIT

/*
Package scene implements the retained node tree that drag sources and
drop targets live in.

A Node has a layout Offset inside its parent, a render Transform applied
around its own origin, a Size and a z-index. Children are kept in paint
order: later children are painted above earlier ones unless a higher
ZIndex lifts a sibling. Hosts mirror their visual tree into nodes, and
the drag and drop engine reparents nodes while a drag is in progress.

The tree is acyclic by construction: Add and Insert panic if the child
already has a parent or is an ancestor of the receiver.
*/
package scene

import (
	"cmp"
	"image/color"

	"golang.org/x/exp/slices"

	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/io/pointer"
)

// Node is an element of the scene tree.
type Node struct {
	// Name identifies the node in logs and snapshots.
	Name string
	// Offset is the node's layout position in the coordinate space
	// of its parent.
	Offset f32.Point
	// Transform is the render transform, applied around the node's
	// origin before Offset.
	Transform f32.Affine2D
	// Size is the node's layout size in its own coordinate space.
	Size f32.Point
	// ZIndex lifts a node above its siblings when painting and hit
	// testing. Siblings with equal ZIndex keep their child order.
	ZIndex int
	// Hidden nodes and their subtree are neither painted nor hit.
	Hidden bool
	// PassThrough nodes and their subtree never receive pointer input.
	PassThrough bool
	// Color fills the node's bounds in snapshots. The zero value is
	// transparent.
	Color color.NRGBA
	// Cursor is the cursor shape shown over the node.
	Cursor pointer.Cursor
	// Data is an opaque payload attached by the host. Nodes without
	// Data inherit their parent's, see DataContext.
	Data any

	// transparency is 1-opacity, so the zero Node is opaque.
	transparency float32
	parent       *Node
	children     []*Node
}

// New returns a node with the given name and size.
func New(name string, size f32.Point) *Node {
	return &Node{Name: name, Size: size}
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of n in child order. The returned
// slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Root returns the topmost ancestor of n, n itself if n has no parent.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Add appends child to the children of n.
func (n *Node) Add(child *Node) {
	n.Insert(len(n.children), child)
}

// Insert inserts child at index i of the children of n. An index past
// the end appends.
func (n *Node) Insert(i int, child *Node) {
	if child.parent != nil {
		panic("scene: " + child.Name + " already has a parent")
	}
	if child.IsAncestorOf(n) {
		panic("scene: adding " + child.Name + " to " + n.Name + " creates a cycle")
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
}

// Remove detaches child from n. It reports whether child was a child
// of n. Data and every other field of child are left untouched.
func (n *Node) Remove(child *Node) bool {
	i := n.IndexOf(child)
	if i == -1 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Detach removes n from its parent, if any, and returns the parent and
// the index n had among its siblings.
func (n *Node) Detach() (parent *Node, index int) {
	parent = n.parent
	if parent == nil {
		return nil, -1
	}
	index = parent.IndexOf(n)
	parent.Remove(n)
	return parent, index
}

// IndexOf returns the child index of child, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// IsAncestorOf reports whether n is m or one of m's ancestors.
func (n *Node) IsAncestorOf(m *Node) bool {
	for ; m != nil; m = m.parent {
		if m == n {
			return true
		}
	}
	return false
}

// DataContext returns the data attached to n or, when n has none, to
// its nearest ancestor with data.
func (n *Node) DataContext() any {
	for ; n != nil; n = n.parent {
		if n.Data != nil {
			return n.Data
		}
	}
	return nil
}

// Opacity returns the node's own opacity in the range [0, 1].
func (n *Node) Opacity() float32 {
	return 1 - n.transparency
}

// SetOpacity sets the node's own opacity, clamped to [0, 1].
func (n *Node) SetOpacity(o float32) {
	switch {
	case o < 0:
		o = 0
	case o > 1:
		o = 1
	}
	n.transparency = 1 - o
}

// EffectiveOpacity returns the product of the opacities of n and its
// ancestors.
func (n *Node) EffectiveOpacity() float32 {
	o := float32(1)
	for ; n != nil; n = n.parent {
		o *= n.Opacity()
	}
	return o
}

// Bounds returns the node's bounds in its own coordinate space.
func (n *Node) Bounds() f32.Rectangle {
	return f32.Rectangle{Max: n.Size}
}

// Painted returns the children of n in paint order, bottom first:
// stable sorted by ascending ZIndex.
func (n *Node) Painted() []*Node {
	children := slices.Clone(n.children)
	slices.SortStableFunc(children, func(a, b *Node) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return children
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}
