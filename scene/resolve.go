// SPDX-License-Identifier: Unlicense OR MIT

package scene

import "gioui.org/x/dnd/f32"

// Local returns the transformation from the coordinate space of n to
// the space of its parent: the render transform followed by the layout
// offset.
func Local(n *Node) f32.Affine2D {
	return n.Transform.Offset(n.Offset)
}

// Affine returns the transformation from the coordinate space of n to
// the space of its root, composing the local transformation of n and
// of every ancestor.
func Affine(n *Node) f32.Affine2D {
	t := Local(n)
	for p := n.parent; p != nil; p = p.parent {
		t = Local(p).Mul(t)
	}
	return t
}

// Abs maps the point p in the coordinate space of n to the space of
// the root of n.
func Abs(n *Node, p f32.Point) f32.Point {
	return Affine(n).Transform(p)
}

// Rel maps the point p in the coordinate space of n to the coordinate
// space of other. The nodes must share a root for the result to be
// meaningful; other is usually an ancestor of n.
func Rel(n, other *Node, p f32.Point) f32.Point {
	return Affine(other).Invert().Transform(Abs(n, p))
}

// FromAbs maps the root space point p into the coordinate space of n.
func FromAbs(n *Node, p f32.Point) f32.Point {
	return Affine(n).Invert().Transform(p)
}

// Scale returns the cumulative scale factor of n: the product of the
// scale components of the render transforms of n and its ancestors.
// Rotation, shear and offsets are ignored, so a node without scaled
// ancestors reports (1, 1).
func Scale(n *Node) f32.Point {
	s := f32.Pt(1, 1)
	for ; n != nil; n = n.parent {
		s = s.MulPt(n.Transform.ScaleFactors())
	}
	return s
}

// AbsBounds returns the root space bounding box of n computed from its
// absolute origin and its size multiplied by the cumulative scale.
func AbsBounds(n *Node) f32.Rectangle {
	return f32.Rect(Abs(n, f32.Point{}), n.Size.MulPt(Scale(n)))
}
