// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster renders scene snapshots on the CPU.

Every visible node with a non-transparent Color is filled as the
polygon of its transformed bounds, multiplied by its effective opacity.
Nodes are painted in paint order, parents below their children.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/scene"
)

type Rasterizer struct {
	// Labels draws the name of every filled node at its origin.
	Labels bool
	// LabelColor is the color of labels. The zero value means black.
	LabelColor color.NRGBA

	scratch struct {
		stack []paintState
	}
}

type paintState struct {
	n       *scene.Node
	t       f32.Affine2D
	opacity float32
}

// Frame paints the scene rooted at root into frameBuf. The scene root
// space maps to the pixel space of frameBuf.
func (r *Rasterizer) Frame(root *scene.Node, frameBuf *image.RGBA) {
	if root == nil {
		return
	}
	stack := append(r.scratch.stack[:0], paintState{n: root, t: scene.Local(root), opacity: root.Opacity()})
	defer func() {
		r.scratch.stack = stack[:0]
	}()
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := state.n
		if n.Hidden {
			continue
		}
		r.fill(frameBuf, n, state)
		// Push in reverse so the bottom child is popped first.
		painted := n.Painted()
		for i := len(painted) - 1; i >= 0; i-- {
			c := painted[i]
			stack = append(stack, paintState{
				n:       c,
				t:       state.t.Mul(scene.Local(c)),
				opacity: state.opacity * c.Opacity(),
			})
		}
	}
}

func (r *Rasterizer) fill(frameBuf *image.RGBA, n *scene.Node, state paintState) {
	col := n.Color
	if col.A == 0 || state.opacity <= 0 {
		return
	}
	bounds := transformBounds(state.t, n.Bounds()).Intersect(frameBuf.Bounds())
	if bounds.Empty() {
		return
	}
	col.A = uint8(float32(col.A)*state.opacity + .5)
	vr := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	vr.DrawOp = draw.Over
	off := f32.Pt(float32(-bounds.Min.X), float32(-bounds.Min.Y))
	t := state.t.Offset(off)
	sz := n.Size
	corners := [4]f32.Point{{}, {X: sz.X}, sz, {Y: sz.Y}}
	for i, c := range corners {
		p := t.Transform(c)
		if i == 0 {
			vr.MoveTo(p.X, p.Y)
		} else {
			vr.LineTo(p.X, p.Y)
		}
	}
	vr.ClosePath()
	src := image.NewUniform(col)
	vr.Draw(frameBuf, bounds, src, image.Point{})
	if r.Labels && n.Name != "" {
		r.label(frameBuf, n.Name, state.t.Transform(f32.Point{}))
	}
}

func (r *Rasterizer) label(frameBuf *image.RGBA, name string, at f32.Point) {
	col := r.LabelColor
	if col == (color.NRGBA{}) {
		col = color.NRGBA{A: 0xff}
	}
	face := basicfont.Face7x13
	o := at.Round()
	d := font.Drawer{
		Dst:  frameBuf,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(o.X+2, o.Y+face.Ascent+1),
	}
	d.DrawString(name)
}

func transformBounds(t f32.Affine2D, bounds f32.Rectangle) image.Rectangle {
	b0 := f32.Rectangle{
		Min: t.Transform(bounds.Min),
		Max: t.Transform(bounds.Max),
	}.Canon()
	b1 := f32.Rectangle{
		Min: t.Transform(f32.Pt(bounds.Max.X, bounds.Min.Y)),
		Max: t.Transform(f32.Pt(bounds.Min.X, bounds.Max.Y)),
	}.Canon()
	return b0.Union(b1).Round()
}
