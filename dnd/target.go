// SPDX-License-Identifier: Unlicense OR MIT

package dnd

import (
	"gioui.org/x/dnd/anim"
	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/internal/notify"
	"gioui.org/x/dnd/scene"
)

// TargetConfig configures a Target.
type TargetConfig struct {
	// ShowHover enables the hover animation of the Hover node.
	ShowHover bool
	// CachePosition computes the target position once per drag
	// session instead of on every hit test.
	CachePosition bool
	// Size, if not zero, replaces the size of the target node. It
	// is needed for targets without visible content whose layout
	// would otherwise collapse.
	Size f32.Point
	// Hover is the node faded in while a source hovers the target.
	// It is added to the target node if it has no parent.
	Hover *scene.Node
}

// DefaultTargetConfig returns the default target configuration.
func DefaultTargetConfig() TargetConfig {
	return TargetConfig{ShowHover: true}
}

// Target is a region sources can be dropped on.
type Target struct {
	Node *scene.Node

	surface *Surface
	cfg     TargetConfig
	content *Source
	hovered map[*Source]bool

	pos   f32.Point
	stale bool
	hover *anim.Animation

	entered notify.List[DropEvent]
	left    notify.List[DropEvent]
	dropped notify.List[DropEvent]
}

// NewTarget makes n a drop target on s.
func NewTarget(s *Surface, n *scene.Node, cfg TargetConfig) *Target {
	t := &Target{
		Node:    n,
		surface: s,
		cfg:     cfg,
		hovered: make(map[*Source]bool),
		stale:   true,
	}
	if cfg.Size != (f32.Point{}) {
		n.Size = cfg.Size
	}
	if h := cfg.Hover; h != nil {
		h.SetOpacity(0)
		h.PassThrough = true
		if h.Parent() == nil {
			n.Add(h)
		}
	}
	s.add(t)
	return t
}

// OnEntered registers fn to be called when a source starts hovering
// the target.
func (t *Target) OnEntered(fn func(DropEvent)) (remove func()) {
	return t.entered.Add(fn)
}

// OnLeft registers fn to be called when a source stops hovering the
// target without being dropped.
func (t *Target) OnLeft(fn func(DropEvent)) (remove func()) {
	return t.left.Add(fn)
}

// OnDropped registers fn to be called when a source is dropped on the
// target. For sources in DropInPlace mode it is called once the source
// is placed and any switch animation has finished.
func (t *Target) OnDropped(fn func(DropEvent)) (remove func()) {
	return t.dropped.Add(fn)
}

// Content returns the source hosted by the target, or nil.
func (t *Target) Content() *Source {
	return t.content
}

// SetContent makes src the content of t, moving its node into the
// target node. A previous content is detached from the scene. A nil
// src clears the content.
func (t *Target) SetContent(src *Source) {
	if prev := t.content; prev != nil && prev != src {
		t.Node.Remove(prev.Node)
		prev.host = nil
		t.content = nil
	}
	if src == nil {
		return
	}
	if h := src.host; h != nil && h != t {
		h.content = nil
	}
	src.Node.Detach()
	src.Node.Offset = f32.Point{}
	t.Node.Add(src.Node)
	src.host = t
	t.content = src
}

// Hovered reports whether src hovers the target.
func (t *Target) Hovered(src *Source) bool {
	return t.hovered[src]
}

// Scale returns the cumulative scale of the target node.
func (t *Target) Scale() f32.Point {
	return scene.Scale(t.Node)
}

// RecalculatePosition recomputes the root space position of the
// target.
func (t *Target) RecalculatePosition() {
	t.pos = scene.Abs(t.Node, f32.Point{})
	t.stale = false
}

// Invalidate marks the cached position stale. Cached targets are
// invalidated at the start of every drag session.
func (t *Target) Invalidate() {
	t.stale = true
}

// Bounds returns the root space bounds used for hit testing: the
// target position and its size multiplied by its cumulative scale.
func (t *Target) Bounds() f32.Rectangle {
	if !t.cfg.CachePosition || t.stale {
		t.RecalculatePosition()
	}
	return f32.Rect(t.pos, t.Node.Size.MulPt(t.Scale()))
}

// Contains reports whether p is strictly inside the target bounds.
func (t *Target) Contains(p f32.Point) bool {
	return t.Bounds().Interior(p)
}

// RemoveHoverVisual fades out the hover node from whatever opacity it
// has.
func (t *Target) RemoveHoverVisual() {
	h := t.cfg.Hover
	if h == nil {
		return
	}
	if t.hover != nil {
		t.hover.Stop()
		t.hover = nil
	}
	if h.Opacity() > 0 {
		t.play(anim.FadeOut(h, anim.DefaultDuration))
	}
}

func (t *Target) enter(src *Source, p f32.Point) {
	if t.hovered[src] {
		return
	}
	t.hovered[src] = true
	if t.cfg.ShowHover && t.cfg.Hover != nil {
		t.play(anim.HoverIn(t.cfg.Hover, anim.DefaultDuration))
	}
	t.surface.log().Debug("target entered", "target", t.Node, "source", src.Node)
	t.entered.Emit(DropEvent{Target: t, Source: src, Position: p})
}

func (t *Target) leave(src *Source, p f32.Point) {
	if !t.hovered[src] {
		return
	}
	delete(t.hovered, src)
	if t.cfg.ShowHover && t.cfg.Hover != nil {
		t.play(anim.HoverOut(t.cfg.Hover, anim.DefaultDuration))
	}
	t.surface.log().Debug("target left", "target", t.Node, "source", src.Node)
	t.left.Emit(DropEvent{Target: t, Source: src, Position: p})
}

func (t *Target) play(a *anim.Animation) {
	if t.hover != nil {
		t.hover.Stop()
	}
	t.hover = a
	t.surface.animator().Play(a)
}

// resolve ends the hover of src without a left notification.
func (t *Target) resolve(src *Source) {
	delete(t.hovered, src)
}

func (t *Target) drop(src *Source, p f32.Point) {
	t.surface.log().Debug("source dropped", "target", t.Node, "source", src.Node, "mode", src.cfg.DropMode)
	t.dropped.Emit(DropEvent{Target: t, Source: src, Position: p})
}

// place makes src the content of t and calls done when placement has
// finished. A different source hosted by t is switched to the home src
// had before the drop.
func (t *Target) place(src *Source, done func()) {
	prev := t.content
	oldHost := src.host
	home := src.home
	if oldHost != nil {
		oldHost.content = nil
	}
	src.Node.Detach()
	src.Node.Offset = f32.Point{}
	src.Body.Offset = f32.Point{}
	if prev == nil || prev == src {
		t.Node.Add(src.Node)
		src.host = t
		t.content = src
		done()
		return
	}
	// Remember where prev is painted before it moves.
	from := scene.Abs(prev.Body, f32.Point{})
	prev.settle()
	t.Node.Remove(prev.Node)
	t.Node.Add(src.Node)
	src.host = t
	t.content = src
	if oldHost != nil {
		prev.Node.Offset = f32.Point{}
		oldHost.Node.Add(prev.Node)
		oldHost.content = prev
		prev.host = oldHost
	} else {
		prev.Node.Offset = home.offset
		home.parent.Insert(home.index, prev.Node)
		prev.host = nil
	}
	t.surface.log().Debug("sources switched", "target", t.Node, "dropped", src.Node, "switched", prev.Node)
	prev.switchFrom(from, done)
}
