// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router delivers pointer events to handlers registered on scene
nodes.

Events are queued in the coordinate space of the scene root. A press
is hit tested against the registered nodes topmost first, and the
handler found receives the press and every following event of that
pointer until release. A handler may Capture the pointer to receive
all pointer events regardless of position until it releases it.
Positions are converted to the coordinate space of the receiving node.
*/
package router

import (
	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/io/event"
	"gioui.org/x/dnd/io/pointer"
	"gioui.org/x/dnd/scene"
)

// Router routes pointer events to node handlers. The zero value is
// not usable; use New.
type Router struct {
	root     *scene.Node
	handlers map[*scene.Node]event.Handler
	pointers []pointerInfo
	// grab is the node that captured pointer input, if any.
	grab *scene.Node
}

type pointerInfo struct {
	id      pointer.ID
	pressed bool
	// handler receives the events of a pressed pointer.
	handler *scene.Node
}

// New returns a router for the scene rooted at root.
func New(root *scene.Node) *Router {
	return &Router{
		root:     root,
		handlers: make(map[*scene.Node]event.Handler),
	}
}

// Register makes h the handler of pointer events hitting n. It
// replaces any handler previously registered for n.
func (r *Router) Register(n *scene.Node, h event.Handler) {
	r.handlers[n] = h
}

// Unregister removes the handler of n. Pressed pointers delivering to
// n are dropped and a capture by n is released, without any Cancel
// event.
func (r *Router) Unregister(n *scene.Node) {
	delete(r.handlers, n)
	for i := range r.pointers {
		if r.pointers[i].handler == n {
			r.pointers[i].handler = nil
		}
	}
	if r.grab == n {
		r.grab = nil
	}
}

// Capture directs all pointer events to n until Release.
func (r *Router) Capture(n *scene.Node) {
	r.grab = n
}

// Release ends a capture by n. Releasing a node that has not captured
// the pointer does nothing.
func (r *Router) Release(n *scene.Node) {
	if r.grab == n {
		r.grab = nil
	}
}

// Captured returns the node holding the pointer capture, or nil.
func (r *Router) Captured() *scene.Node {
	return r.grab
}

// Queue delivers events, in order. Delivery stops at the first error
// returned by a handler, and that error is returned.
func (r *Router) Queue(events ...pointer.Event) error {
	for _, e := range events {
		if err := r.push(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) push(e pointer.Event) error {
	if e.Kind == pointer.Cancel {
		return r.cancel(e)
	}
	p := r.pointer(e.PointerID)
	switch e.Kind {
	case pointer.Press:
		if !p.pressed {
			p.pressed = true
			p.handler = r.Hit(e.Position)
		}
	case pointer.Move:
		if p.pressed {
			e.Kind = pointer.Drag
		} else {
			p.handler = r.Hit(e.Position)
		}
	}
	target := p.handler
	if r.grab != nil {
		target = r.grab
	}
	if e.Kind == pointer.Release {
		p.pressed = false
		p.handler = nil
		r.forget(e.PointerID)
	}
	return r.deliver(target, e)
}

// cancel delivers a Cancel event to every handler of a pressed pointer
// and to the capturing node, then forgets all pointers.
func (r *Router) cancel(e pointer.Event) error {
	var targets []*scene.Node
	add := func(n *scene.Node) {
		if n == nil {
			return
		}
		for _, t := range targets {
			if t == n {
				return
			}
		}
		targets = append(targets, n)
	}
	add(r.grab)
	for _, p := range r.pointers {
		if p.pressed {
			add(p.handler)
		}
	}
	r.pointers = r.pointers[:0]
	r.grab = nil
	for _, n := range targets {
		if err := r.deliver(n, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) deliver(n *scene.Node, e pointer.Event) error {
	if n == nil {
		return nil
	}
	h, ok := r.handlers[n]
	if !ok {
		return nil
	}
	e.Position = scene.FromAbs(n, e.Position)
	return h.Event(e)
}

// Hit returns the topmost registered node whose bounds contain the
// root space point pos. Hidden and PassThrough subtrees are skipped.
func (r *Router) Hit(pos f32.Point) *scene.Node {
	nodes := scene.TopmostFunc(r.root, func(n *scene.Node) bool {
		return n.Hidden || n.PassThrough
	})
	for _, n := range nodes {
		if _, ok := r.handlers[n]; !ok {
			continue
		}
		if n.Bounds().Contains(scene.FromAbs(n, pos)) {
			return n
		}
	}
	return nil
}

// Cursor returns the cursor of the node a pointer at pos would hit,
// or of the capturing node.
func (r *Router) Cursor(pos f32.Point) pointer.Cursor {
	n := r.grab
	if n == nil {
		n = r.Hit(pos)
	}
	if n == nil {
		return pointer.CursorDefault
	}
	return n.Cursor
}

func (r *Router) pointer(id pointer.ID) *pointerInfo {
	for i := range r.pointers {
		if r.pointers[i].id == id {
			return &r.pointers[i]
		}
	}
	r.pointers = append(r.pointers, pointerInfo{id: id})
	return &r.pointers[len(r.pointers)-1]
}

func (r *Router) forget(id pointer.ID) {
	for i, p := range r.pointers {
		if p.id == id {
			r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)
			return
		}
	}
}
