// SPDX-License-Identifier: Unlicense OR MIT

/*
Package dnd implements drag sources and drop targets on a scene tree.

A Surface ties the engine to its host: the scene root, the layout root
that hosts drag overlays, the pointer input router and the animator.
A Source is lifted into a transparent overlay above the layout root
when the pointer presses its handle, follows the pointer and is
resolved against its candidate Targets on release. Targets report
hover and drop through callbacks and may host a Source themselves.

All methods must be called from the goroutine delivering input events.
*/
package dnd

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"gioui.org/x/dnd/anim"
	"gioui.org/x/dnd/io/event"
	"gioui.org/x/dnd/scene"
)

var (
	// ErrNoLayoutRoot is returned when a drag starts on a Surface
	// without a LayoutRoot.
	ErrNoLayoutRoot = errors.New("dnd: surface has no layout root")
	// ErrDetached is returned when a drag starts on a Source whose
	// node is not part of a scene.
	ErrDetached = errors.New("dnd: source node has no parent")
)

// Input is the pointer capability a Surface needs from its host.
// router.Router implements it.
type Input interface {
	Register(n *scene.Node, h event.Handler)
	Unregister(n *scene.Node)
	Capture(n *scene.Node)
	Release(n *scene.Node)
}

// Surface is the host environment shared by sources and targets.
type Surface struct {
	// Root is the root of the scene. Nil means the root of LayoutRoot.
	Root *scene.Node
	// LayoutRoot receives the overlays that dragged sources are
	// painted in. It must be set before any drag starts.
	LayoutRoot *scene.Node
	// Input delivers pointer events to sources. It may be nil if the
	// host calls Source.Press, Move and Release itself.
	Input Input
	// Animator plays hover, return and switch animations. Nil means
	// anim.Instant.
	Animator anim.Animator
	// Logger receives debug messages about drag sessions. Nil
	// discards them.
	Logger *log.Logger

	targets map[*scene.Node]*Target
	order   []*Target
}

var discard = log.New(io.Discard)

// Targets returns the targets created on the surface in creation
// order.
func (s *Surface) Targets() []*Target {
	return s.order
}

// Target returns the target created for n, or nil.
func (s *Surface) Target(n *scene.Node) *Target {
	return s.targets[n]
}

func (s *Surface) add(t *Target) {
	if s.targets == nil {
		s.targets = make(map[*scene.Node]*Target)
	}
	s.targets[t.Node] = t
	s.order = append(s.order, t)
}

func (s *Surface) root() *scene.Node {
	switch {
	case s.Root != nil:
		return s.Root
	case s.LayoutRoot != nil:
		return s.LayoutRoot.Root()
	}
	return nil
}

// candidates returns the visible targets of the scene topmost first,
// leaving out targets inside exclude.
func (s *Surface) candidates(exclude *scene.Node) []*Target {
	root := s.root()
	if root == nil {
		return nil
	}
	var ts []*Target
	for _, n := range scene.TopmostFunc(root, func(n *scene.Node) bool {
		return n.Hidden || n == exclude
	}) {
		if t, ok := s.targets[n]; ok {
			ts = append(ts, t)
		}
	}
	return ts
}

func (s *Surface) animator() anim.Animator {
	if s.Animator == nil {
		return anim.Instant{}
	}
	return s.Animator
}

func (s *Surface) log() *log.Logger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}
