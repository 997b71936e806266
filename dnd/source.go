// SPDX-License-Identifier: Unlicense OR MIT

package dnd

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"gioui.org/x/dnd/anim"
	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/internal/notify"
	"gioui.org/x/dnd/io/event"
	"gioui.org/x/dnd/io/pointer"
	"gioui.org/x/dnd/scene"
)

// DropMode selects what happens to a source released over a target.
type DropMode uint8

const (
	// DropInPlace moves the source into the target.
	DropInPlace DropMode = iota
	// ReturnWithAnimation animates the source back to where the drag
	// started. The target still reports the drop.
	ReturnWithAnimation
	// ReturnWithoutAnimation is like ReturnWithAnimation without the
	// animation.
	ReturnWithoutAnimation
)

// HandleMode selects the part of a source that starts a drag.
type HandleMode uint8

const (
	// HandleBar starts drags from the Handle node only.
	HandleBar HandleMode = iota
	// WholeBody starts drags anywhere on the source body.
	WholeBody
)

// State is the state of a drag session.
type State uint8

const (
	// Idle sources rest in their parent and accept presses.
	Idle State = iota
	// Dragging sources live in an overlay and follow the pointer.
	Dragging
	// Resolving sources are being matched against targets after the
	// pointer was released.
	Resolving
	// Returning sources animate back to their parent.
	Returning
)

// overlayZ lifts drag overlays above the other children of the layout
// root.
const overlayZ = 1 << 20

// SourceConfig configures a Source.
type SourceConfig struct {
	// DraggingEnabled allows drags. Disabled sources hide their handle.
	DraggingEnabled bool
	// Ghost is an optional placeholder painted below the body. It stays
	// in place while the body is dragged.
	Ghost *scene.Node
	// GhostVisible shows the Ghost.
	GhostVisible bool
	// AutoFitGhost resizes the Ghost to the content in Layout.
	AutoFitGhost bool
	DropMode     DropMode
	// Targets lists the eligible targets, topmost first. It is ignored
	// if AllTargets is set.
	Targets []*Target
	// AllTargets makes every visible target of the surface eligible,
	// ordered topmost first.
	AllTargets          bool
	ShowReturnAnimation bool
	ShowSwitchAnimation bool
	ReturnDuration      time.Duration
	SwitchDuration      time.Duration
	HandleMode          HandleMode
	// Handle is the node that starts drags in HandleBar mode. A
	// HandleBar source without Handle can't be dragged.
	Handle *scene.Node
}

// DefaultSourceConfig returns the default source configuration.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		DraggingEnabled:     true,
		GhostVisible:        true,
		ShowReturnAnimation: true,
		ShowSwitchAnimation: true,
		ReturnDuration:      anim.DefaultDuration,
		SwitchDuration:      anim.DefaultDuration,
	}
}

// Source is a draggable part of the scene. Its Node is placed in the
// scene by the host and contains the optional ghost and the Body. The
// Body moves during drags and contains the content and the optional
// handle.
type Source struct {
	Node    *scene.Node
	Body    *scene.Node
	Content *scene.Node
	Ghost   *scene.Node
	Handle  *scene.Node

	surface *Surface
	cfg     SourceConfig
	// input receives the pointer events that start drags.
	input *scene.Node

	state State
	// start and last are root space pointer positions.
	start, last f32.Point
	over        bool
	hit         *Target
	candidates  []*Target
	home        home
	overlay     *scene.Node
	host        *Target
	anim        *anim.Animation

	beforeStarted notify.List[DragEvent]
	started       notify.List[DragEvent]
	moved         notify.List[DragEvent]
	finished      notify.List[DragEvent]
}

// home is where a source rests when idle.
type home struct {
	parent *scene.Node
	index  int
	offset f32.Point
}

var _ event.Handler = (*Source)(nil)

// NewSource wraps content in a drag source on s. The returned
// Source.Node must be added to the scene by the caller.
func NewSource(s *Surface, content *scene.Node, cfg SourceConfig) *Source {
	src := &Source{
		Node:    scene.New(content.Name, content.Size),
		Body:    scene.New(content.Name+".body", content.Size),
		Content: content,
		Ghost:   cfg.Ghost,
		surface: s,
		cfg:     cfg,
	}
	if g := cfg.Ghost; g != nil {
		g.Hidden = !cfg.GhostVisible
		src.Node.Add(g)
	}
	src.Body.Add(content)
	src.Node.Add(src.Body)
	switch cfg.HandleMode {
	case WholeBody:
		src.input = src.Body
	default:
		if h := cfg.Handle; h != nil {
			src.Handle = h
			src.input = h
			if h.Parent() == nil {
				src.Body.Add(h)
			}
		}
	}
	if src.input != nil && s.Input != nil {
		s.Input.Register(src.input, src)
	}
	src.SetDraggingEnabled(cfg.DraggingEnabled)
	src.Layout()
	return src
}

// Layout updates the source sizes after the content size changed.
func (s *Source) Layout() {
	sz := s.Content.Size
	s.Node.Size = sz
	s.Body.Size = sz
	if s.Ghost != nil && s.cfg.AutoFitGhost {
		s.Ghost.Size = sz
	}
}

// SetDraggingEnabled enables or disables drags. It takes effect with
// the next press.
func (s *Source) SetDraggingEnabled(enabled bool) {
	s.cfg.DraggingEnabled = enabled
	if s.Handle != nil {
		s.Handle.Hidden = !enabled
	}
	s.updateCursor()
}

// SetGhostVisible shows or hides the ghost.
func (s *Source) SetGhostVisible(visible bool) {
	s.cfg.GhostVisible = visible
	if s.Ghost != nil {
		s.Ghost.Hidden = !visible
	}
}

// State returns the state of the current drag session.
func (s *Source) State() State {
	return s.state
}

// Host returns the target hosting the source, or nil.
func (s *Source) Host() *Target {
	return s.host
}

// Overlay returns the overlay node of the current drag session, or nil.
func (s *Source) Overlay() *scene.Node {
	return s.overlay
}

// OnBeforeDragStarted registers fn to be called when a press starts a
// drag, before the source is moved to its overlay.
func (s *Source) OnBeforeDragStarted(fn func(DragEvent)) (remove func()) {
	return s.beforeStarted.Add(fn)
}

// OnDragStarted registers fn to be called once the source is dragged.
func (s *Source) OnDragStarted(fn func(DragEvent)) (remove func()) {
	return s.started.Add(fn)
}

// OnDragMoved registers fn to be called for every pointer move during
// a drag.
func (s *Source) OnDragMoved(fn func(DragEvent)) (remove func()) {
	return s.moved.Add(fn)
}

// OnDragFinished registers fn to be called when the pointer is
// released.
func (s *Source) OnDragFinished(fn func(DragEvent)) (remove func()) {
	return s.finished.Add(fn)
}

// Event implements event.Handler for pointer events delivered to the
// handle, or to the body in WholeBody mode.
func (s *Source) Event(e event.Event) error {
	pe, ok := e.(pointer.Event)
	if !ok || s.input == nil {
		return nil
	}
	p := scene.Abs(s.input, pe.Position)
	switch pe.Kind {
	case pointer.Press:
		if !pe.Primary() {
			return nil
		}
		return s.Press(p)
	case pointer.Move, pointer.Drag:
		s.Move(p)
	case pointer.Release:
		s.Release(p)
	case pointer.Cancel:
		s.cancel()
	}
	return nil
}

// Press starts a drag at the root space point p. Presses on disabled
// sources and on sources not at rest are ignored.
func (s *Source) Press(p f32.Point) error {
	if !s.cfg.DraggingEnabled || s.state != Idle {
		return nil
	}
	if s.surface.LayoutRoot == nil {
		return ErrNoLayoutRoot
	}
	if s.Node.Parent() == nil {
		return fmt.Errorf("dnd: press on %s: %w", s.Node, ErrDetached)
	}
	e := DragEvent{Source: s, Position: p}
	s.beforeStarted.Emit(e)
	if in := s.surface.Input; in != nil && s.input != nil {
		in.Capture(s.input)
	}
	s.candidates = s.eligible()
	for _, t := range s.candidates {
		t.Invalidate()
	}
	if err := s.lift(); err != nil {
		return err
	}
	s.state = Dragging
	s.start, s.last = p, p
	s.over = false
	s.hit = nil
	s.updateCursor()
	s.surface.log().Debug("drag started", "source", s.Node, "position", p, "candidates", len(s.candidates))
	s.started.Emit(e)
	return nil
}

// Move moves a dragged source by the pointer motion to the root space
// point p and updates the hovered target.
func (s *Source) Move(p f32.Point) {
	if s.state != Dragging {
		return
	}
	d := scene.FromAbs(s.Node, p).Sub(scene.FromAbs(s.Node, s.last))
	s.Body.Offset = s.Body.Offset.Add(d)
	s.last = p
	t := FindTarget(p, s.candidates)
	for _, c := range s.candidates {
		if c != t {
			c.leave(s, p)
		}
	}
	if t != nil {
		t.enter(s, p)
	}
	s.over = t != nil
	if t != s.hit {
		s.surface.log().Debug("drag target changed", "source", s.Node, "target", targetNode(t))
		s.hit = t
	}
	s.moved.Emit(DragEvent{Source: s, Delta: p.Sub(s.start), Position: p})
}

// Release resolves the drag at the root space point p.
func (s *Source) Release(p f32.Point) {
	if s.state != Dragging {
		return
	}
	s.state = Resolving
	if in := s.surface.Input; in != nil && s.input != nil {
		in.Release(s.input)
	}
	t := FindTarget(p, s.candidates)
	candidates := s.candidates
	s.candidates = nil
	if t != nil && s.over {
		t.resolve(s)
		s.restore()
		switch s.cfg.DropMode {
		case DropInPlace:
			s.state = Idle
			s.updateCursor()
			t.place(s, func() { t.drop(s, p) })
		default:
			s.returnHome(s.cfg.DropMode == ReturnWithoutAnimation)
			t.drop(s, p)
		}
	} else {
		s.surface.log().Debug("drag missed", "source", s.Node, "position", p)
		s.returnHome(false)
	}
	s.endHover(candidates, p)
	s.finished.Emit(DragEvent{Source: s, Delta: p.Sub(s.start), Position: p})
}

// cancel ends a drag whose pointer stream was cancelled by returning
// the source, as if it were released outside every target.
func (s *Source) cancel() {
	if s.state != Dragging {
		return
	}
	s.state = Resolving
	if in := s.surface.Input; in != nil && s.input != nil {
		in.Release(s.input)
	}
	candidates := s.candidates
	s.candidates = nil
	s.returnHome(false)
	s.endHover(candidates, s.last)
	s.finished.Emit(DragEvent{Source: s, Delta: s.last.Sub(s.start), Position: s.last})
}

// Close detaches the source from pointer input and puts it to rest.
func (s *Source) Close() {
	if in := s.surface.Input; in != nil && s.input != nil {
		in.Release(s.input)
		in.Unregister(s.input)
	}
	if s.anim != nil {
		s.anim.Stop()
		s.anim = nil
	}
	s.endHover(s.candidates, s.last)
	s.candidates = nil
	if s.state != Idle {
		s.reset()
	}
	s.input = nil
}

func (s *Source) endHover(candidates []*Target, p f32.Point) {
	for _, c := range candidates {
		c.leave(s, p)
		c.RemoveHoverVisual()
	}
	s.over = false
	s.hit = nil
}

func (s *Source) eligible() []*Target {
	if s.cfg.AllTargets {
		return s.surface.candidates(s.Node)
	}
	return slices.Clone(s.cfg.Targets)
}

// lift moves the node into a new overlay in the layout root, keeping
// its position in the layout root.
func (s *Source) lift() error {
	lr := s.surface.LayoutRoot
	if lr == nil {
		return ErrNoLayoutRoot
	}
	if s.Node.Parent() == nil {
		return ErrDetached
	}
	pos := scene.Rel(s.Node, lr, f32.Point{}).Sub(s.Node.Transform.Transform(f32.Point{}))
	// The overlay is outside the ancestors the node inherits data from.
	ctx := s.Node.DataContext()
	offset := s.Node.Offset
	parent, index := s.Node.Detach()
	s.home = home{parent: parent, index: index, offset: offset}
	s.Node.Data = ctx

	o := scene.New(s.Node.Name+".overlay", lr.Size)
	o.PassThrough = true
	o.ZIndex = overlayZ
	lr.Add(o)
	s.Node.Offset = pos
	o.Add(s.Node)
	s.overlay = o
	return nil
}

// restore moves the node from its overlay back home and removes the
// overlay.
func (s *Source) restore() {
	o := s.overlay
	if o == nil {
		return
	}
	o.Remove(s.Node)
	s.Node.Offset = s.home.offset
	s.home.parent.Insert(s.home.index, s.Node)
	o.Detach()
	s.overlay = nil
}

// reset puts the source to rest in its home.
func (s *Source) reset() {
	s.restore()
	s.Body.Offset = f32.Point{}
	s.anim = nil
	s.state = Idle
	s.updateCursor()
	s.surface.log().Debug("source at rest", "source", s.Node, "parent", s.Node.Parent())
}

// settle finishes any animation immediately.
func (s *Source) settle() {
	if s.anim != nil {
		s.anim.Stop()
	}
	if s.state != Idle {
		s.reset()
	}
}

func (s *Source) returnHome(instant bool) {
	if instant || !s.cfg.ShowReturnAnimation {
		s.reset()
		return
	}
	s.state = Returning
	a := anim.Move(s.Body, s.Body.Offset, f32.Point{}, s.cfg.ReturnDuration)
	s.play(a, s.reset)
}

// switchFrom animates the body from the root space point from to its
// place after the source was moved to a new home by a switch, and then
// calls done.
func (s *Source) switchFrom(from f32.Point, done func()) {
	if !s.cfg.ShowSwitchAnimation {
		done()
		return
	}
	if err := s.lift(); err != nil {
		done()
		return
	}
	s.Body.Offset = scene.FromAbs(s.Node, from)
	s.state = Returning
	a := anim.Move(s.Body, s.Body.Offset, f32.Point{}, s.cfg.SwitchDuration)
	s.play(a, func() {
		s.reset()
		done()
	})
}

func (s *Source) play(a *anim.Animation, then func()) {
	var remove func()
	remove = a.OnComplete(func(a *anim.Animation) {
		remove()
		a.Stop()
		s.anim = nil
		then()
	})
	s.anim = a
	s.surface.animator().Play(a)
}

func (s *Source) updateCursor() {
	if s.input == nil {
		return
	}
	switch {
	case !s.cfg.DraggingEnabled:
		s.input.Cursor = pointer.CursorDefault
	case s.state == Dragging:
		s.input.Cursor = pointer.CursorGrabbing
	default:
		s.input.Cursor = pointer.CursorGrab
	}
}

func targetNode(t *Target) *scene.Node {
	if t == nil {
		return nil
	}
	return t.Node
}

func (m DropMode) String() string {
	switch m {
	case DropInPlace:
		return "DropInPlace"
	case ReturnWithAnimation:
		return "ReturnWithAnimation"
	case ReturnWithoutAnimation:
		return "ReturnWithoutAnimation"
	default:
		panic("unknown DropMode")
	}
}

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	case Resolving:
		return "Resolving"
	case Returning:
		return "Returning"
	default:
		panic("unknown State")
	}
}
