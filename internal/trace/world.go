// SPDX-License-Identifier: Unlicense OR MIT

package trace

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/image/colornames"

	"gioui.org/x/dnd/anim"
	"gioui.org/x/dnd/dnd"
	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/io/router"
	"gioui.org/x/dnd/scene"
)

// World is a scene built from a Scenario.
type World struct {
	Root     *scene.Node
	Surface  *dnd.Surface
	Router   *router.Router
	Timeline *anim.Timeline

	nodes   map[string]*scene.Node
	sources map[string]*dnd.Source
	// order lists source names in declaration order.
	order   []string
	targets map[string]*dnd.Target
}

var (
	hoverColor = color.NRGBA{R: 0xff, G: 0xd7, A: 0x80}
	ghostColor = nrgba(colornames.Lightgray)
)

// Build creates the scene of sc. The scene root is the layout root of
// the surface.
func Build(sc *Scenario, logger *log.Logger) (*World, error) {
	w := &World{
		Root:     scene.New("root", f32.Pt(sc.Width, sc.Height)),
		Timeline: new(anim.Timeline),
		nodes:    make(map[string]*scene.Node),
		sources:  make(map[string]*dnd.Source),
		targets:  make(map[string]*dnd.Target),
	}
	w.Router = router.New(w.Root)
	w.Surface = &dnd.Surface{
		LayoutRoot: w.Root,
		Input:      w.Router,
		Animator:   w.Timeline,
		Logger:     logger,
	}
	w.nodes[w.Root.Name] = w.Root
	for _, ns := range sc.Nodes {
		if err := w.addNode(ns); err != nil {
			return nil, err
		}
	}
	for _, ts := range sc.Targets {
		if err := w.addTarget(ts); err != nil {
			return nil, err
		}
	}
	for _, ss := range sc.Sources {
		if err := w.addSource(ss); err != nil {
			return nil, err
		}
	}
	for _, ts := range sc.Targets {
		if ts.Content == "" {
			continue
		}
		src, ok := w.sources[ts.Content]
		if !ok {
			return nil, fmt.Errorf("%w: target %s: unknown content source %q", ErrInvalid, ts.Node, ts.Content)
		}
		w.targets[ts.Node].SetContent(src)
	}
	return w, nil
}

// Source returns the named source, or nil.
func (w *World) Source(name string) *dnd.Source {
	return w.sources[name]
}

// Target returns the target of the named node, or nil.
func (w *World) Target(node string) *dnd.Target {
	return w.targets[node]
}

// Node returns the named node, or nil.
func (w *World) Node(name string) *scene.Node {
	return w.nodes[name]
}

func (w *World) parent(name string) (*scene.Node, error) {
	if name == "" {
		return w.Root, nil
	}
	p, ok := w.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown parent %q", ErrInvalid, name)
	}
	return p, nil
}

func (w *World) addNode(ns NodeSpec) error {
	if _, exists := w.nodes[ns.Name]; exists {
		return fmt.Errorf("%w: duplicate node %q", ErrInvalid, ns.Name)
	}
	parent, err := w.parent(ns.Parent)
	if err != nil {
		return fmt.Errorf("node %s: %w", ns.Name, err)
	}
	n := scene.New(ns.Name, f32.Pt(ns.W, ns.H))
	n.Offset = f32.Pt(ns.X, ns.Y)
	n.ZIndex = ns.Z
	n.Hidden = ns.Hidden
	if s := ns.Scale; s != 0 && s != 1 {
		n.Transform = f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(s, s))
	}
	if ns.Color != "" {
		c, err := parseColor(ns.Color)
		if err != nil {
			return fmt.Errorf("node %s: %w", ns.Name, err)
		}
		n.Color = c
	}
	parent.Add(n)
	w.nodes[ns.Name] = n
	return nil
}

func (w *World) addTarget(ts TargetSpec) error {
	n, ok := w.nodes[ts.Node]
	if !ok {
		return fmt.Errorf("%w: target on unknown node %q", ErrInvalid, ts.Node)
	}
	if _, dup := w.targets[ts.Node]; dup {
		return fmt.Errorf("%w: duplicate target %q", ErrInvalid, ts.Node)
	}
	cfg := dnd.DefaultTargetConfig()
	cfg.ShowHover = !ts.NoHover
	cfg.CachePosition = ts.Cache
	// An unset axis keeps the node's size.
	size := n.Size
	if ts.W > 0 {
		size.X = ts.W
	}
	if ts.H > 0 {
		size.Y = ts.H
	}
	cfg.Size = size
	hover := scene.New(ts.Node+".hover", size)
	hover.Color = hoverColor
	cfg.Hover = hover
	w.nodes[hover.Name] = hover
	w.targets[ts.Node] = dnd.NewTarget(w.Surface, n, cfg)
	return nil
}

func (w *World) addSource(ss SourceSpec) error {
	if _, exists := w.nodes[ss.Name]; exists {
		return fmt.Errorf("%w: source %s: name in use", ErrInvalid, ss.Name)
	}
	parent, err := w.parent(ss.Parent)
	if err != nil {
		return fmt.Errorf("source %s: %w", ss.Name, err)
	}
	col, err := parseColor(ss.Color)
	if err != nil {
		return fmt.Errorf("source %s: %w", ss.Name, err)
	}
	cfg := dnd.DefaultSourceConfig()
	cfg.DraggingEnabled = !ss.Disabled
	cfg.ShowReturnAnimation = !ss.NoReturnAnim
	cfg.ShowSwitchAnimation = !ss.NoSwitchAnim
	cfg.ReturnDuration = ss.Return.Duration
	cfg.SwitchDuration = ss.Switch.Duration
	cfg.AllTargets = ss.All
	switch ss.Mode {
	case ModeReturn:
		cfg.DropMode = dnd.ReturnWithAnimation
	case ModeReturnInstant:
		cfg.DropMode = dnd.ReturnWithoutAnimation
	default:
		cfg.DropMode = dnd.DropInPlace
	}
	for _, name := range ss.Targets {
		t, ok := w.targets[name]
		if !ok {
			return fmt.Errorf("%w: source %s: unknown target %q", ErrInvalid, ss.Name, name)
		}
		cfg.Targets = append(cfg.Targets, t)
	}
	if ss.Ghost {
		g := scene.New(ss.Name+".ghost", f32.Point{})
		g.Color = ghostColor
		cfg.Ghost = g
		cfg.AutoFitGhost = true
	}
	if ss.Handle > 0 {
		h := scene.New(ss.Name+".handle", f32.Pt(ss.W, ss.Handle))
		h.Color = darken(col)
		cfg.Handle = h
	} else {
		cfg.HandleMode = dnd.WholeBody
	}
	content := scene.New(ss.Name, f32.Pt(ss.W, ss.H))
	content.Color = col
	src := dnd.NewSource(w.Surface, content, cfg)
	src.Node.Offset = f32.Pt(ss.X, ss.Y)
	parent.Add(src.Node)
	w.nodes[ss.Name] = content
	w.sources[ss.Name] = src
	w.order = append(w.order, ss.Name)
	return nil
}

// parseColor accepts SVG color names and #rrggbb or #rrggbbaa.
func parseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return nrgba(c), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: bad color %q", ErrInvalid, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: bad color %q", ErrInvalid, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func nrgba(c color.RGBA) color.NRGBA {
	// colornames are opaque, so premultiplication is a no-op.
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func darken(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
