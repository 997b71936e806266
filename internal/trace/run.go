// SPDX-License-Identifier: Unlicense OR MIT

package trace

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"gioui.org/x/dnd/dnd"
	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/io/pointer"
	"gioui.org/x/dnd/raster"
	"gioui.org/x/dnd/scene"
)

// frameInterval is the clock advance used to finish animations still
// running after the last step.
const frameInterval = 16 * time.Millisecond

// maxDrainFrames bounds the frames run after the last step.
const maxDrainFrames = 1000

// Options control a replay.
type Options struct {
	// Logger receives engine debug messages. Nil discards them.
	Logger *log.Logger
	// PNGDir, if set, receives a snapshot of the final scene named
	// after the scenario.
	PNGDir string
	// Moves records a drag-moved event for every pointer move.
	Moves bool
}

// Run builds sc and replays its steps. Animations still running after
// the last step are played to their end.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("scenario", sc.Name)
	}
	w, err := Build(sc, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sc.Name, err)
	}
	rep := &Report{
		ID:       uuid.New().String(),
		Scenario: sc.Name,
	}
	epoch := time.Unix(0, 0)
	w.Timeline.Tick(epoch)
	// The timeline's frame time is the scenario clock.
	clock := func() time.Duration { return w.Timeline.Now().Sub(epoch) }
	rec := &recorder{rep: rep, clock: clock, moves: opts.Moves}
	for _, name := range w.order {
		rec.source(w.sources[name])
	}
	for _, t := range w.Surface.Targets() {
		rec.target(t)
	}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var kind pointer.Kind
		switch st.Do {
		case "tick":
			w.Timeline.Tick(w.Timeline.Now().Add(st.For.Duration))
			continue
		case "press":
			kind = pointer.Press
		case "move":
			kind = pointer.Move
		case "release":
			kind = pointer.Release
		case "cancel":
			kind = pointer.Cancel
		}
		e := pointer.Event{
			Kind:     kind,
			Source:   pointer.Mouse,
			Time:     clock(),
			Position: f32.Pt(st.X, st.Y),
		}
		if kind != pointer.Release && kind != pointer.Cancel {
			e.Buttons = pointer.ButtonPrimary
		}
		if err := w.Router.Queue(e); err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", sc.Name, i+1, err)
		}
	}
	for i := 0; i < maxDrainFrames && w.Timeline.Active(); i++ {
		w.Timeline.Tick(w.Timeline.Now().Add(frameInterval))
	}
	rep.Elapsed = clock()
	for _, name := range w.order {
		rep.Final = append(rep.Final, placement(name, w.sources[name]))
	}
	if opts.PNGDir != "" {
		if err := snapshot(w, filepath.Join(opts.PNGDir, sc.Name+".png")); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// RunAll replays every scenario concurrently. Reports are returned in
// the order of scenarios. The first error cancels the remaining
// replays.
func RunAll(ctx context.Context, scenarios []*Scenario, opts Options) ([]*Report, error) {
	reports := make([]*Report, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			r, err := Run(ctx, sc, opts)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func placement(name string, s *dnd.Source) Placement {
	p := Placement{
		Source: name,
		State:  s.State().String(),
	}
	if parent := s.Node.Parent(); parent != nil {
		p.Parent = parent.Name
	}
	pos := scene.Abs(s.Body, f32.Point{})
	p.X, p.Y = pos.X, pos.Y
	if h := s.Host(); h != nil {
		p.Host = h.Node.Name
	}
	return p
}

func snapshot(w *World, path string) error {
	sz := w.Root.Size.Round()
	img := image.NewRGBA(image.Rectangle{Max: sz})
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)
	r := raster.Rasterizer{Labels: true}
	r.Frame(w.Root, img)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
