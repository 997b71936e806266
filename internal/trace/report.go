// SPDX-License-Identifier: Unlicense OR MIT

package trace

import (
	"fmt"
	"io"
	"time"

	json "github.com/json-iterator/go"

	"gioui.org/x/dnd/dnd"
)

// Report is the outcome of a replay.
type Report struct {
	ID       string        `json:"id"`
	Scenario string        `json:"scenario"`
	Events   []Event       `json:"events"`
	Final    []Placement   `json:"final"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Event is a drag or drop notification raised during a replay.
type Event struct {
	// At is the scenario clock when the event was raised.
	At     time.Duration `json:"at_ns"`
	Kind   string        `json:"kind"`
	Source string        `json:"source"`
	Target string        `json:"target,omitempty"`
	X      float32       `json:"x"`
	Y      float32       `json:"y"`
}

// Placement is where a source rests after a replay.
type Placement struct {
	Source string  `json:"source"`
	Parent string  `json:"parent"`
	Host   string  `json:"host,omitempty"`
	State  string  `json:"state"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
}

// Event kinds.
const (
	KindBeforeDragStarted = "before-drag-started"
	KindDragStarted       = "drag-started"
	KindDragMoved         = "drag-moved"
	KindDragFinished      = "drag-finished"
	KindEntered           = "entered"
	KindLeft              = "left"
	KindDropped           = "dropped"
)

func (e Event) String() string {
	s := fmt.Sprintf("%8v %-19s %s", e.At, e.Kind, e.Source)
	if e.Target != "" {
		s += " -> " + e.Target
	}
	return s + fmt.Sprintf(" (%g,%g)", e.X, e.Y)
}

// WriteText writes a human readable report.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "scenario %s (run %s)\n", r.Scenario, r.ID); err != nil {
		return err
	}
	for _, e := range r.Events {
		if _, err := fmt.Fprintln(w, "  "+e.String()); err != nil {
			return err
		}
	}
	for _, p := range r.Final {
		host := ""
		if p.Host != "" {
			host = " host " + p.Host
		}
		if _, err := fmt.Fprintf(w, "  final %s in %s%s at (%g,%g) %s\n", p.Source, p.Parent, host, p.X, p.Y, p.State); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []*Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// recorder appends engine notifications to a report.
type recorder struct {
	rep   *Report
	clock func() time.Duration
	moves bool
}

func (r *recorder) add(kind string, src *dnd.Source, t *dnd.Target, x, y float32) {
	e := Event{At: r.clock(), Kind: kind, Source: src.Content.Name, X: x, Y: y}
	if t != nil {
		e.Target = t.Node.Name
	}
	r.rep.Events = append(r.rep.Events, e)
}

func (r *recorder) source(s *dnd.Source) {
	drag := func(kind string) func(dnd.DragEvent) {
		return func(e dnd.DragEvent) {
			r.add(kind, e.Source, nil, e.Delta.X, e.Delta.Y)
		}
	}
	s.OnBeforeDragStarted(drag(KindBeforeDragStarted))
	s.OnDragStarted(drag(KindDragStarted))
	s.OnDragFinished(drag(KindDragFinished))
	if r.moves {
		s.OnDragMoved(drag(KindDragMoved))
	}
}

func (r *recorder) target(t *dnd.Target) {
	drop := func(kind string) func(dnd.DropEvent) {
		return func(e dnd.DropEvent) {
			r.add(kind, e.Source, e.Target, e.Position.X, e.Position.Y)
		}
	}
	t.OnEntered(drop(KindEntered))
	t.OnLeft(drop(KindLeft))
	t.OnDropped(drop(KindDropped))
}
