// SPDX-License-Identifier: Unlicense OR MIT

package trace

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	json "github.com/json-iterator/go"
	"go.uber.org/goleak"

	"gioui.org/x/dnd/f32"
)

func load(t *testing.T, name string) *Scenario {
	t.Helper()
	sc, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestParseDefaults(t *testing.T) {
	sc, err := Parse([]byte(`
[[source]]
name = "s"
`))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Width != 800 || sc.Height != 600 {
		t.Errorf("canvas %vx%v; want 800x600", sc.Width, sc.Height)
	}
	s := sc.Sources[0]
	if s.Mode != ModeDrop || s.W != 50 || s.Return.Duration != 200*time.Millisecond {
		t.Errorf("source defaults: %+v", s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown key", "colour = \"red\"\n"},
		{"unknown action", "[[step]]\ndo = \"jump\"\n"},
		{"empty tick", "[[step]]\ndo = \"tick\"\n"},
		{"unknown mode", "[[source]]\nname = \"s\"\nmode = \"fling\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v; want %v", err, ErrInvalid)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"parent", "[[node]]\nname = \"a\"\nparent = \"nope\"\n", `"nope"`},
		{"target", "[[target]]\nnode = \"nope\"\n", `"nope"`},
		{"color", "[[node]]\nname = \"a\"\ncolor = \"#12\"\n", `"#12"`},
		{"source target", "[[source]]\nname = \"s\"\ntargets = [\"t\"]\n", `"t"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := Parse([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			_, err = Build(sc, nil)
			if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %v; want an invalid scenario error naming %s", err, tc.want)
			}
		})
	}
}

func TestRunSwap(t *testing.T) {
	rep, err := Run(context.Background(), load(t, "swap.toml"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Scenario != "swap" {
		t.Errorf("scenario name %q; want swap", rep.Scenario)
	}
	want := []Event{
		{Kind: KindBeforeDragStarted, Source: "red"},
		{Kind: KindDragStarted, Source: "red"},
		{Kind: KindEntered, Source: "red", Target: "slot1", X: 350, Y: 90},
		{Kind: KindLeft, Source: "red", Target: "slot1", X: 500, Y: 90},
		{Kind: KindEntered, Source: "red", Target: "slot2", X: 500, Y: 90},
		{Kind: KindDragFinished, Source: "red", X: 460, Y: 50},
		{Kind: KindDropped, Source: "red", Target: "slot2", X: 500, Y: 90},
	}
	if diff := cmp.Diff(want, rep.Events, cmpopts.IgnoreFields(Event{}, "At")); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	// The drop is reported once the switch animation finished.
	if at := rep.Events[len(rep.Events)-1].At; at < 200*time.Millisecond {
		t.Errorf("dropped at %v; want after the switch animation", at)
	}
	final := []Placement{
		{Source: "red", Parent: "slot2", Host: "slot2", State: "Idle", X: 450, Y: 40},
		{Source: "green", Parent: "palette", State: "Idle", X: 30, Y: 30},
	}
	if diff := cmp.Diff(final, rep.Final); diff != "" {
		t.Errorf("final placement (-want +got):\n%s", diff)
	}
}

func TestRunZoom(t *testing.T) {
	rep, err := Run(context.Background(), load(t, "zoom.toml"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Event{
		{Kind: KindBeforeDragStarted, Source: "blue"},
		{Kind: KindDragStarted, Source: "blue"},
		{Kind: KindEntered, Source: "blue", Target: "bin", X: 300, Y: 100},
		{At: 50 * time.Millisecond, Kind: KindDropped, Source: "blue", Target: "bin", X: 300, Y: 100},
		{At: 50 * time.Millisecond, Kind: KindDragFinished, Source: "blue", X: 270, Y: 75},
	}
	if diff := cmp.Diff(want, rep.Events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	// Elapsed covers the 50ms tick and the 100ms return, ticked in frames.
	if end := 150 * time.Millisecond; rep.Elapsed < end || rep.Elapsed >= end+2*frameInterval {
		t.Errorf("elapsed %v; want the return to end within two frames after %v", rep.Elapsed, end)
	}
	final := []Placement{{Source: "blue", Parent: "root", State: "Idle", X: 20, Y: 20}}
	if diff := cmp.Diff(final, rep.Final); diff != "" {
		t.Errorf("final placement (-want +got):\n%s", diff)
	}
}

func TestTargetSizeFallback(t *testing.T) {
	sc, err := Parse([]byte(`
[[node]]
name = "slot"
x = 10
y = 10
w = 100
h = 80

[[target]]
node = "slot"
w = 40
`))
	if err != nil {
		t.Fatal(err)
	}
	w, err := Build(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	n := w.Node("slot")
	if got, want := n.Size, f32.Pt(40, 80); got != want {
		t.Errorf("target size: got %v; want %v", got, want)
	}
	if got, want := w.Node("slot.hover").Size, n.Size; got != want {
		t.Errorf("hover size: got %v; want %v", got, want)
	}
	if !w.Target("slot").Contains(f32.Pt(30, 60)) {
		t.Error("target collapsed to zero height")
	}
}

func TestRunAll(t *testing.T) {
	defer goleak.VerifyNone(t)
	scenarios := []*Scenario{load(t, "swap.toml"), load(t, "zoom.toml"), load(t, "swap.toml")}
	reports, err := RunAll(context.Background(), scenarios, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != len(scenarios) {
		t.Fatalf("got %d reports; want %d", len(reports), len(scenarios))
	}
	ids := make(map[string]bool)
	for i, r := range reports {
		if r.Scenario != scenarios[i].Name {
			t.Errorf("report %d is for %s; want %s", i, r.Scenario, scenarios[i].Name)
		}
		ids[r.ID] = true
	}
	if len(ids) != len(reports) {
		t.Error("run ids are not unique")
	}
}

func TestRunAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunAll(ctx, []*Scenario{load(t, "swap.toml")}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v; want %v", err, context.Canceled)
	}
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(context.Background(), load(t, "swap.toml"), Options{PNGDir: dir}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "swap.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 360 {
		t.Errorf("snapshot %dx%d; want 640x360", cfg.Width, cfg.Height)
	}
}

func TestWriteReports(t *testing.T) {
	rep, err := Run(context.Background(), load(t, "zoom.toml"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []*Report{rep}); err != nil {
		t.Fatal(err)
	}
	var decoded []*Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]*Report{rep}, decoded); diff != "" {
		t.Errorf("decoded report (-want +got):\n%s", diff)
	}
	buf.Reset()
	if err := rep.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "dropped") || !strings.Contains(out, "final blue in root") {
		t.Errorf("text report missing lines:\n%s", out)
	}
}
