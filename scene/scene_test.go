// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gioui.org/x/dnd/f32"
)

func eq(p1, p2 f32.Point) bool {
	dx, dy := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
	return math.Sqrt(dx*dx+dy*dy) < 1e-4
}

func TestAbsIdentity(t *testing.T) {
	root := New("root", f32.Pt(800, 600))
	n := New("n", f32.Pt(10, 10))
	root.Add(n)
	if got, want := Abs(n, f32.Pt(3, 4)), f32.Pt(3, 4); !eq(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
	if got, want := Scale(n), f32.Pt(1, 1); got != want {
		t.Errorf("scale: got %v; want %v", got, want)
	}
}

func TestAbsNested(t *testing.T) {
	root := New("root", f32.Pt(800, 600))
	panel := New("panel", f32.Pt(200, 200))
	panel.Offset = f32.Pt(100, 50)
	panel.Transform = f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(2, 2))
	inner := New("inner", f32.Pt(20, 20))
	inner.Offset = f32.Pt(10, 5)
	root.Add(panel)
	panel.Add(inner)

	if got, want := Abs(inner, f32.Point{}), f32.Pt(120, 60); !eq(got, want) {
		t.Errorf("origin: got %v; want %v", got, want)
	}
	if got, want := Abs(inner, f32.Pt(1, 1)), f32.Pt(122, 62); !eq(got, want) {
		t.Errorf("point: got %v; want %v", got, want)
	}
	if got, want := Rel(inner, panel, f32.Point{}), f32.Pt(10, 5); !eq(got, want) {
		t.Errorf("rel: got %v; want %v", got, want)
	}
	if got, want := FromAbs(inner, f32.Pt(122, 62)), f32.Pt(1, 1); !eq(got, want) {
		t.Errorf("from abs: got %v; want %v", got, want)
	}
	if got, want := Scale(inner), f32.Pt(2, 2); got != want {
		t.Errorf("scale: got %v; want %v", got, want)
	}
	b := AbsBounds(inner)
	if got, want := b.Size(), f32.Pt(40, 40); !eq(got, want) {
		t.Errorf("bounds: got %v; want %v", got, want)
	}
}

func TestScaleIgnoresRotationAndOffset(t *testing.T) {
	root := New("root", f32.Pt(100, 100))
	a := New("a", f32.Pt(10, 10))
	a.Transform = f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(3, 0.5)).Offset(f32.Pt(40, 40))
	b := New("b", f32.Pt(10, 10))
	b.Transform = f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(2, 4))
	root.Add(a)
	a.Add(b)
	if got, want := Scale(b), f32.Pt(6, 2); got != want {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestTopmost(t *testing.T) {
	root := New("root", f32.Pt(100, 100))
	a := New("a", f32.Point{})
	b := New("b", f32.Point{})
	c := New("c", f32.Point{})
	a1 := New("a1", f32.Point{})
	a2 := New("a2", f32.Point{})
	root.Add(a)
	root.Add(b)
	root.Add(c)
	a.Add(a1)
	a.Add(a2)
	a.ZIndex = 5
	a2.ZIndex = -1

	var got []string
	for _, n := range Topmost(root) {
		got = append(got, n.Name)
	}
	want := []string{"a1", "a2", "a", "c", "b", "root"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("topmost order mismatch (-want +got):\n%s", diff)
	}

	got = got[:0]
	for _, n := range TopmostFunc(root, func(n *Node) bool { return n == a }) {
		got = append(got, n.Name)
	}
	want = []string{"c", "b", "root"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pruned order mismatch (-want +got):\n%s", diff)
	}
}

func TestPaintedExtremeZIndex(t *testing.T) {
	root := New("root", f32.Point{})
	lo := New("lo", f32.Point{})
	hi := New("hi", f32.Point{})
	mid := New("mid", f32.Point{})
	root.Add(hi)
	root.Add(lo)
	root.Add(mid)
	lo.ZIndex = math.MinInt
	hi.ZIndex = math.MaxInt
	var got []string
	for _, n := range root.Painted() {
		got = append(got, n.Name)
	}
	want := []string{"lo", "mid", "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}
}

func TestReparentKeepsData(t *testing.T) {
	root := New("root", f32.Point{})
	p1 := New("p1", f32.Point{})
	p1.Data = "context"
	p2 := New("p2", f32.Point{})
	n := New("n", f32.Point{})
	root.Add(p1)
	root.Add(p2)
	p1.Add(New("before", f32.Point{}))
	p1.Add(n)

	if got := n.DataContext(); got != "context" {
		t.Fatalf("inherited: got %v; want context", got)
	}
	parent, idx := n.Detach()
	if parent != p1 || idx != 1 {
		t.Errorf("detach: got (%v, %d); want (p1, 1)", parent, idx)
	}
	if got := n.DataContext(); got != nil {
		t.Errorf("detached: got %v; want nil", got)
	}
	n.Data = "own"
	p2.Add(n)
	if got := n.DataContext(); got != "own" {
		t.Errorf("reparented: got %v; want own", got)
	}
}

func TestInsertCyclePanics(t *testing.T) {
	a := New("a", f32.Point{})
	b := New("b", f32.Point{})
	a.Add(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	b.Add(a)
}

func TestOpacity(t *testing.T) {
	p := New("p", f32.Point{})
	n := New("n", f32.Point{})
	p.Add(n)
	if got := n.Opacity(); got != 1 {
		t.Errorf("zero node opacity: got %v; want 1", got)
	}
	p.SetOpacity(0.5)
	n.SetOpacity(2)
	if got := n.EffectiveOpacity(); got != 0.5 {
		t.Errorf("effective: got %v; want 0.5", got)
	}
}
