// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"math"
	"testing"
	"time"

	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/scene"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMoveTimeline(t *testing.T) {
	n := scene.New("n", f32.Pt(10, 10))
	a := Move(n, f32.Pt(100, 40), f32.Point{}, 200*time.Millisecond)
	var tl Timeline
	tl.Play(a)

	t0 := time.Unix(100, 0)
	for _, tc := range []struct {
		at   time.Duration
		want f32.Point
		more bool
	}{
		{0, f32.Pt(100, 40), true},
		{50 * time.Millisecond, f32.Pt(75, 30), true},
		{100 * time.Millisecond, f32.Pt(50, 20), true},
		{250 * time.Millisecond, f32.Point{}, false},
	} {
		more := tl.Tick(t0.Add(tc.at))
		if got := n.Offset; !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
			t.Errorf("at %v: got %v; want %v", tc.at, got, tc.want)
		}
		if more != tc.more {
			t.Errorf("at %v: active = %v; want %v", tc.at, more, tc.more)
		}
	}
	if a.Playing() {
		t.Error("completed animation still attached")
	}
}

func TestCompletionRemovesItself(t *testing.T) {
	n := scene.New("n", f32.Point{})
	a := HoverIn(n, DefaultDuration)
	calls := 0
	var remove func()
	remove = a.OnComplete(func(a *Animation) {
		remove()
		a.Stop()
		calls++
	})
	var tl Timeline
	t0 := time.Unix(0, 0)
	tl.Play(a)
	tl.Tick(t0)
	tl.Tick(t0.Add(time.Second))
	// Replaying must not run the removed handler again.
	tl.Play(a)
	tl.Tick(t0.Add(2 * time.Second))
	tl.Tick(t0.Add(3 * time.Second))
	if calls != 1 {
		t.Errorf("got %d completions; want 1", calls)
	}
	if got := n.Opacity(); got != 1 {
		t.Errorf("opacity: got %v; want 1", got)
	}
}

func TestFadeOutFromCurrent(t *testing.T) {
	n := scene.New("n", f32.Point{})
	n.SetOpacity(0.5)
	a := FadeOut(n, 100*time.Millisecond)
	var tl Timeline
	t0 := time.Unix(0, 0)
	tl.Play(a)
	tl.Tick(t0)
	if got := n.Opacity(); !near(got, 0.5) {
		t.Errorf("start: got %v; want 0.5", got)
	}
	tl.Tick(t0.Add(50 * time.Millisecond))
	if got := n.Opacity(); !near(got, 0.25) {
		t.Errorf("half: got %v; want 0.25", got)
	}
	tl.Tick(t0.Add(100 * time.Millisecond))
	if got := n.Opacity(); got != 0 {
		t.Errorf("end: got %v; want 0", got)
	}
}

func TestStopDetaches(t *testing.T) {
	n := scene.New("n", f32.Point{})
	a := HoverOut(n, 100*time.Millisecond)
	completed := false
	a.OnComplete(func(*Animation) { completed = true })
	var tl Timeline
	t0 := time.Unix(0, 0)
	tl.Play(a)
	tl.Tick(t0)
	a.Stop()
	if tl.Tick(t0.Add(time.Second)) {
		t.Error("timeline still active after Stop")
	}
	if completed {
		t.Error("stopped animation completed")
	}
}

func TestTimelineNow(t *testing.T) {
	var tl Timeline
	if !tl.Now().IsZero() {
		t.Errorf("Now before the first Tick: got %v; want zero", tl.Now())
	}
	t0 := time.Unix(10, 0)
	// Idle timelines keep the frame time too.
	if tl.Tick(t0) {
		t.Error("empty timeline reported active")
	}
	tl.Tick(t0.Add(16 * time.Millisecond))
	if got, want := tl.Now(), t0.Add(16*time.Millisecond); !got.Equal(want) {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestInstant(t *testing.T) {
	n := scene.New("n", f32.Point{})
	a := Move(n, f32.Pt(5, 5), f32.Pt(1, 2), time.Second)
	completed := 0
	a.OnComplete(func(*Animation) { completed++ })
	Instant{}.Play(a)
	if n.Offset != f32.Pt(1, 2) {
		t.Errorf("got %v; want (1,2)", n.Offset)
	}
	if completed != 1 {
		t.Errorf("got %d completions; want 1", completed)
	}
}

func TestEaseOut(t *testing.T) {
	if EaseOut(0) != 0 || EaseOut(1) != 1 {
		t.Error("EaseOut must map 0 to 0 and 1 to 1")
	}
	if EaseOut(0.5) <= 0.5 {
		t.Errorf("EaseOut(0.5) = %v; want > 0.5", EaseOut(0.5))
	}
}
