// SPDX-License-Identifier: Unlicense OR MIT

/*
Package anim implements the keyframe animations used for drop target
hover feedback and for returning or switching drag sources.

An Animation is a set of Tracks, each interpolating one float32
property between keyframes. Animations are played by an Animator: a
Timeline advances them with the frame time passed to Tick, while
Instant jumps to the final values at once. Completion is signalled
through callbacks registered with OnComplete; callers that only care
about one completion remove their callback as its first action so a
replayed or doubly completed animation does not run it again.
*/
package anim

import (
	"time"

	"gioui.org/x/dnd/internal/notify"
)

// DefaultDuration is the duration of hover fades and the default
// duration of return and switch animations.
const DefaultDuration = 200 * time.Millisecond

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 { return t }

// EaseOut decelerates towards the end.
func EaseOut(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// Keyframe is a value reached At an offset from the animation start.
type Keyframe struct {
	At    time.Duration
	Value float32
}

// Track animates a single property.
type Track struct {
	// Keyframes in increasing order of At.
	Keyframes []Keyframe
	// Curve eases the interpolation between keyframes. Nil means Linear.
	Curve Curve
	// Get reads the property when the animation begins. If the first
	// keyframe is after the start, the track animates from the value
	// read by Get.
	Get func() float32
	// Set writes the interpolated value.
	Set func(v float32)

	base float32
}

// Animator plays animations.
type Animator interface {
	Play(a *Animation)
}

// Animation is a group of tracks played together.
type Animation struct {
	Tracks []*Track

	player    stopper
	started   bool
	start     time.Duration
	completed notify.List[*Animation]
}

type stopper interface {
	stop(a *Animation)
}

// New returns an animation of the given tracks.
func New(tracks ...*Track) *Animation {
	return &Animation{Tracks: tracks}
}

// Duration returns the offset of the last keyframe of all tracks.
func (a *Animation) Duration() time.Duration {
	var d time.Duration
	for _, t := range a.Tracks {
		if n := len(t.Keyframes); n > 0 && t.Keyframes[n-1].At > d {
			d = t.Keyframes[n-1].At
		}
	}
	return d
}

// OnComplete registers fn to be called when the animation reaches its
// end. The returned function unregisters fn.
func (a *Animation) OnComplete(fn func(a *Animation)) (remove func()) {
	return a.completed.Add(fn)
}

// Stop detaches the animation from its player. Property values are
// left as they are and completion callbacks are not called. Stopping
// an animation that is not playing does nothing.
func (a *Animation) Stop() {
	if a.player != nil {
		a.player.stop(a)
		a.player = nil
	}
	a.started = false
}

// Playing reports whether the animation is attached to a player.
func (a *Animation) Playing() bool {
	return a.player != nil
}

func (a *Animation) begin() {
	for _, t := range a.Tracks {
		t.begin()
	}
}

// seek applies the property values at elapsed and reports whether the
// animation has reached its end.
func (a *Animation) seek(elapsed time.Duration) bool {
	for _, t := range a.Tracks {
		if t.Set != nil {
			t.Set(t.value(elapsed))
		}
	}
	return elapsed >= a.Duration()
}

func (a *Animation) complete() {
	a.completed.Emit(a)
}

func (t *Track) begin() {
	if t.Get != nil {
		t.base = t.Get()
	} else if len(t.Keyframes) > 0 {
		t.base = t.Keyframes[0].Value
	}
}

func (t *Track) value(elapsed time.Duration) float32 {
	prev := Keyframe{Value: t.base}
	for _, k := range t.Keyframes {
		if elapsed < k.At {
			span := k.At - prev.At
			p := float32(elapsed-prev.At) / float32(span)
			if t.Curve != nil {
				p = t.Curve(p)
			}
			return prev.Value + (k.Value-prev.Value)*p
		}
		prev = k
	}
	return prev.Value
}
