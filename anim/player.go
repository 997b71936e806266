// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"time"

	"golang.org/x/exp/slices"
)

// Timeline plays animations against frame times supplied by Tick. An
// animation played on a Timeline starts at the first Tick after Play.
// The zero value is ready to use.
type Timeline struct {
	active []*Animation
	last   time.Time
}

// Instant plays animations by jumping to their final values and
// completing them within Play.
type Instant struct{}

var (
	_ Animator = (*Timeline)(nil)
	_ Animator = Instant{}
)

// Play attaches a to the timeline. Playing an animation that is
// already attached to a player restarts it.
func (t *Timeline) Play(a *Animation) {
	a.Stop()
	a.player = t
	a.started = false
	t.active = append(t.active, a)
}

// Tick advances every active animation to now and completes the ones
// that reached their end. Completed animations are detached before
// their completion callbacks run. Tick reports whether animations
// remain active, in which case the host should schedule another frame.
func (t *Timeline) Tick(now time.Time) bool {
	t.last = now
	var done []*Animation
	for _, a := range slices.Clone(t.active) {
		if a.player != t {
			// Stopped by an earlier completion in this tick.
			continue
		}
		elapsed := time.Duration(0)
		if !a.started {
			a.started = true
			a.start = time.Duration(now.UnixNano())
			a.begin()
		} else {
			elapsed = time.Duration(now.UnixNano()) - a.start
		}
		if a.seek(elapsed) {
			t.stop(a)
			a.player = nil
			done = append(done, a)
		}
	}
	for _, a := range done {
		a.complete()
	}
	return len(t.active) > 0
}

// Active reports whether any animation is playing.
func (t *Timeline) Active() bool {
	return len(t.active) > 0
}

// Now returns the frame time of the most recent Tick.
func (t *Timeline) Now() time.Time {
	return t.last
}

func (t *Timeline) stop(a *Animation) {
	t.active = slices.DeleteFunc(t.active, func(b *Animation) bool {
		return b == a
	})
}

// Play applies the final values of a and completes it.
func (Instant) Play(a *Animation) {
	a.Stop()
	a.begin()
	a.seek(a.Duration())
	a.complete()
}
