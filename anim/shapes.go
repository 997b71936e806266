// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"time"

	"gioui.org/x/dnd/f32"
	"gioui.org/x/dnd/scene"
)

// HoverIn fades n from transparent to opaque over d.
func HoverIn(n *scene.Node, d time.Duration) *Animation {
	return New(opacity(n, d, 0, 1))
}

// HoverOut fades n from opaque to transparent over d.
func HoverOut(n *scene.Node, d time.Duration) *Animation {
	return New(opacity(n, d, 1, 0))
}

// FadeOut fades n from whatever opacity it has when the animation
// begins to transparent over d. It cancels a hover outside the usual
// in and out pairing, for example halfway through a HoverIn.
func FadeOut(n *scene.Node, d time.Duration) *Animation {
	return New(&Track{
		Keyframes: []Keyframe{{At: d, Value: 0}},
		Get:       n.Opacity,
		Set:       n.SetOpacity,
	})
}

// Move animates the offset of n from one position to another over d,
// both axes together.
func Move(n *scene.Node, from, to f32.Point, d time.Duration) *Animation {
	x := &Track{
		Keyframes: []Keyframe{{At: 0, Value: from.X}, {At: d, Value: to.X}},
		Set:       func(v float32) { n.Offset.X = v },
	}
	y := &Track{
		Keyframes: []Keyframe{{At: 0, Value: from.Y}, {At: d, Value: to.Y}},
		Set:       func(v float32) { n.Offset.Y = v },
	}
	return New(y, x)
}

func opacity(n *scene.Node, d time.Duration, from, to float32) *Track {
	return &Track{
		Keyframes: []Keyframe{{At: 0, Value: from}, {At: d, Value: to}},
		Set:       n.SetOpacity,
	}
}
