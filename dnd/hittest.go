// SPDX-License-Identifier: Unlicense OR MIT

package dnd

import "gioui.org/x/dnd/f32"

// FindTarget returns the first candidate whose bounds strictly contain
// the root space point p, or nil. Points on an edge are outside.
// Overlapping candidates are resolved by their order, so callers list
// the topmost first.
func FindTarget(p f32.Point, candidates []*Target) *Target {
	for _, t := range candidates {
		if t.Contains(p) {
			return t
		}
	}
	return nil
}
