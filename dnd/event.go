// SPDX-License-Identifier: Unlicense OR MIT

package dnd

import "gioui.org/x/dnd/f32"

// DragEvent describes the progress of a drag session.
type DragEvent struct {
	Source *Source
	// Delta is the pointer motion since the drag started, in the
	// coordinate space of the scene root.
	Delta f32.Point
	// Position is the pointer position in the coordinate space of
	// the scene root.
	Position f32.Point
}

// DropEvent describes a source entering, leaving or being dropped on
// a target.
type DropEvent struct {
	Target   *Target
	Source   *Source
	Position f32.Point
}

func (DragEvent) ImplementsEvent() {}
func (DropEvent) ImplementsEvent() {}
