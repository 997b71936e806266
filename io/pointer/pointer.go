// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer describes the pointer events delivered to drag sources.

A single pointer (mouse or primary touch) is tracked from Press to
Release or Cancel. Positions are expressed in the local coordinate
space of the node receiving the event.
*/
package pointer

import (
	"strings"
	"time"

	"gioui.org/x/dnd/f32"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID tracks a particular pointer from Press to Release or
	// Cancel.
	PointerID ID
	// Time is when the event was received, relative to an undefined
	// base.
	Time time.Duration
	// Buttons are the mouse buttons held during the event.
	Buttons Buttons
	// Position is in the local coordinate space of the receiving node.
	Position f32.Point
}

type ID uint16

// Kind of an Event. Kinds are bit flags so handlers can filter on
// several at once.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons.
type Buttons uint8

// Cursor is the cursor shape a node asks for while the pointer is over
// it.
type Cursor byte

const (
	// Cancel interrupts the pointer stream, for example when the host
	// loses focus during a drag.
	Cancel Kind = 1 << iota
	Press
	Release
	// Move of a pointer with no button held.
	Move
	// Drag is a move while a button is held.
	Drag
)

const (
	Mouse Source = iota
	Touch
)

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

const (
	CursorDefault Cursor = iota
	// CursorGrab marks content that can be dragged.
	CursorGrab
	// CursorGrabbing is shown while content is dragged.
	CursorGrabbing
)

var (
	kindNames   = [...]string{"Cancel", "Press", "Release", "Move", "Drag"}
	buttonNames = [...]string{"ButtonPrimary", "ButtonSecondary", "ButtonTertiary"}
	cursorNames = [...]string{"Default", "Grab", "Grabbing"}
)

// Primary reports whether e belongs to the primary pointer action: any
// touch, or a mouse event with the primary button held.
func (e Event) Primary() bool {
	return e.Source == Touch || e.Buttons.Contain(ButtonPrimary)
}

func (k Kind) String() string {
	var names []string
	for i, name := range kindNames {
		if k&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

func (s Source) String() string {
	if s == Touch {
		return "Touch"
	}
	return "Mouse"
}

// Contain reports whether b holds all of buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var names []string
	for i, name := range buttonNames {
		if b.Contain(1 << i) {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "Cursor(?)"
}

func (Event) ImplementsEvent() {}
