// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the marker interface shared by pointer input
// and drag and drop notifications.
package event

// Event is the marker interface for events delivered by the
// input router and raised by drag sources and drop targets.
type Event interface {
	ImplementsEvent()
}

// Handler receives events. A non-nil error aborts delivery of the
// remaining queued events and is reported to the caller of the queue.
type Handler interface {
	Event(e Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(e Event) error

func (f HandlerFunc) Event(e Event) error {
	return f(e)
}
