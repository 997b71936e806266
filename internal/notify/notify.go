// SPDX-License-Identifier: Unlicense OR MIT

// Package notify implements typed callback lists with explicit
// unregistration.
package notify

import "golang.org/x/exp/slices"

// List is a list of callbacks receiving values of type E. The zero
// value is an empty list. A List must only be used from a single
// goroutine.
type List[E any] struct {
	nextID  uint64
	entries []entry[E]
}

type entry[E any] struct {
	id uint64
	fn func(E)
}

// Add registers fn and returns a function that unregisters it.
// Calling the returned function more than once is harmless.
func (l *List[E]) Add(fn func(E)) (remove func()) {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, entry[E]{id: id, fn: fn})
	return func() {
		l.entries = slices.DeleteFunc(l.entries, func(e entry[E]) bool {
			return e.id == id
		})
	}
}

// Emit calls every callback registered at the time of the call, in
// registration order. Callbacks removed by an earlier callback of the
// same Emit are skipped.
func (l *List[E]) Emit(v E) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := slices.Clone(l.entries)
	for _, e := range snapshot {
		if !l.registered(e.id) {
			continue
		}
		e.fn(v)
	}
}

// Len returns the number of registered callbacks.
func (l *List[E]) Len() int {
	return len(l.entries)
}

func (l *List[E]) registered(id uint64) bool {
	return slices.ContainsFunc(l.entries, func(e entry[E]) bool {
		return e.id == id
	})
}
