// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"testing"
)

func TestKindString(t *testing.T) {
	for _, tc := range []struct {
		typ Kind
		res string
	}{
		{Cancel, "Cancel"},
		{Press, "Press"},
		{Drag, "Drag"},
		{Press | Release, "Press|Release"},
		{Press | Drag | Release, "Press|Release|Drag"},
		{Move | Drag, "Move|Drag"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.typ.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		e    Event
		want bool
	}{
		{Event{Source: Mouse, Buttons: ButtonPrimary}, true},
		{Event{Source: Mouse, Buttons: ButtonPrimary | ButtonSecondary}, true},
		{Event{Source: Mouse, Buttons: ButtonSecondary}, false},
		{Event{Source: Mouse}, false},
		{Event{Source: Touch}, true},
	}
	for _, tc := range tests {
		if got := tc.e.Primary(); got != tc.want {
			t.Errorf("%v %v: got %v; want %v", tc.e.Source, tc.e.Buttons, got, tc.want)
		}
	}
}

func TestCursorString(t *testing.T) {
	if got := CursorGrabbing.String(); got != "Grabbing" {
		t.Errorf("got %q; want %q", got, "Grabbing")
	}
}
