// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func eq(p1, p2 Point) bool {
	tol := 1e-5
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	return math.Abs(math.Sqrt(float64(dx*dx+dy*dy))) < tol
}

func TestTransformRoundTrip(t *testing.T) {
	p := Pt(1, 2)
	for _, tc := range []struct {
		name string
		tr   Affine2D
		want Point
	}{
		{"offset", Affine2D{}.Offset(Pt(2, -3)), Pt(3, -1)},
		{"scale", Affine2D{}.Scale(Point{}, Pt(-1, 2)), Pt(-1, 4)},
		{"rotate", Affine2D{}.Rotate(Point{}, math.Pi/2), Pt(-2, 1)},
		{"shear", Affine2D{}.Shear(Point{}, math.Pi/4, 0), Pt(3, 2)},
		{
			"combined",
			Affine2D{}.Offset(Pt(2, -3)).Scale(Point{}, Pt(-1, 2)).Rotate(Point{}, -math.Pi/2).Shear(Point{}, math.Pi/4, 0),
			Pt(1, 3),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.tr.Transform(p)
			if !eq(r, tc.want) {
				t.Errorf("got %v; want %v", r, tc.want)
			}
			if i := tc.tr.Invert().Transform(r); !eq(i, p) {
				t.Errorf("inverse: got %v; want %v", i, p)
			}
		})
	}
}

func TestTransformScaleAround(t *testing.T) {
	p := Pt(-1, -1)
	target := Pt(-6, -13)
	pt := Affine2D{}.Scale(Pt(4, 5), Pt(2, 3)).Transform(p)
	if !eq(pt, target) {
		t.Errorf("got %v; want %v", pt, target)
	}
}

func TestScaleAfterOffset(t *testing.T) {
	tr := Affine2D{}.Offset(Pt(10, 20)).Scale(Point{}, Pt(2, 3))
	if got, want := tr.Transform(Pt(1, 1)), Pt(22, 63); !eq(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
	sx, hx, ox, hy, sy, oy := tr.Elems()
	if sx != 2 || hx != 0 || ox != 20 || hy != 0 || sy != 3 || oy != 60 {
		t.Errorf("elems: got %v %v %v %v %v %v", sx, hx, ox, hy, sy, oy)
	}
}

func TestTransformRotateAround(t *testing.T) {
	p := Pt(-1, -1)
	pt := Affine2D{}.Rotate(Pt(1, 1), -math.Pi/2).Transform(p)
	target := Pt(-1, 3)
	if !eq(pt, target) {
		t.Errorf("got %v; want %v", pt, target)
	}
}

func TestMulOrder(t *testing.T) {
	A := Affine2D{}.Offset(Pt(100, 100))
	B := Affine2D{}.Scale(Point{}, Pt(2, 2))

	T1 := Affine2D{}.Offset(Pt(100, 100)).Scale(Point{}, Pt(2, 2))
	T2 := B.Mul(A)

	if T1 != T2 {
		t.Errorf("multiplication order: got %v; want %v", T2, T1)
	}
}

func TestTransformVector(t *testing.T) {
	tr := Affine2D{}.Scale(Point{}, Pt(2, 3)).Offset(Pt(50, 50))
	if got, want := tr.TransformVector(Pt(1, 1)), Pt(2, 3); !eq(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestScaleFactors(t *testing.T) {
	tr := Affine2D{}.Scale(Pt(10, 10), Pt(2, 0.5)).Offset(Pt(7, 7))
	if got, want := tr.ScaleFactors(), Pt(2, 0.5); got != want {
		t.Errorf("got %v; want %v", got, want)
	}
	if got, want := (Affine2D{}).ScaleFactors(), Pt(1, 1); got != want {
		t.Errorf("identity: got %v; want %v", got, want)
	}
}

func TestRectangleInterior(t *testing.T) {
	r := Rect(Pt(10, 20), Pt(100, 50))
	for _, tc := range []struct {
		p        Point
		interior bool
		contains bool
	}{
		{Pt(50, 40), true, true},
		{Pt(10, 40), false, true},
		{Pt(110, 40), false, false},
		{Pt(50, 20), false, true},
		{Pt(50, 70), false, false},
		{Pt(9, 40), false, false},
	} {
		if got := r.Interior(tc.p); got != tc.interior {
			t.Errorf("Interior(%v) = %v; want %v", tc.p, got, tc.interior)
		}
		if got := r.Contains(tc.p); got != tc.contains {
			t.Errorf("Contains(%v) = %v; want %v", tc.p, got, tc.contains)
		}
	}
}
