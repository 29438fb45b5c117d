package graphics

import (
	"image"
	"math"
	"testing"
)

func TestRectFromCenter(t *testing.T) {
	got := RectFromCenter(Offset{X: 50, Y: 50}, Size{Width: 50, Height: 50})
	want := RectFromLTWH(25, 25, 50, 50)
	if got != want {
		t.Errorf("RectFromCenter = %+v, want %+v", got, want)
	}
}

func TestRectDiagonal(t *testing.T) {
	r := RectFromLTWH(0, 0, 100, 100)
	if got, want := r.Diagonal(), 100*math.Sqrt2; !floatEqual(got, want) {
		t.Errorf("Diagonal = %v, want %v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(5, 5, 10, 10), RectFromLTWH(5, 5, 5, 5)},
		{"disjoint", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(20, 20, 5, 5), Rect{}},
		{"contained", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(2, 2, 2, 2), RectFromLTWH(2, 2, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromLTWH(0, 0, 10, 10)
	if !r.Contains(Offset{X: 10, Y: 0}) {
		t.Error("edge point should be contained")
	}
	if r.Contains(Offset{X: 10.5, Y: 5}) {
		t.Error("outside point should not be contained")
	}
}

func TestRectImageRect(t *testing.T) {
	got := Rect{Left: 0.5, Top: -1.2, Right: 9.1, Bottom: 3}.ImageRect()
	want := image.Rect(0, -2, 10, 3)
	if got != want {
		t.Errorf("ImageRect = %v, want %v", got, want)
	}
}
