package core

import "testing"

func TestPointAdd(t *testing.T) {
	p := Point{X: 0, Y: 475}.Add(Point{X: 3, Y: 0})
	if p != (Point{X: 3, Y: 475}) {
		t.Errorf("Add() = %+v, expected {X:3 Y:475}", p)
	}

	p = p.Add(Point{X: -3, Y: 0})
	if p != (Point{X: 0, Y: 475}) {
		t.Errorf("Add() = %+v, expected {X:0 Y:475}", p)
	}
}

func TestSheetRectRect(t *testing.T) {
	r := SheetRect{X: 117, Y: 122, W: 117, H: 120}.Rect()
	if r.X != 117 || r.Y != 122 || r.W != 117 || r.H != 120 {
		t.Errorf("Rect() = %+v, expected {117 122 117 120}", r)
	}
	if r.Right() != 234 || r.Bottom() != 242 {
		t.Errorf("Right()/Bottom() = %v/%v, expected 234/242", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
