package core

import (
	"strings"
	"testing"
)

// writeRow sets text at the start of row y.
func writeRow(s *Screen, y int, text string) {
	for x, r := range []rune(text) {
		s.Set(x, y, r)
	}
}

// row returns line y of s.String().
func row(s *Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetCell(x, y, Cell{Rune: 'X', Fg: RGB(255, 0, 0)})
		}
	}

	s.Clear()

	// Should all be spaces now
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Fg.Set {
				t.Errorf("After Clear, expected blank cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	writeRow(s, 0, "AAAAA")
	writeRow(s, 1, "BBBBB")
	writeRow(s, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	writeRow(s, 0, "Hello")
	writeRow(s, 5, "World")

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := row(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = row(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenClearRegion(t *testing.T) {
	s := NewScreen(6, 4)
	for y := 0; y < 4; y++ {
		writeRow(s, y, "XXXXXX")
	}

	// Region extends past the right edge and is clipped.
	s.ClearRegion(2, 1, 10, 3)

	expected := "XXXXXX\nXX    \nXX    \nXXXXXX"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenCellColors(t *testing.T) {
	s := NewScreen(4, 2)
	c := Cell{Rune: '▀', Fg: RGB(0x12, 0x34, 0x56), Bg: RGB(0xff, 0xff, 0xff)}
	s.SetCell(1, 1, c)

	if got := s.GetCell(1, 1); got != c {
		t.Errorf("GetCell(1, 1) = %+v, expected %+v", got, c)
	}
	if got := s.GetCell(1, 1).Fg.Hex(); got != "#123456" {
		t.Errorf("Hex() = %q, expected #123456", got)
	}
	if NoColor.Hex() != "" {
		t.Errorf("NoColor.Hex() = %q, expected empty", NoColor.Hex())
	}

	// Out of bounds is ignored on write and blank on read.
	s.SetCell(9, 9, c)
	if got := s.GetCell(9, 9); got.Rune != ' ' {
		t.Errorf("GetCell out of bounds = %+v, expected blank", got)
	}
}
