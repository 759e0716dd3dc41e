package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoTone is a 4x4 image: red on top, blue below, transparent right column.
func twoTone() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if y < 2 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, blue)
			}
		}
	}
	return img
}

func TestRendererScale(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		expected float32
	}{
		{"square fit", 10, 5, 2},
		{"wide terminal", 40, 5, 2},
		{"tall terminal", 10, 50, 2},
		{"empty", 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRenderer(core.NewScreen(tc.w, tc.h), core.NewRect(0, 0, 20, 20))
			if got := r.scale(); got != tc.expected {
				t.Errorf("scale() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRendererDrawImage(t *testing.T) {
	screen := core.NewScreen(10, 5)
	r := NewRenderer(screen, core.NewRect(0, 0, 20, 20))

	// One image pixel per world pixel, two world pixels per half-cell.
	if err := r.DrawImage(twoTone(), core.NewRect(0, 0, 4, 4), core.NewRect(0, 0, 4, 4)); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}

	cell := screen.GetCell(0, 0)
	if cell.Rune != upperHalf || cell.Fg != core.RGB(255, 0, 0) || cell.Bg != core.RGB(0, 0, 255) {
		t.Errorf("cell(0,0) = %+v, expected red over blue", cell)
	}

	// Second column samples image x=3, which is transparent.
	if got := screen.GetCell(1, 0); got.Rune != ' ' {
		t.Errorf("cell(1,0) = %+v, expected blank", got)
	}
	if got := screen.GetCell(0, 1); got.Rune != ' ' {
		t.Errorf("cell(0,1) = %+v, expected blank outside destination", got)
	}
}

func TestRendererDrawOffsetAndScaled(t *testing.T) {
	screen := core.NewScreen(10, 5)
	r := NewRenderer(screen, core.NewRect(0, 0, 20, 20))

	// Top half of the image stretched over a 4x4 destination at (4, 4).
	if err := r.DrawImage(twoTone(), core.NewRect(0, 0, 4, 2), core.NewRect(4, 4, 4, 4)); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}

	cell := screen.GetCell(2, 1)
	if cell.Rune != upperHalf || cell.Fg != core.RGB(255, 0, 0) || cell.Bg != core.RGB(255, 0, 0) {
		t.Errorf("cell(2,1) = %+v, expected solid red", cell)
	}
	if got := screen.GetCell(0, 0); got.Rune != ' ' {
		t.Errorf("cell(0,0) = %+v, expected untouched", got)
	}
}

func TestRendererBottomHalfOnly(t *testing.T) {
	screen := core.NewScreen(10, 5)
	r := NewRenderer(screen, core.NewRect(0, 0, 20, 20))

	// Destination starts on the lower half of row 0.
	if err := r.DrawImage(twoTone(), core.NewRect(0, 2, 2, 2), core.NewRect(0, 2, 2, 2)); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}

	cell := screen.GetCell(0, 0)
	if cell.Rune != lowerHalf || cell.Fg != core.RGB(0, 0, 255) || cell.Bg.Set {
		t.Errorf("cell(0,0) = %+v, expected lower blue half", cell)
	}
}

func TestRendererClear(t *testing.T) {
	screen := core.NewScreen(10, 5)
	r := NewRenderer(screen, core.NewRect(0, 0, 20, 20))
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			screen.Set(x, y, '#')
		}
	}

	r.Clear(core.NewRect(0, 0, 8, 4))

	if got := screen.Get(3, 0); got != ' ' {
		t.Errorf("Get(3,0) = %q, expected cleared", got)
	}
	if got := screen.Get(4, 0); got != '#' {
		t.Errorf("Get(4,0) = %q, expected untouched", got)
	}
	if got := screen.Get(0, 1); got != '#' {
		t.Errorf("Get(0,1) = %q, expected untouched", got)
	}

	r.Clear(core.NewRect(0, 0, 600, 600))
	if strings.TrimSpace(screen.String()) != "" {
		t.Error("clearing the world should blank the screen")
	}
}

func TestRendererErrors(t *testing.T) {
	r := NewRenderer(core.NewScreen(10, 5), core.NewRect(0, 0, 20, 20))

	if err := r.DrawImage(nil, core.NewRect(0, 0, 1, 1), core.NewRect(0, 0, 1, 1)); err == nil {
		t.Error("DrawImage(nil) should fail")
	}
	if err := r.DrawImage(twoTone(), core.Rect{}, core.NewRect(0, 0, 1, 1)); err == nil {
		t.Error("DrawImage() with an empty frame should fail")
	}
}

func TestRenderScreen(t *testing.T) {
	screen := core.NewScreen(4, 2)
	screen.Set(0, 0, 'a')
	screen.Set(1, 0, 'b')
	screen.SetCell(2, 1, core.Cell{Rune: upperHalf, Fg: core.RGB(255, 0, 0)})

	out := RenderScreen(screen)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("line 0 = %q, expected to start with ab", lines[0])
	}
	if !strings.ContainsRune(lines[1], upperHalf) {
		t.Errorf("line 1 = %q, expected a half block", lines[1])
	}
}
