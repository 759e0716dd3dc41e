package tui

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Renderer draws into a Screen. Each cell holds two vertical pixels, so a
// world of W x H pixels is shown on a cell grid sampled at a uniform scale.
type Renderer struct {
	screen *core.Screen
	world  core.Rect
}

// NewRenderer maps world onto screen.
func NewRenderer(screen *core.Screen, world core.Rect) *Renderer {
	return &Renderer{screen: screen, world: world}
}

// scale returns world pixels per half-cell, fitting the whole world.
func (r *Renderer) scale() float32 {
	w, h := r.screen.Width(), r.screen.Height()*2
	if w <= 0 || h <= 0 {
		return 0
	}
	return max(r.world.W/float32(w), r.world.H/float32(h))
}

// span converts a world interval to the half-cell interval covering it.
func span(from, to, origin, scale float32) (int, int) {
	lo := int(math.Floor(float64((from - origin) / scale)))
	hi := int(math.Ceil(float64((to - origin) / scale)))
	return lo, hi
}

// Clear blanks the cells covering rect.
func (r *Renderer) Clear(rect core.Rect) {
	s := r.scale()
	if s == 0 {
		return
	}
	x0, x1 := span(rect.X, rect.Right(), r.world.X, s)
	y0, y1 := span(rect.Y, rect.Bottom(), r.world.Y, s)
	r.screen.ClearRegion(x0, y0/2, x1, (y1+1)/2)
}

// DrawImage samples the frame region of img at the centre of every half-cell
// inside destination. Transparent pixels leave the screen untouched.
func (r *Renderer) DrawImage(img image.Image, frame, dest core.Rect) error {
	if img == nil {
		return errors.New("tui: nil image")
	}
	if frame.Empty() || dest.Empty() {
		return fmt.Errorf("tui: empty draw %v -> %v", frame, dest)
	}
	s := r.scale()
	if s == 0 {
		return nil
	}

	bounds := img.Bounds()
	x0, x1 := span(dest.X, dest.Right(), r.world.X, s)
	y0, y1 := span(dest.Y, dest.Bottom(), r.world.Y, s)

	for py := y0; py < y1; py++ {
		wy := r.world.Y + (float32(py)+0.5)*s
		if wy < dest.Y || wy >= dest.Bottom() {
			continue
		}
		iy := bounds.Min.Y + int(frame.Y+(wy-dest.Y)*frame.H/dest.H)

		for px := x0; px < x1; px++ {
			wx := r.world.X + (float32(px)+0.5)*s
			if wx < dest.X || wx >= dest.Right() {
				continue
			}
			ix := bounds.Min.X + int(frame.X+(wx-dest.X)*frame.W/dest.W)

			c, ok := sample(img, ix, iy)
			if !ok {
				continue
			}
			r.setHalf(px, py, c)
		}
	}
	return nil
}

// sample returns the pixel color, or false for transparent pixels.
func sample(img image.Image, x, y int) (core.Color, bool) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return core.NoColor, false
	}
	cr, cg, cb, ca := img.At(x, y).RGBA()
	if ca < 0x8000 {
		return core.NoColor, false
	}
	return core.RGB(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)), true
}

func (r *Renderer) setHalf(px, py int, c core.Color) {
	cx, cy := px, py/2
	if cx < 0 || cx >= r.screen.Width() || cy < 0 || cy >= r.screen.Height() {
		return
	}

	top, bottom := halves(r.screen.GetCell(cx, cy))
	if py%2 == 0 {
		top = c
	} else {
		bottom = c
	}
	r.screen.SetCell(cx, cy, fromHalves(top, bottom))
}

// halves returns the top and bottom pixel colors of a cell.
func halves(c core.Cell) (top, bottom core.Color) {
	switch c.Rune {
	case upperHalf:
		return c.Fg, c.Bg
	case lowerHalf:
		return c.Bg, c.Fg
	}
	return core.NoColor, core.NoColor
}

func fromHalves(top, bottom core.Color) core.Cell {
	switch {
	case top.Set:
		return core.Cell{Rune: upperHalf, Fg: top, Bg: bottom}
	case bottom.Set:
		return core.Cell{Rune: lowerHalf, Fg: bottom}
	}
	return core.Cell{Rune: ' '}
}
