package core

import "fmt"

// Color is a 24-bit terminal color for a screen cell.
// The zero value means "terminal default" and is never emitted as a color code.
type Color struct {
	R, G, B uint8
	Set     bool
}

// NoColor is the terminal default color.
var NoColor = Color{}

// RGB creates a set color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
