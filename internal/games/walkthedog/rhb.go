package walkthedog

import (
	"fmt"
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// RedHatBoy pairs the character state machine with its sprites.
type RedHatBoy struct {
	machine StateMachine
	sheet   engine.Sheet
	image   image.Image
}

// NewRedHatBoy returns an idle character drawn from sheet and img.
func NewRedHatBoy(sheet engine.Sheet, img image.Image) *RedHatBoy {
	return &RedHatBoy{
		machine: NewStateMachine(),
		sheet:   sheet,
		image:   img,
	}
}

// RunRight starts running to the right.
func (r *RedHatBoy) RunRight() {
	r.machine = r.machine.Transition(EventRun)
}

// BackLeft starts moving backward.
func (r *RedHatBoy) BackLeft() {
	r.machine = r.machine.Transition(EventBack)
}

func (r *RedHatBoy) Slide() {
	r.machine = r.machine.Transition(EventSlide)
}

// Update advances one simulation step.
func (r *RedHatBoy) Update() {
	r.machine = r.machine.Update()
}

// Machine returns the current state machine value.
func (r *RedHatBoy) Machine() StateMachine {
	return r.machine
}

// Draw copies the current sprite to the character position. A sprite name
// missing from the sheet is a data error and panics.
func (r *RedHatBoy) Draw(renderer engine.Renderer) error {
	name := r.machine.SpriteName()
	cell, ok := r.sheet.Cell(name)
	if !ok {
		panic(fmt.Sprintf("walkthedog: cell %q not found in sprite sheet", name))
	}

	ctx := r.machine.Context()
	frame := cell.Frame.Rect()
	dest := core.NewRect(float32(ctx.Position.X), float32(ctx.Position.Y), frame.W, frame.H)
	return renderer.DrawImage(r.image, frame, dest)
}
