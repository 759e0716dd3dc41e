package walkthedog

import (
	"fmt"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// Character constants
const (
	Floor        int16 = 475 // Resting y position
	RunningSpeed int16 = 3   // Horizontal speed in pixels per step

	IdleFrames    uint8 = 29
	RunningFrames uint8 = 23
	SlidingFrames uint8 = 14

	idleFrameName    = "Idle"
	runFrameName     = "Run"
	slidingFrameName = "Slide"

	// Each sprite is held for this many simulation steps.
	ticksPerSprite = 3
)

// StateTag identifies the variant the state machine is in.
type StateTag int

const (
	Idle StateTag = iota
	Running
	Backing
	Sliding
)

func (s StateTag) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Backing:
		return "Backing"
	case Sliding:
		return "Sliding"
	default:
		return fmt.Sprintf("StateTag(%d)", int(s))
	}
}

// Event drives the state machine.
type Event int

const (
	EventRun Event = iota
	EventBack
	EventSlide
	EventUpdate
)

func (e Event) String() string {
	switch e {
	case EventRun:
		return "Run"
	case EventBack:
		return "Back"
	case EventSlide:
		return "Slide"
	case EventUpdate:
		return "Update"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Context is the animation and movement data shared by every state.
type Context struct {
	Frame    uint8
	Position core.Point
	Velocity core.Point
}

// update advances the animation frame, wrapping at length, and moves by
// velocity once.
func (c Context) update(length uint8) Context {
	c.Frame = c.advance(length)
	c.Position = c.Position.Add(c.Velocity)
	return c
}

func (c Context) advance(length uint8) uint8 {
	next := c.Frame + 1
	if next >= length {
		return 0
	}
	return next
}

func (c Context) resetFrame() Context {
	c.Frame = 0
	return c
}

func (c Context) runRight() Context {
	c.Velocity.X = RunningSpeed
	return c
}

func (c Context) backLeft() Context {
	c.Velocity.X = -RunningSpeed
	return c
}

// StateMachine is the Red Hat Boy character: one variant tag plus its
// context. It is a value; Transition returns the next machine and never
// modifies the receiver.
type StateMachine struct {
	tag StateTag
	ctx Context
}

// NewStateMachine returns an Idle character standing on the floor.
func NewStateMachine() StateMachine {
	return StateMachine{
		tag: Idle,
		ctx: Context{Position: core.Point{X: 0, Y: Floor}},
	}
}

// Transition maps (state, event) to the next state. Every pair has a result;
// pairs without a rule return the machine unchanged.
func (m StateMachine) Transition(e Event) StateMachine {
	switch e {
	case EventRun:
		switch m.tag {
		case Idle, Backing:
			return StateMachine{tag: Running, ctx: m.ctx.resetFrame().runRight()}
		}
	case EventBack:
		switch m.tag {
		case Idle, Running:
			return StateMachine{tag: Backing, ctx: m.ctx.resetFrame().backLeft()}
		}
	case EventSlide:
		if m.tag == Running {
			return StateMachine{tag: Sliding, ctx: m.ctx.resetFrame()}
		}
	case EventUpdate:
		return m.update()
	}
	return m
}

// Update is Transition(EventUpdate).
func (m StateMachine) Update() StateMachine {
	return m.Transition(EventUpdate)
}

func (m StateMachine) update() StateMachine {
	if m.tag == Sliding {
		// The slide ends on its own once the last frame has been shown.
		if m.ctx.Frame+1 >= SlidingFrames {
			ctx := m.ctx.update(SlidingFrames)
			return StateMachine{tag: Running, ctx: ctx.resetFrame()}
		}
	}
	m.ctx = m.ctx.update(m.AnimationLength())
	return m
}

// State returns the current variant.
func (m StateMachine) State() StateTag {
	return m.tag
}

// Context returns a copy of the character context.
func (m StateMachine) Context() Context {
	return m.ctx
}

// AnimationLength returns the frame count of the current state.
func (m StateMachine) AnimationLength() uint8 {
	switch m.tag {
	case Running, Backing:
		return RunningFrames
	case Sliding:
		return SlidingFrames
	default:
		return IdleFrames
	}
}

// FrameName returns the sprite label of the current state. Backing reuses
// the running sprites.
func (m StateMachine) FrameName() string {
	switch m.tag {
	case Running, Backing:
		return runFrameName
	case Sliding:
		return slidingFrameName
	default:
		return idleFrameName
	}
}

// SpriteName returns the sheet key of the sprite to show, e.g. "Run (3).png".
func (m StateMachine) SpriteName() string {
	return fmt.Sprintf("%s (%d).png", m.FrameName(), int(m.ctx.Frame)/ticksPerSprite+1)
}
