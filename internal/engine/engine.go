// Package engine runs a game on a host: it owns the fixed-timestep loop,
// drains the host's key queue once per frame, and bridges the host's
// callback-based asset loads into blocking calls used during startup.
//
// The engine never draws or polls devices itself. A platform package
// (window, tui) implements Host and Renderer.
package engine

import (
	"context"
	"errors"
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

var (
	// ErrFatalStartup reports a required host resource that is missing.
	// The loop never starts.
	ErrFatalStartup = errors.New("engine: fatal startup error")

	// ErrDrawFailure reports a draw call that failed at runtime.
	// It propagates out of the frame callback and stops the host.
	ErrDrawFailure = errors.New("engine: draw failure")

	// ErrAlreadyInitialized is returned by Game.Initialize on a loaded game.
	ErrAlreadyInitialized = errors.New("engine: game is already initialized")
)

// FrameCallback is invoked by the host once per display frame with a
// monotonically increasing timestamp in milliseconds.
type FrameCallback func(timestamp float64) error

// Host is the platform the loop runs on.
type Host interface {
	// Now returns the current host time in milliseconds, on the same clock
	// as the timestamps passed to frame callbacks.
	Now() float64

	// RequestAnimationFrame schedules cb for the next frame. Registrations are
	// one-shot: a callback that wants more frames must register again.
	RequestAnimationFrame(cb FrameCallback) error

	// Renderer returns the draw surface for frame callbacks.
	Renderer() (Renderer, error)

	// KeyEvents returns the queue the host's key hooks push into.
	KeyEvents() (*core.KeyQueue, error)
}

// Renderer is the draw surface consumed by the loop. It holds no game state.
type Renderer interface {
	// Clear erases rect.
	Clear(rect core.Rect)

	// DrawImage copies the frame region of img to destination.
	DrawImage(img image.Image, frame, destination core.Rect) error
}

// Game is the simulation driven by the loop.
type Game interface {
	// Initialize performs one-time asynchronous loading and returns the
	// game that the loop will run.
	Initialize(ctx context.Context) (Game, error)

	// Update advances the simulation by one fixed step.
	Update(keys *core.KeyState)

	// Draw renders the current state. It is called exactly once per frame.
	Draw(r Renderer) error
}
