package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// FrameSize is one simulation step in milliseconds (60 Hz).
const FrameSize = 1000.0 / 60.0

// stepTolerance absorbs the rounding left by repeated FrameSize subtraction,
// so elapsed time that is an exact multiple of FrameSize runs every step.
const stepTolerance = 1e-9

// GameLoop decouples the simulation rate from the host's frame rate.
// Elapsed host time is accumulated and spent in FrameSize steps; each frame
// draws once no matter how many steps ran.
type GameLoop struct {
	lastFrame        float64
	accumulatedDelta float64

	game     Game
	host     Host
	renderer Renderer
	events   *core.KeyQueue
	keys     *core.KeyState
	logger   *log.Logger

	// callback is the loop's own registration. It is assigned once in Start
	// before the first schedule and re-registered by every invocation.
	callback FrameCallback

	frames uint64
	steps  uint64
}

// Start prepares input, waits for the game to initialize, and registers the
// loop with the host. It returns once the first frame is scheduled; from then
// on the host drives the loop until the host itself stops.
func Start(ctx context.Context, game Game, host Host, logger *log.Logger) (*GameLoop, error) {
	if logger == nil {
		logger = log.Default()
	}

	events, err := host.KeyEvents()
	if err != nil {
		return nil, fmt.Errorf("engine: prepare input: %w: %w", ErrFatalStartup, err)
	}

	logger.Debug("initializing game")
	loaded, err := game.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: initialize game: %w", err)
	}

	renderer, err := host.Renderer()
	if err != nil {
		return nil, fmt.Errorf("engine: renderer: %w: %w", ErrFatalStartup, err)
	}

	loop := &GameLoop{
		lastFrame: host.Now(),
		game:      loaded,
		host:      host,
		renderer:  renderer,
		events:    events,
		keys:      core.NewKeyState(),
		logger:    logger,
	}
	loop.callback = func(timestamp float64) error {
		if err := loop.Frame(timestamp); err != nil {
			return err
		}
		return loop.schedule()
	}

	if err := loop.schedule(); err != nil {
		return nil, err
	}
	logger.Info("game loop started")
	return loop, nil
}

// schedule registers the loop's callback for the next host frame.
func (l *GameLoop) schedule() error {
	if l.callback == nil {
		return fmt.Errorf("engine: loop callback is nil: %w", ErrFatalStartup)
	}
	if err := l.host.RequestAnimationFrame(l.callback); err != nil {
		return fmt.Errorf("engine: request frame: %w: %w", ErrFatalStartup, err)
	}
	return nil
}

// Frame runs one host frame: drain input, run zero or more fixed steps,
// then draw once. A draw error is returned wrapped in ErrDrawFailure.
func (l *GameLoop) Frame(timestamp float64) error {
	core.ProcessInput(l.keys, l.events)

	l.accumulatedDelta += timestamp - l.lastFrame
	for l.accumulatedDelta >= FrameSize-stepTolerance {
		l.game.Update(l.keys)
		l.accumulatedDelta -= FrameSize
		l.steps++
	}
	if l.accumulatedDelta < 0 {
		l.accumulatedDelta = 0
	}
	l.lastFrame = timestamp
	l.frames++

	if err := l.game.Draw(l.renderer); err != nil {
		l.logger.Error("draw failed", "frame", l.frames, "error", err)
		return fmt.Errorf("%w: %w", ErrDrawFailure, err)
	}
	return nil
}

// Game returns the initialized game the loop is running.
func (l *GameLoop) Game() Game {
	return l.game
}

// Keys returns the pressed-key snapshot of the latest frame.
func (l *GameLoop) Keys() *core.KeyState {
	return l.keys
}

// Frames returns how many host frames have run.
func (l *GameLoop) Frames() uint64 {
	return l.frames
}

// Steps returns how many fixed simulation steps have run.
func (l *GameLoop) Steps() uint64 {
	return l.steps
}

// Backlog returns the unspent accumulated time in milliseconds.
func (l *GameLoop) Backlog() float64 {
	return l.accumulatedDelta
}
