// Package window runs the game in a desktop window using Ebitengine.
//
// Ebitengine calls Update once per display frame (TPS is synced to FPS), so
// Update is the frame callback site. Draw calls issued by the game are
// recorded during Update and replayed onto the screen in Draw.
package window

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/registry"
)

func init() {
	registry.Register("window", "Desktop window (Ebitengine)", func(opts registry.Options) (registry.Host, error) {
		return New(opts.Config.Window, opts.Logger), nil
	})
}

// Host is an Ebitengine game that drives engine frame callbacks.
type Host struct {
	cfg    config.WindowConfig
	logger *log.Logger
	start  time.Time

	events   *core.KeyQueue
	renderer *recorder
	pending  engine.FrameCallback
	err      error

	keys []ebiten.Key
}

// New creates a window host. The window opens when Run is called.
func New(cfg config.WindowConfig, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{
		cfg:      cfg,
		logger:   logger,
		start:    time.Now(),
		events:   core.NewKeyQueue(),
		renderer: &recorder{},
	}
}

// Now returns milliseconds since the host was created.
func (h *Host) Now() float64 {
	return float64(time.Since(h.start).Microseconds()) / 1000
}

// RequestAnimationFrame schedules cb for the next Update.
func (h *Host) RequestAnimationFrame(cb engine.FrameCallback) error {
	if cb == nil {
		return errors.New("window: nil frame callback")
	}
	h.pending = cb
	return nil
}

// Renderer returns the recording renderer replayed in Draw.
func (h *Host) Renderer() (engine.Renderer, error) {
	return h.renderer, nil
}

// KeyEvents returns the queue fed from Ebitengine key state.
func (h *Host) KeyEvents() (*core.KeyQueue, error) {
	return h.events, nil
}

// ImageLoader decodes images straight into Ebitengine images.
func (h *Host) ImageLoader(fsys fs.FS) engine.ImageLoader {
	return engine.FSImageLoader{FS: fsys, Decode: decodeEbiten}
}

func decodeEbiten(r io.Reader) (image.Image, error) {
	img, _, err := ebitenutil.NewImageFromReader(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Run opens the window and blocks until it is closed or the loop fails.
func (h *Host) Run() error {
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	h.logger.Info("window host starting", "width", h.cfg.Width, "height", h.cfg.Height)
	err := ebiten.RunGame(h)
	h.events.Close()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return h.err
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	h.pollKeys()

	cb := h.pending
	if cb == nil {
		// The loop stopped re-registering.
		return ebiten.Termination
	}
	h.pending = nil

	h.renderer.reset()
	if err := cb(h.Now()); err != nil {
		h.logger.Error("frame failed", "error", err)
		h.err = err
		return ebiten.Termination
	}
	return nil
}

func (h *Host) pollKeys() {
	now := time.Now()

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.events.KeyDown(core.KeyboardEvent{Code: keyCode(k), At: now})
	}

	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.events.KeyUp(core.KeyboardEvent{Code: keyCode(k), At: now})
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.renderer.replay(screen)
}

// Layout implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}
