// Package walkthedog is the Walk the Dog game: the Red Hat Boy character
// driven by the keyboard through the engine's fixed-step loop.
package walkthedog

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// World is the area cleared before every draw.
var World = core.NewRect(0, 0, 600, 600)

// Assets tells the game where to load its sprite sheet from.
type Assets struct {
	FS     fs.FS
	Sheet  string // Sheet description, e.g. "rhb.json"
	Image  string // Sheet image, e.g. "rhb.png"
	Images engine.ImageLoader
}

// Controls binds key codes to character events. A key code may appear in
// more than one list.
type Controls struct {
	Run   []string
	Back  []string
	Slide []string
}

// DefaultControls uses the bindings of config.Default: arrows plus D/A/S.
func DefaultControls() Controls {
	c := config.Default().Controls
	return Controls{Run: c.Run, Back: c.Back, Slide: c.Slide}
}

// FromConfig builds a loading game using the configured sheet names and
// bindings. Sheet files are read from fsys and decoded by images.
func FromConfig(cfg config.Config, fsys fs.FS, images engine.ImageLoader) *WalkTheDog {
	return New(
		Assets{
			FS:     fsys,
			Sheet:  cfg.Assets.Sheet,
			Image:  cfg.Assets.Image,
			Images: images,
		},
		Controls{
			Run:   cfg.Controls.Run,
			Back:  cfg.Controls.Back,
			Slide: cfg.Controls.Slide,
		},
	)
}

// Status returns a one-line summary of the character for status bars.
func (g *WalkTheDog) Status() string {
	if g.boy == nil {
		return "loading"
	}
	m := g.boy.Machine()
	ctx := m.Context()
	return fmt.Sprintf("%-7s x=%-5d slides=%d", m.State(), ctx.Position.X, g.stats.Slides)
}

func anyPressed(keys *core.KeyState, codes []string) bool {
	for _, code := range codes {
		if keys.IsPressed(code) {
			return true
		}
	}
	return false
}

// WalkTheDog is either loading (no character yet) or loaded.
type WalkTheDog struct {
	assets   Assets
	controls Controls

	boy   *RedHatBoy // nil while loading
	stats Stats
}

// New returns a game in the loading state.
func New(assets Assets, controls Controls) *WalkTheDog {
	return &WalkTheDog{assets: assets, controls: controls}
}

// Loaded reports whether the character is ready.
func (g *WalkTheDog) Loaded() bool {
	return g.boy != nil
}

// Initialize loads the sprite sheet and image and returns the loaded game.
// Initializing a loaded game fails with engine.ErrAlreadyInitialized.
func (g *WalkTheDog) Initialize(ctx context.Context) (engine.Game, error) {
	if g.Loaded() {
		return nil, engine.ErrAlreadyInitialized
	}
	if g.assets.FS == nil || g.assets.Images == nil {
		return nil, fmt.Errorf("walkthedog: assets are not configured")
	}

	sheet, err := engine.LoadSheet(ctx, g.assets.FS, g.assets.Sheet)
	if err != nil {
		return nil, err
	}
	img, err := engine.LoadImage(ctx, g.assets.Images, g.assets.Image)
	if err != nil {
		return nil, err
	}

	return &WalkTheDog{
		assets:   g.assets,
		controls: g.controls,
		boy:      NewRedHatBoy(sheet, img),
		stats:    Stats{Started: time.Now()},
	}, nil
}

// Update applies the pressed controls in the order slide, run, back and
// then advances the character one step. A loading game ignores updates.
func (g *WalkTheDog) Update(keys *core.KeyState) {
	if g.boy == nil {
		return
	}

	before := g.boy.Machine()
	if anyPressed(keys, g.controls.Slide) {
		g.boy.Slide()
	}
	if anyPressed(keys, g.controls.Run) {
		g.boy.RunRight()
	}
	if anyPressed(keys, g.controls.Back) {
		g.boy.BackLeft()
	}
	if before.State() != Sliding && g.boy.Machine().State() == Sliding {
		g.stats.Slides++
	}

	moved := g.boy.Machine()
	g.boy.Update()
	g.stats.record(moved, g.boy.Machine())
}

// Draw clears the world and draws the character if loaded.
func (g *WalkTheDog) Draw(r engine.Renderer) error {
	r.Clear(World)
	if g.boy == nil {
		return nil
	}
	return g.boy.Draw(r)
}

// Boy returns the character, or nil while loading.
func (g *WalkTheDog) Boy() *RedHatBoy {
	return g.boy
}

// Stats returns the run statistics so far.
func (g *WalkTheDog) Stats() Stats {
	return g.stats
}
