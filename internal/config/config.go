// Package config provides YAML-based configuration loading for Walk the Dog.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for the game and its hosts.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Assets   AssetsConfig   `yaml:"assets"`
	Controls ControlsConfig `yaml:"controls"`
	Terminal TerminalConfig `yaml:"terminal"`
	Storage  StorageConfig  `yaml:"storage"`
}

// WindowConfig defines the graphical window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig locates the sprite sheet.
type AssetsConfig struct {
	Dir   string `yaml:"dir"`   // Directory holding the sheet files
	Sheet string `yaml:"sheet"` // Sheet description, relative to Dir
	Image string `yaml:"image"` // Sheet image, relative to Dir
}

// ControlsConfig binds key codes to character events.
type ControlsConfig struct {
	Run   []string `yaml:"run"`
	Back  []string `yaml:"back"`
	Slide []string `yaml:"slide"`
}

// TerminalConfig tunes the terminal host.
type TerminalConfig struct {
	FPS int `yaml:"fps"`
	// Terminals report presses only; a key counts as held for this many
	// frames after its last press.
	ReleaseAfterFrames int `yaml:"release_after_frames"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty means ~/.walkthedog/runs.db
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Sheet == "" || c.Assets.Image == "" {
		errs = append(errs, errors.New("assets.sheet and assets.image are required"))
	}
	if len(c.Controls.Run) == 0 {
		errs = append(errs, errors.New("controls.run has no keys"))
	}
	if len(c.Controls.Back) == 0 {
		errs = append(errs, errors.New("controls.back has no keys"))
	}
	if len(c.Controls.Slide) == 0 {
		errs = append(errs, errors.New("controls.slide has no keys"))
	}
	if c.Terminal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("terminal.fps %d must be positive", c.Terminal.FPS))
	}
	if c.Terminal.ReleaseAfterFrames <= 0 {
		errs = append(errs, fmt.Errorf("terminal.release_after_frames %d must be positive", c.Terminal.ReleaseAfterFrames))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
