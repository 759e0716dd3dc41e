package config

import (
	_ "embed"
)

//go:embed defaults/walkthedog.yaml
var defaultYAML []byte

// Default returns the default configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  600,
			Height: 600,
			Title:  "Walk the Dog",
		},
		Assets: AssetsConfig{
			Dir:   "static",
			Sheet: "rhb.json",
			Image: "rhb.png",
		},
		Controls: ControlsConfig{
			Run:   []string{"ArrowRight", "KeyD"},
			Back:  []string{"ArrowLeft", "KeyA"},
			Slide: []string{"ArrowDown", "KeyS"},
		},
		Terminal: TerminalConfig{
			FPS:                30,
			ReleaseAfterFrames: 8,
		},
	}
}
