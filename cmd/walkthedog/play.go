package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walkthedog"
	"github.com/vovakirdan/walk-the-dog/internal/platform/tui"
	"github.com/vovakirdan/walk-the-dog/internal/registry"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

var (
	flagHost   string
	flagConfig string
	flagAssets string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Walk the Dog",
	Long: `Start the game on a host. Without --host, a menu lets you pick one
and you return to it after every run.

Controls (defaults, see the config file to rebind):
  Right/D  - Run right
  Left/A   - Back up
  Down/S   - Slide
  Esc/Q    - Quit

The terminal cannot see key releases, so a key counts as held for a few
frames after its last press (terminal.release_after_frames).

Examples:
  walkthedog play
  walkthedog play --host window
  walkthedog play --host terminal --config ./walkthedog.yaml
  walkthedog play --assets ./static`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagHost, "host", "", "Host to play on (see 'walkthedog hosts'); empty opens the menu")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&flagAssets, "assets", "", "Directory holding the sprite sheet (overrides assets.dir)")
}

// loadConfig loads the config and applies command line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagHost != "" && !registry.Exists(flagHost) {
		fmt.Fprintf(os.Stderr, "Error: unknown host %q\n", flagHost)
		fmt.Fprintln(os.Stderr, "Run 'walkthedog hosts' to see available hosts.")
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if flagHost != "" {
		if err := play(flagHost, cfg, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if store != nil {
				store.Close()
			}
			os.Exit(1)
		}
		return
	}

	// Get terminal size for the menu
	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	// Menu loop
	for {
		result, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = result.Config

		if result.Quit {
			return
		}
		if result.WantsRuns {
			if err := tui.RunRuns(store, rc.ScreenW, rc.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		if err := play(result.HostID, cfg, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		// Loop back to menu
	}
}

// play runs one game on hostID and records it in store.
func play(hostID string, cfg config.Config, store *storage.Store) error {
	// The terminal host owns the screen, so it logs to a file.
	var out io.Writer = os.Stderr
	if hostID == "terminal" {
		f, err := openLogFile()
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out, "walkthedog")
	if err != nil {
		return err
	}
	logger = logger.With("host", hostID)

	host, err := registry.Create(hostID, registry.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	fsys := os.DirFS(cfg.Assets.Dir)
	game := walkthedog.FromConfig(cfg, fsys, host.ImageLoader(fsys))

	loop, err := engine.Start(context.Background(), game, host, logger)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	loaded, _ := loop.Game().(*walkthedog.WalkTheDog)
	if th, ok := host.(*tui.Host); ok && loaded != nil {
		th.SetStatus(loaded.Status)
	}

	runErr := host.Run()
	if runErr != nil {
		logger.Error("host stopped", "error", runErr)
	}

	if loaded != nil && store != nil && loaded.Stats().Ticks > 0 {
		run, err := store.SaveRun(loaded.Stats().Run("local", hostID))
		if err != nil {
			logger.Warn("could not save run", "error", err)
		} else {
			logger.Info("run saved", "run", run.RunID, "distance", run.Distance, "slides", run.Slides)
		}
	}

	return runErr
}
