package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/walk-the-dog/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Walk the Dog SSH server",
	Long: `Start an SSH server that lets users connect and play in their terminal.

Each SSH connection runs its own game loop. Runs are stored per-server,
so all users share the same run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.walkthedog/host_key

Examples:
  walkthedog serve                           # Listen on :23234 with auto-generated key
  walkthedog serve --ssh :2222               # Listen on port 2222
  walkthedog serve --host-key ./my_host_key  # Use specific host key
  walkthedog serve --assets /srv/rhb         # Serve sprites from a directory

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	serveCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory holding the sprite sheet (overrides assets.dir)")
}

func runServe(_ *cobra.Command, _ []string) {
	game := loadConfig()

	logger, err := newLogger(os.Stderr, "walkthedog-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      dbPath(game),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
		Assets:      os.DirFS(game.Assets.Dir),
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Walk the Dog SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
