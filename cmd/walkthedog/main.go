// walkthedog runs Red Hat Boy on a desktop window, in the terminal, or over SSH.
//
// Usage:
//
//	walkthedog                      - Pick a host from a menu
//	walkthedog play --host window   - Play in a desktop window
//	walkthedog play --host terminal - Play in the terminal
//	walkthedog hosts                - List available hosts
//	walkthedog runs [host]          - Show the longest runs
//	walkthedog serve                - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.walkthedog/runs.db)
//	--log-level <level>  - Set log level: debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/walk-the-dog/internal/config"

	// Import hosts to register them
	_ "github.com/vovakirdan/walk-the-dog/internal/platform/tui"
	_ "github.com/vovakirdan/walk-the-dog/internal/platform/window"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "walkthedog",
	Short: "Walk the Dog - run, back up and slide with Red Hat Boy",
	Long: `Walk the Dog drives Red Hat Boy through a fixed 60 Hz simulation on
the host of your choice: a desktop window, the terminal, or an SSH session.

Available commands:
  play     - Play on a specific host (or pick one from a menu)
  hosts    - Show all available hosts
  runs     - View the longest runs
  serve    - Start SSH server for remote play

Examples:
  walkthedog
  walkthedog play --host window
  walkthedog play --host terminal --assets ./static
  walkthedog runs terminal
  walkthedog serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default: ~/.walkthedog/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// The root command plays, so it takes the play flags too.
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// openLogFile opens ~/.walkthedog/walkthedog.log for appending. Hosts that own
// the terminal log there so records don't tear the screen.
func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if dir == "" {
		return nil, fmt.Errorf("cannot get home directory for log file")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "walkthedog.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// dbPath returns --db, falling back to the configured storage path.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.StoragePath()
}
