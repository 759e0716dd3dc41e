package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/walk-the-dog/internal/platform/tui"
	"github.com/vovakirdan/walk-the-dog/internal/registry"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

var (
	flagRunsLimit   int
	flagRunsBrowse  bool
	flagRunsStats   bool
	flagRunsClear   bool
	flagRunsRecent  bool
	flagRunsSession string
	flagRunsID      string
)

var runsCmd = &cobra.Command{
	Use:   "runs [host]",
	Short: "Show the longest runs",
	Long: `Display the longest runs by distance, for one host or all of them.

Examples:
  walkthedog runs
  walkthedog runs terminal --limit 20
  walkthedog runs --recent
  walkthedog runs --session local
  walkthedog runs --id 0b6f1c4e-...
  walkthedog runs --browse
  walkthedog runs --stats
  walkthedog runs window --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse runs interactively")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-host totals")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete recorded runs (for the given host, or all)")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Show the newest runs instead of the longest")
	runsCmd.Flags().StringVar(&flagRunsSession, "session", "", "Show the runs of one session (\"local\" or user/session-id)")
	runsCmd.Flags().StringVar(&flagRunsID, "id", "", "Show a single run by its run ID")
	runsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runRuns(_ *cobra.Command, args []string) {
	hostID := ""
	if len(args) == 1 {
		hostID = args[0]
		if !registry.Exists(hostID) {
			fmt.Fprintf(os.Stderr, "Error: unknown host %q\n", hostID)
			fmt.Fprintln(os.Stderr, "Run 'walkthedog hosts' to see available hosts.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(dbPath(loadConfig()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRuns(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case flagRunsClear:
		if err := store.ClearRuns(hostID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Runs cleared.")

	case flagRunsStats:
		printRunStats(store)

	default:
		query := runsQuery{
			host:    hostID,
			runID:   flagRunsID,
			session: flagRunsSession,
			recent:  flagRunsRecent,
			limit:   flagRunsLimit,
		}
		title, runs, err := query.fetch(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			return
		}
		printRuns(os.Stdout, title, runs)
	}
}

// runsQuery selects which runs to list. The first non-empty of runID,
// session and recent wins; otherwise the longest runs of host are listed.
type runsQuery struct {
	host    string
	runID   string
	session string
	recent  bool
	limit   int
}

func (q runsQuery) fetch(store *storage.Store) (string, []storage.Run, error) {
	switch {
	case q.runID != "":
		title := "Run " + q.runID
		run, err := store.RunByID(q.runID)
		if err != nil || run == nil {
			return title, nil, err
		}
		return title, []storage.Run{*run}, nil

	case q.session != "":
		runs, err := store.SessionRuns(q.session, q.limit)
		return "Runs - session " + q.session, runs, err

	case q.recent:
		runs, err := store.RecentRuns(q.limit)
		return "Recent Runs", runs, err
	}

	title := "Longest Runs - all hosts"
	if q.host != "" {
		title = "Longest Runs - " + q.host
	}
	runs, err := store.TopRuns(q.host, q.limit)
	return title, runs, err
}

func printRuns(w io.Writer, title string, runs []storage.Run) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'walkthedog play' to record the first run!")
		return
	}

	const row = "  %-4s  %-8s  %-8s  %-6s  %-6s  %-7s  %-8s  %-16s  %s\n"
	fmt.Fprintf(w, row, "#", "Run", "Distance", "Max X", "Slides", "Time", "Host", "Date", "Session")
	fmt.Fprintf(w, row, "-", "---", "--------", "-----", "------", "----", "----", "----", "-------")
	for i, r := range runs {
		fmt.Fprintf(w, row,
			strconv.Itoa(i+1), shortID(r.RunID),
			strconv.FormatInt(r.Distance, 10), strconv.Itoa(r.MaxX), strconv.Itoa(r.Slides),
			r.Duration().Round(time.Second/10).String(), r.Host,
			r.CreatedAt.Format("2006-01-02 15:04"), r.Session)
	}
}

// shortID returns the first block of a run UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printRunStats(store *storage.Store) {
	stats, err := store.GetRunStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-5s  %-8s  %-8s  %-9s  %-6s  %s\n", "Host", "Runs", "Best", "Average", "Played", "Slides", "Last")
	fmt.Printf("  %-8s  %-5s  %-8s  %-8s  %-9s  %-6s  %s\n", "----", "----", "----", "-------", "------", "------", "----")
	for _, h := range registry.List() {
		s, ok := stats[h.ID]
		if !ok {
			continue
		}
		played := time.Duration(s.TotalTicks) * time.Second / 60
		fmt.Printf("  %-8s  %-5d  %-8d  %-8.0f  %-9s  %-6d  %s\n",
			h.ID, s.Runs, s.BestDistance, s.AvgDistance,
			played.Round(time.Second), s.TotalSlides,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
