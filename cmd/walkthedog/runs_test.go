package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

func seedRuns(t *testing.T) (*storage.Store, []storage.Run) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var saved []storage.Run
	for _, r := range []storage.Run{
		{Session: "local", Host: "window", Ticks: 600, Distance: 900},
		{Session: "ann/1", Host: "terminal", Ticks: 900, Distance: 1200, Slides: 5, DurationMS: 15000},
		{Session: "local", Host: "terminal", Ticks: 300, Distance: 450},
	} {
		run, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		saved = append(saved, run)
	}
	return store, saved
}

func TestRunsQueryFetch(t *testing.T) {
	store, saved := seedRuns(t)

	tests := []struct {
		name      string
		query     runsQuery
		title     string
		distances []int64
	}{
		{"longest, all hosts", runsQuery{limit: 10}, "Longest Runs - all hosts", []int64{1200, 900, 450}},
		{"longest, one host", runsQuery{host: "terminal", limit: 10}, "Longest Runs - terminal", []int64{1200, 450}},
		{"recent", runsQuery{recent: true, limit: 2}, "Recent Runs", []int64{450, 1200}},
		{"session", runsQuery{session: "local", limit: 10}, "Runs - session local", []int64{450, 900}},
		{"by id", runsQuery{runID: saved[1].RunID, recent: true}, "Run " + saved[1].RunID, []int64{1200}},
		{"unknown id", runsQuery{runID: "missing"}, "Run missing", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			title, runs, err := tc.query.fetch(store)
			if err != nil {
				t.Fatalf("fetch() error = %v", err)
			}
			if title != tc.title {
				t.Errorf("title = %q, expected %q", title, tc.title)
			}
			if len(runs) != len(tc.distances) {
				t.Fatalf("got %d runs, expected %d", len(runs), len(tc.distances))
			}
			for i, r := range runs {
				if r.Distance != tc.distances[i] {
					t.Errorf("run %d distance = %d, expected %d", i, r.Distance, tc.distances[i])
				}
			}
		})
	}
}

func TestPrintRuns(t *testing.T) {
	_, saved := seedRuns(t)

	var buf bytes.Buffer
	printRuns(&buf, "Recent Runs", saved[1:2])
	out := buf.String()

	for _, want := range []string{"Recent Runs", shortID(saved[1].RunID), "1200", "terminal", "ann/1", "15s"} {
		if !strings.Contains(out, want) {
			t.Errorf("printRuns() output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printRuns(&buf, "Recent Runs", nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("printRuns() with no runs = %q, expected empty message", buf.String())
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"0b6f1c4e-1111-2222-3333-444455556666", "0b6f1c4e"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := shortID(tc.in); got != tc.expected {
			t.Errorf("shortID(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
