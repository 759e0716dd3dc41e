package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMenuSelectHost(t *testing.T) {
	var m tea.Model = NewMenuModel(core.DefaultConfig())

	if !strings.Contains(m.View(), "Terminal (Bubble Tea)") {
		t.Errorf("View() should list the terminal host:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // Already at the top
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error("selecting a host should exit the menu")
	}

	menu := m.(MenuModel)
	if menu.Selected() == nil || menu.Selected().ID != "terminal" {
		t.Errorf("Selected() = %v, expected terminal", menu.Selected())
	}
	if menu.IsQuitting() || menu.WantsRuns() {
		t.Error("selection should not set quit or runs")
	}
}

func TestMenuActions(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		quitting  bool
		wantsRuns bool
	}{
		{"quit with q", runeKey('q'), true, false},
		{"quit with esc", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"open runs", tea.KeyMsg{Type: tea.KeyTab}, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, cmd := NewMenuModel(core.DefaultConfig()).Update(tc.msg)
			if !isQuit(cmd) {
				t.Error("expected the menu to exit")
			}
			menu := m.(MenuModel)
			if menu.IsQuitting() != tc.quitting {
				t.Errorf("IsQuitting() = %v, expected %v", menu.IsQuitting(), tc.quitting)
			}
			if menu.WantsRuns() != tc.wantsRuns {
				t.Errorf("WantsRuns() = %v, expected %v", menu.WantsRuns(), tc.wantsRuns)
			}
			if menu.Selected() != nil {
				t.Error("no host should be selected")
			}
		})
	}
}

func TestMenuResize(t *testing.T) {
	m, _ := NewMenuModel(core.DefaultConfig()).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := m.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
