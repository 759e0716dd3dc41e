package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walkthedog"
	"github.com/vovakirdan/walk-the-dog/internal/registry"
)

func init() {
	registry.Register("terminal", "Terminal (Bubble Tea)", func(opts registry.Options) (registry.Host, error) {
		rc := core.DefaultConfig()
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			rc.ScreenW = w
			rc.ScreenH = h
		}
		rc.FrameRate = opts.Config.Terminal.FPS
		return New(rc, opts.Config.Terminal, opts.Logger), nil
	})
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Host runs frame callbacks on Bubble Tea ticks.
//
// Terminals report key presses but not releases. A pressed key is treated as
// held until releaseAfter frames pass without another press of it, then a
// KeyUp is queued.
type Host struct {
	runtime      core.RuntimeConfig
	releaseAfter int
	logger       *log.Logger
	clock        func() float64

	events   *core.KeyQueue
	screen   *core.Screen
	renderer *Renderer
	pending  engine.FrameCallback
	held     map[string]int // code -> frames left before release
	err      error
	status   func() string
}

// New creates a terminal host for a screen of the given size.
func New(rc core.RuntimeConfig, cfg config.TerminalConfig, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	if rc.FrameRate <= 0 {
		rc.FrameRate = core.DefaultConfig().FrameRate
	}
	releaseAfter := cfg.ReleaseAfterFrames
	if releaseAfter <= 0 {
		releaseAfter = 1
	}

	start := time.Now()
	screen := core.NewScreen(rc.ScreenW, max(rc.ScreenH-1, 1))
	return &Host{
		runtime:      rc,
		releaseAfter: releaseAfter,
		logger:       logger,
		clock: func() float64 {
			return float64(time.Since(start).Microseconds()) / 1000
		},
		events:   core.NewKeyQueue(),
		screen:   screen,
		renderer: NewRenderer(screen, walkthedog.World),
		held:     make(map[string]int),
	}
}

// Now returns milliseconds since the host was created.
func (h *Host) Now() float64 {
	return h.clock()
}

// RequestAnimationFrame schedules cb for the next tick.
func (h *Host) RequestAnimationFrame(cb engine.FrameCallback) error {
	if cb == nil {
		return errors.New("tui: nil frame callback")
	}
	h.pending = cb
	return nil
}

// Renderer returns the half-block renderer.
func (h *Host) Renderer() (engine.Renderer, error) {
	return h.renderer, nil
}

// KeyEvents returns the queue fed from Bubble Tea key messages.
func (h *Host) KeyEvents() (*core.KeyQueue, error) {
	return h.events, nil
}

// ImageLoader decodes images into plain image.Image values.
func (h *Host) ImageLoader(fsys fs.FS) engine.ImageLoader {
	return engine.FSImageLoader{FS: fsys}
}

// SetStatus sets the text shown under the game. f is called on every view.
func (h *Host) SetStatus(f func() string) {
	h.status = f
}

// Err returns the error that stopped the frame loop, if any.
func (h *Host) Err() error {
	return h.err
}

// Model returns the Bubble Tea model driving this host.
func (h *Host) Model() tea.Model {
	return model{host: h}
}

// Run starts the Bubble Tea program and blocks until it exits.
func (h *Host) Run() error {
	h.logger.Info("terminal host starting", "width", h.runtime.ScreenW, "height", h.runtime.ScreenH, "fps", h.runtime.FrameRate)

	p := tea.NewProgram(h.Model(), tea.WithAltScreen())
	_, err := p.Run()
	h.events.Close()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return h.err
}

// press queues a KeyDown and (re)starts the hold countdown for code.
func (h *Host) press(code string) {
	_, repeat := h.held[code]
	h.events.KeyDown(core.KeyboardEvent{Code: code, Repeat: repeat, At: time.Now()})
	h.held[code] = h.releaseAfter
}

// release counts down held keys and queues a KeyUp for expired ones.
func (h *Host) release() {
	for code, left := range h.held {
		left--
		if left > 0 {
			h.held[code] = left
			continue
		}
		delete(h.held, code)
		h.events.KeyUp(core.KeyboardEvent{Code: code, At: time.Now()})
	}
}

// frame runs the pending callback. It reports whether another frame is
// registered.
func (h *Host) frame() (bool, error) {
	cb := h.pending
	if cb == nil {
		return false, nil
	}
	h.pending = nil

	if err := cb(h.Now()); err != nil {
		h.logger.Error("frame failed", "error", err)
		h.err = err
		return false, err
	}
	h.release()
	return h.pending != nil, nil
}

func (h *Host) resize(width, height int) {
	h.runtime.ScreenW = width
	h.runtime.ScreenH = height
	h.screen.Resize(width, max(height-1, 1))
}

// model adapts Host to Bubble Tea. All state lives in the host.
type model struct {
	host *Host
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.host.runtime.FrameRate)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, QuitKeys) {
			return m, tea.Quit
		}
		if code := KeyCode(msg); code != "" {
			m.host.press(code)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.host.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		more, err := m.host.frame()
		if err != nil || !more {
			return m, tea.Quit
		}
		return m, tickCmd(m.host.runtime.FrameRate)
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(RenderScreen(m.host.screen))
	b.WriteString("\n")

	status := "←/→ run/back  ↓ slide  q quit"
	if m.host.status != nil {
		status = m.host.status() + "  " + status
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}
