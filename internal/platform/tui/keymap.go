package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// QuitKeys stop the terminal host.
var QuitKeys = key.NewBinding(
	key.WithKeys("ctrl+c", "q", "esc"),
	key.WithHelp("q/esc", "quit"),
)

// namedKeys maps Bubble Tea key types to browser KeyboardEvent.code values.
var namedKeys = map[tea.KeyType]string{
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeySpace:     "Space",
	tea.KeyEnter:     "Enter",
	tea.KeyTab:       "Tab",
	tea.KeyBackspace: "Backspace",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
}

// KeyCode translates a Bubble Tea key message to a browser KeyboardEvent.code
// ("ArrowRight", "KeyA", "Digit1", "Space"). It returns "" for keys that have
// no code, such as control combinations and multi-rune pastes.
func KeyCode(msg tea.KeyMsg) string {
	if msg.Alt {
		return ""
	}
	if code, ok := namedKeys[msg.Type]; ok {
		return code
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return ""
	}

	r := msg.Runes[0]
	switch {
	case r == ' ':
		return "Space"
	case r <= unicode.MaxASCII && unicode.IsLetter(r):
		return "Key" + strings.ToUpper(string(r))
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	return ""
}
