package window

import (
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyCode converts an Ebitengine key to a browser KeyboardEvent.code.
// Ebitengine already uses those names except for letters ("A" -> "KeyA").
func keyCode(k ebiten.Key) string {
	name := k.String()
	if len(name) == 1 && unicode.IsLetter(rune(name[0])) {
		return "Key" + name
	}
	return name
}
