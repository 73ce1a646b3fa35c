package sdl2

import (
	"strings"

	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
)

// lookupKeyName maps an SDL key name to an action using the default key map.
// SDL names printable keys by their upper-case glyph ("X"), the key map uses
// the lower-case rune.
func lookupKeyName(name string) (action.Action, bool) {
	if len(name) == 1 {
		name = strings.ToLower(name)
	}
	return input.GetDefaultMapping(name)
}
