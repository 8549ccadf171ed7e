//go:build !headless

package frontend

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"nesgo/internal/config"
	"nesgo/internal/input"
)

// keyNames maps the lowercase key names used in config.KeyMapping to
// ebiten's key constants. Only the keys the default bindings and a
// reasonable remap would need are listed.
var keyNames = map[string]ebiten.Key{
	"a": ebiten.KeyA, "b": ebiten.KeyB, "c": ebiten.KeyC, "d": ebiten.KeyD,
	"e": ebiten.KeyE, "f": ebiten.KeyF, "g": ebiten.KeyG, "h": ebiten.KeyH,
	"i": ebiten.KeyI, "j": ebiten.KeyJ, "k": ebiten.KeyK, "l": ebiten.KeyL,
	"m": ebiten.KeyM, "n": ebiten.KeyN, "o": ebiten.KeyO, "p": ebiten.KeyP,
	"q": ebiten.KeyQ, "r": ebiten.KeyR, "s": ebiten.KeyS, "t": ebiten.KeyT,
	"u": ebiten.KeyU, "v": ebiten.KeyV, "w": ebiten.KeyW, "x": ebiten.KeyX,
	"y": ebiten.KeyY, "z": ebiten.KeyZ,

	"up": ebiten.KeyArrowUp, "down": ebiten.KeyArrowDown,
	"left": ebiten.KeyArrowLeft, "right": ebiten.KeyArrowRight,

	"enter":        ebiten.KeyEnter,
	"space":        ebiten.KeySpace,
	"escape":       ebiten.KeyEscape,
	"rightshift":   ebiten.KeyShiftRight,
	"rightcontrol": ebiten.KeyControlRight,
	"leftshift":    ebiten.KeyShiftLeft,
	"leftcontrol":  ebiten.KeyControlLeft,
	"tab":          ebiten.KeyTab,
}

// resolveKeyMapping converts a config.KeyMapping's string key names into
// ebiten key constants, silently dropping any name it doesn't recognize
// (that button is simply never pressed from the keyboard).
func resolveKeyMapping(km config.KeyMapping) map[input.Button]ebiten.Key {
	pairs := []struct {
		button input.Button
		name   string
	}{
		{input.ButtonA, km.A},
		{input.ButtonB, km.B},
		{input.ButtonSelect, km.Select},
		{input.ButtonStart, km.Start},
		{input.ButtonUp, km.Up},
		{input.ButtonDown, km.Down},
		{input.ButtonLeft, km.Left},
		{input.ButtonRight, km.Right},
	}

	resolved := make(map[input.Button]ebiten.Key, len(pairs))
	for _, p := range pairs {
		if key, ok := keyNames[strings.ToLower(p.name)]; ok {
			resolved[p.button] = key
		}
	}
	return resolved
}
