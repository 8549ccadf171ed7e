//go:build !headless

package frontend

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"nesgo/internal/config"
	"nesgo/internal/input"
)

func TestResolveKeyMappingDefaults(t *testing.T) {
	km := config.KeyMapping{
		Up: "W", Down: "S", Left: "A", Right: "D",
		A: "J", B: "K", Start: "Enter", Select: "Space",
	}
	resolved := resolveKeyMapping(km)

	if resolved[input.ButtonUp] != ebiten.KeyW {
		t.Fatal("Up should resolve to KeyW")
	}
	if resolved[input.ButtonA] != ebiten.KeyJ {
		t.Fatal("A should resolve to KeyJ")
	}
	if resolved[input.ButtonStart] != ebiten.KeyEnter {
		t.Fatal("Start should resolve to KeyEnter")
	}
}

func TestResolveKeyMappingIsCaseInsensitive(t *testing.T) {
	km := config.KeyMapping{Up: "UP"}
	resolved := resolveKeyMapping(km)
	if resolved[input.ButtonUp] != ebiten.KeyArrowUp {
		t.Fatal("key names should resolve case-insensitively")
	}
}

func TestResolveKeyMappingDropsUnknownNames(t *testing.T) {
	km := config.KeyMapping{Up: "NotARealKey"}
	resolved := resolveKeyMapping(km)
	if _, ok := resolved[input.ButtonUp]; ok {
		t.Fatal("an unrecognized key name should not appear in the resolved map")
	}
}
