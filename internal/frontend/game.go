//go:build !headless

// Package frontend implements the emulator's outer loop: video presentation,
// audio playback, and keyboard input, all built on ebiten. The core
// (internal/bus and below) knows nothing about any of this — spec.md §5
// requires it stay frontend-agnostic, so everything here only reaches into
// the core through bus.Bus's public Frame/GetFrameBuffer/GetAudioSamples
// and SetControllerButtons methods.
package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"nesgo/internal/bus"
	"nesgo/internal/config"
	"nesgo/internal/diag"
	"nesgo/internal/input"
)

const (
	nesWidth  = 256
	nesHeight = 240
)

// game implements ebiten.Game, driving the emulator one frame per Update.
type game struct {
	bus    *bus.Bus
	cfg    *config.Config
	logger *diag.Logger

	screen      *ebiten.Image
	pixels      []byte // RGBA scratch buffer reused every Draw
	audioCtx    *audio.Context
	audioPlayer *audio.Player
	queue       *sampleQueue

	player1Keys map[input.Button]ebiten.Key
	player2Keys map[input.Button]ebiten.Key

	quit bool
}

// Run starts the ebiten-backed frontend and blocks until the window closes.
func Run(b *bus.Bus, cfg *config.Config, logger *diag.Logger) error {
	g := &game{
		bus:    b,
		cfg:    cfg,
		logger: logger,
		screen: ebiten.NewImage(nesWidth, nesHeight),
		pixels: make([]byte, nesWidth*nesHeight*4),
	}
	g.player1Keys = resolveKeyMapping(cfg.Input.Player1Keys)
	g.player2Keys = resolveKeyMapping(cfg.Input.Player2Keys)

	if cfg.Audio.Enabled {
		g.queue = newSampleQueue()
		g.audioCtx = audio.NewContext(cfg.Audio.SampleRate)
		player, err := g.audioCtx.NewPlayer(g.queue)
		if err != nil {
			return fmt.Errorf("frontend: failed to create audio player: %w", err)
		}
		player.SetVolume(float64(cfg.Audio.Volume))
		player.Play()
		g.audioPlayer = player
	}

	width, height := cfg.WindowResolution()
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Video.VSync)
	ebiten.SetFullscreen(cfg.Video.Fullscreen)

	logger.Infof("starting ebiten frontend: window %dx%d, audio=%v", width, height, cfg.Audio.Enabled)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game. One call runs bus.Frame once: about one
// NTSC frame's worth of CPU cycles, counted in whole instructions and not
// aligned to the PPU's own frame boundary.
func (g *game) Update() error {
	if inpututilEscapePressed() {
		g.quit = true
	}
	if g.quit {
		return ebiten.Termination
	}

	g.readControllers()
	g.bus.Frame()

	if g.queue != nil {
		g.queue.push(g.bus.GetAudioSamples())
	}

	return nil
}

// Draw implements ebiten.Game, blitting the PPU's frame buffer onto the
// window, scaled and centered to fit.
func (g *game) Draw(screen *ebiten.Image) {
	frameBuffer := g.bus.GetFrameBuffer()
	for i, pixel := range frameBuffer {
		g.pixels[i*4+0] = uint8(pixel >> 16)
		g.pixels[i*4+1] = uint8(pixel >> 8)
		g.pixels[i*4+2] = uint8(pixel)
		g.pixels[i*4+3] = 0xFF
	}
	g.screen.WritePixels(g.pixels)

	bounds := screen.Bounds()
	windowWidth, windowHeight := float64(bounds.Dx()), float64(bounds.Dy())

	scale := windowWidth / nesWidth
	if alt := windowHeight / nesHeight; alt < scale {
		scale = alt
	}
	offsetX := (windowWidth - nesWidth*scale) / 2
	offsetY := (windowHeight - nesHeight*scale) / 2

	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.screen, op)
}

// Layout implements ebiten.Game with a resizable window; scaling happens in
// Draw rather than here.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *game) readControllers() {
	var p1, p2 [8]bool
	readInto(&p1, g.player1Keys)
	readInto(&p2, g.player2Keys)
	g.bus.SetControllerButtons(1, p1)
	g.bus.SetControllerButtons(2, p2)
}

// readInto packs the host keyboard state for one controller into NES
// button order: A, B, Select, Start, Up, Down, Left, Right.
func readInto(out *[8]bool, mapping map[input.Button]ebiten.Key) {
	order := [8]input.Button{
		input.ButtonA, input.ButtonB, input.ButtonSelect, input.ButtonStart,
		input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
	}
	for i, button := range order {
		if key, ok := mapping[button]; ok {
			out[i] = ebiten.IsKeyPressed(key)
		}
	}
}

func inpututilEscapePressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape)
}
