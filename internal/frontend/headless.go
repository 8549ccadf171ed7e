//go:build headless

// Package frontend implements the emulator's outer loop. This file is the
// headless build (no GUI, no audio device): it drives the emulator with a
// plain loop, useful for CI (it writes no frame dumps), mirroring
// the teacher's own !headless build-tag split.
package frontend

import (
	"nesgo/internal/bus"
	"nesgo/internal/config"
	"nesgo/internal/diag"
)

// Run drives the emulator for a fixed number of frames with no video,
// audio, or input — just enough to exercise the core under test/CI.
func Run(b *bus.Bus, cfg *config.Config, logger *diag.Logger) error {
	const headlessFrames = 120

	logger.Infof("running headless for %d frames", headlessFrames)
	b.Run(headlessFrames)
	logger.Infof("headless run complete: frame=%d cycles=%d", b.GetFrameCount(), b.GetCycleCount())
	return nil
}
