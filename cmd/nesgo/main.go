// Command nesgo is a cycle-accurate NES emulator. See spec.md for the
// exact CPU/PPU/APU semantics it implements.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/config"
	"nesgo/internal/diag"
	"nesgo/internal/frontend"
	"nesgo/internal/version"
)

// Exit codes per spec.md §6.
const (
	exitOK                = 0
	exitROMLoadError      = 1
	exitUnsupportedMapper = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("nesgo", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "path to a JSON config file")
		scale       = fs.Int("scale", 0, "window scale factor (overrides config)")
		fullscreen  = fs.Bool("fullscreen", false, "start in fullscreen")
		mute        = fs.Bool("mute", false, "disable audio output")
		debug       = fs.Bool("debug", false, "enable debug-level logging")
		showVersion = fs.Bool("version", false, "print version information and exit")
	)
	if err := fs.Parse(args); err != nil {
		return exitROMLoadError
	}

	if *showVersion {
		fmt.Println(version.GetDetailedVersion())
		return exitOK
	}

	logger := diag.Default()
	if *debug {
		logger.SetLevel(diag.LevelDebug)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: nesgo [flags] <rom-path>")
		fs.PrintDefaults()
		return exitROMLoadError
	}
	romPath := fs.Arg(0)

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		logger.Warnf("failed to load config %s, using defaults: %v", path, err)
		cfg = config.New()
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.ApplyFlags(*scale, *fullscreen, *mute, set)

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		var unsupported *cartridge.UnsupportedMapperError
		if errors.As(err, &unsupported) {
			logger.Warnf("unsupported mapper: %v", err)
			return exitUnsupportedMapper
		}
		logger.Warnf("failed to load ROM %s: %v", romPath, err)
		return exitROMLoadError
	}

	logger.Infof("loaded %s (mapper %d)", romPath, cart.MapperID())

	b := bus.New()
	b.LoadCartridge(cart)
	b.SetAudioSampleRate(cfg.Audio.SampleRate)

	if err := frontend.Run(b, cfg, logger); err != nil {
		logger.Warnf("frontend exited with error: %v", err)
		return exitROMLoadError
	}

	return exitOK
}
