// Package config provides layered configuration for the emulator: an
// optional JSON file on disk, with CLI flags overriding whatever it sets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the settings a frontend needs beyond the core emulator.
type Config struct {
	Video VideoConfig `json:"video"`
	Audio AudioConfig `json:"audio"`
	Input InputConfig `json:"input"`

	configPath string
	loaded     bool
}

// VideoConfig controls the frontend's window and scaling.
type VideoConfig struct {
	Scale      int  `json:"scale"` // NES resolution multiplier
	Fullscreen bool `json:"fullscreen"`
	VSync      bool `json:"vsync"`
}

// AudioConfig controls the frontend's audio output.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float32 `json:"volume"`
}

// InputConfig maps NES controller buttons to host keyboard keys.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping names one host key per NES controller button.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// New returns a Config populated with the emulator's default settings.
func New() *Config {
	return &Config{
		Video: VideoConfig{
			Scale:      2,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.8,
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{
				Up: "W", Down: "S", Left: "A", Right: "D",
				A: "J", B: "K", Start: "Enter", Select: "Space",
			},
			Player2Keys: KeyMapping{
				Up: "Up", Down: "Down", Left: "Left", Right: "Right",
				A: "N", B: "M", Start: "RightShift", Select: "RightControl",
			},
		},
	}
}

// LoadFromFile loads configuration from a JSON file at path, starting from
// defaults and overlaying whatever the file specifies. A missing file is
// not an error: New()'s defaults are used as-is.
func LoadFromFile(path string) (*Config, error) {
	cfg := New()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	cfg.validate()
	cfg.loaded = true
	return cfg, nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// validate clamps out-of-range values to safe defaults rather than failing
// load, matching the teacher's permissive config-loading behavior.
func (c *Config) validate() {
	if c.Video.Scale <= 0 {
		c.Video.Scale = 2
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = 0.8
	}
}

// ApplyFlags overlays CLI flag values onto the config, where set is the
// set of flag names the user explicitly passed (so an unset flag does not
// clobber a config-file value with its own zero default).
func (c *Config) ApplyFlags(scale int, fullscreen bool, mute bool, set map[string]bool) {
	if set["scale"] {
		c.Video.Scale = scale
	}
	if set["fullscreen"] {
		c.Video.Fullscreen = fullscreen
	}
	if set["mute"] {
		c.Audio.Enabled = !mute
	}
}

// WindowResolution returns the frontend window size in pixels for the
// configured scale, given the NES's fixed 256x240 native resolution.
func (c *Config) WindowResolution() (int, int) {
	return 256 * c.Video.Scale, 240 * c.Video.Scale
}

// IsLoaded reports whether the configuration came from an existing file.
func (c *Config) IsLoaded() bool { return c.loaded }

// DefaultPath returns the default configuration file path.
func DefaultPath() string { return "./config/nesgo.json" }
