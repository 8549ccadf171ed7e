package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Video.Scale != 2 {
		t.Fatalf("default scale = %d, want 2", c.Video.Scale)
	}
	if !c.Audio.Enabled {
		t.Fatal("audio should be enabled by default")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	c, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.IsLoaded() {
		t.Fatal("a missing file should not be reported as loaded")
	}
	if c.Video.Scale != 2 {
		t.Fatal("missing file should fall back to defaults")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nesgo.json")
	c := New()
	c.Video.Scale = 4
	c.Audio.Volume = 0.3
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if !loaded.IsLoaded() {
		t.Fatal("config read from an existing file should report loaded")
	}
	if loaded.Video.Scale != 4 {
		t.Fatalf("scale = %d, want 4", loaded.Video.Scale)
	}
	if loaded.Audio.Volume != 0.3 {
		t.Fatalf("volume = %v, want 0.3", loaded.Audio.Volume)
	}
}

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"video":{"scale":-1},"audio":{"volume":5}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Video.Scale != 2 {
		t.Fatalf("negative scale should clamp to default, got %d", c.Video.Scale)
	}
	if c.Audio.Volume != 0.8 {
		t.Fatalf("out-of-range volume should clamp to default, got %v", c.Audio.Volume)
	}
}

func TestApplyFlagsOnlyOverridesSetFlags(t *testing.T) {
	c := New()
	c.Video.Scale = 3
	c.ApplyFlags(0, true, false, map[string]bool{"fullscreen": true})
	if c.Video.Scale != 3 {
		t.Fatal("unset scale flag must not override the config-file value")
	}
	if !c.Video.Fullscreen {
		t.Fatal("fullscreen flag should have been applied")
	}
}

func TestWindowResolution(t *testing.T) {
	c := New()
	c.Video.Scale = 3
	w, h := c.WindowResolution()
	if w != 768 || h != 720 {
		t.Fatalf("resolution = %dx%d, want 768x720", w, h)
	}
}
