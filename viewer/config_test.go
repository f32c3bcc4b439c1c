package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jf---/compas/colors"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := `
title: test window
width: 320
height: 240
background: "red"
camera:
  distance: 4
  yaw: 1.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "test window" || cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Camera.Distance != 4 || cfg.Camera.Yaw != 1.5 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	// Unset fields keep their defaults.
	if cfg.Camera.Pitch != DefaultConfig().Camera.Pitch {
		t.Errorf("pitch = %v, want default", cfg.Camera.Pitch)
	}
	if cfg.background() != colors.Red {
		t.Errorf("background = %v, want red", cfg.background())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file should error")
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(path, []byte("width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("non-positive window size should error")
	}
}

func TestBackgroundFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = "not a color"
	if cfg.background() != DefaultConfig().background() {
		t.Error("unparseable background should fall back to the default")
	}
}
