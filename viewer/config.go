package viewer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jf---/compas/colors"
)

// CameraConfig is the initial camera placement.
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
}

// Config configures the viewer window.
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Background string       `yaml:"background"` // color name or hex
	Camera     CameraConfig `yaml:"camera"`
}

// DefaultConfig returns the built-in viewer configuration.
func DefaultConfig() Config {
	return Config{
		Title:      "compas viewer",
		Width:      960,
		Height:     720,
		Background: "#1e1e24",
		Camera:     CameraConfig{Distance: 10, Yaw: -0.78, Pitch: 0.52},
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("viewer: read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("viewer: parse config %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("viewer: config window size %dx%d is invalid", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// background resolves the configured background color, falling back to the
// default on an unparseable value.
func (c Config) background() colors.Color {
	col, err := colors.Coerce(c.Background)
	if err != nil {
		col, _ = colors.Coerce(DefaultConfig().Background)
	}
	return col
}
