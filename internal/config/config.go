// Package config handles loading and validating program settings.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all program settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shader  ShaderConfig  `yaml:"shader"`
	Pulse   PulseConfig   `yaml:"pulse"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ShaderConfig names the combined shader file and the color uniform it declares.
type ShaderConfig struct {
	Path      string `yaml:"path"`
	Uniform   string `yaml:"uniform"`
	HotReload bool   `yaml:"hot_reload"`
}

// PulseConfig describes the animated color. The red channel bounces between
// Min and Max by Step each frame; the other channels are constant.
type PulseConfig struct {
	Step  float32 `yaml:"step"`
	Min   float32 `yaml:"min"`
	Max   float32 `yaml:"max"`
	Green float32 `yaml:"green"`
	Blue  float32 `yaml:"blue"`
	Alpha float32 `yaml:"alpha"`
}

// DebugConfig holds development aids.
type DebugConfig struct {
	GLChecks      bool   `yaml:"gl_checks"`      // check glGetError around every call
	ScreenshotDir string `yaml:"screenshot_dir"` // capture the first frame as PNG
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the settings of the stock demo.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Shaders in OpenGL",
			Width:  480,
			Height: 480,
			VSync:  true,
		},
		Shader: ShaderConfig{
			Path:    "shaders/basic.shader",
			Uniform: "u_Color",
		},
		Pulse: PulseConfig{
			Step:  0.05,
			Min:   0.0,
			Max:   1.0,
			Green: 0.9,
			Blue:  0.0,
			Alpha: 1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Shader.Path == "" {
		err = multierr.Append(err, errors.New("shader path is empty"))
	}
	if c.Shader.Uniform == "" {
		err = multierr.Append(err, errors.New("shader uniform name is empty"))
	}
	if c.Pulse.Step <= 0 {
		err = multierr.Append(err, fmt.Errorf("pulse step %g must be positive", c.Pulse.Step))
	}
	if c.Pulse.Min >= c.Pulse.Max {
		err = multierr.Append(err, fmt.Errorf("pulse range [%g, %g] is empty", c.Pulse.Min, c.Pulse.Max))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return err
}
