package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 480 || cfg.Window.Height != 480 {
		t.Errorf("expected 480x480 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Shaders in OpenGL" {
		t.Errorf("unexpected title %q", cfg.Window.Title)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Shader.Uniform != "u_Color" {
		t.Errorf("expected uniform u_Color, got %s", cfg.Shader.Uniform)
	}
	if cfg.Shader.HotReload {
		t.Error("expected hot reload to be off by default")
	}
	if cfg.Pulse.Step != 0.05 {
		t.Errorf("expected step 0.05, got %f", cfg.Pulse.Step)
	}
	if cfg.Pulse.Min != 0 || cfg.Pulse.Max != 1 {
		t.Errorf("expected range [0, 1], got [%f, %f]", cfg.Pulse.Min, cfg.Pulse.Max)
	}
	if cfg.Pulse.Green != 0.9 || cfg.Pulse.Blue != 0 || cfg.Pulse.Alpha != 1 {
		t.Errorf("unexpected constant channels %+v", cfg.Pulse)
	}
	if cfg.Debug.GLChecks {
		t.Error("expected GL checks off by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  title: "pulse"
  width: 800
  height: 600
  vsync: false

shader:
  path: "assets/pulse.shader"
  uniform: "u_Tint"
  hot_reload: true

pulse:
  step: 0.01
  green: 0.5

debug:
  gl_checks: true
  screenshot_dir: "shots"

logging:
  level: "debug"
  log_file: "glquad.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "pulse" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Shader.Path != "assets/pulse.shader" || cfg.Shader.Uniform != "u_Tint" || !cfg.Shader.HotReload {
		t.Errorf("shader not loaded: %+v", cfg.Shader)
	}
	if cfg.Pulse.Step != 0.01 || cfg.Pulse.Green != 0.5 {
		t.Errorf("pulse not loaded: %+v", cfg.Pulse)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Pulse.Max != 1 || cfg.Pulse.Alpha != 1 {
		t.Errorf("pulse defaults lost: %+v", cfg.Pulse)
	}
	if !cfg.Debug.GLChecks || cfg.Debug.ScreenshotDir != "shots" {
		t.Errorf("debug not loaded: %+v", cfg.Debug)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "glquad.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Shader.Uniform = ""
	cfg.Pulse.Step = 0
	cfg.Pulse.Min = 1
	cfg.Logging.Level = "trace"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("expected 5 errors, got %d: %v", n, err)
	}
	if !strings.Contains(err.Error(), "uniform") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Pulse.Step = 0.1
	cfg.Shader.Path = "custom.shader"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Pulse.Step != 0.1 || loaded.Shader.Path != "custom.shader" {
		t.Errorf("saved values not restored: %+v", loaded)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.GLChecks {
					t.Error("expected GL checks with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "shader and watch flags",
			setup: func() { *flagShader = "other.shader"; *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shader.Path != "other.shader" {
					t.Errorf("expected shader other.shader, got %s", cfg.Shader.Path)
				}
				if !cfg.Shader.HotReload {
					t.Error("expected hot reload with watch flag")
				}
			},
			teardown: func() { *flagShader = ""; *flagWatch = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 1024; *flagHeight = 768 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
		{
			name:  "screenshot flag",
			setup: func() { *flagScreenshot = "captures" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Debug.ScreenshotDir != "captures" {
					t.Errorf("expected screenshot dir captures, got %s", cfg.Debug.ScreenshotDir)
				}
			},
			teardown: func() { *flagScreenshot = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 640
  height: 360
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1280
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 360 {
		t.Errorf("expected height 360 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("pulse:\n  step: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject negative step")
	}
}
