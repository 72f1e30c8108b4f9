package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging and GL error checks")
	flagShader      = flag.String("shader", "", "Path to combined shader file")
	flagWatch       = flag.Bool("watch", false, "Reload the shader when the file changes")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagScreenshot  = flag.String("screenshot", "", "Directory to save a capture of the first frame")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config target, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.GLChecks = true
	}
	if *flagShader != "" {
		cfg.Shader.Path = *flagShader
	}
	if *flagWatch {
		cfg.Shader.HotReload = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagScreenshot != "" {
		cfg.Debug.ScreenshotDir = *flagScreenshot
	}
}
