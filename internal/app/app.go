// Package app drives the window, the quad and the animated color uniform.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/glquad/internal/config"
	"github.com/Faultbox/glquad/internal/engine/debug"
	"github.com/Faultbox/glquad/internal/engine/input"
	"github.com/Faultbox/glquad/internal/engine/renderer"
	"github.com/Faultbox/glquad/internal/engine/shader"
	"github.com/Faultbox/glquad/internal/engine/window"
	"github.com/Faultbox/glquad/internal/logger"
)

// App owns every GL resource for the lifetime of the process.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	check    *debug.Checker

	program  *shader.Program
	colorLoc int32
	pulse    *Pulse

	watcher  *shader.Watcher
	capture  *debug.FrameCapture
	captured bool
}

// New opens the window, uploads the quad and builds the shader program.
// Errors from window creation wrap window.ErrCreate.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		check: debug.NewChecker(cfg.Debug.GLChecks),
		input: input.New(),
		pulse: NewPulse(cfg.Pulse.Step, cfg.Pulse.Min, cfg.Pulse.Max),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	// Renderer comes AFTER the window, since the GL context must exist.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, a.check)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := a.renderer.UploadQuad(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to upload quad: %w", err)
	}

	a.program, a.colorLoc, err = loadProgram(cfg.Shader.Path, cfg.Shader.Uniform)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Shader.HotReload {
		a.watcher, err = shader.Watch(cfg.Shader.Path)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		}
	}
	if cfg.Debug.ScreenshotDir != "" {
		a.capture = debug.NewFrameCapture(cfg.Debug.ScreenshotDir, "glquad")
	}

	logger.Info("app initialized")
	return a, nil
}

// loadProgram splits, compiles and activates the shader file and resolves the color uniform.
// The quad's vertex array must already be bound so validation sees a drawable state.
func loadProgram(path, uniform string) (*shader.Program, int32, error) {
	src, err := shader.ParseFile(path)
	if err != nil {
		return nil, -1, err
	}
	logger.Debug("vertex shader source", zap.String("path", path), zap.String("source", src.Vertex))
	logger.Debug("fragment shader source", zap.String("path", path), zap.String("source", src.Fragment))

	program, err := shader.CompileProgram(src)
	if err != nil {
		return nil, -1, fmt.Errorf("build shader %s: %w", path, err)
	}
	if err := program.Validate(); err != nil {
		logger.Warn("shader program did not validate", zap.Error(err))
	}
	program.Use()

	loc, err := program.Uniform(uniform)
	if err != nil {
		program.Delete()
		return nil, -1, err
	}

	logger.Info("shader program ready",
		zap.String("path", path),
		zap.Uint32("program", program.ID()),
		zap.String("uniform", uniform),
		zap.Int32("location", loc),
	)
	return program, loc, nil
}

// Run renders until the window is closed.
func (a *App) Run() error {
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for {
		if a.input.Update() {
			return nil
		}
		for _, ev := range a.input.Events() {
			if ev.Type == input.EventWindowResize {
				// Window size may differ from the framebuffer on high-DPI displays.
				if err := a.renderer.Resize(a.window.DrawableSize()); err != nil {
					return fmt.Errorf("resize: %w", err)
				}
			}
		}

		a.reloadIfChanged()

		if err := a.renderFrame(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if a.capture != nil && !a.captured {
			a.captured = true
			a.captureFrame()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) renderFrame() error {
	if err := a.renderer.Begin(); err != nil {
		return err
	}
	c := a.cfg.Pulse
	if err := a.renderer.SetColor(a.colorLoc, a.pulse.Next(), c.Green, c.Blue, c.Alpha); err != nil {
		return err
	}
	return a.renderer.DrawQuad()
}

// reloadIfChanged swaps in a rebuilt program when the shader file changed.
// A broken edit keeps the previous program running.
func (a *App) reloadIfChanged() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
	default:
		return
	}

	program, loc, err := loadProgram(a.cfg.Shader.Path, a.cfg.Shader.Uniform)
	if err != nil {
		logger.Error("shader reload failed", zap.Error(err))
		a.program.Use()
		return
	}
	a.program.Delete()
	a.program, a.colorLoc = program, loc
	logger.Info("shader reloaded", zap.String("path", a.cfg.Shader.Path))
}

func (a *App) captureFrame() {
	pixels, w, h, err := a.renderer.ReadPixels()
	if err != nil {
		logger.Warn("frame readback failed", zap.Error(err))
		return
	}
	path, err := a.capture.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("frame capture failed", zap.Error(err))
		return
	}
	logger.Info("frame captured", zap.String("path", path))
}

// Close releases the program, buffers and window in reverse creation order.
func (a *App) Close() {
	logger.Info("closing app")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		if err := a.renderer.Close(); err != nil {
			logger.Warn("releasing GL buffers", zap.Error(err))
		}
	}
	if a.window != nil {
		a.window.Close()
	}
}
