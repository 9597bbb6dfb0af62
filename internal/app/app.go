// Package app wires the window, the OpenGL device and the frame driver
// into the viewer's main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/input"
	"github.com/Faultbox/gltfview/internal/engine/renderer"
	"github.com/Faultbox/gltfview/internal/engine/window"
	"github.com/Faultbox/gltfview/internal/logger"
	"github.com/Faultbox/gltfview/internal/viewer"
)

// App is the running viewer.
type App struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.State
	scene    *viewer.Scene
	driver   *viewer.Driver
	log      *zap.Logger
}

// New opens the window, creates the device and loads the configured
// assets. On error everything created so far is released.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		input:  input.New(),
		log:    logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Strings("assets", cfg.Assets.Paths),
	)

	var err error
	a.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the GL context the window just made current.
	a.renderer, err = renderer.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.scene, err = viewer.LoadScene(a.renderer, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	a.driver = viewer.NewDriver(a.renderer, a.scene.Resources, cfg)
	return a, nil
}

// Run renders frames until the window is closed or quit is pressed.
func (a *App) Run() error {
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for {
		a.input.BeginFrame()
		a.input.Apply(a.window.PollEvents())
		if a.input.QuitRequested {
			return nil
		}

		width, height := a.window.DrawableSize()
		if err := a.driver.Frame(a.input, width, height); err != nil {
			return fmt.Errorf("frame %d: %w", a.driver.Frames(), err)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// Close releases GPU objects before destroying the context that owns them.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Release()
	}
	if a.window != nil {
		a.window.Close()
	}
}
