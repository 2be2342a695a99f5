// Package app wires the stage, telemetry and gallery chrome into the
// window and headless run loops.
package app

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/renderer"
	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/stage"
	"github.com/pthm-cable/sketches/telemetry"
	"github.com/pthm-cable/sketches/ui"
)

// Options configures an App.
type Options struct {
	Seed      int64
	Headless  bool   // recording surfaces instead of raylib textures
	View      string // initial view id, empty = first configured view
	OutputDir string // empty = no CSV output
	LogStats  bool
	Logger    *slog.Logger

	// Factory overrides the surface factory chosen by Headless.
	Factory canvas.Factory
}

// App owns the stage and everything around it.
type App struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	stage     *stage.Stage
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	gallery   *ui.Gallery
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	width, height int
	paused        bool
	showHUD       bool
	showPerf      bool
	pendingView   string
	pointerInside bool
}

// New mounts the background and the initial view.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	factory := opts.Factory
	if factory == nil {
		if opts.Headless {
			factory = canvas.RecorderFactory(nil)
		} else {
			factory = renderer.Factory()
		}
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}

	a := &App{
		cfg:       cfg,
		opts:      opts,
		logger:    logger,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.WindowFrames),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		output:    output,
		gallery:   ui.NewGallery(cfg.Stage.Views),
		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(0, 0, 220),
		width:     cfg.Screen.Width,
		height:    cfg.Screen.Height,
		showHUD:   true,
	}

	size := sketch.Size{W: a.width, H: a.height}
	sketchOpts := sketch.Options{Config: cfg, Seed: opts.Seed, Logger: logger}
	if err := stage.InitBackground(factory, size, sketchOpts); err != nil {
		output.Close()
		return nil, err
	}

	a.stage = stage.New(cfg, factory, stage.Options{Seed: opts.Seed, Logger: logger, Perf: a.perf})
	a.stage.Resize(a.width, a.height)

	view := opts.View
	if view == "" && len(cfg.Stage.Views) > 0 {
		view = cfg.Stage.Views[0].ID
	}
	if err := a.stage.Show(view); err != nil {
		a.stage.Close()
		stage.DisposeBackground()
		output.Close()
		return nil, fmt.Errorf("initial view: %w", err)
	}
	return a, nil
}

// Update handles input and advances one frame unless paused.
func (a *App) Update() {
	a.handleInput()
	a.applyPendingView()
	if a.paused {
		return
	}
	a.stage.Frame()
	a.flushTelemetry()
}

// UpdateHeadless advances one frame without touching the window.
func (a *App) UpdateHeadless() {
	a.applyPendingView()
	a.stage.Frame()
	a.flushTelemetry()
}

// ShowView queues a view switch for the start of the next update.
func (a *App) ShowView(id string) {
	a.pendingView = id
}

func (a *App) applyPendingView() {
	if a.pendingView == "" {
		return
	}
	id := a.pendingView
	a.pendingView = ""
	if id == a.stage.View() {
		return
	}
	if err := a.stage.Show(id); err != nil {
		a.logger.Error("failed to switch view", "view", id, "error", err)
	}
}

// Frame returns the number of stage frames run.
func (a *App) Frame() int64 {
	return a.stage.FrameCount()
}

// Stage returns the hosted stage.
func (a *App) Stage() *stage.Stage {
	return a.stage
}

// Unload writes final snapshots and releases every surface.
func (a *App) Unload() {
	a.saveSnapshots()
	a.stage.Close()
	stage.DisposeBackground()
	if err := a.output.Close(); err != nil {
		a.logger.Error("failed to close output", "error", err)
	}
}
