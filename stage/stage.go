// Package stage hosts the gallery: it owns the frame loop, lays out the
// content panel and mounts one sketch per view.
package stage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/telemetry"
)

var ErrUnknownView = errors.New("unknown view")

// Mounted is the component holding a running sketch handle.
type Mounted struct {
	Handle *sketch.Handle
}

// Panel is the screen rectangle a mounted sketch occupies.
type Panel struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the panel.
func (p Panel) Contains(x, y float64) bool {
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}

// Size returns the panel size in whole pixels.
func (p Panel) Size() sketch.Size {
	return sketch.Size{W: int(p.W), H: int(p.H)}
}

// ViewTag records which view mounted an entity.
type ViewTag struct {
	View string
}

// Options configures a Stage.
type Options struct {
	Seed   int64
	Logger *slog.Logger // nil = slog.Default()
	Perf   *telemetry.PerfCollector
}

// Stage is the gallery host. Each mounted sketch is an entity carrying
// Mounted, Panel and ViewTag components.
type Stage struct {
	cfg     *config.Config
	factory canvas.Factory
	opts    Options
	logger  *slog.Logger

	world  *ecs.World
	mapper *ecs.Map3[Mounted, Panel, ViewTag]
	filter *ecs.Filter3[Mounted, Panel, ViewTag]

	view          string
	width, height int
	frame         int64
	pointerX      float64
	pointerY      float64
	pointerIn     bool
}

// New creates a stage with no view shown.
func New(cfg *config.Config, factory canvas.Factory, opts Options) *Stage {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	world := ecs.NewWorld()
	return &Stage{
		cfg:     cfg,
		factory: factory,
		opts:    opts,
		logger:  logger,
		world:   world,
		mapper:  ecs.NewMap3[Mounted, Panel, ViewTag](world),
		filter:  ecs.NewFilter3[Mounted, Panel, ViewTag](world),
		width:   cfg.Screen.Width,
		height:  cfg.Screen.Height,
	}
}

// View returns the id of the current view.
func (s *Stage) View() string { return s.view }

// FrameCount returns the number of stage frames run.
func (s *Stage) FrameCount() int64 { return s.frame }

// Size returns the stage size.
func (s *Stage) Size() (int, int) { return s.width, s.height }

// ContentPanel returns the rectangle given to a view's sketch.
func (s *Stage) ContentPanel() Panel {
	margin := float64(s.cfg.Stage.PanelMargin)
	w := max(float64(s.width)-2*margin, 0)
	h := min(float64(s.cfg.Stage.PanelHeight), max(float64(s.height)-2*margin, 0))
	return Panel{
		X: margin,
		Y: (float64(s.height) - h) / 2,
		W: w,
		H: h,
	}
}

// Show disposes every sketch mounted by the current view and mounts the
// sketch of the view with the given id.
func (s *Stage) Show(id string) error {
	v, ok := s.cfg.View(id)
	if !ok {
		return fmt.Errorf("show %q: %w", id, ErrUnknownView)
	}

	// A failed mount leaves the current view running
	var h *sketch.Handle
	panel := s.ContentPanel()
	if v.Sketch != "" {
		var err error
		h, err = sketch.Mount(sketch.Kind(v.Sketch), s.factory, panel.Size(), sketch.Options{
			Config: s.cfg,
			Seed:   s.opts.Seed,
			Logger: s.logger,
		})
		if err != nil {
			return fmt.Errorf("show %q: %w", id, err)
		}
	}

	s.clear()
	prev := s.view
	s.view = v.ID

	if h != nil {
		s.mapper.NewEntity(&Mounted{Handle: h}, &panel, &ViewTag{View: v.ID})
		if s.pointerIn {
			s.routePointer()
		}
	}

	s.logger.Info("view switched", "from", prev, "to", v.ID, "sketch", v.Sketch)
	return nil
}

// clear disposes and removes every mounted entity.
func (s *Stage) clear() {
	// Collect first; the world is locked while a query runs
	var toRemove []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		m, _, _ := query.Get()
		m.Handle.Dispose()
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		s.mapper.Remove(e)
	}
}

// Resize lays the stage out for a new window size.
func (s *Stage) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = w, h

	if bg := Background(); bg != nil {
		bg.OnResize(sketch.Size{W: w, H: h})
	}

	panel := s.ContentPanel()
	query := s.filter.Query()
	for query.Next() {
		m, p, _ := query.Get()
		*p = panel
		m.Handle.OnResize(panel.Size())
	}
}

// PointerMove routes a window-space pointer position to the mounted
// sketches in panel-local coordinates.
func (s *Stage) PointerMove(x, y float64) {
	s.pointerX, s.pointerY = x, y
	s.pointerIn = true
	s.routePointer()
}

// PointerLeave tells every sketch the pointer left the window.
func (s *Stage) PointerLeave() {
	s.pointerIn = false
	query := s.filter.Query()
	for query.Next() {
		m, _, _ := query.Get()
		m.Handle.OnPointerLeave()
	}
}

func (s *Stage) routePointer() {
	query := s.filter.Query()
	for query.Next() {
		m, p, _ := query.Get()
		if p.Contains(s.pointerX, s.pointerY) {
			m.Handle.OnPointerMove(s.pointerX-p.X, s.pointerY-p.Y)
		} else {
			m.Handle.OnPointerLeave()
		}
	}
}

// Frame steps then renders the background and every mounted sketch.
func (s *Stage) Frame() {
	perf := s.opts.Perf
	if perf != nil {
		perf.StartFrame()
		perf.StartPhase(telemetry.PhaseStage)
	}
	s.frame++
	bg := Background()
	handles := s.Handles()

	if perf != nil {
		perf.StartPhase(telemetry.PhaseUpdate)
	}
	if bg != nil {
		bg.Step()
	}
	for _, h := range handles {
		h.Step()
	}

	if perf != nil {
		perf.StartPhase(telemetry.PhaseDraw)
	}
	if bg != nil {
		bg.Render()
	}
	for _, h := range handles {
		h.Render()
	}

	if perf != nil {
		perf.EndFrame()
	}
}

// Each calls fn for every mounted sketch with its panel.
func (s *Stage) Each(fn func(h *sketch.Handle, p Panel)) {
	query := s.filter.Query()
	for query.Next() {
		m, p, _ := query.Get()
		fn(m.Handle, *p)
	}
}

// Handles returns the mounted view sketches.
func (s *Stage) Handles() []*sketch.Handle {
	var out []*sketch.Handle
	s.Each(func(h *sketch.Handle, _ Panel) { out = append(out, h) })
	return out
}

// Stats returns the background stats followed by each mounted sketch.
func (s *Stage) Stats() []sketch.Stats {
	var out []sketch.Stats
	if bg := Background(); bg != nil && bg.State() == sketch.StateRunning {
		out = append(out, bg.Stats())
	}
	s.Each(func(h *sketch.Handle, _ Panel) { out = append(out, h.Stats()) })
	return out
}

// Close disposes every mounted sketch. The background is left to
// DisposeBackground.
func (s *Stage) Close() {
	s.clear()
	s.view = ""
}
