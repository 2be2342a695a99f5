// Package sketch binds a simulation core to a drawing surface and manages
// its mount/resize/dispose lifecycle.
package sketch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/systems"
)

var (
	ErrAlreadyMounted = errors.New("sketch already mounted")
	ErrDisposed       = errors.New("sketch disposed")
	ErrUnknownKind    = errors.New("unknown sketch kind")
)

// State is the lifecycle state of a Handle.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Size is a container size in pixels. A zero or negative dimension means
// the size is not known.
type Size struct {
	W, H int
}

// Valid reports whether both dimensions are usable.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Options configures the simulation built on mount.
type Options struct {
	Config *config.Config // nil = embedded defaults
	Seed   int64
	Logger *slog.Logger // nil = slog.Default()
}

// Handle owns one surface and one simulation. It is not safe for
// concurrent use; the frame loop drives it from a single goroutine.
type Handle struct {
	kind    Kind
	opts    Options
	factory canvas.Factory
	logger  *slog.Logger

	state   State
	surface canvas.Surface
	sketch  *instance
	frame   int64
	pointer systems.Pointer

	pending    Size
	hasPending bool
}

// New creates an unmounted handle. No surface is allocated until Mount.
func New(kind Kind, factory canvas.Factory, opts Options) (*Handle, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("new %q: %w", kind, ErrUnknownKind)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{
		kind:    kind,
		opts:    opts,
		factory: factory,
		logger:  logger.With("sketch", string(kind)),
	}, nil
}

// Mount creates a handle and mounts it in one step.
func Mount(kind Kind, factory canvas.Factory, size Size, opts Options) (*Handle, error) {
	h, err := New(kind, factory, opts)
	if err != nil {
		return nil, err
	}
	if err := h.Mount(size); err != nil {
		return nil, err
	}
	return h, nil
}

// Mount allocates the surface and a fresh simulation, then starts
// accepting frames. An unusable size falls back to the last queued resize,
// then to the configured default (400×400).
func (h *Handle) Mount(size Size) error {
	switch h.state {
	case StateRunning:
		return fmt.Errorf("mount %s: %w", h.kind, ErrAlreadyMounted)
	case StateDisposed:
		return fmt.Errorf("mount %s: %w", h.kind, ErrDisposed)
	}

	if !size.Valid() && h.hasPending {
		size = h.pending
	}
	size = h.resolve(size)
	h.hasPending = false

	surface := h.factory(size.W, size.H)
	inst, err := build(h.kind, h.opts, float64(size.W), float64(size.H))
	if err != nil {
		surface.Release()
		return fmt.Errorf("mount %s: %w", h.kind, err)
	}

	h.surface = surface
	h.sketch = inst
	h.frame = 0
	h.state = StateRunning
	h.logger.Debug("sketch mounted", "width", size.W, "height", size.H)
	return nil
}

func (h *Handle) resolve(size Size) Size {
	if size.Valid() {
		return size
	}
	return Size{W: h.opts.Config.Stage.DefaultWidth, H: h.opts.Config.Stage.DefaultHeight}
}

// OnResize reflows the simulation for a new container size without
// discarding its state. Before mount the size is queued for Mount.
// Zero or negative sizes are ignored.
func (h *Handle) OnResize(size Size) {
	if !size.Valid() {
		return
	}
	switch h.state {
	case StateUninitialized:
		h.pending = size
		h.hasPending = true
	case StateRunning:
		h.surface.Resize(size.W, size.H)
		h.sketch.sim.Resize(float64(size.W), float64(size.H))
	}
}

// OnPointerMove records the latest pointer position in surface coordinates.
func (h *Handle) OnPointerMove(x, y float64) {
	if h.state == StateDisposed {
		return
	}
	h.pointer = systems.At(x, y)
}

// OnPointerLeave records that no pointer is over the surface.
func (h *Handle) OnPointerLeave() {
	h.pointer = systems.Pointer{}
}

// Step advances the simulation one frame. It returns false unless running.
func (h *Handle) Step() bool {
	if h.state != StateRunning {
		return false
	}
	h.frame++
	h.sketch.sim.Update(systems.Input{Frame: h.frame, Pointer: h.pointer})
	return true
}

// Render draws the current simulation state. It never touches a released surface.
func (h *Handle) Render() bool {
	if h.state != StateRunning {
		return false
	}
	h.surface.Begin()
	h.surface.Clear()
	h.sketch.draw(h.surface)
	h.surface.End()
	return true
}

// Frame runs one step and one render.
func (h *Handle) Frame() bool {
	if !h.Step() {
		return false
	}
	return h.Render()
}

// Dispose stops the handle and releases its surface. Safe to call more
// than once; a disposed handle cannot be mounted again.
func (h *Handle) Dispose() {
	if h.state == StateDisposed {
		return
	}
	if h.surface != nil {
		h.surface.Release()
	}
	h.surface = nil
	h.sketch = nil
	h.state = StateDisposed
	h.logger.Debug("sketch disposed", "frames", h.frame)
}

// Kind returns the sketch kind.
func (h *Handle) Kind() Kind { return h.kind }

// State returns the lifecycle state.
func (h *Handle) State() State { return h.state }

// FrameCount returns the number of frames stepped since mount.
func (h *Handle) FrameCount() int64 { return h.frame }

// Pointer returns the latest pointer snapshot.
func (h *Handle) Pointer() systems.Pointer { return h.pointer }

// Surface returns the mounted surface, or nil when not running.
func (h *Handle) Surface() canvas.Surface { return h.surface }

// Simulation returns the running simulation, or nil when not running.
func (h *Handle) Simulation() systems.Simulation {
	if h.sketch == nil {
		return nil
	}
	return h.sketch.sim
}

// Stats returns a snapshot of the simulation for telemetry.
func (h *Handle) Stats() Stats {
	st := Stats{Kind: h.kind, Frame: h.frame}
	if h.sketch != nil {
		h.sketch.stats(&st)
	}
	return st
}
