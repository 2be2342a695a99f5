package sketch

import (
	"errors"
	"testing"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/systems"
)

func newTestHandle(t *testing.T, kind Kind) (*Handle, *[]*canvas.Recorder) {
	t.Helper()
	var created []*canvas.Recorder
	h, err := New(kind, canvas.RecorderFactory(&created), Options{Seed: 1})
	if err != nil {
		t.Fatalf("New(%s) failed: %v", kind, err)
	}
	return h, &created
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("spiral", canvas.RecorderFactory(nil), Options{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestConfigAcceptsEveryKind(t *testing.T) {
	if len(config.SketchKinds) != len(Kinds) {
		t.Errorf("config accepts %d sketches, %d kinds exist", len(config.SketchKinds), len(Kinds))
	}
	for _, kind := range Kinds {
		if !config.SketchKinds[string(kind)] {
			t.Errorf("config rejects sketch kind %q", kind)
		}
	}
}

func TestLifecycleTransitions(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			h, created := newTestHandle(t, kind)

			if h.State() != StateUninitialized {
				t.Fatalf("new handle state = %v", h.State())
			}
			if len(*created) != 0 {
				t.Fatal("surface allocated before mount")
			}
			if h.Frame() {
				t.Error("Frame should be a no-op before mount")
			}

			if err := h.Mount(Size{W: 640, H: 480}); err != nil {
				t.Fatalf("Mount failed: %v", err)
			}
			if h.State() != StateRunning {
				t.Fatalf("state after mount = %v", h.State())
			}

			for i := 0; i < 5; i++ {
				if !h.Frame() {
					t.Fatal("Frame returned false while running")
				}
			}
			rec := (*created)[0]
			if rec.Frames != 5 {
				t.Errorf("surface saw %d frames, want 5", rec.Frames)
			}
			if rec.DrawsOutsideFrame != 0 {
				t.Errorf("%d draws outside Begin/End", rec.DrawsOutsideFrame)
			}
			if h.FrameCount() != 5 {
				t.Errorf("frame count = %d, want 5", h.FrameCount())
			}

			h.Dispose()
			if h.State() != StateDisposed {
				t.Fatalf("state after dispose = %v", h.State())
			}
			if !rec.Released() {
				t.Error("surface not released on dispose")
			}
		})
	}
}

func TestMountTwice(t *testing.T) {
	h, _ := newTestHandle(t, KindWave)
	if err := h.Mount(Size{W: 100, H: 100}); err != nil {
		t.Fatal(err)
	}
	if err := h.Mount(Size{W: 100, H: 100}); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("expected ErrAlreadyMounted, got %v", err)
	}
}

func TestRemountAfterDispose(t *testing.T) {
	h, _ := newTestHandle(t, KindEmitter)
	if err := h.Mount(Size{W: 100, H: 100}); err != nil {
		t.Fatal(err)
	}
	h.Dispose()
	if err := h.Mount(Size{W: 100, H: 100}); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func TestMountDefaultSize(t *testing.T) {
	tests := []struct {
		name string
		size Size
	}{
		{"zero", Size{}},
		{"zero width", Size{W: 0, H: 300}},
		{"negative", Size{W: -1, H: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, created := newTestHandle(t, KindFlow)
			if err := h.Mount(tt.size); err != nil {
				t.Fatal(err)
			}
			w, hh := (*created)[0].Size()
			if w != 400 || hh != 400 {
				t.Errorf("surface size = %vx%v, want 400x400", w, hh)
			}
			sw, sh := h.Simulation().Bounds()
			if sw != 400 || sh != 400 {
				t.Errorf("simulation bounds = %vx%v, want 400x400", sw, sh)
			}
		})
	}
}

func TestResizeBeforeMountIsQueued(t *testing.T) {
	h, created := newTestHandle(t, KindMesh)

	h.OnResize(Size{W: 300, H: 200})
	h.OnResize(Size{W: 640, H: 360})
	h.OnResize(Size{}) // unusable, ignored

	if err := h.Mount(Size{}); err != nil {
		t.Fatal(err)
	}
	w, hh := (*created)[0].Size()
	if w != 640 || hh != 360 {
		t.Errorf("surface size = %vx%v, want queued 640x360", w, hh)
	}
}

func TestMountSizeWinsOverQueuedResize(t *testing.T) {
	h, created := newTestHandle(t, KindMesh)
	h.OnResize(Size{W: 300, H: 200})

	if err := h.Mount(Size{W: 500, H: 500}); err != nil {
		t.Fatal(err)
	}
	if w, _ := (*created)[0].Size(); w != 500 {
		t.Errorf("surface width = %v, want 500", w)
	}
}

func TestResizeKeepsState(t *testing.T) {
	h, created := newTestHandle(t, KindWave)
	if err := h.Mount(Size{W: 400, H: 400}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		h.Frame()
	}
	wave := h.Simulation().(*systems.WaveField)
	phase := wave.Bands[0].Phase

	h.OnResize(Size{W: 800, H: 600})

	if w, hh := (*created)[0].Size(); w != 800 || hh != 600 {
		t.Errorf("surface size = %vx%v, want 800x600", w, hh)
	}
	if h.Simulation().(*systems.WaveField) != wave {
		t.Error("resize replaced the simulation")
	}
	if wave.Bands[0].Phase != phase {
		t.Error("resize changed accumulated phase")
	}
	if h.FrameCount() != 10 {
		t.Errorf("frame count = %d after resize, want 10", h.FrameCount())
	}
}

func TestResizeIgnoresUnusableSize(t *testing.T) {
	tests := []struct {
		name string
		size Size
	}{
		{"zero", Size{}},
		{"zero height", Size{W: 1184, H: 0}},
		{"negative", Size{W: -5, H: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, created := newTestHandle(t, KindMesh)
			if err := h.Mount(Size{W: 640, H: 300}); err != nil {
				t.Fatal(err)
			}
			h.OnResize(tt.size)

			if w, hh := (*created)[0].Size(); w != 640 || hh != 300 {
				t.Errorf("surface size = %vx%v, want 640x300 kept", w, hh)
			}
			if w, hh := h.Simulation().Bounds(); w != 640 || hh != 300 {
				t.Errorf("simulation bounds = %vx%v, want 640x300 kept", w, hh)
			}
		})
	}
}

func TestDisposeIdempotent(t *testing.T) {
	h, created := newTestHandle(t, KindFlow)
	if err := h.Mount(Size{W: 200, H: 200}); err != nil {
		t.Fatal(err)
	}
	h.Frame()

	h.Dispose()
	h.Dispose()

	rec := (*created)[0]
	if rec.Releases != 1 {
		t.Errorf("surface released %d times, want 1", rec.Releases)
	}

	// Nothing may reach the released surface
	if h.Frame() || h.Render() || h.Step() {
		t.Error("frame calls should be no-ops after dispose")
	}
	h.OnResize(Size{W: 10, H: 10})
	h.OnPointerMove(5, 5)
	if rec.DrawsAfterRelease != 0 {
		t.Errorf("%d draws reached a released surface", rec.DrawsAfterRelease)
	}
	if h.Surface() != nil || h.Simulation() != nil {
		t.Error("disposed handle should drop surface and simulation")
	}
}

func TestDisposeBeforeMount(t *testing.T) {
	h, created := newTestHandle(t, KindFlow)
	h.Dispose()
	if h.State() != StateDisposed {
		t.Errorf("state = %v, want disposed", h.State())
	}
	if len(*created) != 0 {
		t.Error("no surface should be allocated")
	}
}

func TestPointerSnapshot(t *testing.T) {
	h, _ := newTestHandle(t, KindMesh)
	if err := h.Mount(Size{W: 400, H: 400}); err != nil {
		t.Fatal(err)
	}

	if h.Pointer().Present {
		t.Error("pointer should start absent")
	}
	h.OnPointerMove(0, 0)
	if p := h.Pointer(); !p.Present || p.X != 0 || p.Y != 0 {
		t.Errorf("pointer = %+v, want present at origin", p)
	}
	h.OnPointerLeave()
	if h.Pointer().Present {
		t.Error("pointer should be absent after leave")
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		kind      Kind
		particles int
		links     int
	}{
		{KindWave, 5, 0},
		{KindMesh, 400, 2 * 19 * 19},
		{KindEmitter, 2, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			h, _ := newTestHandle(t, tt.kind)
			if err := h.Mount(Size{W: 400, H: 400}); err != nil {
				t.Fatal(err)
			}
			h.Frame()
			st := h.Stats()
			if st.Kind != tt.kind || st.Frame != 1 {
				t.Errorf("stats header = %s/%d", st.Kind, st.Frame)
			}
			if st.Particles != tt.particles {
				t.Errorf("particles = %d, want %d", st.Particles, tt.particles)
			}
			if st.Links != tt.links {
				t.Errorf("links = %d, want %d", st.Links, tt.links)
			}
		})
	}
}
