package sketch

import (
	"testing"

	"github.com/pthm-cable/sketches/canvas"
)

func mountRecorder(t *testing.T, kind Kind) (*Handle, *canvas.Recorder) {
	t.Helper()
	h, created := newTestHandle(t, kind)
	if err := h.Mount(Size{W: 400, H: 400}); err != nil {
		t.Fatal(err)
	}
	return h, (*created)[0]
}

func TestDrawFlowField(t *testing.T) {
	h, rec := mountRecorder(t, KindFlow)
	h.Frame()
	st := h.Stats()

	if rec.Ops[0].Kind != canvas.OpClear {
		t.Error("frame should start with a clear")
	}
	if n := rec.Count(canvas.OpCircle); n != 150 {
		t.Errorf("drew %d particles, want 150", n)
	}
	if n := rec.Count(canvas.OpLine); n != st.Links {
		t.Errorf("drew %d links, want %d", n, st.Links)
	}

	// Particles come before links
	seenLine := false
	for _, op := range rec.Ops {
		switch op.Kind {
		case canvas.OpLine:
			seenLine = true
			if op.Color.A > 100 {
				t.Errorf("link alpha %d above peak 100", op.Color.A)
			}
		case canvas.OpCircle:
			if seenLine {
				t.Fatal("particle drawn after links")
			}
		}
	}
}

func TestDrawWaveField(t *testing.T) {
	h, rec := mountRecorder(t, KindWave)
	h.Frame()

	if n := rec.Count(canvas.OpPath); n != 5 {
		t.Fatalf("drew %d outlines, want 5", n)
	}
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpPath && op.Size != 2 {
			t.Errorf("outline weight = %v, want 2", op.Size)
		}
	}
}

func TestDrawMesh(t *testing.T) {
	h, rec := mountRecorder(t, KindMesh)
	h.Frame()

	// Two edges for each of the 19x19 renderable cells
	if n := rec.Count(canvas.OpLine); n != 2*19*19 {
		t.Errorf("drew %d edges, want %d", n, 2*19*19)
	}
}

func TestDrawEmitter(t *testing.T) {
	h, rec := mountRecorder(t, KindEmitter)
	for i := 0; i < 10; i++ {
		h.Frame()
	}
	if n := rec.Count(canvas.OpCircle); n != 20 {
		t.Errorf("drew %d particles, want 20", n)
	}
}
