package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/sketches/config"
)

func newTestEmitter(seed int64, w, h float64) *Emitter {
	return NewEmitter(config.Default().Emitter, w, h, rand.New(rand.NewSource(seed)))
}

func TestEmitterLifespan(t *testing.T) {
	e := newTestEmitter(1, 400, 400)

	// Track the first particle emitted on frame 1
	e.Update(Input{Frame: 1})
	if len(e.Particles) != 2 {
		t.Fatalf("expected 2 particles after first frame, got %d", len(e.Particles))
	}
	id := e.Particles[0].ID
	if got := e.Particles[0].Lifespan; got != 253 {
		t.Fatalf("lifespan after first update = %d, want 253", got)
	}

	find := func() (EmitterParticle, bool) {
		for _, p := range e.Particles {
			if p.ID == id {
				return p, true
			}
		}
		return EmitterParticle{}, false
	}

	prev := 253
	for frame := int64(2); ; frame++ {
		e.Update(Input{Frame: frame})
		p, ok := find()
		if !ok {
			// Removed on the first frame lifespan would go negative
			if prev-2 >= 0 {
				t.Fatalf("particle removed at frame %d with lifespan %d", frame, prev-2)
			}
			if frame != 128 {
				t.Errorf("particle removed at frame %d, want 128", frame)
			}
			return
		}
		if p.Lifespan != prev-2 {
			t.Fatalf("frame %d: lifespan %d, want %d", frame, p.Lifespan, prev-2)
		}
		if int(p.Color.A) != p.Lifespan {
			t.Fatalf("frame %d: alpha %d does not track lifespan %d", frame, p.Color.A, p.Lifespan)
		}
		prev = p.Lifespan
		if frame > 1000 {
			t.Fatal("particle never expired")
		}
	}
}

func TestEmitterNoDeadAfterUpdate(t *testing.T) {
	e := newTestEmitter(2, 400, 400)
	for frame := int64(1); frame <= 400; frame++ {
		e.Update(Input{Frame: frame})
		for _, p := range e.Particles {
			if p.Lifespan < 0 {
				t.Fatalf("frame %d: dead particle %d still live", frame, p.ID)
			}
		}
	}
}

func TestEmitterSteadyStateCount(t *testing.T) {
	e := newTestEmitter(3, 400, 400)
	for frame := int64(1); frame <= 400; frame++ {
		e.Update(Input{Frame: frame})
	}
	// Each particle survives 127 updates, 2 emitted per frame
	if len(e.Particles) != 254 {
		t.Errorf("steady state count = %d, want 254", len(e.Particles))
	}
	emitted, expired := e.Totals()
	if emitted != 800 {
		t.Errorf("emitted = %d, want 800", emitted)
	}
	if emitted-expired != uint64(len(e.Particles)) {
		t.Errorf("emitted-expired = %d, live = %d", emitted-expired, len(e.Particles))
	}
}

func TestEmitterInsertionOrder(t *testing.T) {
	e := newTestEmitter(4, 400, 400)
	for frame := int64(1); frame <= 300; frame++ {
		e.Update(Input{Frame: frame})
	}
	for i := 1; i < len(e.Particles); i++ {
		if e.Particles[i].ID <= e.Particles[i-1].ID {
			t.Fatalf("particles out of insertion order at %d: %d after %d",
				i, e.Particles[i].ID, e.Particles[i-1].ID)
		}
	}
}

func TestEmitterOrbit(t *testing.T) {
	e := newTestEmitter(5, 800, 400)

	for _, frame := range []int64{1, 50, 157, 314} {
		e.Update(Input{Frame: frame})
		t0 := float64(frame) * 0.02
		wantX := 400 + math.Cos(t0)*200
		wantY := 200 + math.Sin(t0)*100
		if math.Abs(e.Origin.X-wantX) > 1e-9 || math.Abs(e.Origin.Y-wantY) > 1e-9 {
			t.Errorf("frame %d: origin = %v, want (%v, %v)", frame, e.Origin, wantX, wantY)
		}
	}
}

func TestEmitterSpawnAttributes(t *testing.T) {
	e := newTestEmitter(6, 400, 400)
	e.SetOrigin(200, 200)
	e.emit()

	p := e.Particles[0]
	if math.Abs(p.Pos.X-200) > 10 || math.Abs(p.Pos.Y-200) > 10 {
		t.Errorf("spawn %v further than 10 units from origin", p.Pos)
	}
	if p.Lifespan != 255 || p.Color.A != 255 {
		t.Errorf("fresh particle lifespan/alpha = %d/%d, want 255/255", p.Lifespan, p.Color.A)
	}
	if p.Size < 4 || p.Size > 8 {
		t.Errorf("size %v outside [4, 8]", p.Size)
	}
	if p.Acc.X != 0 || p.Acc.Y != 0.05 {
		t.Errorf("acceleration = %v, want (0, 0.05)", p.Acc)
	}
	// Hue between cyan and blue: blue channel dominates
	if p.Color.B <= p.Color.R {
		t.Errorf("colour %+v not in the blue hue range", p.Color)
	}
}
