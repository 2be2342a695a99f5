package sketch

import (
	"math/rand"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/systems"
)

// Kind names one of the four sketches.
type Kind string

const (
	KindFlow    Kind = "flow"
	KindWave    Kind = "wave"
	KindMesh    Kind = "mesh"
	KindEmitter Kind = "emitter"
)

// Kinds lists every sketch kind.
var Kinds = []Kind{KindFlow, KindWave, KindMesh, KindEmitter}

// Valid reports whether k names a known sketch.
func (k Kind) Valid() bool {
	switch k {
	case KindFlow, KindWave, KindMesh, KindEmitter:
		return true
	}
	return false
}

// Stats is a per-frame summary of a running sketch.
type Stats struct {
	Kind      Kind
	Frame     int64
	Particles int
	Links     int
	Speeds    []float64 // flow particle speeds, nil for other kinds
}

// instance pairs a simulation with its renderer.
type instance struct {
	sim   systems.Simulation
	draw  func(c canvas.Canvas)
	stats func(st *Stats)
}

func build(kind Kind, opts Options, w, h float64) (*instance, error) {
	cfg := opts.Config
	noise, err := systems.NewNoise(cfg.Noise.Backend, opts.Seed, cfg.Noise.Octaves)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	switch kind {
	case KindFlow:
		f := systems.NewFlowField(cfg.Flow, w, h, noise, rng)
		return &instance{
			sim:  f,
			draw: func(c canvas.Canvas) { DrawFlowField(c, f) },
			stats: func(st *Stats) {
				st.Particles = len(f.Particles)
				st.Links = len(f.Links)
				st.Speeds = f.Speeds()
			},
		}, nil
	case KindWave:
		f := systems.NewWaveField(cfg.Wave, w, h, noise, rng)
		return &instance{
			sim:   f,
			draw:  func(c canvas.Canvas) { DrawWaveField(c, f) },
			stats: func(st *Stats) { st.Particles = len(f.Bands) },
		}, nil
	case KindMesh:
		m := systems.NewMesh(cfg.Mesh, w, h, noise)
		return &instance{
			sim:  m,
			draw: func(c canvas.Canvas) { DrawMesh(c, m) },
			stats: func(st *Stats) {
				st.Particles = len(m.Points) * len(m.Points[0])
				st.Links = 2 * (len(m.Points) - 1) * (len(m.Points[0]) - 1)
			},
		}, nil
	case KindEmitter:
		e := systems.NewEmitter(cfg.Emitter, w, h, rng)
		return &instance{
			sim:   e,
			draw:  func(c canvas.Canvas) { DrawEmitter(c, e) },
			stats: func(st *Stats) { st.Particles = len(e.Particles) },
		}, nil
	}
	return nil, ErrUnknownKind
}

var linkColor = canvas.Color{R: 100, G: 150, B: 255}

// DrawFlowField draws particles first, then the proximity links.
func DrawFlowField(c canvas.Canvas, f *systems.FlowField) {
	for i := range f.Particles {
		p := &f.Particles[i]
		c.Circle(p.Pos.X, p.Pos.Y, p.Size, p.Color)
	}

	peak := f.Config().LinkAlpha
	for _, l := range f.Links {
		a := f.Particles[l.A].Pos
		b := f.Particles[l.B].Pos
		col := linkColor
		col.A = uint8(l.Opacity * peak)
		c.Line(a.X, a.Y, b.X, b.Y, 1, col)
	}
}

// DrawWaveField strokes every band outline, innermost first.
func DrawWaveField(c canvas.Canvas, f *systems.WaveField) {
	for i := range f.Bands {
		b := &f.Bands[i]
		if len(b.Outline) < 2 {
			continue
		}
		c.ClosedPath(b.Outline, f.StrokeWeight(), b.Color)
	}
}

// DrawMesh draws the right and down edge of every renderable cell.
func DrawMesh(c canvas.Canvas, m *systems.Mesh) {
	weight := m.StrokeWeight()
	for x := 0; x < len(m.Points)-1; x++ {
		for y := 0; y < len(m.Points[x])-1; y++ {
			a := m.Points[x][y]
			right := m.Points[x+1][y]
			down := m.Points[x][y+1]
			col := m.Colors[x][y]
			c.Line(a.X, a.Y, right.X, right.Y, weight, col)
			c.Line(a.X, a.Y, down.X, down.Y, weight, col)
		}
	}
}

// DrawEmitter draws live particles oldest first.
func DrawEmitter(c canvas.Canvas, e *systems.Emitter) {
	for i := range e.Particles {
		p := &e.Particles[i]
		c.Circle(p.Pos.X, p.Pos.Y, p.Size, p.Color)
	}
}
