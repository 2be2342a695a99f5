package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
)

// FlowParticle is a single drifting particle of the ambient field.
type FlowParticle struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Acc      r2.Vec // force accumulator, reset every update
	MaxSpeed float64
	Size     float64
	Color    canvas.Color
}

// Link connects two particles closer than the link radius.
type Link struct {
	A, B    int     // indices into Particles, A < B
	Opacity float64 // 1 at distance 0, falling linearly to 0 at the radius
}

// FlowField steers particles with a noise flow field and wraps them at the
// canvas edges.
//
// Links are found by checking every pair, O(n²) per frame.
type FlowField struct {
	Particles []FlowParticle
	Links     []Link

	cfg    config.FlowConfig
	noise  Noise
	rng    *rand.Rand
	width  float64
	height float64
}

// NewFlowField seeds cfg.Count particles inside a w×h canvas.
func NewFlowField(cfg config.FlowConfig, w, h float64, noise Noise, rng *rand.Rand) *FlowField {
	f := &FlowField{
		Particles: make([]FlowParticle, 0, cfg.Count),
		cfg:       cfg,
		noise:     noise,
		rng:       rng,
		width:     w,
		height:    h,
	}
	for i := 0; i < cfg.Count; i++ {
		f.Particles = append(f.Particles, f.newParticle())
	}
	return f
}

func (f *FlowField) newParticle() FlowParticle {
	s := f.cfg.InitialSpeed
	return FlowParticle{
		Pos: r2.Vec{X: uniform(f.rng, 0, f.width), Y: uniform(f.rng, 0, f.height)},
		Vel: r2.Vec{X: uniform(f.rng, -s, s), Y: uniform(f.rng, -s, s)},
		Color: canvas.Color{
			R: uint8(uniform(f.rng, 100, 200)),
			G: uint8(uniform(f.rng, 100, 200)),
			B: 255,
			A: uint8(uniform(f.rng, 100, 200)),
		},
		MaxSpeed: uniform(f.rng, f.cfg.MinSpeed, f.cfg.MaxSpeed),
		Size:     uniform(f.rng, f.cfg.MinSize, f.cfg.MaxSize),
	}
}

// Update advances every particle one frame, then rebuilds the link list.
func (f *FlowField) Update(in Input) {
	for i := range f.Particles {
		p := &f.Particles[i]

		p.Acc = r2.Add(p.Acc, f.flowForce(p.Pos, in.Frame))

		p.Vel = limit(r2.Add(p.Vel, p.Acc), p.MaxSpeed)
		p.Pos = r2.Add(p.Pos, p.Vel)
		p.Acc = r2.Vec{}

		p.Pos.X = wrapCoord(p.Pos.X, f.width)
		p.Pos.Y = wrapCoord(p.Pos.Y, f.height)
	}

	f.computeLinks()
}

func (f *FlowField) flowForce(pos r2.Vec, frame int64) r2.Vec {
	nx := pos.X * f.cfg.SpatialScale
	ny := pos.Y * f.cfg.SpatialScale
	t := float64(frame) * f.cfg.TimeScale
	half := f.cfg.Strength / 2

	return r2.Vec{
		X: f.noise.Noise3(nx, ny, t)*f.cfg.Strength - half,
		Y: f.noise.Noise3(nx, ny, t+f.cfg.YOffset)*f.cfg.Strength - half,
	}
}

func (f *FlowField) computeLinks() {
	f.Links = f.Links[:0]
	radius := f.cfg.LinkRadius
	r2max := radius * radius

	for i := 0; i < len(f.Particles); i++ {
		a := f.Particles[i].Pos
		for j := i + 1; j < len(f.Particles); j++ {
			d2 := r2.Norm2(r2.Sub(a, f.Particles[j].Pos))
			if d2 >= r2max {
				continue
			}
			d := r2.Norm(r2.Sub(a, f.Particles[j].Pos))
			f.Links = append(f.Links, Link{A: i, B: j, Opacity: 1 - d/radius})
		}
	}
}

// Resize updates the canvas bounds. Particles are not moved; the next
// update wraps any that fall outside.
func (f *FlowField) Resize(w, h float64) {
	f.width, f.height = w, h
}

// Bounds returns the current canvas size.
func (f *FlowField) Bounds() (float64, float64) {
	return f.width, f.height
}

// Config returns the parameters the field was built with.
func (f *FlowField) Config() config.FlowConfig {
	return f.cfg
}

// Speeds returns the current speed of every particle.
func (f *FlowField) Speeds() []float64 {
	out := make([]float64, len(f.Particles))
	for i := range f.Particles {
		out[i] = r2.Norm(f.Particles[i].Vel)
	}
	return out
}
