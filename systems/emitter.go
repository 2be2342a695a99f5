package systems

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
)

// EmitterParticle is a short-lived particle of the emitter trail.
type EmitterParticle struct {
	ID       uint64
	Pos      r2.Vec
	Vel      r2.Vec
	Acc      r2.Vec
	Lifespan int // alive while >= 0
	Size     float64
	Color    canvas.Color // alpha tracks Lifespan
}

// Dead reports whether the particle has expired.
func (p *EmitterParticle) Dead() bool {
	return p.Lifespan < 0
}

// Emitter orbits the canvas centre and leaves a fading trail of particles.
// Particles are kept in insertion order (oldest first).
type Emitter struct {
	Origin    r2.Vec
	Particles []EmitterParticle

	cfg     config.EmitterConfig
	rng     *rand.Rand
	nextID  uint64
	emitted uint64
	expired uint64
	width   float64
	height  float64
}

// NewEmitter creates an emitter centred in a w×h canvas.
func NewEmitter(cfg config.EmitterConfig, w, h float64, rng *rand.Rand) *Emitter {
	return &Emitter{
		Origin:    r2.Vec{X: w / 2, Y: h / 2},
		Particles: make([]EmitterParticle, 0, 256),
		cfg:       cfg,
		rng:       rng,
		width:     w,
		height:    h,
	}
}

// Update moves the origin along its orbit, emits new particles, ages every
// particle and drops the expired ones.
func (e *Emitter) Update(in Input) {
	t := float64(in.Frame) * e.cfg.OrbitSpeed
	e.SetOrigin(
		e.width/2+math.Cos(t)*e.width*e.cfg.OrbitRadius,
		e.height/2+math.Sin(t)*e.height*e.cfg.OrbitRadius,
	)

	for i := 0; i < e.cfg.PerFrame; i++ {
		e.emit()
	}

	alive := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Vel = r2.Add(p.Vel, p.Acc)
		p.Pos = r2.Add(p.Pos, p.Vel)
		p.Lifespan -= e.cfg.Decay

		if p.Dead() {
			e.expired++
			continue
		}
		p.Color.A = uint8(min(p.Lifespan, 255))

		e.Particles[alive] = e.Particles[i]
		alive++
	}
	e.Particles = e.Particles[:alive]
}

// SetOrigin moves the emission point.
func (e *Emitter) SetOrigin(x, y float64) {
	e.Origin = r2.Vec{X: x, Y: y}
}

func (e *Emitter) emit() {
	s := e.cfg.Spread
	pos := r2.Add(e.Origin, r2.Vec{X: uniform(e.rng, -s, s), Y: uniform(e.rng, -s, s)})
	v := e.cfg.InitialSpeed

	hue := mapRange(pos.X, 0, e.width, e.cfg.HueMin, e.cfg.HueMax)
	r, g, b := colorful.Hsv(math.Mod(hue+360, 360), 0.8, 0.8).Clamped().RGB255()

	lifespan := e.cfg.Lifespan
	e.Particles = append(e.Particles, EmitterParticle{
		ID:       e.nextID,
		Pos:      pos,
		Vel:      r2.Vec{X: uniform(e.rng, -v, v), Y: uniform(e.rng, -v, v)},
		Acc:      r2.Vec{Y: e.cfg.Gravity},
		Lifespan: lifespan,
		Size:     uniform(e.rng, e.cfg.MinSize, e.cfg.MaxSize),
		Color:    canvas.Color{R: r, G: g, B: b, A: uint8(min(max(lifespan, 0), 255))},
	})
	e.nextID++
	e.emitted++
}

// Resize updates the canvas bounds; live particles are kept.
func (e *Emitter) Resize(w, h float64) {
	e.width, e.height = w, h
}

// Bounds returns the current canvas size.
func (e *Emitter) Bounds() (float64, float64) {
	return e.width, e.height
}

// Totals returns how many particles have been emitted and expired since creation.
func (e *Emitter) Totals() (emitted, expired uint64) {
	return e.emitted, e.expired
}
