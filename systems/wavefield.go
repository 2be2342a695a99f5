package systems

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
)

// WaveBand is one ring of the wave field.
type WaveBand struct {
	Phase   float64 // radians, always in [0, 2*Pi)
	Hue     float64 // degrees
	Color   canvas.Color
	Outline []r2.Vec // closed polyline, canvas coordinates
}

// WaveField traces concentric rings whose radius is perturbed by noise and
// a sine term.
type WaveField struct {
	Bands []WaveBand

	cfg    config.WaveConfig
	noise  Noise
	width  float64
	height float64
}

// NewWaveField seeds every band with a random phase.
func NewWaveField(cfg config.WaveConfig, w, h float64, noise Noise, rng *rand.Rand) *WaveField {
	f := &WaveField{
		Bands:  make([]WaveBand, cfg.Bands),
		cfg:    cfg,
		noise:  noise,
		width:  w,
		height: h,
	}
	for i := range f.Bands {
		f.Bands[i].Phase = uniform(rng, 0, twoPi)
	}
	return f
}

// Update advances every band's phase and retraces its outline. The outline
// uses the phase from before the advance.
func (f *WaveField) Update(in Input) {
	cx, cy := f.width/2, f.height/2
	maxRadius := math.Min(f.width, f.height) * f.cfg.RadiusFactor
	count := float64(len(f.Bands))

	for w := range f.Bands {
		b := &f.Bands[w]
		phase := b.Phase
		b.Phase = wrapPhase(phase + f.cfg.PhaseStep)

		b.Hue = math.Mod(float64(w)*f.cfg.HueSpacing+float64(in.Frame)*f.cfg.HueSpeed, 360)
		b.Color = hslColor(b.Hue, 0.8, 0.7, 0.5)

		scale := float64(w+1) / count
		b.Outline = b.Outline[:0]
		for a := 0.0; a < twoPi; a += f.cfg.AngleStep {
			n := f.noise.Noise3(a*0.5, phase*0.5, 0)
			ripple := math.Sin(a*3+phase) * 0.2
			r := maxRadius * (0.6 + n*0.2 + ripple) * scale
			b.Outline = append(b.Outline, r2.Vec{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r})
		}
	}
}

// Resize updates the canvas bounds; phases are kept.
func (f *WaveField) Resize(w, h float64) {
	f.width, f.height = w, h
}

// Bounds returns the current canvas size.
func (f *WaveField) Bounds() (float64, float64) {
	return f.width, f.height
}

// StrokeWeight returns the configured outline width.
func (f *WaveField) StrokeWeight() float64 {
	return f.cfg.StrokeWeight
}

func hslColor(h, s, l, alpha float64) canvas.Color {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return canvas.Color{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}
