package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/config"
)

// Gradient endpoints for the mesh height colouring.
var (
	meshLow  = colorful.Color{R: 50.0 / 255, G: 100.0 / 255, B: 200.0 / 255}
	meshHigh = colorful.Color{R: 100.0 / 255, G: 200.0 / 255, B: 1}
)

const meshAlpha = 150

// Mesh is a fixed grid of points whose height is recomputed every frame.
// Points are indexed [col][row].
type Mesh struct {
	Points [][]r3.Vec
	Colors [][]canvas.Color // per renderable cell, valid after Update
	Angle  float64

	cfg    config.MeshConfig
	noise  Noise
	width  float64
	height float64
}

// NewMesh lays out a cfg.Cols×cfg.Rows grid spanning a w×h canvas.
func NewMesh(cfg config.MeshConfig, w, h float64, noise Noise) *Mesh {
	m := &Mesh{cfg: cfg, noise: noise}
	m.Resize(w, h)
	return m
}

// Resize rebuilds the grid from scratch. Heights reset to zero; the angle
// accumulator is kept.
func (m *Mesh) Resize(w, h float64) {
	m.width, m.height = w, h
	cols, rows := m.cfg.Cols, m.cfg.Rows

	m.Points = make([][]r3.Vec, cols)
	m.Colors = make([][]canvas.Color, cols-1)
	for x := 0; x < cols; x++ {
		m.Points[x] = make([]r3.Vec, rows)
		for y := 0; y < rows; y++ {
			m.Points[x][y] = r3.Vec{
				X: mapRange(float64(x), 0, float64(cols-1), 0, w),
				Y: mapRange(float64(y), 0, float64(rows-1), 0, h),
			}
		}
		if x < cols-1 {
			m.Colors[x] = make([]canvas.Color, rows-1)
		}
	}
}

// Update advances the angle and recomputes the height of every renderable
// cell. The last row and column keep their previous height.
func (m *Mesh) Update(in Input) {
	m.Angle += m.cfg.AngleStep
	cols, rows := m.cfg.Cols, m.cfg.Rows

	for x := 0; x < cols-1; x++ {
		for y := 0; y < rows-1; y++ {
			z := m.Height(x, y, in.Pointer)
			m.Points[x][y].Z = z

			t := clamp01(mapRange(z, -m.cfg.NoiseHeight, m.cfg.NoiseHeight, 0, 1))
			r, g, b := meshLow.BlendRgb(meshHigh, t).Clamped().RGB255()
			m.Colors[x][y] = canvas.Color{R: r, G: g, B: b, A: meshAlpha}
		}
	}
}

// Height computes the height of grid cell (x, y) for the current angle.
func (m *Mesh) Height(x, y int, ptr Pointer) float64 {
	fx, fy := float64(x), float64(y)
	s := m.cfg.NoiseScale

	z := m.noise.Noise3(fx*s, fy*s, m.Angle*s) * m.cfg.NoiseHeight

	k := m.cfg.WaveFrequency
	z += m.cfg.WaveHeight * math.Sin(fx*k+m.Angle) * math.Cos(fy*k+m.Angle)

	z += m.pointerBump(x, y, ptr)
	return z
}

// pointerBump is the localized lift around the pointer. It is zero when no
// pointer is present or the cell is outside the radius.
func (m *Mesh) pointerBump(x, y int, ptr Pointer) float64 {
	if !ptr.Present {
		return 0
	}
	cell := r2.Vec{
		X: mapRange(float64(x), 0, float64(m.cfg.Cols-1), 0, m.width),
		Y: mapRange(float64(y), 0, float64(m.cfg.Rows-1), 0, m.height),
	}
	d := r2.Norm(r2.Sub(cell, r2.Vec{X: ptr.X, Y: ptr.Y}))
	if d >= m.cfg.PointerRadius {
		return 0
	}
	return mapRange(d, 0, m.cfg.PointerRadius, m.cfg.PointerHeight, 0) * math.Sin(m.Angle*2)
}

// Bounds returns the current canvas size.
func (m *Mesh) Bounds() (float64, float64) {
	return m.width, m.height
}

// StrokeWeight returns the configured edge width.
func (m *Mesh) StrokeWeight() float64 {
	return m.cfg.StrokeWeight
}
