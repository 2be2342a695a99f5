// Package renderer provides raylib-backed drawing surfaces.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
)

// Surface is an off-screen render texture that a sketch draws into.
// The window loop blits it with Present.
type Surface struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
}

// NewSurface allocates a w×h render texture. Must be called after the
// raylib window is created.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.load(w, h)
	return s
}

// Factory returns a canvas.Factory producing raylib surfaces.
func Factory() canvas.Factory {
	return func(w, h int) canvas.Surface {
		return NewSurface(w, h)
	}
}

func (s *Surface) load(w, h int) {
	s.width = int32(max(w, 1))
	s.height = int32(max(h, 1))
	s.target = rl.LoadRenderTexture(s.width, s.height)
	s.loaded = true
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

func (s *Surface) Begin() {
	if !s.loaded {
		return
	}
	rl.BeginTextureMode(s.target)
}

func (s *Surface) End() {
	if !s.loaded {
		return
	}
	rl.EndTextureMode()
}

// Resize reallocates the texture when the size actually changes.
func (s *Surface) Resize(w, h int) {
	if !s.loaded || (int32(w) == s.width && int32(h) == s.height) {
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.load(w, h)
}

// Release frees the render texture.
func (s *Surface) Release() {
	if !s.loaded {
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.loaded = false
}

func (s *Surface) Clear() {
	if !s.loaded {
		return
	}
	rl.ClearBackground(rl.Blank)
}

func (s *Surface) Circle(x, y, diameter float64, c canvas.Color) {
	if !s.loaded {
		return
	}
	radius := float32(diameter / 2)
	if radius < 0.5 {
		radius = 0.5
	}
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, radius, toRL(c))
}

func (s *Surface) Line(x1, y1, x2, y2, weight float64, c canvas.Color) {
	if !s.loaded {
		return
	}
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(weight),
		toRL(c),
	)
}

func (s *Surface) ClosedPath(points []r2.Vec, weight float64, c canvas.Color) {
	if !s.loaded || len(points) < 2 {
		return
	}
	col := toRL(c)
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		rl.DrawLineEx(
			rl.Vector2{X: float32(a.X), Y: float32(a.Y)},
			rl.Vector2{X: float32(b.X), Y: float32(b.Y)},
			float32(weight),
			col,
		)
	}
}

// Present blits the surface to the current framebuffer at (x, y).
// Render textures are stored upside down, hence the negative source height.
func (s *Surface) Present(x, y float32) {
	if !s.loaded {
		return
	}
	rl.DrawTextureRec(
		s.target.Texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(s.width), Height: -float32(s.height)},
		rl.Vector2{X: x, Y: y},
		rl.White,
	)
}

func toRL(c canvas.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
