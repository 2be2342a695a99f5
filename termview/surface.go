// Package termview rasterises sketches onto a terminal cell grid with tcell.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
)

// Canvas pixels covered by one terminal cell. Cells are roughly twice as
// tall as they are wide.
const (
	CellWidth  = 4
	CellHeight = 8
)

const (
	runeDot    = '●'
	runeLine   = '·'
	runeStroke = '•'
)

// Target receives flushed cells. tcell.Screen satisfies it.
type Target interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type cell struct {
	r, g, b float64
	ch      rune
}

// Surface is a canvas.Surface drawing into a grid of terminal cells.
// End flushes the grid to the target; the caller shows the screen.
type Surface struct {
	target   Target
	cols     int
	rows     int
	cells    []cell
	released bool
}

// NewSurface creates a surface for a w×h canvas.
func NewSurface(target Target, w, h int) *Surface {
	s := &Surface{target: target}
	s.Resize(w, h)
	return s
}

// Factory returns a canvas.Factory drawing to target.
func Factory(target Target) canvas.Factory {
	return func(w, h int) canvas.Surface {
		return NewSurface(target, w, h)
	}
}

// CanvasSize converts a terminal size in cells to canvas pixels.
func CanvasSize(cols, rows int) (int, int) {
	return cols * CellWidth, rows * CellHeight
}

// CellCenter converts a terminal cell to the canvas position of its center.
func CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

// Grid returns the surface size in cells.
func (s *Surface) Grid() (int, int) { return s.cols, s.rows }

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *Surface) Begin() {}

// End flushes every cell to the target.
func (s *Surface) End() {
	if s.released || s.target == nil {
		return
	}
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			if c.ch == 0 {
				s.target.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			col := tcell.NewRGBColor(channel(c.r), channel(c.g), channel(c.b))
			s.target.SetContent(x, y, c.ch, nil, tcell.StyleDefault.Foreground(col))
		}
	}
}

func (s *Surface) Resize(w, h int) {
	if s.released {
		return
	}
	s.cols = max(w/CellWidth, 1)
	s.rows = max(h/CellHeight, 1)
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *Surface) Release() {
	s.released = true
	s.cells = nil
}

func (s *Surface) Clear() {
	if s.released {
		return
	}
	clear(s.cells)
}

// Circle fills every cell whose center lies inside the circle, and always
// the cell under the center.
func (s *Surface) Circle(x, y, diameter float64, c canvas.Color) {
	if s.released {
		return
	}
	r := diameter / 2
	cx, cy := cellOf(x, CellWidth), cellOf(y, CellHeight)
	s.plot(cx, cy, runeDot, c)

	minX, maxX := cellOf(x-r, CellWidth), cellOf(x+r, CellWidth)
	minY, maxY := cellOf(y-r, CellHeight), cellOf(y+r, CellHeight)
	for gy := minY; gy <= maxY; gy++ {
		for gx := minX; gx <= maxX; gx++ {
			if gx == cx && gy == cy {
				continue
			}
			px, py := CellCenter(gx, gy)
			if math.Hypot(px-x, py-y) <= r {
				s.plot(gx, gy, runeDot, c)
			}
		}
	}
}

func (s *Surface) Line(x1, y1, x2, y2, weight float64, c canvas.Color) {
	if s.released {
		return
	}
	s.segment(x1, y1, x2, y2, runeLine, c)
}

func (s *Surface) ClosedPath(points []r2.Vec, weight float64, c canvas.Color) {
	if s.released || len(points) < 2 {
		return
	}
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		s.segment(a.X, a.Y, b.X, b.Y, runeStroke, c)
	}
}

// segment walks the cells between two canvas points.
func (s *Surface) segment(x1, y1, x2, y2 float64, ch rune, c canvas.Color) {
	ax, ay := x1/CellWidth, y1/CellHeight
	bx, by := x2/CellWidth, y2/CellHeight
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		s.plot(int(math.Floor(ax)), int(math.Floor(ay)), ch, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.plot(int(math.Floor(ax+(bx-ax)*t)), int(math.Floor(ay+(by-ay)*t)), ch, c)
	}
}

// plot alpha-blends c over the cell at (x, y). Off-grid cells are dropped.
func (s *Surface) plot(x, y int, ch rune, c canvas.Color) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows || c.A == 0 {
		return
	}
	a := float64(c.A) / 255
	cl := &s.cells[y*s.cols+x]
	cl.r = cl.r*(1-a) + float64(c.R)*a
	cl.g = cl.g*(1-a) + float64(c.G)*a
	cl.b = cl.b*(1-a) + float64(c.B)*a
	cl.ch = ch
}

func cellOf(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}

func channel(v float64) int32 {
	return int32(math.Round(max(0, min(255, v))))
}
