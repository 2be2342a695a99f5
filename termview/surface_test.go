package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/sketch"
)

type fakeTarget struct {
	runes  map[[2]int]rune
	styles map[[2]int]tcell.Style
	writes int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{runes: map[[2]int]rune{}, styles: map[[2]int]tcell.Style{}}
}

func (f *fakeTarget) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f.runes[[2]int{x, y}] = primary
	f.styles[[2]int{x, y}] = style
	f.writes++
}

func (f *fakeTarget) painted() int {
	n := 0
	for _, r := range f.runes {
		if r != ' ' {
			n++
		}
	}
	return n
}

var white = canvas.Color{R: 255, G: 255, B: 255, A: 255}

func TestSurfaceGrid(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{80, 80, 20, 10},
		{400, 400, 100, 50},
		{2, 2, 1, 1},
	}
	for _, tt := range tests {
		s := NewSurface(nil, tt.w, tt.h)
		if c, r := s.Grid(); c != tt.cols || r != tt.rows {
			t.Errorf("%dx%d: grid = %dx%d, want %dx%d", tt.w, tt.h, c, r, tt.cols, tt.rows)
		}
	}
}

func TestCanvasSizeRoundTrip(t *testing.T) {
	w, h := CanvasSize(80, 24)
	s := NewSurface(nil, w, h)
	if c, r := s.Grid(); c != 80 || r != 24 {
		t.Errorf("grid = %dx%d, want 80x24", c, r)
	}
	if x, y := CellCenter(0, 0); x != 2 || y != 4 {
		t.Errorf("cell center = (%v, %v), want (2, 4)", x, y)
	}
}

func TestCircleFillsCenterCell(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 40, 40)
	s.Begin()
	s.Clear()
	s.Circle(6, 12, 1, white)
	s.End()

	if target.runes[[2]int{1, 1}] != runeDot {
		t.Errorf("center cell = %q, want dot", target.runes[[2]int{1, 1}])
	}
	if target.painted() != 1 {
		t.Errorf("painted %d cells, want 1", target.painted())
	}
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255))
	if target.styles[[2]int{1, 1}] != want {
		t.Error("unexpected cell style")
	}
}

func TestLineCoversEndpoints(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 80, 80)
	s.Begin()
	s.Line(0, 0, 79, 0, 1, white)
	s.End()

	for x := 0; x < 20; x++ {
		if target.runes[[2]int{x, 0}] != runeLine {
			t.Fatalf("cell (%d, 0) not on the line", x)
		}
	}
	if target.painted() != 20 {
		t.Errorf("painted %d cells, want 20", target.painted())
	}
}

func TestClosedPathClosesLoop(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 80, 80)
	s.Begin()
	s.ClosedPath([]r2.Vec{{X: 2, Y: 4}, {X: 38, Y: 4}, {X: 38, Y: 36}}, 2, white)
	s.End()

	// Closing edge runs back from (38, 36) to (2, 4)
	if target.runes[[2]int{0, 0}] != runeStroke || target.runes[[2]int{9, 4}] != runeStroke {
		t.Error("path corners missing")
	}
}

func TestAlphaBlending(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 8, 8)
	s.Begin()
	s.Circle(2, 4, 1, canvas.Color{R: 200, G: 100, B: 0, A: 128})
	s.End()

	// 128/255 of (200, 100, 0) over black
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 50, 0))
	if target.styles[[2]int{0, 0}] != want {
		t.Error("half-transparent colour not blended over black")
	}
}

func TestOffGridAndTransparentDrawsIgnored(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 40, 40)
	s.Begin()
	s.Circle(-50, -50, 2, white)
	s.Line(500, 500, 600, 600, 1, white)
	s.Circle(10, 10, 2, canvas.Color{R: 255})
	s.End()
	if target.painted() != 0 {
		t.Errorf("painted %d cells, want 0", target.painted())
	}
}

func TestReleasedSurfaceStopsFlushing(t *testing.T) {
	target := newFakeTarget()
	s := NewSurface(target, 40, 40)
	s.Release()
	s.Begin()
	s.Circle(10, 10, 4, white)
	s.Resize(80, 80)
	s.End()
	if target.writes != 0 {
		t.Errorf("released surface wrote %d cells", target.writes)
	}
}

func TestMeshSketchRendersToCells(t *testing.T) {
	target := newFakeTarget()
	h, err := sketch.Mount(sketch.KindMesh, Factory(target), sketch.Size{W: 320, H: 192}, sketch.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Dispose()

	h.Frame()
	if target.painted() == 0 {
		t.Error("mesh frame painted nothing")
	}
	if target.writes != 80*24 {
		t.Errorf("flushed %d cells, want the full 80x24 grid", target.writes)
	}
}
