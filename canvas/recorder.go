package canvas

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// OpKind identifies a recorded draw operation.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
	OpPath
)

// Op is a single recorded draw operation.
type Op struct {
	Kind   OpKind
	Points []r2.Vec // circle centre, line endpoints or path vertices
	Size   float64  // diameter or stroke weight
	Color  Color
}

// Recorder is an in-memory Surface. It keeps the operations of the most
// recent frame and counts any misuse so tests can assert on it.
type Recorder struct {
	w, h int

	Ops      []Op
	Frames   int // completed Begin/End pairs
	Releases int // calls to Release that actually released

	// DrawsAfterRelease counts draw calls that reached a released surface.
	DrawsAfterRelease int
	// DrawsOutsideFrame counts draw calls made outside Begin/End.
	DrawsOutsideFrame int

	inFrame  bool
	released bool
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

// RecorderFactory returns a Factory that records every surface it creates.
func RecorderFactory(created *[]*Recorder) Factory {
	return func(w, h int) Surface {
		r := NewRecorder(w, h)
		if created != nil {
			*created = append(*created, r)
		}
		return r
	}
}

// Released reports whether Release has been called.
func (r *Recorder) Released() bool {
	return r.released
}

// Count returns how many ops of the given kind were recorded in the last frame.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for i := range r.Ops {
		if r.Ops[i].Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Size() (float64, float64) {
	return float64(r.w), float64(r.h)
}

func (r *Recorder) Begin() {
	r.inFrame = true
	r.Ops = r.Ops[:0]
}

func (r *Recorder) End() {
	if r.inFrame {
		r.Frames++
	}
	r.inFrame = false
}

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
}

func (r *Recorder) Release() {
	if r.released {
		return
	}
	r.released = true
	r.Releases++
	r.Ops = nil
}

func (r *Recorder) Clear() {
	r.record(Op{Kind: OpClear})
}

func (r *Recorder) Circle(x, y, diameter float64, c Color) {
	r.record(Op{Kind: OpCircle, Points: []r2.Vec{{X: x, Y: y}}, Size: diameter, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, weight float64, c Color) {
	r.record(Op{Kind: OpLine, Points: []r2.Vec{{X: x1, Y: y1}, {X: x2, Y: y2}}, Size: weight, Color: c})
}

func (r *Recorder) ClosedPath(points []r2.Vec, weight float64, c Color) {
	pts := make([]r2.Vec, len(points))
	copy(pts, points)
	r.record(Op{Kind: OpPath, Points: pts, Size: weight, Color: c})
}

func (r *Recorder) record(op Op) {
	if r.released {
		r.DrawsAfterRelease++
		return
	}
	if !r.inFrame {
		r.DrawsOutsideFrame++
	}
	r.Ops = append(r.Ops, op)
}
