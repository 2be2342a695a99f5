// Package systems holds the per-frame simulation cores of the four sketches.
// Nothing in here draws; renderers read the exported state after Update.
package systems

// Pointer is the latest pointer snapshot. Present is false when no pointer
// is over the surface, which is distinct from a pointer at the origin.
type Pointer struct {
	X, Y    float64
	Present bool
}

// At returns a present pointer at (x, y).
func At(x, y float64) Pointer {
	return Pointer{X: x, Y: y, Present: true}
}

// Input is the read-only snapshot handed to Update once per frame.
type Input struct {
	Frame   int64 // monotonically increasing, 1 on the first frame after mount
	Pointer Pointer
}

// Simulation is the contract shared by the four cores.
type Simulation interface {
	Update(in Input)
	Resize(w, h float64)
	Bounds() (w, h float64)
}
