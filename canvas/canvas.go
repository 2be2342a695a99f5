// Package canvas defines the drawing surface the sketches render onto.
package canvas

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Canvas is the immediate-mode drawing API used by sketch renderers.
type Canvas interface {
	// Size returns the drawable size in canvas units.
	Size() (w, h float64)
	// Clear wipes the canvas to transparent.
	Clear()
	// Circle fills a circle of the given diameter.
	Circle(x, y, diameter float64, c Color)
	// Line strokes a segment.
	Line(x1, y1, x2, y2, weight float64, c Color)
	// ClosedPath strokes a closed polyline without filling it.
	ClosedPath(points []r2.Vec, weight float64, c Color)
}

// Surface is a Canvas backed by a releasable resource (a texture, a
// terminal region). Draw calls are only valid between Begin and End.
type Surface interface {
	Canvas
	Begin()
	End()
	Resize(w, h int)
	// Release frees the backing resource. Calling it more than once is a no-op.
	Release()
}

// Factory allocates a surface of the given pixel size.
type Factory func(w, h int) Surface
