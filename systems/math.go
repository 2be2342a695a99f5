package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const twoPi = 2 * math.Pi

// mapRange linearly remaps v from [inMin, inMax] to [outMin, outMax] without clamping.
func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapPhase wraps a phase to [0, 2*Pi).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	if p >= twoPi {
		p = 0
	}
	return p
}

// wrapCoord wraps v into [0, size). Works for any overshoot, so bounds that
// shrink on resize are corrected on the next update.
func wrapCoord(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// Mod of a tiny negative can round up to size
	if v >= size {
		v = 0
	}
	return v
}

// limit scales v down so its magnitude does not exceed max.
func limit(v r2.Vec, max float64) r2.Vec {
	n2 := r2.Norm2(v)
	if n2 <= max*max || n2 == 0 {
		return v
	}
	return r2.Scale(max/math.Sqrt(n2), v)
}

// uniform returns a value in [lo, hi).
func uniform(rng interface{ Float64() float64 }, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
