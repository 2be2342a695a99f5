package systems

import (
	"fmt"
	"math"
	"math/rand"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise samples a smooth pseudo-random field. Values are in [0, 1].
type Noise interface {
	Noise3(x, y, z float64) float64
}

// NewNoise creates a noise source for the named backend. octaves is
// ignored by opensimplex.
func NewNoise(backend string, seed int64, octaves int) (Noise, error) {
	switch backend {
	case "", "perlin":
		p := NewPerlinNoise(seed)
		p.Octaves = max(octaves, 1)
		return p, nil
	case "opensimplex":
		return &simplexNoise{n: opensimplex.New(seed)}, nil
	case "aquilax":
		if octaves < 1 {
			octaves = 2
		}
		return &aquilaxNoise{p: perlin.NewPerlin(2, 2, int32(octaves), seed)}, nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// PerlinNoise is gradient noise over a seeded permutation table, summed
// over Octaves layers.
type PerlinNoise struct {
	Octaves int
	perm    [512]int
}

// NewPerlinNoise creates a single-octave Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{Octaves: 1}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate so corner hashes never index past the table
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Noise3 returns the field value in [0, 1]. Each octave doubles the
// frequency and halves the amplitude; the sum is divided by the total
// amplitude so the range does not grow with the octave count.
func (p *PerlinNoise) Noise3(x, y, z float64) float64 {
	octaves := max(p.Octaves, 1)
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * p.Signed3(x*freq, y*freq, z*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return normalize(sum / norm)
}

// Signed3 returns the raw gradient noise value in roughly [-1, 1].
func (p *PerlinNoise) Signed3(x, y, z float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	return lerp(w, lerp(v, lerp(u, grad3D(p.perm[AA], x, y, z),
		grad3D(p.perm[BA], x-1, y, z)),
		lerp(u, grad3D(p.perm[AB], x, y-1, z),
			grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3D(p.perm[AA+1], x, y, z-1),
			grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1),
				grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// normalize maps a signed [-1, 1] sample to [0, 1], clamping overshoot.
func normalize(v float64) float64 {
	return clamp01((v + 1) * 0.5)
}

type simplexNoise struct {
	n opensimplex.Noise
}

func (s *simplexNoise) Noise3(x, y, z float64) float64 {
	return normalize(s.n.Eval3(x, y, z))
}

type aquilaxNoise struct {
	p *perlin.Perlin
}

func (a *aquilaxNoise) Noise3(x, y, z float64) float64 {
	return normalize(a.p.Noise3D(x, y, z))
}
