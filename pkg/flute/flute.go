// Package flute generates corrugated medium surfaces. The hero stack and the
// configurator's exploded layers both call BuildSurface; only the size and
// segment counts differ between them.
package flute

import (
	"fmt"
	"math"

	"github.com/artienterprises/cartonview/pkg/kernel"
)

// Default grid and wave constants, matching the hero animation.
const (
	DefaultRows        = 6
	DefaultCols        = 40
	DefaultFrequency   = 10
	DefaultAmplitudeOf = 0.35 // amplitude as a fraction of flute height
)

// Params describes a flute surface. Width runs along X (the wave axis),
// Depth along Z; Height is the nominal flute height and only feeds the
// default amplitude.
type Params struct {
	Width     float64
	Height    float64
	Depth     float64
	Amplitude float64
	Frequency float64 // full waves across Width
	Rows      int     // segments along Z
	Cols      int     // segments along X
}

// Defaults returns hero-style parameters for a width x height x depth flute.
func Defaults(width, height, depth float64) Params {
	return Params{
		Width:     width,
		Height:    height,
		Depth:     depth,
		Amplitude: height * DefaultAmplitudeOf,
		Frequency: DefaultFrequency,
		Rows:      DefaultRows,
		Cols:      DefaultCols,
	}
}

// Displacement returns the vertical offset of grid column i.
func (p Params) Displacement(i int) float64 {
	return p.Amplitude * math.Sin(2*math.Pi*p.Frequency*float64(i)/float64(p.Cols))
}

// BuildSurface returns a (Rows+1) x (Cols+1) vertex grid spanning
// [-Width/2, Width/2] x [-Depth/2, Depth/2], displaced along Y by a sine
// wave that varies along X only. Rows advance from +Z to -Z so that the
// cell triangles (a,b,c) and (b,d,c) wind counter-clockwise seen from +Y;
// normals are recomputed from the displaced positions.
func BuildSurface(p Params) *kernel.Mesh {
	if p.Rows < 1 || p.Cols < 1 {
		panic(fmt.Sprintf("flute: grid needs at least one row and column, got %dx%d", p.Rows, p.Cols))
	}

	stride := p.Cols + 1
	n := (p.Rows + 1) * stride
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, n*3),
		Indices:  make([]uint32, 0, p.Rows*p.Cols*6),
	}

	halfW, halfD := p.Width/2, p.Depth/2
	for j := 0; j <= p.Rows; j++ {
		z := halfD - float64(j)/float64(p.Rows)*p.Depth
		for i := 0; i <= p.Cols; i++ {
			x := -halfW + float64(i)/float64(p.Cols)*p.Width
			m.Vertices = append(m.Vertices, float32(x), float32(p.Displacement(i)), float32(z))
		}
	}

	for j := 0; j < p.Rows; j++ {
		for i := 0; i < p.Cols; i++ {
			a := uint32(j*stride + i)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			m.Indices = append(m.Indices, a, b, c, b, d, c)
		}
	}

	m.ComputeNormals()
	return m
}
