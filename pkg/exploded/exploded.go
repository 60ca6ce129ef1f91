// Package exploded lays out a ply's liners and flutes as a separated
// vertical stack with one label per layer.
package exploded

import (
	"fmt"

	"github.com/artienterprises/cartonview/pkg/flute"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/ply"
)

// Label classes.
const (
	ClassLiner = "layer-liner"
	ClassFlute = "layer-flute"
)

// Options tunes the stack. Footprint fractions keep every layer visibly
// smaller than the closed carton.
type Options struct {
	Gap             float64 `json:"gap" yaml:"gap"`                           // center-to-center spacing
	FootprintLength float64 `json:"footprintLength" yaml:"footprint_length"` // fraction of length
	FootprintWidth  float64 `json:"footprintWidth" yaml:"footprint_width"`   // fraction of width
	LinerScale      float64 `json:"linerScale" yaml:"liner_scale"`           // liner thickness / wall
	FluteScale      float64 `json:"fluteScale" yaml:"flute_scale"`           // flute height / wall
	FluteAmplitude  float64 `json:"fluteAmplitude" yaml:"flute_amplitude"`   // amplitude / flute height
	FluteFrequency  float64 `json:"fluteFrequency" yaml:"flute_frequency"`
	FluteRows       int     `json:"fluteRows" yaml:"flute_rows"`
	FluteCols       int     `json:"fluteCols" yaml:"flute_cols"`
	LabelMargin     float64 `json:"labelMargin" yaml:"label_margin"`
	Opacity         float64 `json:"opacity" yaml:"opacity"`
	Roughness       float64 `json:"roughness" yaml:"roughness"`
}

// DefaultOptions returns the tuned stack constants.
func DefaultOptions() Options {
	return Options{
		Gap:             0.25,
		FootprintLength: 0.88,
		FootprintWidth:  0.68,
		LinerScale:      0.5,
		FluteScale:      1.5,
		FluteAmplitude:  flute.DefaultAmplitudeOf,
		FluteFrequency:  flute.DefaultFrequency,
		FluteRows:       flute.DefaultRows,
		FluteCols:       flute.DefaultCols,
		LabelMargin:     0.15,
		Opacity:         0.9,
		Roughness:       0.8,
	}
}

// Result is the descriptor and label set for one stack.
type Result struct {
	Descriptors []kernel.Descriptor  `json:"descriptors"`
	Labels      []kernel.LabelAnchor `json:"labels"`
	Materials   []kernel.Material    `json:"materials"`
}

// Offsets returns the vertical offset of each of n layers,
// (i - (n-1)/2) * gap, so the stack is centered on y=0.
func Offsets(n int, gap float64) []float64 {
	if n < 1 || n%2 == 0 {
		panic(fmt.Sprintf("exploded: layer count must be odd and positive, got %d", n))
	}
	out := make([]float64, n)
	mid := float64(n-1) / 2
	for i := range out {
		out[i] = (float64(i) - mid) * gap
	}
	return out
}

// MaterialName returns the per-layer material key.
func MaterialName(i int, isFlute bool) string {
	if isFlute {
		return fmt.Sprintf("flute-%d", i)
	}
	return fmt.Sprintf("liner-%d", i)
}

// Build stacks prof's layers. Even indices are flat liner boxes; odd
// indices are flute surfaces with a larger apparent thickness. The stack's
// spacing comes from opts.Gap, so height does not change the geometry.
func Build(prof ply.Profile, length, width, height, wall float64, opts Options) Result {
	n := prof.LayerCount()
	offsets := Offsets(n, opts.Gap)
	footL := length * opts.FootprintLength
	footW := width * opts.FootprintWidth

	res := Result{
		Descriptors: make([]kernel.Descriptor, 0, n),
		Labels:      make([]kernel.LabelAnchor, 0, n),
		Materials:   make([]kernel.Material, 0, n),
	}

	for i, y := range offsets {
		isFlute := prof.IsFlute(i)
		mat := MaterialName(i, isFlute)
		res.Materials = append(res.Materials, kernel.Material{
			Name:      mat,
			Color:     prof.LayerColor(i),
			Roughness: opts.Roughness,
			Opacity:   opts.Opacity,
		})

		d := kernel.Descriptor{
			Name:          fmt.Sprintf("layer-%d", i),
			Material:      mat,
			Transform:     kernel.Transform{Position: [3]float64{0, y, 0}},
			CastShadow:    true,
			ReceiveShadow: true,
		}
		class := ClassLiner
		if isFlute {
			h := wall * opts.FluteScale
			d.Kind = kernel.GeometryMesh
			d.Mesh = flute.BuildSurface(flute.Params{
				Width:     footL,
				Height:    h,
				Depth:     footW,
				Amplitude: h * opts.FluteAmplitude,
				Frequency: opts.FluteFrequency,
				Rows:      opts.FluteRows,
				Cols:      opts.FluteCols,
			})
			d.Mesh.PartName = d.Name
			class = ClassFlute
		} else {
			d.Kind = kernel.GeometryBox
			d.Extent = [3]float64{footL, wall * opts.LinerScale, footW}
		}
		res.Descriptors = append(res.Descriptors, d)

		res.Labels = append(res.Labels, kernel.LabelAnchor{
			Text:     prof.LayerName(i),
			Position: [3]float64{footL/2 + opts.LabelMargin, y, 0},
			Class:    class,
		})
	}
	return res
}
