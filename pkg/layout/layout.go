// Package layout builds the closed-carton view: five structural panels and
// four open flaps as box primitives. Coordinates: X runs along length, Y
// along height and Z along width; the carton is centered on the origin.
package layout

import (
	"strings"

	"github.com/artienterprises/cartonview/pkg/kernel"
)

// Material names shared with the renderer's material provider.
const (
	MaterialOuter = "kraft-outer" // printed outer liner
	MaterialInner = "kraft-inner" // inner liner
	MaterialEdge  = "flute-edge"  // corrugated cut edge
)

// Descriptor name prefixes.
const (
	PanelPrefix = "panel-"
	FlapPrefix  = "flap-"
)

// FlapAngles are the hinge rotations in radians. Zero lays a flap flat,
// pointing outward from its hinge; the defaults lift all four above the
// rim by different amounts so the carton reads as hand-opened.
type FlapAngles struct {
	Front float64 `json:"front" yaml:"front"`
	Back  float64 `json:"back" yaml:"back"`
	Left  float64 `json:"left" yaml:"left"`
	Right float64 `json:"right" yaml:"right"`
}

// Options tunes the solid layout.
type Options struct {
	Flaps FlapAngles `json:"flaps" yaml:"flaps"`
}

// DefaultOptions returns the tuned flap angles.
func DefaultOptions() Options {
	return Options{
		Flaps: FlapAngles{Front: -0.5, Back: 0.6, Left: -0.4, Right: 0.45},
	}
}

// faceMaterials returns a six-entry array (right, left, top, bottom, front,
// back) with kraft on the two faces normal to the panel's thin axis and the
// corrugated edge everywhere else.
func faceMaterials(outer, inner kernel.Face) []string {
	fm := make([]string, 6)
	for i := range fm {
		fm[i] = MaterialEdge
	}
	fm[outer] = MaterialOuter
	fm[inner] = MaterialInner
	return fm
}

func box(name string, extent, pos [3]float64, outer, inner kernel.Face) kernel.Descriptor {
	return kernel.Descriptor{
		Name:          name,
		Kind:          kernel.GeometryBox,
		Extent:        extent,
		Material:      MaterialOuter,
		FaceMaterials: faceMaterials(outer, inner),
		Transform:     kernel.Transform{Position: pos},
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

// BuildSolid returns the five panels followed by the four flaps.
//
// Front and back panels span the full length; left and right panels sit
// between them, inset by wall on Z; the floor is inset on X and Z and rests
// on the bottom edge. The panels' combined envelope is exactly
// length x height x width. Inputs are assumed validated: wall*2 must be
// below min(length, width), otherwise extents go non-positive.
func BuildSolid(length, width, height, wall float64, opts Options) []kernel.Descriptor {
	hl, hw, hh := length/2, width/2, height/2
	innerL, innerW := length-2*wall, width-2*wall

	ds := make([]kernel.Descriptor, 0, 9)
	ds = append(ds,
		box(PanelPrefix+"front", [3]float64{length, height, wall},
			[3]float64{0, 0, hw - wall/2}, kernel.FaceFront, kernel.FaceBack),
		box(PanelPrefix+"back", [3]float64{length, height, wall},
			[3]float64{0, 0, -hw + wall/2}, kernel.FaceBack, kernel.FaceFront),
		box(PanelPrefix+"left", [3]float64{wall, height, innerW},
			[3]float64{-hl + wall/2, 0, 0}, kernel.FaceLeft, kernel.FaceRight),
		box(PanelPrefix+"right", [3]float64{wall, height, innerW},
			[3]float64{hl - wall/2, 0, 0}, kernel.FaceRight, kernel.FaceLeft),
		box(PanelPrefix+"floor", [3]float64{innerL, wall, innerW},
			[3]float64{0, -hh + wall/2, 0}, kernel.FaceBottom, kernel.FaceTop),
	)

	ds = append(ds, buildFlaps(length, width, height, wall, opts.Flaps)...)
	return ds
}

// buildFlaps pivots each flap on the top edge of its panel. Major flaps
// (front/back) span the full length and reach width/2; minor flaps
// (left/right) span the inset width and reach length/2.
func buildFlaps(length, width, height, wall float64, a FlapAngles) []kernel.Descriptor {
	hl, hw, hh := length/2, width/2, height/2
	innerW := width - 2*wall
	lift := wall / 2

	flap := func(name string, extent, pivot, rot, offset [3]float64) kernel.Descriptor {
		d := box(FlapPrefix+name, extent, pivot, kernel.FaceTop, kernel.FaceBottom)
		d.Transform.Rotation = rot
		d.Transform.Offset = offset
		return d
	}

	return []kernel.Descriptor{
		flap("front", [3]float64{length, wall, hw},
			[3]float64{0, hh, hw - wall/2}, [3]float64{a.Front, 0, 0}, [3]float64{0, lift, width / 4}),
		flap("back", [3]float64{length, wall, hw},
			[3]float64{0, hh, -hw + wall/2}, [3]float64{a.Back, 0, 0}, [3]float64{0, lift, -width / 4}),
		flap("left", [3]float64{hl, wall, innerW},
			[3]float64{-hl + wall/2, hh, 0}, [3]float64{0, 0, a.Left}, [3]float64{-length / 4, lift, 0}),
		flap("right", [3]float64{hl, wall, innerW},
			[3]float64{hl - wall/2, hh, 0}, [3]float64{0, 0, a.Right}, [3]float64{length / 4, lift, 0}),
	}
}

// Panels returns the structural panels of a solid layout.
func Panels(ds []kernel.Descriptor) []kernel.Descriptor {
	return byPrefix(ds, PanelPrefix)
}

// Flaps returns the flaps of a solid layout.
func Flaps(ds []kernel.Descriptor) []kernel.Descriptor {
	return byPrefix(ds, FlapPrefix)
}

func byPrefix(ds []kernel.Descriptor, prefix string) []kernel.Descriptor {
	var out []kernel.Descriptor
	for _, d := range ds {
		if strings.HasPrefix(d.Name, prefix) {
			out = append(out, d)
		}
	}
	return out
}
