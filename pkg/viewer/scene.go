package viewer

import (
	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/config"
	"github.com/artienterprises/cartonview/pkg/exploded"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/layout"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/strength"
)

// Material names shared by every solid scene.
const (
	MaterialOutline = "edge-line"
)

// Scene is everything the renderer and display widgets need for one
// configuration. It is rebuilt wholesale on every change.
type Scene struct {
	Config      config.Configuration `json:"config"`
	Descriptors []kernel.Descriptor  `json:"descriptors"`
	// Labels are the exploded-layer names; empty for the closed carton.
	Labels      []kernel.LabelAnchor `json:"labels"`
	Annotations annotate.Set         `json:"annotations"`
	Outline     []annotate.Line      `json:"outline"`
	Materials   []kernel.Material    `json:"materials"`
	Strength    strength.Result      `json:"strength"`
	// Wall is the drawn wall thickness in scene units.
	Wall float64 `json:"wall"`
}

// Material returns the named material, if present.
func (s *Scene) Material(name string) (kernel.Material, bool) {
	for _, m := range s.Materials {
		if m.Name == name {
			return m, true
		}
	}
	return kernel.Material{}, false
}

// solidMaterials is the palette of the closed carton.
func solidMaterials(prof ply.Profile) []kernel.Material {
	return []kernel.Material{
		{Name: layout.MaterialOuter, Color: prof.BoxColor, Roughness: 0.75, Opacity: 1},
		{Name: layout.MaterialInner, Color: "#D4C49A", Roughness: 0.85, Opacity: 1},
		{Name: layout.MaterialEdge, Color: "#8B7340", Roughness: 0.9, Opacity: 1},
		{Name: MaterialOutline, Color: "#9B8560", Roughness: 1, Opacity: 1},
	}
}

// Build computes the scene for c. c must already be valid for s.
func Build(c config.Configuration, s config.Settings) *Scene {
	prof := ply.MustLookup(c.Ply)
	l, w, h := c.Length*s.Scale, c.Width*s.Scale, c.Height*s.Scale
	wall := s.Wall(prof.Thickness)

	annot := s.Annotate
	annot.Scale = s.Scale

	sc := &Scene{
		Config:      c,
		Annotations: annotate.Build(c.Length, c.Width, c.Height, c.Unit, annot),
		Strength:    strength.ComputeFor(c.Ply, c.Length, c.Width, c.Height, s.Limits.MaxVolume()),
		Wall:        wall,
	}
	if c.Exploded {
		res := exploded.Build(prof, l, w, h, wall, s.Exploded)
		sc.Descriptors = res.Descriptors
		sc.Labels = res.Labels
		sc.Materials = res.Materials
		return sc
	}
	sc.Descriptors = layout.BuildSolid(l, w, h, wall, s.Layout)
	sc.Outline = annotate.Outline(c.Length, c.Width, c.Height, s.Scale)
	sc.Materials = solidMaterials(prof)
	return sc
}
