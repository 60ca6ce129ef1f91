// Package tessellate turns a scene's descriptors into world-space triangle
// meshes using a geometry kernel. One mesh is produced per descriptor.
package tessellate

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/artienterprises/cartonview/pkg/kernel"
)

// Part is one triangulated descriptor with its resolved material.
type Part struct {
	Mesh       *kernel.Mesh
	Descriptor *kernel.Descriptor
	Material   kernel.Material
	// FaceMaterials resolves Descriptor.FaceMaterials, in face order.
	FaceMaterials []kernel.Material
}

// Tessellate triangulates every descriptor with k and resolves material
// names against materials. The tessellator is read-only and never mutates
// the descriptors. A descriptor that names an unknown material is an error.
func Tessellate(ds []kernel.Descriptor, materials []kernel.Material, k kernel.Kernel) ([]Part, error) {
	if len(ds) == 0 {
		return nil, nil
	}
	byName := lo.KeyBy(materials, func(m kernel.Material) string { return m.Name })

	parts := make([]Part, 0, len(ds))
	for i := range ds {
		p, err := tessellateOne(&ds[i], byName, k)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func tessellateOne(d *kernel.Descriptor, byName map[string]kernel.Material, k kernel.Kernel) (Part, error) {
	mat, ok := byName[d.Material]
	if !ok {
		return Part{}, fmt.Errorf("tessellate: %s: unknown material %q", d.Name, d.Material)
	}
	faces := make([]kernel.Material, len(d.FaceMaterials))
	for i, name := range d.FaceMaterials {
		if name == "" {
			faces[i] = mat
			continue
		}
		fm, ok := byName[name]
		if !ok {
			return Part{}, fmt.Errorf("tessellate: %s: unknown face material %q", d.Name, name)
		}
		faces[i] = fm
	}

	mesh, err := k.ToMesh(d)
	if err != nil {
		return Part{}, fmt.Errorf("tessellate: ToMesh failed for %s: %w", d.Name, err)
	}
	// Prefer the descriptor's name over whatever the kernel assigned.
	if d.Name != "" {
		mesh.PartName = d.Name
	}
	return Part{Mesh: mesh, Descriptor: d, Material: mat, FaceMaterials: faces}, nil
}
