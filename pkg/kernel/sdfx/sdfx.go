// Package sdfx implements the kernel.Kernel interface using the matrix,
// bounding-box and STL facilities of github.com/deadsy/sdfx.
package sdfx

import (
	"fmt"

	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

func toVec(a [3]float64) v3.Vec {
	return v3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func fromVec(v v3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// rotation returns Rx * Ry * Rz for Euler XYZ angles in radians.
func rotation(r [3]float64) sdf.M44 {
	return sdf.RotateX(r[0]).Mul(sdf.RotateY(r[1])).Mul(sdf.RotateZ(r[2]))
}

// Matrix returns the world matrix T(Position) * R * T(Offset).
func Matrix(t kernel.Transform) sdf.M44 {
	return sdf.Translate3d(toVec(t.Position)).
		Mul(rotation(t.Rotation)).
		Mul(sdf.Translate3d(toVec(t.Offset)))
}

// localBox returns the untransformed bounding box of d.
func localBox(d *kernel.Descriptor) sdf.Box3 {
	if d.Kind == kernel.GeometryBox {
		half := toVec(d.Extent).MulScalar(0.5)
		return sdf.Box3{Min: half.MulScalar(-1), Max: half}
	}
	min, max := d.LocalMesh().Bounds()
	return sdf.Box3{Min: toVec(min), Max: toVec(max)}
}

// Bounds returns the world-space axis-aligned bounding box of d.
func (k *SdfxKernel) Bounds(d *kernel.Descriptor) (min, max [3]float64) {
	bb := Matrix(d.Transform).MulBox(localBox(d))
	return fromVec(bb.Min), fromVec(bb.Max)
}

// Envelope returns the combined world bounds of ds. It panics on an empty
// set, which has no meaningful envelope.
func (k *SdfxKernel) Envelope(ds []kernel.Descriptor) (min, max [3]float64) {
	if len(ds) == 0 {
		panic("sdfx.Envelope: no descriptors")
	}
	bb := Matrix(ds[0].Transform).MulBox(localBox(&ds[0]))
	for i := 1; i < len(ds); i++ {
		bb = bb.Extend(Matrix(ds[i].Transform).MulBox(localBox(&ds[i])))
	}
	return fromVec(bb.Min), fromVec(bb.Max)
}

// ToMesh triangulates d in world space. Normals are rotated but not
// translated.
func (k *SdfxKernel) ToMesh(d *kernel.Descriptor) (*kernel.Mesh, error) {
	local := d.LocalMesh()
	if len(local.Vertices)%3 != 0 {
		return nil, fmt.Errorf("sdfx: descriptor %q has %d vertex floats, not a multiple of 3",
			d.Name, len(local.Vertices))
	}
	if len(local.Normals) != 0 && len(local.Normals) != len(local.Vertices) {
		return nil, fmt.Errorf("sdfx: descriptor %q has %d normal floats for %d vertex floats",
			d.Name, len(local.Normals), len(local.Vertices))
	}

	m := Matrix(d.Transform)
	rot := rotation(d.Transform.Rotation)

	out := &kernel.Mesh{
		Vertices: make([]float32, 0, len(local.Vertices)),
		Normals:  make([]float32, 0, len(local.Normals)),
		Indices:  append([]uint32(nil), local.Indices...),
		PartName: d.Name,
	}
	for i := 0; i < local.VertexCount(); i++ {
		p := m.MulPosition(toVec(local.Vertex(i)))
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		if len(local.Normals) == 0 {
			continue
		}
		n := rot.MulPosition(v3.Vec{
			X: float64(local.Normals[i*3]),
			Y: float64(local.Normals[i*3+1]),
			Z: float64(local.Normals[i*3+2]),
		})
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return out, nil
}

// Triangles converts world-space meshes to sdfx triangles.
func Triangles(meshes []*kernel.Mesh) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		for t := 0; t+2 < len(m.Indices); t += 3 {
			tri := &sdf.Triangle3{
				toVec(m.Vertex(int(m.Indices[t]))),
				toVec(m.Vertex(int(m.Indices[t+1]))),
				toVec(m.Vertex(int(m.Indices[t+2]))),
			}
			tris = append(tris, tri)
		}
	}
	return tris
}

// SaveSTL triangulates every descriptor and writes a binary STL file.
func (k *SdfxKernel) SaveSTL(path string, ds []kernel.Descriptor) error {
	meshes := make([]*kernel.Mesh, 0, len(ds))
	for i := range ds {
		m, err := k.ToMesh(&ds[i])
		if err != nil {
			return fmt.Errorf("sdfx: export: %w", err)
		}
		meshes = append(meshes, m)
	}
	tris := Triangles(meshes)
	if len(tris) == 0 {
		return fmt.Errorf("sdfx: export: nothing to write")
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: export %s: %w", path, err)
	}
	return nil
}
