// Package kernel defines the renderer-facing geometry contract: meshes,
// mesh descriptors, label anchors and the Kernel interface that evaluates
// descriptors into world-space geometry. The core only emits descriptors;
// instancing geometry and materials is the renderer's job.
package kernel

// Kernel evaluates descriptors into world space. Implementations (sdfx)
// own the transform math so the builders stay free of matrix code.
type Kernel interface {
	// Bounds returns the world-space axis-aligned bounding box of d.
	Bounds(d *Descriptor) (min, max [3]float64)

	// ToMesh triangulates d and applies its transform. Box primitives
	// expand to 12 triangles; explicit meshes are transformed as-is.
	ToMesh(d *Descriptor) (*Mesh, error)
}
