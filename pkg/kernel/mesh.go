package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // descriptor this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as float64 components.
func (m *Mesh) Vertex(i int) [3]float64 {
	return [3]float64{
		float64(m.Vertices[i*3]),
		float64(m.Vertices[i*3+1]),
		float64(m.Vertices[i*3+2]),
	}
}

// Bounds returns the local axis-aligned bounding box of the vertices.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	min = m.Vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max
}

// ComputeNormals replaces Normals with area-weighted vertex normals derived
// from the current positions and winding. Vertices referenced by no
// triangle get (0,1,0).
func (m *Mesh) ComputeNormals() {
	acc := make([]float64, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		a, b, c := m.Vertex(ia), m.Vertex(ib), m.Vertex(ic)
		e1 := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, idx := range []int{ia, ib, ic} {
			acc[idx*3] += n[0]
			acc[idx*3+1] += n[1]
			acc[idx*3+2] += n[2]
		}
	}

	m.Normals = make([]float32, len(m.Vertices))
	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := acc[i*3], acc[i*3+1], acc[i*3+2]
		l := math.Sqrt(x*x + y*y + z*z)
		if l == 0 {
			m.Normals[i*3+1] = 1
			continue
		}
		m.Normals[i*3] = float32(x / l)
		m.Normals[i*3+1] = float32(y / l)
		m.Normals[i*3+2] = float32(z / l)
	}
}

// boxFaces lists, in face-material order (right, left, top, bottom, front,
// back), the outward normal and the four corner signs of each face wound
// counter-clockwise when seen from outside.
var boxFaces = [6]struct {
	normal  [3]float64
	corners [4][3]float64
}{
	{[3]float64{1, 0, 0}, [4][3]float64{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float64{-1, 0, 0}, [4][3]float64{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float64{0, 1, 0}, [4][3]float64{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float64{0, -1, 0}, [4][3]float64{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float64{0, 0, 1}, [4][3]float64{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float64{0, 0, -1}, [4][3]float64{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
}

// BoxMesh returns a centered box of the given extent with 4 vertices and
// 2 triangles per face. Faces appear in face-material order, so triangles
// 2*f and 2*f+1 belong to face f.
func BoxMesh(x, y, z float64) *Mesh {
	half := [3]float64{x / 2, y / 2, z / 2}
	m := &Mesh{
		Vertices: make([]float32, 0, 24*3),
		Normals:  make([]float32, 0, 24*3),
		Indices:  make([]uint32, 0, 36),
	}
	for f, face := range boxFaces {
		for _, c := range face.corners {
			m.Vertices = append(m.Vertices,
				float32(c[0]*half[0]), float32(c[1]*half[1]), float32(c[2]*half[2]))
			m.Normals = append(m.Normals,
				float32(face.normal[0]), float32(face.normal[1]), float32(face.normal[2]))
		}
		base := uint32(f * 4)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
