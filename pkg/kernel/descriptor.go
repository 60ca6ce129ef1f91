package kernel

// ---------------------------------------------------------------------------
// Descriptors
// ---------------------------------------------------------------------------

// GeometryKind distinguishes primitive boxes from explicit meshes.
type GeometryKind int

const (
	GeometryBox  GeometryKind = iota // primitive box, see Descriptor.Extent
	GeometryMesh                     // explicit triangles, see Descriptor.Mesh
)

func (k GeometryKind) String() string {
	switch k {
	case GeometryBox:
		return "box"
	case GeometryMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Face indexes a box face in face-material order.
type Face int

const (
	FaceRight Face = iota // +X
	FaceLeft              // -X
	FaceTop               // +Y
	FaceBottom            // -Y
	FaceFront             // +Z
	FaceBack              // -Z
)

// Transform places a descriptor. The world matrix is
// T(Position) * Rx * Ry * Rz * T(Offset): Position is the pivot (or plain
// position when Offset is zero), Rotation is applied about it, and Offset
// moves the geometry inside the rotated frame. Flaps use the pivot at
// their hinge edge.
type Transform struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"` // Euler XYZ, radians
	Offset   [3]float64 `json:"offset"`
}

// Material is the renderer-independent description of a surface. Textures
// are supplied by the renderer's material provider, keyed by Name.
type Material struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"` // "#RRGGBB"
	Roughness float64 `json:"roughness"`
	Opacity   float64 `json:"opacity"`
}

// Descriptor is one renderable unit. The core never allocates renderer
// objects; it only emits descriptors.
type Descriptor struct {
	Name     string       `json:"name"`
	Kind     GeometryKind `json:"kind"`
	Extent   [3]float64   `json:"extent,omitempty"` // box size for GeometryBox
	Mesh     *Mesh        `json:"mesh,omitempty"`   // geometry for GeometryMesh
	Material string       `json:"material"`
	// FaceMaterials overrides Material per box face when non-empty.
	FaceMaterials []string  `json:"faceMaterials,omitempty"`
	Transform     Transform `json:"transform"`
	CastShadow    bool      `json:"castShadow"`
	ReceiveShadow bool      `json:"receiveShadow"`
}

// MaterialFor returns the material for face f, honoring FaceMaterials.
func (d *Descriptor) MaterialFor(f Face) string {
	if int(f) < len(d.FaceMaterials) && d.FaceMaterials[f] != "" {
		return d.FaceMaterials[f]
	}
	return d.Material
}

// LocalMesh returns the untransformed geometry of d.
func (d *Descriptor) LocalMesh() *Mesh {
	if d.Kind == GeometryMesh {
		if d.Mesh == nil {
			return &Mesh{PartName: d.Name}
		}
		return d.Mesh
	}
	m := BoxMesh(d.Extent[0], d.Extent[1], d.Extent[2])
	m.PartName = d.Name
	return m
}

// ---------------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------------

// LabelAnchor is a piece of text pinned to a 3D point. The renderer
// projects it to 2D; absence of a projector leaves it unused.
type LabelAnchor struct {
	Text     string     `json:"text"`
	Position [3]float64 `json:"position"`
	Class    string     `json:"class"`
}
