package tessellate_test

import (
	"testing"

	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/kernel/sdfx"
	"github.com/artienterprises/cartonview/pkg/tessellate"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New()
}

var testMaterials = []kernel.Material{
	{Name: "outer", Color: "#C4A86B", Roughness: 0.75, Opacity: 1},
	{Name: "inner", Color: "#D4C49A", Roughness: 0.85, Opacity: 1},
}

// makeBox creates a box descriptor with the given name and size.
func makeBox(name string, x, y, z float64) kernel.Descriptor {
	return kernel.Descriptor{
		Name:     name,
		Kind:     kernel.GeometryBox,
		Extent:   [3]float64{x, y, z},
		Material: "outer",
	}
}

func TestSingleBox(t *testing.T) {
	parts, err := tessellate.Tessellate([]kernel.Descriptor{makeBox("panel", 1, 0.5, 0.02)}, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	p := parts[0]
	if p.Mesh.PartName != "panel" {
		t.Errorf("PartName = %q, want %q", p.Mesh.PartName, "panel")
	}
	if p.Mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", p.Mesh.TriangleCount())
	}
	if p.Material.Color != "#C4A86B" {
		t.Errorf("Material.Color = %q, want #C4A86B", p.Material.Color)
	}
}

func TestTwoParts(t *testing.T) {
	ds := []kernel.Descriptor{makeBox("a", 1, 1, 1), makeBox("b", 2, 1, 1)}
	ds[1].Material = "inner"

	parts, err := tessellate.Tessellate(ds, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[1].Material.Name != "inner" {
		t.Errorf("second part material = %q, want inner", parts[1].Material.Name)
	}
}

func TestPartWithTransform(t *testing.T) {
	d := makeBox("moved", 1, 1, 1)
	d.Transform.Position = [3]float64{10, 0, 0}

	parts, err := tessellate.Tessellate([]kernel.Descriptor{d}, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	min, max := parts[0].Mesh.Bounds()
	if abs(min[0]-9.5) > 1e-6 || abs(max[0]-10.5) > 1e-6 {
		t.Errorf("x bounds = [%v, %v], want [9.5, 10.5]", min[0], max[0])
	}
}

func TestFaceMaterials(t *testing.T) {
	d := makeBox("panel", 1, 1, 0.1)
	d.FaceMaterials = []string{"", "inner", "", "", "", ""}

	parts, err := tessellate.Tessellate([]kernel.Descriptor{d}, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	faces := parts[0].FaceMaterials
	if len(faces) != 6 {
		t.Fatalf("expected 6 face materials, got %d", len(faces))
	}
	if faces[0].Name != "outer" || faces[1].Name != "inner" {
		t.Errorf("faces = %q, %q; want outer, inner", faces[0].Name, faces[1].Name)
	}
}

func TestMeshDescriptor(t *testing.T) {
	m := kernel.BoxMesh(1, 1, 1)
	d := kernel.Descriptor{Name: "flute", Kind: kernel.GeometryMesh, Mesh: m, Material: "inner"}

	parts, err := tessellate.Tessellate([]kernel.Descriptor{d}, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if parts[0].Mesh.VertexCount() != m.VertexCount() {
		t.Errorf("VertexCount() = %d, want %d", parts[0].Mesh.VertexCount(), m.VertexCount())
	}
	if parts[0].Mesh == m {
		t.Error("tessellated mesh must not alias the descriptor mesh")
	}
}

func TestEmptyScene(t *testing.T) {
	parts, err := tessellate.Tessellate(nil, testMaterials, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("expected 0 parts, got %d", len(parts))
	}
}

func TestUnknownMaterial(t *testing.T) {
	d := makeBox("panel", 1, 1, 1)
	d.Material = "plywood"
	if _, err := tessellate.Tessellate([]kernel.Descriptor{d}, testMaterials, newKernel()); err == nil {
		t.Error("expected error for unknown material")
	}

	d = makeBox("panel", 1, 1, 1)
	d.FaceMaterials = []string{"walnut"}
	if _, err := tessellate.Tessellate([]kernel.Descriptor{d}, testMaterials, newKernel()); err == nil {
		t.Error("expected error for unknown face material")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
