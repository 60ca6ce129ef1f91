package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/artienterprises/cartonview/pkg/kernel"
)

const eps = 1e-9

func approx(a, b [3]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestBoxBoundsTranslated(t *testing.T) {
	k := New()
	d := &kernel.Descriptor{
		Kind:      kernel.GeometryBox,
		Extent:    [3]float64{100, 50, 25},
		Transform: kernel.Transform{Position: [3]float64{10, 0, -5}},
	}
	min, max := k.Bounds(d)
	if !approx(min, [3]float64{-40, -25, -17.5}) {
		t.Errorf("Bounds min = %v, want [-40 -25 -17.5]", min)
	}
	if !approx(max, [3]float64{60, 25, 7.5}) {
		t.Errorf("Bounds max = %v, want [60 25 7.5]", max)
	}
}

func TestPivotRotation(t *testing.T) {
	k := New()
	// A flat plate hinged at the origin, extending along +Z, rotated a
	// quarter turn about X swings to extend along -Y.
	d := &kernel.Descriptor{
		Kind:   kernel.GeometryBox,
		Extent: [3]float64{2, 0, 4},
		Transform: kernel.Transform{
			Rotation: [3]float64{math.Pi / 2, 0, 0},
			Offset:   [3]float64{0, 0, 2},
		},
	}
	min, max := k.Bounds(d)
	if !approx(min, [3]float64{-1, -4, 0}) {
		t.Errorf("Bounds min = %v, want [-1 -4 0]", min)
	}
	if !approx(max, [3]float64{1, 0, 0}) {
		t.Errorf("Bounds max = %v, want [1 0 0]", max)
	}
}

func TestToMeshBox(t *testing.T) {
	k := New()
	d := &kernel.Descriptor{
		Name:      "panel",
		Kind:      kernel.GeometryBox,
		Extent:    [3]float64{1, 2, 3},
		Transform: kernel.Transform{Position: [3]float64{5, 5, 5}},
	}
	mesh, err := k.ToMesh(d)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", mesh.TriangleCount())
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if mesh.PartName != "panel" {
		t.Errorf("PartName = %q, want %q", mesh.PartName, "panel")
	}
	min, max := mesh.Bounds()
	if !approx(min, [3]float64{4.5, 4, 3.5}) || !approx(max, [3]float64{5.5, 6, 6.5}) {
		t.Errorf("mesh bounds = %v %v", min, max)
	}
}

func TestToMeshRejectsBrokenMesh(t *testing.T) {
	k := New()
	d := &kernel.Descriptor{
		Name: "broken",
		Kind: kernel.GeometryMesh,
		Mesh: &kernel.Mesh{Vertices: []float32{0, 0, 0}, Normals: []float32{0, 1}},
	}
	if _, err := k.ToMesh(d); err == nil {
		t.Error("expected error for mismatched normals")
	}
}

func TestEnvelope(t *testing.T) {
	k := New()
	ds := []kernel.Descriptor{
		{Kind: kernel.GeometryBox, Extent: [3]float64{2, 2, 2}},
		{Kind: kernel.GeometryBox, Extent: [3]float64{2, 2, 2}, Transform: kernel.Transform{Position: [3]float64{4, 0, 0}}},
	}
	min, max := k.Envelope(ds)
	if !approx(min, [3]float64{-1, -1, -1}) || !approx(max, [3]float64{5, 1, 1}) {
		t.Errorf("Envelope() = %v %v, want [-1 -1 -1] [5 1 1]", min, max)
	}
}

func TestSaveSTL(t *testing.T) {
	k := New()
	path := filepath.Join(t.TempDir(), "box.stl")
	ds := []kernel.Descriptor{{Name: "cube", Kind: kernel.GeometryBox, Extent: [3]float64{1, 1, 1}}}
	if err := k.SaveSTL(path, ds); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() <= 84 {
		t.Errorf("STL size = %d, want more than a bare header", info.Size())
	}
}

func TestSaveSTLEmpty(t *testing.T) {
	k := New()
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := k.SaveSTL(path, nil); err == nil {
		t.Error("expected error for empty export")
	}
}
