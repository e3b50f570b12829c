package pixelize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fieldpix/internal/mathutil"
)

var unitCube = []mathutil.Vec3{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

func TestMeshHexahedron(t *testing.T) {
	extent := Extent3{{0, 1}, {0, 1}, {0, 1}}
	buf, err := MeshElements(
		unitCube,
		[][]int{{0, 1, 2, 3, 4, 5, 6, 7}},
		[]float64{5.0},
		[3]int{4, 4, 4}, extent, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	// The cube fills the whole extent: every voxel center is inside.
	for k := 0; k < 4; k++ {
		for j := 0; j < 4; j++ {
			for i := 0; i < 4; i++ {
				if got := buf.At(i, j, k); got != 5.0 {
					t.Fatalf("voxel (%d,%d,%d) = %v, want 5.0", i, j, k, got)
				}
			}
		}
	}
}

func TestMeshBoundingBoxPruning(t *testing.T) {
	// Cube occupying one corner of a larger extent: distant voxels stay
	// at zero.
	extent := Extent3{{0, 4}, {0, 4}, {0, 4}}
	buf, err := MeshElements(
		unitCube,
		[][]int{{0, 1, 2, 3, 4, 5, 6, 7}},
		[]float64{5.0},
		[3]int{4, 4, 4}, extent, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0, 0); got != 5.0 {
		t.Errorf("voxel inside cube = %v, want 5.0", got)
	}
	if got := buf.At(3, 3, 3); got != 0.0 {
		t.Errorf("distant voxel = %v, want 0", got)
	}
}

func TestMeshTetrahedron(t *testing.T) {
	coords := []mathutil.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	buf, err := MeshElements(
		coords,
		[][]int{{0, 1, 2, 3}},
		[]float64{2.5},
		[3]int{4, 4, 4}, Extent3{{0, 1}, {0, 1}, {0, 1}}, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	// (0.125, 0.125, 0.125) lies inside the simplex, (0.875,...) outside.
	if got := buf.At(0, 0, 0); got != 2.5 {
		t.Errorf("interior voxel = %v, want 2.5", got)
	}
	if got := buf.At(3, 3, 3); got != 0.0 {
		t.Errorf("exterior voxel = %v, want 0", got)
	}
}

func TestMeshWedge(t *testing.T) {
	// Prism spanning z in [0,1] over the lower-left triangle.
	coords := []mathutil.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}
	buf, err := MeshElements(
		coords,
		[][]int{{0, 1, 2, 3, 4, 5}},
		[]float64{1.5},
		[3]int{4, 4, 4}, Extent3{{0, 1}, {0, 1}, {0, 1}}, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	// Below the diagonal x+y=1 is inside at every height.
	if got := buf.At(0, 0, 3); got != 1.5 {
		t.Errorf("voxel under diagonal = %v, want 1.5", got)
	}
	if got := buf.At(3, 3, 0); got != 0.0 {
		t.Errorf("voxel over diagonal = %v, want 0", got)
	}
}

func TestMeshOneBasedConnectivity(t *testing.T) {
	extent := Extent3{{0, 1}, {0, 1}, {0, 1}}
	buf, err := MeshElements(
		unitCube,
		[][]int{{1, 2, 3, 4, 5, 6, 7, 8}},
		[]float64{5.0},
		[3]int{2, 2, 2}, extent, 1,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(1, 1, 1); got != 5.0 {
		t.Errorf("voxel = %v, want 5.0 with one-based connectivity", got)
	}
}

func TestMeshUnsupportedTopology(t *testing.T) {
	coords := []mathutil.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0.5, 0.5, 1},
	}
	_, err := MeshElements(
		coords,
		[][]int{{0, 1, 2, 3, 4}},
		[]float64{1.0},
		[3]int{4, 4, 4}, Extent3{{0, 1}, {0, 1}, {0, 1}}, 0,
	)
	var te *TopologyError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TopologyError", err)
	}
	if te.Vertices != 5 {
		t.Errorf("TopologyError vertices = %d, want 5", te.Vertices)
	}
}

func TestMeshVertexIndexOutOfRange(t *testing.T) {
	_, err := MeshElements(
		unitCube[:4],
		[][]int{{0, 1, 2, 9}},
		[]float64{1.0},
		[3]int{2, 2, 2}, Extent3{{0, 1}, {0, 1}, {0, 1}}, 0,
	)
	if err == nil {
		t.Fatal("out-of-range vertex index did not error")
	}
}

func TestMeshIdempotent(t *testing.T) {
	coords := append([]mathutil.Vec3{}, unitCube...)
	coords = append(coords, mathutil.Vec3{2, 0, 0}, mathutil.Vec3{2, 1, 0},
		mathutil.Vec3{2, 0, 1}, mathutil.Vec3{2, 1, 1})
	conn := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{1, 8, 9, 2, 5, 10, 11, 6},
	}
	value := []float64{1.0, 2.0}
	extent := Extent3{{0, 2}, {0, 1}, {0, 1}}

	a, err := MeshElements(coords, conn, value, [3]int{8, 4, 4}, extent, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MeshElements(coords, conn, value, [3]int{8, 4, 4}, extent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Vox, b.Vox); diff != "" {
		t.Errorf("repeated run differs (-first +second):\n%s", diff)
	}
}

func TestMeshLastElementWins(t *testing.T) {
	conn := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{0, 1, 2, 3, 4, 5, 6, 7},
	}
	buf, err := MeshElements(
		unitCube, conn,
		[]float64{1.0, 2.0},
		[3]int{2, 2, 2}, Extent3{{0, 1}, {0, 1}, {0, 1}}, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0, 0); got != 2.0 {
		t.Errorf("shared voxel = %v, want 2.0 (last element)", got)
	}
}
