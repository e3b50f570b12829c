package pixelize

import (
	"fmt"
	"math"

	"fieldpix/internal/mathutil"
)

// Extent3 is the physical box a voxel buffer covers, per axis [min, max].
type Extent3 [3][2]float64

// Face-corner tables, keyed by element vertex count. Each face is spanned
// by three of its vertices: two edge vectors sharing the first vertex give
// the face plane. Vertex ordering is the canonical bottom-then-top
// convention; winding per face is unconstrained because containment only
// compares signs against the element's own centroid.
var (
	tetraFaces = [][3]int{{0, 1, 3}, {1, 2, 3}, {2, 0, 3}, {0, 2, 1}}
	wedgeFaces = [][3]int{{0, 1, 2}, {3, 4, 5}, {0, 1, 4}, {1, 2, 5}, {2, 0, 3}}
	hexFaces   = [][3]int{{0, 1, 2}, {4, 5, 6}, {0, 1, 5}, {1, 2, 6}, {2, 3, 7}, {3, 0, 4}}
)

func facesFor(nvert int) ([][3]int, error) {
	switch nvert {
	case 4:
		return tetraFaces, nil
	case 6:
		return wedgeFaces, nil
	case 8:
		return hexFaces, nil
	}
	return nil, &TopologyError{Vertices: nvert}
}

// MeshElements rasterizes an unstructured mesh of convex elements into a
// regular voxel buffer. coords holds node positions; conn maps each element
// to its ordered vertex indices (4, 6 or 8 per element, all elements
// alike); value holds one field value per element. indexOffset is
// subtracted from every connectivity entry (1 for one-based meshes).
//
// Each voxel is assigned the value of the element containing its center,
// determined by an exact half-space sign test against the element's own
// centroid signature. Voxels covered by no element stay zero; elements are
// visited in connectivity order and later ones overwrite earlier ones at
// shared voxels.
func MeshElements(coords []mathutil.Vec3, conn [][]int, value []float64, shape [3]int, extent Extent3, indexOffset int) (*Buffer3D, error) {
	nx, ny, nz := shape[0], shape[1], shape[2]
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, &SizeError{Shape: []int{nx, ny, nz}}
	}
	ne := len(conn)
	if err := sameLen("value", len(value), ne); err != nil {
		return nil, err
	}
	if ne == 0 {
		return NewBuffer3D(nx, ny, nz), nil
	}

	nvert := len(conn[0])
	faces, err := facesFor(nvert)
	if err != nil {
		return nil, err
	}
	for e, el := range conn {
		if len(el) != nvert {
			return nil, &ShapeError{Name: fmt.Sprintf("connectivity[%d]", e), Got: len(el), Want: nvert}
		}
		for _, vi := range el {
			if vi-indexOffset < 0 || vi-indexOffset >= len(coords) {
				return nil, fmt.Errorf("pixelize: element %d: vertex index %d out of range", e, vi)
			}
		}
	}

	buf := NewBuffer3D(nx, ny, nz)

	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = (extent[k][1] - extent[k][0]) / float64(shape[k])
	}

	// Per-element scratch, sized for the largest supported element.
	var verts [8]mathutil.Vec3
	var normals [6]mathutil.Vec3
	var origins [6]mathutil.Vec3
	var signs [6]bool

	for e := range conn {
		le := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
		re := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
		centroid := mathutil.Vec3{}
		for vi, idx := range conn[e] {
			v := coords[idx-indexOffset]
			verts[vi] = v
			centroid = centroid.Add(v)
			for k := 0; k < 3; k++ {
				le[k] = math.Min(le[k], v[k])
				re[k] = math.Max(re[k], v[k])
			}
		}
		centroid = centroid.Scale(1 / float64(nvert))

		// Prune elements whose box misses the buffer's extent.
		skip := false
		for k := 0; k < 3; k++ {
			if re[k] < extent[k][0] || le[k] > extent[k][1] {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		// Centroid signature: one half-space sign per face.
		for f, face := range faces {
			v0 := verts[face[0]]
			n := verts[face[1]].Sub(v0).Cross(verts[face[2]].Sub(v0))
			normals[f] = n
			origins[f] = v0
			signs[f] = math.Signbit(n.Dot(centroid.Sub(v0)))
		}

		// Candidate voxel range: the element's box expanded by one
		// voxel each way for conservative coverage.
		var lo, hi [3]int
		for k := 0; k < 3; k++ {
			lo[k] = clampIndex(int((le[k]-extent[k][0])/d[k])-1, shape[k])
			hi[k] = clampIndex(int((re[k]-extent[k][0])/d[k])+2, shape[k])
		}

		for vk := lo[2]; vk < hi[2]; vk++ {
			pz := extent[2][0] + (float64(vk)+0.5)*d[2]
			for vj := lo[1]; vj < hi[1]; vj++ {
				py := extent[1][0] + (float64(vj)+0.5)*d[1]
				planeOff := nx * (vj + ny*vk)
				for vi := lo[0]; vi < hi[0]; vi++ {
					p := mathutil.Vec3{extent[0][0] + (float64(vi)+0.5)*d[0], py, pz}
					inside := true
					for f := range faces {
						if math.Signbit(normals[f].Dot(p.Sub(origins[f]))) != signs[f] {
							inside = false
							break
						}
					}
					if inside {
						buf.Vox[planeOff+vi] = value[e]
					}
				}
			}
		}
	}
	return buf, nil
}
