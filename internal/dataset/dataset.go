// Package dataset defines the JSON interchange schema for sample sets and
// dispatches them to the matching rasterizer.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"fieldpix/internal/mathutil"
	"fieldpix/internal/pixelize"
)

// Sample-set kinds.
const (
	KindCells   = "cells"   // rectangular cells, Cartesian deposition
	KindSectors = "sectors" // annular sectors, cylindrical scan
	KindPatches = "patches" // spherical patches, Aitoff projection
	KindMesh    = "mesh"    // unstructured element mesh, voxelized
)

// Dataset is one serialized sample set. Only the fields of its Kind are
// meaningful; Value is shared by all kinds.
type Dataset struct {
	Kind  string    `json:"kind"`
	Value []float64 `json:"value"`

	// cells
	X     []float64 `json:"x,omitempty"`
	Y     []float64 `json:"y,omitempty"`
	HalfW []float64 `json:"half_w,omitempty"`
	HalfH []float64 `json:"half_h,omitempty"`

	// cells options
	Antialias   bool    `json:"antialias,omitempty"`
	CheckPeriod bool    `json:"check_period,omitempty"`
	PeriodX     float64 `json:"period_x,omitempty"`
	PeriodY     float64 `json:"period_y,omitempty"`

	// sectors
	Radius     []float64 `json:"radius,omitempty"`
	HalfRadius []float64 `json:"half_radius,omitempty"`

	// sectors + patches
	Theta     []float64 `json:"theta,omitempty"`
	HalfTheta []float64 `json:"half_theta,omitempty"`

	// patches
	Phi         []float64 `json:"phi,omitempty"`
	HalfPhi     []float64 `json:"half_phi,omitempty"`
	ThetaOffset float64   `json:"theta_offset,omitempty"`
	PhiOffset   float64   `json:"phi_offset,omitempty"`

	// mesh
	Coords       [][3]float64 `json:"coords,omitempty"`
	Connectivity [][]int      `json:"connectivity,omitempty"`
	IndexOffset  int          `json:"index_offset,omitempty"`

	// Bounds maps sample space onto the buffer: [xmin, xmax, ymin, ymax]
	// for 2-D kinds (ignored by patches, whose plane is fixed), plus
	// [zmin, zmax] appended for mesh datasets.
	Bounds []float64 `json:"bounds,omitempty"`
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return &d, nil
}

// Validate checks kind-specific field presence. Parallel-length checks are
// left to the rasterizers, which report them as typed errors.
func (d *Dataset) Validate() error {
	switch d.Kind {
	case KindCells:
		if len(d.X) == 0 {
			return fmt.Errorf("cells dataset has no samples")
		}
		if len(d.Bounds) != 4 {
			return fmt.Errorf("cells dataset needs bounds [xmin,xmax,ymin,ymax]")
		}
	case KindSectors:
		if len(d.Radius) == 0 {
			return fmt.Errorf("sectors dataset has no samples")
		}
		if len(d.Bounds) != 4 {
			return fmt.Errorf("sectors dataset needs bounds [xmin,xmax,ymin,ymax]")
		}
	case KindPatches:
		if len(d.Theta) == 0 {
			return fmt.Errorf("patches dataset has no samples")
		}
	case KindMesh:
		if len(d.Connectivity) == 0 {
			return fmt.Errorf("mesh dataset has no elements")
		}
		if len(d.Bounds) != 6 {
			return fmt.Errorf("mesh dataset needs bounds [xmin,xmax,ymin,ymax,zmin,zmax]")
		}
	default:
		return fmt.Errorf("unknown dataset kind %q", d.Kind)
	}
	return nil
}

func (d *Dataset) bounds2() pixelize.Bounds {
	return pixelize.Bounds{
		XMin: d.Bounds[0], XMax: d.Bounds[1],
		YMin: d.Bounds[2], YMax: d.Bounds[3],
	}
}

// Rasterize runs the rasterizer for the dataset kind into a rows×cols
// buffer. Mesh datasets are voxelized at cols×rows×depth and the middle
// z-slice is returned for imaging.
func (d *Dataset) Rasterize(rows, cols, depth int) (*pixelize.Buffer, error) {
	switch d.Kind {
	case KindCells:
		opts := pixelize.CartesianOptions{
			Antialias:   d.Antialias,
			CheckPeriod: d.CheckPeriod,
			PeriodX:     d.PeriodX,
			PeriodY:     d.PeriodY,
		}
		return pixelize.Cartesian(d.X, d.Y, d.HalfW, d.HalfH, d.Value,
			rows, cols, d.bounds2(), opts)

	case KindSectors:
		return pixelize.Cylindrical(d.Radius, d.HalfRadius, d.Theta, d.HalfTheta,
			d.Value, rows, cols, d.bounds2(), nil)

	case KindPatches:
		return pixelize.Aitoff(d.Theta, d.HalfTheta, d.Phi, d.HalfPhi,
			d.Value, rows, cols, nil, d.ThetaOffset, d.PhiOffset)

	case KindMesh:
		coords := make([]mathutil.Vec3, len(d.Coords))
		for i, c := range d.Coords {
			coords[i] = mathutil.Vec3(c)
		}
		extent := pixelize.Extent3{
			{d.Bounds[0], d.Bounds[1]},
			{d.Bounds[2], d.Bounds[3]},
			{d.Bounds[4], d.Bounds[5]},
		}
		vox, err := pixelize.MeshElements(coords, d.Connectivity, d.Value,
			[3]int{cols, rows, depth}, extent, d.IndexOffset)
		if err != nil {
			return nil, err
		}
		return vox.SliceZ(depth / 2), nil
	}
	return nil, fmt.Errorf("dataset: unknown kind %q", d.Kind)
}
