package pixelize

import "math"

// Buffer is a dense rows×cols float64 raster stored as a flat slice
// (row-major) for cache locality. Row i, column j lives at Pix[i*Cols+j].
type Buffer struct {
	Rows int
	Cols int
	Pix  []float64
}

// NewBuffer allocates a zero-filled buffer. Zero is the identity for the
// additive deposition modes.
func NewBuffer(rows, cols int) *Buffer {
	return &Buffer{
		Rows: rows,
		Cols: cols,
		Pix:  make([]float64, rows*cols),
	}
}

// NewNaNBuffer allocates a buffer filled with NaN, the "no data covers this
// pixel" sentinel used by the scan/sampling rasterizers.
func NewNaNBuffer(rows, cols int) *Buffer {
	b := NewBuffer(rows, cols)
	nan := math.NaN()
	for i := range b.Pix {
		b.Pix[i] = nan
	}
	return b
}

// At returns the value at row i, column j.
func (b *Buffer) At(i, j int) float64 { return b.Pix[i*b.Cols+j] }

// Set writes the value at row i, column j.
func (b *Buffer) Set(i, j int, v float64) { b.Pix[i*b.Cols+j] = v }

// Buffer3D is a dense nx×ny×nz float64 voxel grid stored as a flat slice,
// x fastest. Voxel (i,j,k) lives at Vox[i+NX*(j+NY*k)].
type Buffer3D struct {
	NX, NY, NZ int
	Vox        []float64
}

// NewBuffer3D allocates a zero-filled voxel buffer.
func NewBuffer3D(nx, ny, nz int) *Buffer3D {
	return &Buffer3D{
		NX:  nx,
		NY:  ny,
		NZ:  nz,
		Vox: make([]float64, nx*ny*nz),
	}
}

// At returns the value of voxel (i,j,k).
func (b *Buffer3D) At(i, j, k int) float64 { return b.Vox[i+b.NX*(j+b.NY*k)] }

// Set writes the value of voxel (i,j,k).
func (b *Buffer3D) Set(i, j, k int, v float64) { b.Vox[i+b.NX*(j+b.NY*k)] = v }

// SliceZ copies the z=k plane into a 2-D buffer with rows scanning y and
// columns scanning x, matching the 2-D rasterizer convention.
func (b *Buffer3D) SliceZ(k int) *Buffer {
	out := NewBuffer(b.NY, b.NX)
	for j := 0; j < b.NY; j++ {
		rowOff := j * b.NX
		srcOff := b.NX * (j + b.NY*k)
		copy(out.Pix[rowOff:rowOff+b.NX], b.Vox[srcOff:srcOff+b.NX])
	}
	return out
}

// Bounds is the axis-aligned rectangle in sample coordinate space that maps
// affinely onto the full pixel buffer: column 0 starts at XMin, row 0 at
// YMin.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns XMax - XMin.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns YMax - YMin.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }
