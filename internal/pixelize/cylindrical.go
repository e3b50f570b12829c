package pixelize

import "math"

// Cylindrical scan-converts annular-sector cells onto a Cartesian raster.
// The five input slices are parallel: sector center radius, radial
// half-width, center angle, angular half-width, and value.
//
// If into is nil a fresh NaN-filled buffer of rows×cols is allocated;
// otherwise deposition accumulates into the supplied buffer, whose shape
// must match. Each sector is sampled along angle and radius at sub-pixel
// steps and forward-projected to Cartesian; later samples overwrite
// earlier ones at the same pixel.
//
// A zero-sized shape yields a degenerate empty buffer rather than an
// error; callers validate dimensions separately.
func Cylindrical(radius, halfRadius, theta, halfTheta, value []float64, rows, cols int, extent Bounds, into *Buffer) (*Buffer, error) {
	n := len(radius)
	if err := sameLen("halfRadius", len(halfRadius), n); err != nil {
		return nil, err
	}
	if err := sameLen("theta", len(theta), n); err != nil {
		return nil, err
	}
	if err := sameLen("halfTheta", len(halfTheta), n); err != nil {
		return nil, err
	}
	if err := sameLen("value", len(value), n); err != nil {
		return nil, err
	}

	buf := into
	if buf == nil {
		if rows < 0 {
			rows = 0
		}
		if cols < 0 {
			cols = 0
		}
		buf = NewNaNBuffer(rows, cols)
	} else if buf.Rows != rows || buf.Cols != cols {
		return nil, &SizeError{Shape: []int{rows, cols}}
	}
	if rows == 0 || cols == 0 {
		return buf, nil
	}

	dx := extent.Width() / float64(cols)
	dy := extent.Height() / float64(rows)

	// Largest radius any sector reaches; radial scans never sample
	// beyond it.
	rmax := 0.0
	for i := 0; i < n; i++ {
		if r := radius[i] + halfRadius[i]; r > rmax {
			rmax = r
		}
	}

	rbMin, rbMax := radiusRange(extent)

	for i := 0; i < n; i++ {
		r0 := radius[i] - halfRadius[i]
		r1 := radius[i] + halfRadius[i]
		if r1 < rbMin || r0 > rbMax || r1 <= 0 {
			continue
		}

		// Angular step adapted to the outer radius so arc-length
		// spacing stays below half a pixel.
		dth := 0.5 * dx / r1
		th0 := theta[i] - halfTheta[i]
		th1 := theta[i] + halfTheta[i]
		for th := th0; th < th1; th += dth {
			sin, cos := math.Sincos(th)
			for r := r0; r < r1; r += 0.5 * dx {
				if r > rmax {
					break
				}
				px := r * cos
				py := r * sin
				j := int(math.Floor((px - extent.XMin) / dx))
				ii := int(math.Floor((py - extent.YMin) / dy))
				if ii < 0 || ii >= rows || j < 0 || j >= cols {
					continue
				}
				idx := ii*cols + j
				if math.IsNaN(buf.Pix[idx]) {
					buf.Pix[idx] = 0
				}
				buf.Pix[idx] = value[i]
			}
		}
	}
	return buf, nil
}

// radiusRange returns the min and max radius reachable inside the extent,
// from its corners and its axis crossings. An extent straddling the origin
// in either axis forces the minimum to zero.
func radiusRange(extent Bounds) (rmin, rmax float64) {
	x0, x1 := extent.XMin, extent.XMax
	y0, y1 := extent.YMin, extent.YMax
	cand := [8]float64{
		x0*x0 + y0*y0,
		x1*x1 + y0*y0,
		x0*x0 + y1*y1,
		x1*x1 + y1*y1,
		x0 * x0,
		x1 * x1,
		y0 * y0,
		y1 * y1,
	}
	rmin, rmax = cand[0], cand[0]
	for _, c := range cand {
		rmin = math.Min(rmin, c)
		rmax = math.Max(rmax, c)
	}
	rmin = math.Sqrt(rmin)
	rmax = math.Sqrt(rmax)
	if x0 < 0 && x1 > 0 {
		rmin = 0
	}
	if y0 < 0 && y1 > 0 {
		rmin = 0
	}
	return rmin, rmax
}
