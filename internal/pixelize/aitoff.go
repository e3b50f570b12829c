package pixelize

import "math"

// aitoffForward projects longitude theta in [-pi, pi] and latitude phi in
// [-pi/2, pi/2] onto the unit-normalized projection plane, x and y both in
// [-1, 1].
func aitoffForward(theta, phi float64) (x, y float64) {
	z := math.Sqrt(1 + math.Cos(phi)*math.Cos(theta/2))
	x = math.Cos(phi) * math.Sin(theta/2) / z
	y = math.Sin(phi) / z
	return x, y
}

// aitoffInverse recovers (theta, phi) from a point on the unit-normalized
// projection plane. ok reports whether the point lies inside the valid
// projection disk.
//
// The closed-form inverse is expressed in the Hammer frame, so plane
// coordinates are rescaled (x by 2*sqrt2, y by sqrt2) before the disk test
// and angle recovery.
func aitoffInverse(x, y float64) (theta, phi float64, ok bool) {
	hx := x * 2 * math.Sqrt2
	hy := y * math.Sqrt2
	if hx*hx/8+hy*hy/2-1 > 0 {
		return 0, 0, false
	}
	z := math.Sqrt(1 - (hx/4)*(hx/4) - (hy/2)*(hy/2))
	theta = 2 * math.Atan(z*hx/(2*(2*z*z-1)))
	phi = math.Asin(z * hy)
	return theta, phi, true
}

// Aitoff deposits spherical patches onto an Aitoff-projected raster. The
// five input slices are parallel: patch center longitude theta in [0, 2pi],
// longitude half-width, center colatitude phi in [0, pi], colatitude
// half-width, and value. thetaOffset and phiOffset rotate the input angles
// before the map is recentered on (pi, pi/2).
//
// Rows scan the projected y axis, columns the projected x axis, both over
// [-1, 1]. If into is nil a fresh NaN-filled buffer is allocated. For each
// patch the forward projection of its four corners gives a pixel bounding
// box; every pixel in the box is inverse-mapped back to (theta, phi) and
// overwritten with the patch value when the recovered angle lies inside the
// patch. Later patches overwrite earlier ones at shared pixels.
func Aitoff(theta, halfTheta, phi, halfPhi, value []float64, rows, cols int, into *Buffer, thetaOffset, phiOffset float64) (*Buffer, error) {
	n := len(theta)
	if err := sameLen("halfTheta", len(halfTheta), n); err != nil {
		return nil, err
	}
	if err := sameLen("phi", len(phi), n); err != nil {
		return nil, err
	}
	if err := sameLen("halfPhi", len(halfPhi), n); err != nil {
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

	dx := 2.0 / float64(cols)
	dy := 2.0 / float64(rows)

	for p := 0; p < n; p++ {
		// Recenter: longitude 0..2pi to -pi..pi, colatitude 0..pi to
		// latitude -pi/2..pi/2.
		tp := theta[p] + thetaOffset - math.Pi
		pp := phi[p] + phiOffset - math.Pi/2
		dtp := halfTheta[p]
		dpp := halfPhi[p]

		// Projected bounding box from the four corner angles.
		x0, y0 := math.Inf(1), math.Inf(1)
		x1, y1 := math.Inf(-1), math.Inf(-1)
		for ci := -1; ci <= 1; ci += 2 {
			for cj := -1; cj <= 1; cj += 2 {
				cx, cy := aitoffForward(tp+float64(ci)*dtp, pp+float64(cj)*dpp)
				x0 = math.Min(x0, cx)
				x1 = math.Max(x1, cx)
				y0 = math.Min(y0, cy)
				y1 = math.Max(y1, cy)
			}
		}

		j0 := clampIndex(int((x0+1)/dx), cols)
		j1 := clampIndex(int((x1+1)/dx)+1, cols)
		i0 := clampIndex(int((y0+1)/dy), rows)
		i1 := clampIndex(int((y1+1)/dy)+1, rows)

		for i := i0; i < i1; i++ {
			py := -1 + (float64(i)+0.5)*dy
			rowOff := i * cols
			for j := j0; j < j1; j++ {
				px := -1 + (float64(j)+0.5)*dx
				th, ph, ok := aitoffInverse(px, py)
				if !ok {
					continue
				}
				if math.Abs(th-tp) < dtp && math.Abs(ph-pp) < dpp {
					buf.Pix[rowOff+j] = value[p]
				}
			}
		}
	}
	return buf, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
