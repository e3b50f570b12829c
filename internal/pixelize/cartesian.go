package pixelize

import "math"

// CartesianOptions controls deposition behavior for Cartesian.
type CartesianOptions struct {
	// Antialias enables area-weighted accumulation: each cell receives
	// value scaled by its fractional overlap with the sample footprint.
	// When off, every overlapped cell is overwritten with the raw value
	// (last writer wins).
	Antialias bool

	// CheckPeriod enables duplication of samples whose footprint crosses
	// a domain edge within its own half-width; PeriodX and PeriodY are
	// the domain sizes used to place the wrapped images.
	CheckPeriod bool
	PeriodX     float64
	PeriodY     float64
}

// Cartesian deposits variable-resolution rectangular cells onto a uniform
// rows×cols grid covering bounds. The five input slices are parallel:
// cell center x/y, half-width, half-height, and value.
//
// The returned buffer is freshly allocated and zero-filled; unwritten
// cells stay zero. Deterministic for identical inputs.
func Cartesian(x, y, halfW, halfH, value []float64, rows, cols int, bounds Bounds, opts CartesianOptions) (*Buffer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &SizeError{Shape: []int{rows, cols}}
	}
	if err := checkCartesianShapes(x, y, halfW, halfH, value); err != nil {
		return nil, err
	}

	buf := NewBuffer(rows, cols)
	depositCartesian(buf, x, y, halfW, halfH, value, bounds, opts)
	return buf, nil
}

func checkCartesianShapes(x, y, halfW, halfH, value []float64) error {
	n := len(x)
	if err := sameLen("y", len(y), n); err != nil {
		return err
	}
	if err := sameLen("halfW", len(halfW), n); err != nil {
		return err
	}
	if err := sameLen("halfH", len(halfH), n); err != nil {
		return err
	}
	return sameLen("value", len(value), n)
}

// depositCartesian is the validated hot path, shared with the parallel
// deposition front-end. Designed for zero allocation in the inner loop.
func depositCartesian(buf *Buffer, x, y, halfW, halfH, value []float64, bounds Bounds, opts CartesianOptions) {
	rows, cols := buf.Rows, buf.Cols
	pdx := bounds.Width() / float64(cols)
	pdy := bounds.Height() / float64(rows)
	ipdx := 1.0 / pdx
	ipdy := 1.0 / pdy

	for p := range x {
		hw := halfW[p]
		hh := halfH[p]
		v := value[p]

		// Periodic images: offset 0 is the sample itself; a second
		// image appears when the footprint crosses a domain edge.
		var xoff, yoff [2]float64
		nx, ny := 1, 1
		if opts.CheckPeriod {
			if x[p]-hw < bounds.XMin {
				xoff[1] = opts.PeriodX
				nx = 2
			} else if x[p]+hw > bounds.XMax {
				xoff[1] = -opts.PeriodX
				nx = 2
			}
			if y[p]-hh < bounds.YMin {
				yoff[1] = opts.PeriodY
				ny = 2
			} else if y[p]+hh > bounds.YMax {
				yoff[1] = -opts.PeriodY
				ny = 2
			}
		}

		for xi := 0; xi < nx; xi++ {
			xs := x[p] + xoff[xi]
			if xs+hw < bounds.XMin || xs-hw > bounds.XMax {
				continue
			}
			for yi := 0; yi < ny; yi++ {
				ys := y[p] + yoff[yi]
				if ys+hh < bounds.YMin || ys-hh > bounds.YMax {
					continue
				}

				// Inclusive index range the footprint can touch. The
				// upper bound is expanded by one pixel because the
				// scan below compares edges, not truncated indices.
				lc := int(math.Max((xs-hw-bounds.XMin)*ipdx, 0))
				lr := int(math.Max((ys-hh-bounds.YMin)*ipdy, 0))
				rc := int(math.Min((xs+hw-bounds.XMin)*ipdx+1, float64(cols)))
				rr := int(math.Min((ys+hh-bounds.YMin)*ipdy+1, float64(rows)))

				for i := lr; i < rr; i++ {
					ylo := bounds.YMin + pdy*float64(i)
					yhi := ylo + pdy
					rowOff := i * cols
					for j := lc; j < rc; j++ {
						xlo := bounds.XMin + pdx*float64(j)
						xhi := xlo + pdx
						if opts.Antialias {
							// 1-D fractional overlap per axis, as a
							// fraction of the pixel width. Negative
							// overlap means no contribution.
							ox := (math.Min(xhi, xs+hw) - math.Max(xlo, xs-hw)) * ipdx
							oy := (math.Min(yhi, ys+hh) - math.Max(ylo, ys-hh)) * ipdy
							if ox < 0 || oy < 0 {
								continue
							}
							buf.Pix[rowOff+j] += v * ox * oy
						} else if xs+hw > xlo && xs-hw < xhi &&
							ys+hh > ylo && ys-hh < yhi {
							buf.Pix[rowOff+j] = v
						}
					}
				}
			}
		}
	}
}
