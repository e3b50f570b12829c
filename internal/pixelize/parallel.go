package pixelize

import (
	"errors"
	"runtime"
	"sync"
)

// CartesianParallel deposits the same way as Cartesian, splitting the
// sample list across workers that each write a private buffer; the private
// buffers are reduced by elementwise summation. Only the antialiased
// additive mode commutes under this split, so opts.Antialias must be set.
//
// Totals match the serial path up to floating-point addition order.
// workers <= 0 means one worker per CPU.
func CartesianParallel(x, y, halfW, halfH, value []float64, rows, cols int, bounds Bounds, opts CartesianOptions, workers int) (*Buffer, error) {
	if !opts.Antialias {
		return nil, errors.New("pixelize: parallel deposition requires antialiasing; overwrite order is not preserved across workers")
	}
	if rows <= 0 || cols <= 0 {
		return nil, &SizeError{Shape: []int{rows, cols}}
	}
	if err := checkCartesianShapes(x, y, halfW, halfH, value); err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	n := len(x)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		buf := NewBuffer(rows, cols)
		depositCartesian(buf, x, y, halfW, halfH, value, bounds, opts)
		return buf, nil
	}

	parts := make([]*Buffer, workers)
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		parts[w] = NewBuffer(rows, cols)
		wg.Add(1)
		go func(buf *Buffer, lo, hi int) {
			defer wg.Done()
			depositCartesian(buf, x[lo:hi], y[lo:hi], halfW[lo:hi], halfH[lo:hi], value[lo:hi], bounds, opts)
		}(parts[w], lo, hi)
	}
	wg.Wait()

	// Reduce in worker order so repeated runs are bit-identical.
	out := parts[0]
	for w := 1; w < workers; w++ {
		for i, v := range parts[w].Pix {
			out.Pix[i] += v
		}
	}
	return out, nil
}
