// Package answer supports regression comparison of rasterizer results: a
// harness captures a run's result, persists it, and diffs later runs
// against it with a relative tolerance.
package answer

import (
	"fmt"
	"math"

	"fieldpix/internal/pixelize"
)

// Runner is the step contract an external regression harness drives: Run
// produces a serializable result and Compare checks a fresh result against
// a stored one, returning a *MismatchError past tolerance. Implementations
// live with the harness; this package only fixes the contract and supplies
// Compare for them to delegate to.
type Runner interface {
	Run() (any, error)
	Compare(old, new any) error
}

// MismatchError reports the first element whose relative difference
// exceeded the tolerance.
type MismatchError struct {
	Index   int
	Old     float64
	New     float64
	RelDiff float64
	Rtol    float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("answer: element %d: old %v, new %v, relative difference %.3g exceeds %.3g",
		e.Index, e.Old, e.New, e.RelDiff, e.Rtol)
}

// Compare diffs two results element-wise with relative tolerance rtol.
// Supported result shapes: float64, []float64, *pixelize.Buffer and
// *pixelize.Buffer3D. NaN compares equal to NaN (the "no data" sentinel is
// part of the result).
func Compare(old, new any, rtol float64) error {
	a, err := flatten(old)
	if err != nil {
		return err
	}
	b, err := flatten(new)
	if err != nil {
		return err
	}
	if len(a) != len(b) {
		return fmt.Errorf("answer: result length changed: old %d, new %d", len(a), len(b))
	}
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
				continue
			}
			return &MismatchError{Index: i, Old: a[i], New: b[i], RelDiff: math.Inf(1), Rtol: rtol}
		}
		rel := relDiff(a[i], b[i])
		if rel > rtol {
			return &MismatchError{Index: i, Old: a[i], New: b[i], RelDiff: rel, Rtol: rtol}
		}
	}
	return nil
}

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	den := math.Max(math.Abs(a), math.Abs(b))
	if den == 0 {
		return 0
	}
	return math.Abs(a-b) / den
}

func flatten(r any) ([]float64, error) {
	switch v := r.(type) {
	case float64:
		return []float64{v}, nil
	case []float64:
		return v, nil
	case *pixelize.Buffer:
		return v.Pix, nil
	case *pixelize.Buffer3D:
		return v.Vox, nil
	}
	return nil, fmt.Errorf("answer: unsupported result type %T", r)
}
