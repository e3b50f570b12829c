package pixelize

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAitoffRoundTrip(t *testing.T) {
	// Every pixel accepted by the inverse filter must forward-project
	// back to within one pixel width of its own center.
	const rows, cols = 64, 64
	dx := 2.0 / float64(cols)
	dy := 2.0 / float64(rows)
	accepted := 0
	for i := 0; i < rows; i++ {
		py := -1 + (float64(i)+0.5)*dy
		for j := 0; j < cols; j++ {
			px := -1 + (float64(j)+0.5)*dx
			th, ph, ok := aitoffInverse(px, py)
			if !ok {
				continue
			}
			accepted++
			fx, fy := aitoffForward(th, ph)
			if math.Abs(fx-px) > dx || math.Abs(fy-py) > dy {
				t.Fatalf("pixel (%d,%d): forward(inverse) = (%v,%v), center (%v,%v)",
					i, j, fx, fy, px, py)
			}
		}
	}
	if accepted == 0 {
		t.Fatal("no pixel accepted inside the projection disk")
	}
}

func TestAitoffPatch(t *testing.T) {
	// A patch centered on (pi, pi/2) sits at the middle of the map.
	buf, err := Aitoff(
		[]float64{math.Pi}, []float64{0.5},
		[]float64{math.Pi / 2}, []float64{0.3},
		[]float64{7.0},
		32, 32, nil, 0, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(16, 16); got != 7.0 {
		t.Errorf("center pixel = %v, want 7.0", got)
	}
	// The corner lies outside the projection disk and stays NaN.
	if got := buf.At(0, 0); !math.IsNaN(got) {
		t.Errorf("corner pixel = %v, want NaN", got)
	}
	// A pixel inside the disk but outside the patch envelope stays NaN.
	if got := buf.At(16, 28); !math.IsNaN(got) {
		t.Errorf("off-patch pixel = %v, want NaN", got)
	}
}

func TestAitoffLastWriterWins(t *testing.T) {
	// Overlapping patches: document order decides the survivor.
	buf, err := Aitoff(
		[]float64{math.Pi, math.Pi}, []float64{0.5, 0.5},
		[]float64{math.Pi / 2, math.Pi / 2}, []float64{0.3, 0.3},
		[]float64{1.0, 2.0},
		32, 32, nil, 0, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(16, 16); got != 2.0 {
		t.Errorf("center pixel = %v, want 2.0 (last writer)", got)
	}
}

func TestAitoffIdempotent(t *testing.T) {
	theta := []float64{math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	halfTheta := []float64{0.3, 0.5, 0.4}
	phi := []float64{math.Pi / 3, math.Pi / 2, 2 * math.Pi / 3}
	halfPhi := []float64{0.2, 0.3, 0.25}
	value := []float64{1, 2, 3}

	a, err := Aitoff(theta, halfTheta, phi, halfPhi, value, 32, 32, nil, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Aitoff(theta, halfTheta, phi, halfPhi, value, 32, 32, nil, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Pix, b.Pix, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("repeated run differs (-first +second):\n%s", diff)
	}
}

func TestAitoffOffsets(t *testing.T) {
	// A patch away from center, brought to center by the offsets.
	buf, err := Aitoff(
		[]float64{math.Pi / 2}, []float64{0.5},
		[]float64{math.Pi / 2}, []float64{0.3},
		[]float64{3.0},
		32, 32, nil, math.Pi/2, 0,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(16, 16); got != 3.0 {
		t.Errorf("center pixel = %v, want 3.0", got)
	}
}
