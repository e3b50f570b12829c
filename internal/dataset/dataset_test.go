package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ds.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCells(t *testing.T) {
	path := writeTemp(t, `{
		"kind": "cells",
		"x": [0.5], "y": [0.5],
		"half_w": [0.5], "half_h": [0.5],
		"value": [2.0],
		"antialias": true,
		"bounds": [0, 2, 0, 2]
	}`)
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Dataset{
		Kind:      KindCells,
		Value:     []float64{2},
		X:         []float64{0.5},
		Y:         []float64{0.5},
		HalfW:     []float64{0.5},
		HalfH:     []float64{0.5},
		Antialias: true,
		Bounds:    []float64{0, 2, 0, 2},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("loaded dataset mismatch (-want +got):\n%s", diff)
	}

	buf, err := d.Rasterize(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0); got != 2.0 {
		t.Errorf("rasterized cell = %v, want 2.0", got)
	}
}

func TestLoadMeshSlice(t *testing.T) {
	path := writeTemp(t, `{
		"kind": "mesh",
		"coords": [[0,0,0],[1,0,0],[1,1,0],[0,1,0],[0,0,1],[1,0,1],[1,1,1],[0,1,1]],
		"connectivity": [[0,1,2,3,4,5,6,7]],
		"value": [3.0],
		"bounds": [0, 1, 0, 1, 0, 1]
	}`)
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := d.Rasterize(4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Rows != 4 || buf.Cols != 4 {
		t.Fatalf("slice shape %dx%d, want 4x4", buf.Rows, buf.Cols)
	}
	if got := buf.At(2, 2); got != 3.0 {
		t.Errorf("mesh slice cell = %v, want 3.0", got)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown kind", `{"kind": "voronoi"}`},
		{"cells without bounds", `{"kind": "cells", "x": [1], "value": [1]}`},
		{"empty sectors", `{"kind": "sectors", "bounds": [0,1,0,1]}`},
		{"mesh with 2-D bounds", `{
			"kind": "mesh",
			"coords": [[0,0,0]],
			"connectivity": [[0,0,0,0]],
			"value": [1],
			"bounds": [0,1,0,1]
		}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tc.body)); err == nil {
				t.Error("invalid dataset loaded without error")
			}
		})
	}
}
