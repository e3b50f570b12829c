package pixelize

import "fmt"

// ShapeError reports parallel input slices of inconsistent length. All
// rasterizers check lengths before touching any buffer cell.
type ShapeError struct {
	Name string // name of the offending slice
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("pixelize: %s has length %d, want %d", e.Name, e.Got, e.Want)
}

// SizeError reports a requested output buffer with a non-positive dimension.
type SizeError struct {
	Shape []int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("pixelize: degenerate buffer shape %v", e.Shape)
}

// TopologyError reports a mesh element vertex count with no known face
// topology. Only tetrahedra (4), wedges (6) and hexahedra (8) are supported.
type TopologyError struct {
	Vertices int
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("pixelize: unsupported element topology with %d vertices", e.Vertices)
}

// sameLen checks one parallel slice against the reference length.
func sameLen(name string, got, want int) error {
	if got != want {
		return &ShapeError{Name: name, Got: got, Want: want}
	}
	return nil
}
