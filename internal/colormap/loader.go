package colormap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// LoadStrip reads a palette-strip image (PNG, JPEG or TGA) and builds a
// Map from its middle row, left to right.
func LoadStrip(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return Map{}, fmt.Errorf("colormap: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Map{}, fmt.Errorf("colormap: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() < 2 {
		return Map{}, fmt.Errorf("colormap: strip %s too narrow (%d px)", path, b.Dx())
	}

	y := b.Min.Y + b.Dy()/2
	colors := make([]color.NRGBA, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		colors[x-b.Min.X] = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	return Map{Name: path, Colors: colors}, nil
}

// ByName resolves a built-in palette name, falling back to LoadStrip for
// anything else.
func ByName(name string) (Map, error) {
	switch name {
	case "", "viridis":
		return Viridis, nil
	case "gray", "grey":
		return Gray, nil
	}
	return LoadStrip(name)
}
