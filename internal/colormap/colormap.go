// Package colormap turns float64 rasters into displayable images.
package colormap

import (
	"image"
	"image/color"
	"math"

	"fieldpix/internal/pixelize"
)

// Map is a color lookup table sampled with linear interpolation over [0,1].
type Map struct {
	Name   string
	Colors []color.NRGBA
}

// Built-in palettes. Viridis is a coarse sampling of the matplotlib table;
// intermediate entries come from interpolation.
var (
	Gray = Map{Name: "gray", Colors: []color.NRGBA{
		{0, 0, 0, 255}, {255, 255, 255, 255},
	}}

	Viridis = Map{Name: "viridis", Colors: []color.NRGBA{
		{68, 1, 84, 255}, {72, 40, 120, 255}, {62, 74, 137, 255},
		{49, 104, 142, 255}, {38, 130, 142, 255}, {31, 158, 137, 255},
		{53, 183, 121, 255}, {109, 205, 89, 255}, {180, 222, 44, 255},
		{253, 231, 37, 255},
	}}
)

// Lookup returns the palette color at t in [0,1], clamping outside values.
func (m Map) Lookup(t float64) color.NRGBA {
	n := len(m.Colors)
	if n == 0 {
		return color.NRGBA{}
	}
	if n == 1 || t <= 0 || math.IsNaN(t) {
		return m.Colors[0]
	}
	if t >= 1 {
		return m.Colors[n-1]
	}
	f := t * float64(n-1)
	i := int(f)
	frac := f - float64(i)
	a, b := m.Colors[i], m.Colors[i+1]
	return color.NRGBA{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
		A: lerp8(a.A, b.A, frac),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Options controls buffer-to-image normalization.
type Options struct {
	// Min/Max fix the value range; when Min == Max the range is taken
	// from the buffer's finite cells.
	Min, Max float64
	// Log maps values through log10 before normalizing. Non-positive
	// cells render like NaN.
	Log bool
}

// Render maps a buffer through the palette. NaN cells (the "no data"
// sentinel of the scan rasterizers) become fully transparent pixels.
func Render(buf *pixelize.Buffer, m Map, opts Options) *image.NRGBA {
	lo, hi := opts.Min, opts.Max
	if lo == hi {
		lo, hi = valueRange(buf, opts.Log)
	} else if opts.Log {
		lo = math.Log10(lo)
		hi = math.Log10(hi)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, buf.Cols, buf.Rows))
	for i := 0; i < buf.Rows; i++ {
		for j := 0; j < buf.Cols; j++ {
			v := buf.At(i, j)
			if opts.Log {
				if v <= 0 {
					continue // stays transparent
				}
				v = math.Log10(v)
			}
			if math.IsNaN(v) {
				continue
			}
			c := m.Lookup((v - lo) / span)
			off := img.PixOffset(j, i)
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
	return img
}

func valueRange(buf *pixelize.Buffer, logScale bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range buf.Pix {
		if logScale {
			if v <= 0 {
				continue
			}
			v = math.Log10(v)
		}
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi { // all NaN
		return 0, 1
	}
	return lo, hi
}
