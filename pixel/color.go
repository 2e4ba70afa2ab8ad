package pixel

import "image/color"

// Color is one LED's channel values in the order the pipeline emitted them.
// W is the ancillary white channel; it stays zero on 3-channel profiles.
type Color struct {
	R, G, B, W byte
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Model converts image/color values to pixel Colors.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	return FromColor(c)
})
