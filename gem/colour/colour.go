// This file is part of Gemcore.
//
// Gemcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gemcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gemcore.  If not, see <https://www.gnu.org/licenses/>.

// Package colour contains the colour space conversions used by the motion
// controller subsystem. Hues are in degrees and RGB components are on a
// scale of 0 to 255 unless otherwise stated.
package colour

import "math"

// RGB is a colour with each component in the range 0.0 to 1.0. This is the
// form the sphere LED colour takes in the controller record.
type RGB struct {
	R float32
	G float32
	B float32
}

func clamp01(v float32) float32 {
	if v < 0.0 || math.IsNaN(float64(v)) {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// NewRGB returns an RGB instance with each component clamped to the range 0.0
// to 1.0.
func NewRGB(r, g, b float32) RGB {
	return RGB{
		R: clamp01(r),
		G: clamp01(g),
		B: clamp01(b),
	}
}

// Bytes returns the colour as 8 bit components.
func (c RGB) Bytes() (uint8, uint8, uint8) {
	return Byte(c.R), Byte(c.G), Byte(c.B)
}

// Byte converts a component in the range 0.0 to 1.0 to an 8 bit value.
// Values outside the range are clamped.
func Byte(v float32) uint8 {
	return uint8(clamp01(v) * 255.0)
}

// the default sphere colour for each slot
var defaults = [...]RGB{
	{R: 0.0, G: 1.0, B: 0.0},
	{R: 1.0, G: 0.85, B: 0.0},
	{R: 1.0, G: 0.0, B: 0.0},
	{R: 0.9, G: 0.0, B: 0.5},
}

// Default returns the default sphere colour for the slot. Slots outside the
// valid range return black.
func Default(slot int) RGB {
	if slot < 0 || slot >= len(defaults) {
		return RGB{}
	}
	return defaults[slot]
}

// default hues used when the game does not care which hue is tracked
var defaultHues = [...]uint32{240, 0, 120, 300}

// DefaultHue returns the hue chosen for the slot when the game does not
// request a specific hue.
func DefaultHue(slot int) uint32 {
	if slot < 0 || slot >= len(defaultHues) {
		return 0
	}
	return defaultHues[slot]
}

// HSVToRGB converts a hue (degrees), saturation and value to RGB components
// in the range 0 to 255. The hue is clamped to the range 0 to 360. Saturation
// and value are expected to be in the range 0 to 1 but are not checked.
func HSVToRGB(h, s, v float32) (float32, float32, float32) {
	h = min(max(h, 0.0), 360.0)

	c := v * s
	x := c * (1.0 - float32(math.Abs(math.Mod(float64(h)/60.0, 2.0)-1.0)))
	m := v - c

	var r, g, b float32

	switch {
	case h < 60.0:
		r, g = c, x
	case h < 120.0:
		r, g = x, c
	case h < 180.0:
		g, b = c, x
	case h < 240.0:
		g, b = x, c
	case h < 300.0:
		r, b = x, c
	default:
		r, b = c, x
	}

	return (r + m) * 255.0, (g + m) * 255.0, (b + m) * 255.0
}

// RGBToHSV is the inverse of HSVToRGB. The RGB components are on a scale of
// 0 to 255. The returned hue is in the range 0 to 360 (exclusive) and the
// saturation and value are in the range 0 to 1.
func RGBToHSV(r, g, b float32) (float32, float32, float32) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	cmax := max(r, g, b)
	cmin := min(r, g, b)
	delta := cmax - cmin

	var h float32

	if delta > 0.0 {
		switch cmax {
		case r:
			h = 60.0 * float32(math.Mod(float64((g-b)/delta), 6.0))
		case g:
			h = 60.0 * ((b-r)/delta + 2.0)
		default:
			h = 60.0 * ((r-g)/delta + 4.0)
		}
	}

	if h < 0.0 {
		h += 360.0
	}
	if h >= 360.0 {
		h -= 360.0
	}

	var s float32
	if cmax > 0.0 {
		s = delta / cmax
	}

	return h, s, cmax
}
