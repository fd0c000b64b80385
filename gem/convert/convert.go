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

// Package convert converts camera frames into the formats requested by the
// guest and paints tracked spheres into the converted frames.
package convert

import (
	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/gem/camera"
)

// Sentinel error patterns returned by Convert().
const (
	InputSizeMismatch  = "convert: input size mismatch: required %d, actual %d"
	OutputSizeMismatch = "convert: output size mismatch for %s: required %d, actual %d"
	Unimplemented      = "convert: unimplemented: %s to %s"
)

// Convert the src frame of the specified camera format and dimensions into dst.
// The length of src must be exactly the size implied by the camera format and
// the length of dst must be exactly OutputSize() of the output format.
//
// Conversion to NoVideoOutput always succeeds and does nothing.
//
// Combinations of formats that are not implemented return the Unimplemented
// error. In some cases the data will have been copied to dst without any
// conversion.
func Convert(in camera.Format, out OutputFormat, src []byte, width, height int, dst []byte) error {
	if out == NoVideoOutput {
		return nil
	}

	inSize := camera.BufferSize(in, width, height)
	if len(src) != inSize {
		return curated.Errorf(InputSizeMismatch, inSize, len(src))
	}

	outSize := OutputSize(out)
	if outSize < 0 || len(dst) != outSize {
		return curated.Errorf(OutputSizeMismatch, out, outSize, len(dst))
	}

	switch out {
	case RGBA640x480:
		switch in {
		case camera.FormatRAW8:
			demosaic(src, width, height, dst)
		case camera.FormatRGBA:
			copy(dst, src)
		default:
			copy(dst, src)
			return curated.Errorf(Unimplemented, in, out)
		}

	case BayerRestored:
		if in != camera.FormatRAW8 {
			return curated.Errorf(Unimplemented, in, out)
		}
		copy(dst, src)

	default:
		return curated.Errorf(Unimplemented, in, out)
	}

	return nil
}

// demosaic a RAW8 bayer frame into RGBA. each 2x2 block of the bayer frame is
// in BGGR order and becomes a 2x2 block of identical red and blue values. the
// top row of the block uses the first green value and the bottom row uses the
// second.
func demosaic(src []byte, width, height int, dst []byte) {
	inPitch := width
	outPitch := width * 4

	for y := 0; y < height-1; y += 2 {
		row0 := src[y*inPitch:]
		row1 := src[(y+1)*inPitch:]

		outRow0 := y * outPitch
		outRow1 := outRow0 + outPitch
		if outRow1+outPitch > len(dst) {
			return
		}

		for x := 0; x < width-1; x += 2 {
			b := row0[x]
			g0 := row0[x+1]
			g1 := row1[x]
			r := row1[x+1]

			top := [4]byte{r, g0, b, 255}
			bottom := [4]byte{r, g1, b, 255}

			i := outRow0 + x*4
			copy(dst[i:], top[:])
			copy(dst[i+4:], top[:])

			i = outRow1 + x*4
			copy(dst[i:], bottom[:])
			copy(dst[i+4:], bottom[:])
		}
	}
}
