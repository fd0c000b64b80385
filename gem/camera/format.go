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

package camera

import "fmt"

// Format is the pixel format of a camera frame.
type Format int

// List of valid Format values. The numeric values match those used by the
// guest.
const (
	FormatUnknown Format = iota
	FormatJPG
	FormatRAW8
	FormatYUV422
	FormatRAW10
	FormatRGBA
	FormatYUV420
	FormatVY1UY0
)

func (f Format) String() string {
	switch f {
	case FormatJPG:
		return "JPG"
	case FormatRAW8:
		return "RAW8"
	case FormatYUV422:
		return "YUV422"
	case FormatRAW10:
		return "RAW10"
	case FormatRGBA:
		return "RGBA"
	case FormatYUV420:
		return "YUV420"
	case FormatVY1UY0:
		return "V_Y1_U_Y0"
	}
	return fmt.Sprintf("unknown (%d)", int(f))
}

// BufferSize returns the number of bytes required to store a frame of the
// specified format and dimensions. Zero is returned for unknown formats or for
// non-positive dimensions.
func BufferSize(f Format, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}

	switch f {
	case FormatRAW8:
		return width * height
	case FormatRAW10:
		return width * height * 5 / 4
	case FormatYUV422, FormatVY1UY0:
		return width * height * 2
	case FormatYUV420:
		return width * height * 3 / 2
	case FormatRGBA:
		return width * height * 4
	case FormatJPG:
		// compressed frames are given a buffer large enough for an
		// uncompressed RGB frame
		return width * height * 3
	}

	return 0
}
