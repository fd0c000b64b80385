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

package convert

import "fmt"

// OutputFormat is the format of a converted video frame.
type OutputFormat int

// List of valid OutputFormat values. The numeric values match those used by
// the guest.
const (
	NoVideoOutput OutputFormat = iota + 1
	RGBA640x480
	YUV640x480
	YUV422640x480
	YUV411640x480
	RGBA320x240
	BayerRestored
	BayerRestoredRGGB
	BayerRestoredRasterized
)

func (f OutputFormat) String() string {
	switch f {
	case NoVideoOutput:
		return "no video output"
	case RGBA640x480:
		return "RGBA 640x480"
	case YUV640x480:
		return "YUV 640x480"
	case YUV422640x480:
		return "YUV422 640x480"
	case YUV411640x480:
		return "YUV411 640x480"
	case RGBA320x240:
		return "RGBA 320x240"
	case BayerRestored:
		return "bayer restored"
	case BayerRestoredRGGB:
		return "bayer restored RGGB"
	case BayerRestoredRasterized:
		return "bayer restored rasterized"
	}
	return fmt.Sprintf("unknown (%d)", int(f))
}

// OutputSize returns the number of bytes required for a converted frame of the
// specified format. Returns -1 for unknown formats.
func OutputSize(f OutputFormat) int {
	switch f {
	case RGBA320x240:
		return 320 * 240 * 4
	case RGBA640x480:
		return 640 * 480 * 4
	case YUV640x480:
		return 640*480 + 640*480 + 640*480
	case YUV422640x480:
		return 640*480 + 320*480 + 320*480
	case YUV411640x480:
		return 640*480 + 320*240 + 320*240
	case BayerRestored, BayerRestoredRGGB, BayerRestoredRasterized:
		return 640 * 480
	case NoVideoOutput:
		return 0
	}
	return -1
}
