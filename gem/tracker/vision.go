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

package tracker

import (
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
)

// NumHues is the number of entries in the hue histogram.
const NumHues = 360

// TrackableLimit is the number of pixels of a hue that can be seen in the
// camera image before the hue is considered to be untrackable.
const TrackableLimit = 20

// Hues is the histogram of hues seen in a camera frame.
type Hues [NumHues]uint32

// Result of tracking a single sphere.
type Result struct {
	Valid bool

	// position of the sphere and the extent of the image
	X    int
	Y    int
	XMax int
	YMax int

	// radius is in pixels
	Radius     float32
	DistanceMM float32
}

// Sample returns the position of the result as a sample for the coordinate
// mapper.
func (r Result) Sample() coords.Sample {
	return coords.Sample{X: r.X, Y: r.Y, XMax: r.XMax, YMax: r.YMax}
}

// Slot is the tracking configuration for a single sphere.
type Slot struct {
	// sphere should be searched for
	Active bool

	Hue uint32

	// tolerance in degrees
	HueThreshold int

	// minimum saturation as a percentage
	SaturationThreshold int
}

// Config is the configuration for a single tracking cycle.
type Config struct {
	Slots [inputs.MaxSlots]Slot

	// bounds of the sphere radius as a fraction of the image width
	MinRadius float32
	MaxRadius float32
}

// Image is the camera frame given to the vision pipeline.
type Image struct {
	Format camera.Format
	Width  int
	Height int
	Data   []byte
}

// Vision is implemented by the vision pipeline.
type Vision interface {
	// Process the image and return the hue histogram and result for every
	// slot. Inactive slots should be returned as invalid.
	Process(img Image, cfg Config) (Hues, [inputs.MaxSlots]Result)
}

// Request is the state of a slot as set by the game.
type Request struct {
	// tracking is enabled and the slot is ready
	Active bool

	Hue    uint32
	Colour colour.RGB
}

// Source is implemented by the owner of the controller state.
type Source interface {
	// TrackerRequests is called at the start of every cycle.
	TrackerRequests() [inputs.MaxSlots]Request

	// TrackerResults is called with the results at the end of every cycle.
	TrackerResults(results [inputs.MaxSlots]Result)
}
