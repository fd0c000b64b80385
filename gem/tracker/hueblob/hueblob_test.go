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

package hueblob_test

import (
	"testing"

	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/tracker"
	"github.com/jetsetilly/gemcore/gem/tracker/hueblob"
	"github.com/jetsetilly/gemcore/test"
)

const (
	width  = 64
	height = 48
)

// a black frame with a blue square
func blueSquare() tracker.Image {
	data := make([]byte, width*height*4)
	for y := 10; y < 20; y++ {
		for x := 20; x < 30; x++ {
			i := (y*width + x) * 4
			data[i+2] = 255
			data[i+3] = 255
		}
	}
	return tracker.Image{Format: camera.FormatRGBA, Width: width, Height: height, Data: data}
}

func config() tracker.Config {
	var cfg tracker.Config
	cfg.MinRadius = 0.01
	cfg.MaxRadius = 0.5
	cfg.Slots[0] = tracker.Slot{Active: true, Hue: 240, HueThreshold: 10, SaturationThreshold: 10}
	cfg.Slots[1] = tracker.Slot{Active: true, Hue: 0, HueThreshold: 10, SaturationThreshold: 10}
	return cfg
}

func TestBlob(t *testing.T) {
	bl := hueblob.NewBlob()
	hues, results := bl.Process(blueSquare(), config())

	test.ExpectEquality(t, hues[240], uint32(100))
	test.ExpectEquality(t, hues[0], uint32(0))

	r := results[0]
	test.ExpectSuccess(t, r.Valid)
	test.ExpectEquality(t, r.X, 25)
	test.ExpectEquality(t, r.Y, 15)
	test.ExpectEquality(t, r.XMax, width)
	test.ExpectEquality(t, r.YMax, height)
	test.ExpectApproximate(t, r.Radius, 5.6419, 0.001)
	test.ExpectSuccess(t, r.DistanceMM > 0)

	// nothing red in the frame
	test.ExpectFailure(t, results[1].Valid)

	// inactive slot
	test.ExpectFailure(t, results[2].Valid)
}

func TestRadiusBounds(t *testing.T) {
	cfg := config()
	cfg.MaxRadius = 0.05

	bl := hueblob.NewBlob()
	_, results := bl.Process(blueSquare(), cfg)

	// the square is found but it is too big
	test.ExpectFailure(t, results[0].Valid)
	test.ExpectEquality(t, results[0].X, 25)
	test.ExpectEquality(t, results[0].DistanceMM, float32(0))
}

func TestRAW8(t *testing.T) {
	// bayer blocks are in BGGR order
	data := make([]byte, width*height)
	for y := 0; y < 8; y += 2 {
		for x := 0; x < 8; x += 2 {
			data[y*width+x] = 255
		}
	}

	img := tracker.Image{Format: camera.FormatRAW8, Width: width, Height: height, Data: data}
	bl := hueblob.NewBlob()
	hues, results := bl.Process(img, config())

	// sixteen blocks of four pixels
	test.ExpectEquality(t, hues[240], uint32(64))
	test.ExpectSuccess(t, results[0].Valid)
	test.ExpectEquality(t, results[0].X, 4)
	test.ExpectEquality(t, results[0].Y, 4)
}

func TestUnsupportedFormat(t *testing.T) {
	img := blueSquare()
	img.Format = camera.FormatYUV422

	bl := hueblob.NewBlob()
	_, results := bl.Process(img, config())
	test.ExpectFailure(t, results[0].Valid)
}
