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

// Package hueblob is a simple vision pipeline for the tracker. Every pixel
// that is close enough to the hue of a sphere is counted towards that sphere
// and the sphere position is the weighted centroid of those pixels.
//
// The apparent radius of the sphere is taken from the area covered by the
// counted pixels, assuming the sphere is seen as a disc.
package hueblob

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/gem/tracker"
)

// the horizontal field of view of the camera in degrees. used to estimate the
// distance of the sphere from its apparent radius
const fieldOfView = 75.0

// minimum saturation and value for a pixel to be included in the histogram
const (
	histogramSaturation = 0.5
	histogramValue      = 0.25
)

// Blob implements the tracker.Vision interface.
type Blob struct {
	xs [inputs.MaxSlots][]float64
	ys [inputs.MaxSlots][]float64
	ws [inputs.MaxSlots][]float64
}

// NewBlob is the preferred method of initialisation for the Blob type.
func NewBlob() *Blob {
	return &Blob{}
}

// hueDistance returns the angular distance between two hues
func hueDistance(a, b float32) float32 {
	d := float32(math.Abs(float64(a - b)))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Process implements the tracker.Vision interface.
func (bl *Blob) Process(img tracker.Image, cfg tracker.Config) (tracker.Hues, [inputs.MaxSlots]tracker.Result) {
	var hues tracker.Hues
	var results [inputs.MaxSlots]tracker.Result

	for i := range bl.xs {
		bl.xs[i] = bl.xs[i][:0]
		bl.ys[i] = bl.ys[i][:0]
		bl.ws[i] = bl.ws[i][:0]
	}

	pixel := func(x, y float64, weight float64, r, g, b uint8) {
		h, s, v := colour.RGBToHSV(float32(r), float32(g), float32(b))

		if s >= histogramSaturation && v >= histogramValue {
			hues[min(int(h), tracker.NumHues-1)] += uint32(weight)
		}

		for i, sl := range cfg.Slots {
			if !sl.Active {
				continue
			}
			if s*100 < float32(sl.SaturationThreshold) || v < histogramValue {
				continue
			}
			if hueDistance(h, float32(sl.Hue)) > float32(sl.HueThreshold) {
				continue
			}
			bl.xs[i] = append(bl.xs[i], x)
			bl.ys[i] = append(bl.ys[i], y)
			bl.ws[i] = append(bl.ws[i], weight)
		}
	}

	switch img.Format {
	case camera.FormatRGBA:
		if len(img.Data) < img.Width*img.Height*4 {
			return hues, results
		}
		for y := range img.Height {
			row := img.Data[y*img.Width*4:]
			for x := range img.Width {
				p := row[x*4:]
				pixel(float64(x), float64(y), 1, p[0], p[1], p[2])
			}
		}

	case camera.FormatRAW8:
		// each 2x2 bayer block is treated as a single pixel at the centre
		// of the block
		if len(img.Data) < img.Width*img.Height {
			return hues, results
		}
		for y := 0; y < img.Height-1; y += 2 {
			row0 := img.Data[y*img.Width:]
			row1 := img.Data[(y+1)*img.Width:]
			for x := 0; x < img.Width-1; x += 2 {
				g := uint8((uint16(row0[x+1]) + uint16(row1[x])) / 2)
				pixel(float64(x)+0.5, float64(y)+0.5, 4, row1[x+1], g, row0[x])
			}
		}

	default:
		return hues, results
	}

	// focal length in pixels
	focal := float64(img.Width) / (2 * math.Tan(fieldOfView*math.Pi/360))

	for i, sl := range cfg.Slots {
		if !sl.Active || len(bl.ws[i]) == 0 {
			continue
		}

		var area float64
		for _, w := range bl.ws[i] {
			area += w
		}

		res := tracker.Result{
			X:      int(math.Round(stat.Mean(bl.xs[i], bl.ws[i]))),
			Y:      int(math.Round(stat.Mean(bl.ys[i], bl.ws[i]))),
			XMax:   img.Width,
			YMax:   img.Height,
			Radius: float32(math.Sqrt(area / math.Pi)),
		}

		minR := cfg.MinRadius * float32(img.Width)
		maxR := cfg.MaxRadius * float32(img.Width)
		res.Valid = res.Radius >= minR && res.Radius <= maxR

		if res.Valid {
			res.DistanceMM = float32(focal * coords.SphereRadiusMM / float64(res.Radius))
		}

		results[i] = res
	}

	return hues, results
}
