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

import (
	"math"
	"sync"

	"github.com/jetsetilly/gemcore/gem/colour"
)

// Sphere describes a tracked sphere to be painted into a converted frame.
type Sphere struct {
	// centre of the sphere in image coordinates
	X float32
	Y float32

	Radius      float32
	RadiusValid bool

	Colour colour.RGB
}

// Paint spheres into dst, which is a converted frame of the specified format
// and dimensions. Only RGBA640x480 frames are painted. Other formats are left
// untouched.
//
// Spheres without a valid radius are not painted.
func Paint(out OutputFormat, width, height int, dst []byte, spheres []Sphere) {
	if width <= 0 || height <= 0 || len(dst) == 0 {
		return
	}

	if out != RGBA640x480 {
		return
	}

	pitch := width * 4

	for _, s := range spheres {
		if !s.RadiusValid || s.Radius <= 0.0 {
			continue
		}

		r, g, b := s.Colour.Bytes()

		// the centre of the sphere is truncated to a whole pixel
		x := float64(int16(s.X))
		y := float64(int16(s.Y))
		radius := float64(s.Radius)

		xBegin := max(0, int(math.Floor(x-radius)))
		xEnd := min(width, int(math.Ceil(x+radius)))
		yBegin := max(0, int(math.Floor(y-radius)))
		yEnd := min(height, int(math.Ceil(y+radius)))

		for py := yBegin; py < yEnd; py++ {
			for px := xBegin; px < xEnd; px++ {
				if math.Hypot(x-float64(px), y-float64(py)) > radius {
					continue
				}

				i := py*pitch + px*4
				if i+4 > len(dst) {
					continue
				}
				dst[i] = r
				dst[i+1] = g
				dst[i+2] = b
				dst[i+3] = 255
			}
		}
	}
}

// Position is the most recently mapped image position of a sphere. It is safe
// to use from more than one goroutine.
type Position struct {
	crit sync.Mutex
	x    float32
	y    float32
}

// Set the position.
func (p *Position) Set(x, y float32) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.x = x
	p.y = y
}

// Get the position.
func (p *Position) Get() (float32, float32) {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.x, p.y
}
