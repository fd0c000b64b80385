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

// Package coords maps the position samples of the input backends into the
// coordinate systems used by the guest.
//
// A sample is a position within a sample space of its own (eg. the mouse
// window or the analogue stick range). It is first scaled to the camera image
// and then converted to camera coordinates in millimetres using the apparent
// size of the sphere.
package coords

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// SphereRadiusMM is the real radius of the tracked sphere.
const SphereRadiusMM = 22.5

// Sample is a position as reported by an input backend.
type Sample struct {
	X int
	Y int

	// extent of the sample space. a value of zero or less means that the
	// sample space is the same as the camera image
	XMax int
	YMax int
}

// Sphere is the apparent size and distance of the sphere.
type Sphere struct {
	// radius in camera pixels
	Radius float32

	// distance from the camera in millimetres
	DistanceMM float32
}

// Mapped is the result of mapping a sample.
type Mapped struct {
	// position in the camera image
	ImageX float32
	ImageY float32

	// position in camera coordinates (millimetres from the centre of the
	// image)
	CameraX float32
	CameraY float32

	// camera coordinates divided by distance
	ProjectionX float32
	ProjectionY float32

	// world positions of the sphere and the handle. the fourth value is
	// always zero
	Pos    [4]float32
	Handle [4]float32
}

// Map the sample into the camera image of the specified dimensions.
func Map(s Sample, width, height int, sphere Sphere) Mapped {
	var m Mapped

	if width <= 0 || height <= 0 {
		return m
	}

	xmax := float32(s.XMax)
	ymax := float32(s.YMax)
	if xmax <= 0 {
		xmax = float32(width)
	}
	if ymax <= 0 {
		ymax = float32(height)
	}

	scaleW := xmax / float32(width)
	scaleH := ymax / float32(height)

	m.ImageX = float32(s.X) / scaleW
	m.ImageY = float32(s.Y) / scaleH

	// image coordinates increase downwards so the y axis is inverted
	centredX := m.ImageX - float32(width)/2.0
	centredY := float32(height)/2.0 - m.ImageY

	var mmPerPixel float32
	if sphere.Radius > 0.0 {
		mmPerPixel = SphereRadiusMM / sphere.Radius
	}

	m.CameraX = centredX * mmPerPixel
	m.CameraY = centredY * mmPerPixel

	if sphere.DistanceMM != 0.0 {
		m.ProjectionX = m.CameraX / sphere.DistanceMM
		m.ProjectionY = m.CameraY / sphere.DistanceMM
	}

	m.Pos = [4]float32{m.CameraX, m.CameraY, sphere.DistanceMM, 0.0}

	// the handle is assumed to be directly behind the sphere
	m.Handle = [4]float32{m.CameraX, m.CameraY, sphere.DistanceMM + 10.0, 0.0}

	return m
}

// Quaternion is an orientation in x, y, z, w order.
type Quaternion [4]float32

// Identity orientation.
var Identity = Quaternion{0, 0, 0, 1}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// Orientation synthesises an orientation from the position of the sphere in
// the camera image. The sphere is tilted towards the edges of the image, up to
// half of the cone angle (in degrees) at the edge.
func Orientation(m Mapped, width, height int, coneH, coneV float64) Quaternion {
	if width <= 0 || height <= 0 {
		return Identity
	}

	hw := float64(width) / 2.0
	hh := float64(height) / 2.0

	// vertical movement rotates around the x axis and horizontal movement
	// rotates around the y axis
	roll := -degreesToRadians((float64(m.ImageY) - hh) / hh * coneV / 2.0)
	pitch := -degreesToRadians((float64(m.ImageX) - hw) / hw * coneH / 2.0)
	yaw := 0.0

	qx := quat.Number{Real: math.Cos(roll / 2.0), Imag: math.Sin(roll / 2.0)}
	qy := quat.Number{Real: math.Cos(pitch / 2.0), Jmag: math.Sin(pitch / 2.0)}
	qz := quat.Number{Real: math.Cos(yaw / 2.0), Kmag: math.Sin(yaw / 2.0)}

	q := quat.Mul(quat.Mul(qz, qy), qx)

	return Quaternion{float32(q.Imag), float32(q.Jmag), float32(q.Kmag), float32(q.Real)}
}
