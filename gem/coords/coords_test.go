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

package coords_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/test"
)

func TestCentre(t *testing.T) {
	sphere := coords.Sphere{Radius: 5, DistanceMM: 3000}

	// centre of the sample space maps to the centre of the camera whatever
	// the scale
	for _, s := range []coords.Sample{
		{X: 320, Y: 240},
		{X: 128, Y: 128, XMax: 256, YMax: 256},
		{X: 960, Y: 540, XMax: 1920, YMax: 1080},
		{X: 50, Y: 50, XMax: 100, YMax: 100},
	} {
		m := coords.Map(s, 640, 480, sphere)
		test.ExpectApproximate(t, m.CameraX, 0.0, 0.0001, s)
		test.ExpectApproximate(t, m.CameraY, 0.0, 0.0001, s)
		test.ExpectApproximate(t, m.ImageX, 320.0, 0.0001, s)
		test.ExpectApproximate(t, m.ImageY, 240.0, 0.0001, s)
		test.ExpectEquality(t, m.Pos[2], float32(3000), s)
		test.ExpectEquality(t, m.Handle[2], float32(3010), s)

		q := coords.Orientation(m, 640, 480, 10, 10)
		test.ExpectApproximate(t, q[3], 1.0, 0.0001, s)
	}
}

func TestMapping(t *testing.T) {
	sphere := coords.Sphere{Radius: 5, DistanceMM: 3000}

	// top left corner of a 256x256 sample space
	m := coords.Map(coords.Sample{X: 0, Y: 0, XMax: 256, YMax: 256}, 640, 480, sphere)
	test.ExpectApproximate(t, m.ImageX, 0.0, 0.0001)
	test.ExpectApproximate(t, m.ImageY, 0.0, 0.0001)

	// 22.5mm radius is 5 pixels
	test.ExpectApproximate(t, m.CameraX, -320*4.5, 0.001)
	test.ExpectApproximate(t, m.CameraY, 240*4.5, 0.001)
	test.ExpectApproximate(t, m.ProjectionX, -320*4.5/3000, 0.0001)
	test.ExpectApproximate(t, m.ProjectionY, 240*4.5/3000, 0.0001)

	// no camera
	m = coords.Map(coords.Sample{X: 10, Y: 10}, 0, 0, sphere)
	test.ExpectEquality(t, m, coords.Mapped{})
}

func TestOrientation(t *testing.T) {
	// right hand edge and top edge of the image
	m := coords.Mapped{ImageX: 640, ImageY: 0}
	q := coords.Orientation(m, 640, 480, 20, 30)

	// maximum rotation is half the cone angle
	roll := 15.0 * math.Pi / 180.0
	pitch := -10.0 * math.Pi / 180.0

	sr, cr := math.Sin(roll/2), math.Cos(roll/2)
	sp, cp := math.Sin(pitch/2), math.Cos(pitch/2)

	test.ExpectApproximate(t, float64(q[0]), sr*cp, 0.00001)
	test.ExpectApproximate(t, float64(q[1]), cr*sp, 0.00001)
	test.ExpectApproximate(t, float64(q[2]), -sr*sp, 0.00001)
	test.ExpectApproximate(t, float64(q[3]), cr*cp, 0.00001)

	// unit length
	var l float64
	for _, v := range q {
		l += float64(v) * float64(v)
	}
	test.ExpectApproximate(t, l, 1.0, 0.00001)

	test.ExpectEquality(t, coords.Orientation(m, 0, 480, 10, 10), coords.Identity)
}
