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

package v4l2cam

import (
	"context"
	"testing"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/guestmem"
	"github.com/jetsetilly/gemcore/test"
)

func TestYUYV(t *testing.T) {
	// two pixels sharing chroma: black and white with no colour
	src := []byte{16, 128, 235, 128}
	dst := make([]byte, 8)
	test.DemandSuccess(t, yuyvToRGBA(src, 2, 1, dst))
	test.ExpectEquality(t, [8]byte(dst), [8]byte{0, 0, 0, 255, 255, 255, 255, 255})

	// strong red
	src = []byte{81, 90, 81, 240}
	test.DemandSuccess(t, yuyvToRGBA(src, 2, 1, dst))
	test.ExpectApproximate(t, float64(dst[0]), 255, 2)
	test.ExpectApproximate(t, float64(dst[1]), 0, 2)
	test.ExpectApproximate(t, float64(dst[2]), 0, 2)

	test.ExpectFailure(t, yuyvToRGBA(src[:2], 2, 1, dst))
	test.ExpectFailure(t, yuyvToRGBA(src, 2, 1, dst[:4]))
}

func TestOpenMissingDevice(t *testing.T) {
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)

	mem := guestmem.NewMemory(0, 0x100000)
	_, err = Open(context.Background(), env, &camera.Shared{}, mem, "/dev/gemcore-no-such-camera", 640, 480, 30)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, mem.Allocations(), 0)
}
