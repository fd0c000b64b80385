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

package sdlinput

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/test"
)

func TestStickValue(t *testing.T) {
	test.ExpectEquality(t, stickValue(-32768), uint16(0))
	test.ExpectEquality(t, stickValue(0), uint16(128))
	test.ExpectEquality(t, stickValue(32767), uint16(255))
}

func TestPadIndex(t *testing.T) {
	test.ExpectEquality(t, padIndex(0), inputs.PadIndex(0))
	test.ExpectEquality(t, padIndex(3), inputs.PadIndex(3))
}

func TestMouseButtons(t *testing.T) {
	state := sdl.Button(sdl.BUTTON_LEFT) | sdl.Button(sdl.BUTTON_MIDDLE)
	test.ExpectEquality(t, mouseButtons(state), inputs.MouseButton1|inputs.MouseButton3)
	test.ExpectEquality(t, mouseButtons(0), inputs.MouseButtons(0))
}

func TestNoDevices(t *testing.T) {
	// a handler that has not been initialised with NewHandler() has no devices
	h := &Handler{}
	test.ExpectFailure(t, h.Pad(inputs.PadIndex(0)).Connected)
	test.ExpectEquality(t, h.Connected(), 0)
	_, ok := h.Mouse(0)
	test.ExpectFailure(t, ok)
}
