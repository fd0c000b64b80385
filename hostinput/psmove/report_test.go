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

package psmove

import (
	"testing"

	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/test"
)

func neutralReport() []byte {
	r := make([]byte, reportSize)
	r[0] = inputReport
	for i := range 3 {
		r[offAccel+i*2+1] = 0x80
		r[offGyro+i*2+1] = 0x80
	}
	return r
}

func TestDecodeReport(t *testing.T) {
	_, ok := decodeReport(make([]byte, 10))
	test.ExpectFailure(t, ok)

	r := neutralReport()
	r[0] = 0x02
	_, ok = decodeReport(r)
	test.ExpectFailure(t, ok)

	r = neutralReport()
	st, ok := decodeReport(r)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, st.Connected)
	test.ExpectSuccess(t, st.Motion)
	test.ExpectEquality(t, st.Move.Accel, [3]float32{})
	test.ExpectEquality(t, st.Move.Gyro, [3]float32{})
	for in := range inputs.NumPadInputs {
		test.ExpectFailure(t, st.Pressed[in])
	}
}

func TestDecodeButtons(t *testing.T) {
	r := neutralReport()

	// triangle and cross are in the second button byte
	r[offButtons2] = 0x50

	// start is in the first
	r[offButtons1] = 0x08

	// PS is the low bit of the third
	r[offButtons3] = 0x01

	// move is in the high nibble of the fourth
	r[offButtons4] = 0x10

	st, ok := decodeReport(r)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, st.Pressed[inputs.PadTriangle])
	test.ExpectSuccess(t, st.Pressed[inputs.PadCross])
	test.ExpectSuccess(t, st.Pressed[inputs.PadStart])
	test.ExpectSuccess(t, st.Pressed[inputs.PadPS])
	test.ExpectSuccess(t, st.Pressed[inputs.PadMove])
	test.ExpectFailure(t, st.Pressed[inputs.PadCircle])
	test.ExpectFailure(t, st.Pressed[inputs.PadSelect])
	test.ExpectFailure(t, st.Pressed[inputs.PadT])
	test.ExpectEquality(t, st.Digital1, uint16(0x08))
	test.ExpectEquality(t, st.Digital2, uint16(0x50))
}

func TestDecodeTrigger(t *testing.T) {
	r := neutralReport()
	r[offTrigger] = 100

	st, ok := decodeReport(r)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, st.Pressed[inputs.PadT])
	test.ExpectEquality(t, st.Values[inputs.PadT], uint16(100))
}

func TestDecodeSensors(t *testing.T) {
	r := neutralReport()

	// one G on the Z axis
	r[offAccel+4] = 0x00
	r[offAccel+5] = 0x90

	// negative rotation on the X axis
	r[offGyro] = 0x00
	r[offGyro+1] = 0x7c

	st, ok := decodeReport(r)
	test.DemandSuccess(t, ok)
	test.ExpectApproximate(t, st.Move.Accel[2], 1.0, 0.001)
	test.ExpectApproximate(t, st.Move.Gyro[0], -1.0, 0.001)

	copy(r[offExt:], []byte{1, 2, 3, 4, 5})
	st, _ = decodeReport(r)
	test.ExpectEquality(t, st.Move.ExtData, [inputs.ExtCustomSize]uint8{1, 2, 3, 4, 5})
}

func TestEncodeOutput(t *testing.T) {
	out := encodeOutput(10, 20, 30, 40)
	test.ExpectEquality(t, len(out), reportSize)
	test.ExpectEquality(t, out[0], uint8(outputReport))
	test.ExpectEquality(t, out[2], uint8(10))
	test.ExpectEquality(t, out[3], uint8(20))
	test.ExpectEquality(t, out[4], uint8(30))
	test.ExpectEquality(t, out[6], uint8(40))
}

func TestNoDevice(t *testing.T) {
	var h Handler
	test.ExpectFailure(t, h.Pad(inputs.PadIndex(0)).Connected)
	test.ExpectFailure(t, h.RequestCalibration(0))
	test.ExpectFailure(t, h.ExtWrite(0, [inputs.ExtOutputSize]byte{}))
	_, _, done := h.ExtRead(inputs.MaxPadPorts)
	test.ExpectSuccess(t, done)
}
