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
	"encoding/binary"

	"github.com/jetsetilly/gemcore/gem/inputs"
)

// USB identifiers of the controller
const (
	VendorID  = 0x054c
	ProductID = 0x03d5
)

// size of input and output reports, including the report ID
const reportSize = 49

// report IDs
const (
	inputReport  = 0x01
	outputReport = 0x06
)

// button bits after the button bytes have been combined by buttonWord()
const (
	btnTriangle = 1 << 0x04
	btnCircle   = 1 << 0x05
	btnCross    = 1 << 0x06
	btnSquare   = 1 << 0x07
	btnSelect   = 1 << 0x08
	btnStart    = 1 << 0x0b
	btnPS       = 1 << 0x10
	btnMove     = 1 << 0x13
	btnT        = 1 << 0x14
)

// offsets into the input report
const (
	offButtons1    = 1
	offButtons2    = 2
	offButtons3    = 3
	offButtons4    = 4
	offTrigger     = 5
	offAccel       = 13
	offGyro        = 25
	offTemperature = 37
	offExt         = 44
)

// approximate conversion factors for the sensors
const (
	accelPerG         = 4096.0
	gyroPerRadian     = 1024.0
	temperatureOffset = 1660.0
	temperatureScale  = 13.0
	temperatureBase   = 25.0
)

var buttonMap = []struct {
	bit uint32
	in  inputs.PadInput
}{
	{btnTriangle, inputs.PadTriangle},
	{btnCircle, inputs.PadCircle},
	{btnCross, inputs.PadCross},
	{btnSquare, inputs.PadSquare},
	{btnSelect, inputs.PadSelect},
	{btnStart, inputs.PadStart},
	{btnPS, inputs.PadPS},
	{btnMove, inputs.PadMove},
	{btnT, inputs.PadT},
}

func buttonWord(r []byte) uint32 {
	return uint32(r[offButtons2]) |
		uint32(r[offButtons1])<<8 |
		uint32(r[offButtons3]&0x01)<<16 |
		uint32(r[offButtons4]&0xf0)<<13
}

// sensor values are unsigned with the zero point at 0x8000
func sensor(r []byte, offset int) float32 {
	return float32(int32(binary.LittleEndian.Uint16(r[offset:])) - 0x8000)
}

// decodeReport decodes an input report into the pad state. Returns false if
// the data is not an input report.
func decodeReport(r []byte) (inputs.PadState, bool) {
	if len(r) < reportSize || r[0] != inputReport {
		return inputs.PadState{}, false
	}

	st := inputs.PadState{
		Connected: true,
		Motion:    true,
	}

	b := buttonWord(r)
	for _, m := range buttonMap {
		if b&m.bit == m.bit {
			st.Pressed[m.in] = true
			st.Values[m.in] = 255
		}
	}

	// the T button is analogue
	st.Values[inputs.PadT] = uint16(r[offTrigger])
	st.Pressed[inputs.PadT] = st.Pressed[inputs.PadT] || r[offTrigger] > 0

	st.Digital1 = uint16(r[offButtons1])
	st.Digital2 = uint16(r[offButtons2])

	for i := range 3 {
		st.Move.Accel[i] = sensor(r, offAccel+i*2) / accelPerG
		st.Move.Gyro[i] = sensor(r, offGyro+i*2) / gyroPerRadian
	}

	raw := uint16(r[offTemperature])<<4 | uint16(r[offTemperature+1]>>4)
	st.Move.Temperature = temperatureBase + (float32(raw)-temperatureOffset)/temperatureScale

	copy(st.Move.ExtData[:], r[offExt:offExt+inputs.ExtCustomSize])

	return st, true
}

// encodeOutput creates the output report that sets the LED colour and the
// rumble strength.
func encodeOutput(r, g, b, rumble uint8) []byte {
	out := make([]byte, reportSize)
	out[0] = outputReport
	out[2] = r
	out[3] = g
	out[4] = b
	out[6] = rumble
	return out
}
