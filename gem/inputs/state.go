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

package inputs

import "strings"

// Buttons is the digital button state of a motion controller.
type Buttons uint16

// List of buttons.
const (
	ButtonSelect   Buttons = 0x0001
	ButtonT        Buttons = 0x0002
	ButtonMove     Buttons = 0x0004
	ButtonStart    Buttons = 0x0008
	ButtonTriangle Buttons = 0x0010
	ButtonCircle   Buttons = 0x0020
	ButtonCross    Buttons = 0x0040
	ButtonSquare   Buttons = 0x0080
)

var buttonNames = []struct {
	b Buttons
	n string
}{
	{ButtonSelect, "select"},
	{ButtonT, "T"},
	{ButtonMove, "move"},
	{ButtonStart, "start"},
	{ButtonTriangle, "triangle"},
	{ButtonCircle, "circle"},
	{ButtonCross, "cross"},
	{ButtonSquare, "square"},
}

func (b Buttons) String() string {
	var s []string
	for _, n := range buttonNames {
		if b&n.b == n.b {
			s = append(s, n.n)
		}
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "+")
}

// AnalogMax is the value of an analogue T button that has been fully pressed by
// a device with only a digital input.
const AnalogMax = 0xffff

// ExtConnected is set in the status field of ExtPortData when an accessory is
// attached to the external port.
const ExtConnected = 0x0001

// Sizes of external port data.
const (
	ExtCustomSize = 5
	ExtInfoSize   = 38
	ExtOutputSize = 40
)

// ExtPortData is the state of an accessory attached to the external port of a
// controller. The digital and analogue fields are the same as for a pad.
type ExtPortData struct {
	Status       uint16
	Digital1     uint16
	Digital2     uint16
	AnalogRightX uint16
	AnalogRightY uint16
	AnalogLeftX  uint16
	AnalogLeftY  uint16
	Custom       [ExtCustomSize]uint8
}

// ExtStatus is the status of the external port as last read from the device.
type ExtStatus struct {
	Status uint32
	ID     uint32
}

// Inertial is the state of the motion sensors in a controller.
type Inertial struct {
	Temperature float32

	// acceleration in G
	Accel [3]float32

	// angular velocity in radians per second
	Gyro [3]float32
}
