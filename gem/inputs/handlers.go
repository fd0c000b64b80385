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

import (
	"strings"

	"github.com/jetsetilly/gemcore/gem/coords"
)

// PadInput identifies a button or axis on a host pad.
type PadInput int

// List of valid PadInput values.
const (
	PadStart PadInput = iota
	PadSelect
	PadTriangle
	PadCircle
	PadCross
	PadSquare
	PadL1
	PadR1
	PadL2
	PadR2
	PadL3
	PadR3
	PadUp
	PadDown
	PadLeft
	PadRight
	PadPS

	// buttons only found on native motion controllers
	PadMove
	PadT

	// analogue sticks. values are in the range 0 to 255 with 128 at the centre
	PadLSX
	PadLSY
	PadRSX
	PadRSY

	NumPadInputs
)

var padInputNames = [NumPadInputs]string{
	"start", "select", "triangle", "circle", "cross", "square",
	"l1", "r1", "l2", "r2", "l3", "r3",
	"up", "down", "left", "right", "ps",
	"move", "t",
	"lsx", "lsy", "rsx", "rsy",
}

func (in PadInput) String() string {
	if in < 0 || in >= NumPadInputs {
		return "unknown"
	}
	return padInputNames[in]
}

// ParsePadInput returns the PadInput for the name. The comparison ignores
// case. Returns false if the name is not recognised.
func ParsePadInput(name string) (PadInput, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range padInputNames {
		if n == name {
			return PadInput(i), true
		}
	}
	return 0, false
}

// MoveData is the state of a native motion controller beyond that of a
// regular pad.
type MoveData struct {
	Inertial

	Quaternion         coords.Quaternion
	OrientationEnabled bool

	ExtConnected bool
	ExtID        uint32
	ExtData      [ExtCustomSize]uint8
}

// PadState is the state of a host pad at an instant.
type PadState struct {
	Connected bool

	// the pad is a native motion controller
	Motion bool

	// pressed state and value of each input. axes are always pressed
	Pressed [NumPadInputs]bool
	Values  [NumPadInputs]uint16

	// raw digital button words, in the same layout as for the guest's pads.
	// these are passed through unchanged to the external port data
	Digital1 uint16
	Digital2 uint16

	Move MoveData
}

// Axis returns the value of the axis.
func (st PadState) Axis(in PadInput) uint16 {
	if in < 0 || in >= NumPadInputs {
		return 0
	}
	return st.Values[in]
}

// PadHandler is implemented by host pad handlers.
type PadHandler interface {
	// Pad returns the state of the pad at the index. A pad that does not exist
	// is returned as disconnected.
	Pad(index int) PadState
}

// MotionPadHandler is implemented by host pad handlers that support native
// motion controllers. The index argument of every function is the same as for
// Pad().
type MotionPadHandler interface {
	PadHandler

	// RequestCalibration requests calibration of the device. Returns true if
	// the device has been calibrated since the last request was cleared.
	RequestCalibration(index int) bool

	// ClearCalibration clears the calibration request.
	ClearCalibration(index int)

	SetMagnetometer(index int, enabled bool)
	SetRumble(index int, value uint8)
	SetLED(index int, r, g, b uint8)

	// RequestExtRead starts a read of the external port accessory information.
	RequestExtRead(index int)

	// ExtRead returns the information read by the most recent request. The
	// done value is false if the read has not completed.
	ExtRead(index int) (id uint32, info [ExtInfoSize]byte, done bool)

	// ExtWrite sends data to the external port accessory. Returns false if a
	// previous write has not completed, in which case the data is ignored.
	ExtWrite(index int, data [ExtOutputSize]byte) bool
}

// MouseButtons is the button state of a mouse. Bit zero is button one.
type MouseButtons uint8

// List of mouse buttons.
const (
	MouseButton1 MouseButtons = 1 << iota
	MouseButton2
	MouseButton3
	MouseButton4
	MouseButton5
	MouseButton6
	MouseButton7
	MouseButton8
)

// MouseState is the state of a mouse at an instant.
type MouseState struct {
	Buttons MouseButtons

	// position of the mouse and the extent of the area in which it can move
	X    int
	Y    int
	XMax int
	YMax int
}

// MouseHandler is implemented by host mouse handlers.
type MouseHandler interface {
	// Init makes sure the handler is ready for the number of mice. Init can be
	// called many times
	Init(max int)

	// Connected returns the number of connected mice.
	Connected() int

	// Status returns whether the mouse at the index is connected.
	Status(index int) bool

	// Mouse returns the state of the mouse. Returns false if there is no mouse
	// at the index.
	Mouse(index int) (MouseState, bool)
}

// GunButtons is the button state of a gun.
type GunButtons uint16

// List of gun buttons.
const (
	GunLeft GunButtons = 1 << iota
	GunRight
	GunMiddle
	Gun1
	Gun2
	Gun3
	Gun4
	Gun5
	Gun6
)

// GunState is the state of a gun at an instant.
type GunState struct {
	Buttons GunButtons

	// position the gun is pointing at and the extent of the axes
	X    int
	Y    int
	XMax int
	YMax int
}

// GunHandler is implemented by host gun handlers.
type GunHandler interface {
	// Init prepares the handler and returns true if it is ready to be used.
	Init() bool

	// NumGuns returns the number of guns found during Init().
	NumGuns() int

	// Gun returns the state of the gun at index. Returns false if there is no
	// gun at the index.
	Gun(index int) (GunState, bool)
}
