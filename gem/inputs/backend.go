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
	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/coords"
)

// Binding is the result of binding slots to devices.
type Binding struct {
	// number of connected devices
	Connected int

	// whether each slot has a connected device
	Slots [MaxSlots]bool
}

// Backend is implemented by every input backend.
type Backend interface {
	Kind() Kind

	// Bind slots to devices. Slots beyond maxConnect are never bound.
	Bind(maxConnect int) Binding

	// Buttons returns the digital buttons and the analogue value of the T
	// button.
	Buttons(slot int) (Buttons, uint16)

	// Position returns the position sample for the slot. Returns false if there
	// is no position.
	Position(slot int) (coords.Sample, bool)

	// ExtPort returns the state of the external port. Returns false if the
	// device is not connected, in which case the ExtStatus should be ignored
	// and the previous status retained.
	ExtPort(slot int) (ExtPortData, ExtStatus, bool)
}

// InertialSensor is implemented by backends with motion sensors.
type InertialSensor interface {
	Inertial(slot int) (Inertial, bool)
}

// Orienter is implemented by backends that can report the orientation of the
// controller directly. Returns false if orientation is not available, in which
// case a synthesised orientation should be used.
type Orienter interface {
	Orientation(slot int) (coords.Quaternion, bool)
}

// Calibrator is implemented by backends with devices that need to be told to
// calibrate.
type Calibrator interface {
	// RequestCalibration asks the device to calibrate. Returns true if the
	// device has acknowledged the request. Devices that do not need
	// calibration acknowledge immediately.
	RequestCalibration(slot int) bool

	// ClearCalibration resets the calibration request.
	ClearCalibration(slot int)
}

// Magnetometer is implemented by backends with devices that have a
// magnetometer that can be switched on and off.
type Magnetometer interface {
	SetMagnetometer(slot int, enabled bool)
}

// Rumbler is implemented by backends with rumble capable devices.
type Rumbler interface {
	SetRumble(slot int, value uint8)
}

// LEDSetter is implemented by backends with devices that have an LED.
type LEDSetter interface {
	SetLED(slot int, r, g, b uint8)
}

// ExternalPort is implemented by backends with devices that forward the
// external port handshakes to the accessory.
type ExternalPort interface {
	// RequestExtRead starts the read of the accessory information. Returns
	// false if the device is not connected.
	RequestExtRead(slot int) bool

	// ExtRead returns the result of the read. The first boolean value
	// indicates that the read has completed and the second that the device is
	// connected.
	ExtRead(slot int) (uint32, [ExtInfoSize]byte, bool, bool)

	// ExtWrite sends data to the accessory. The first boolean value is false
	// if a previous write is still pending and the second that the device is
	// connected.
	ExtWrite(slot int, data [ExtOutputSize]byte) (bool, bool)
}

// Rescanner is implemented by backends that can update the connection status
// of every slot without binding the slots again.
type Rescanner interface {
	Rescan(maxConnect int) Binding
}

// PositionSource provides the position of the sphere as seen by the camera.
type PositionSource interface {
	TrackedPosition(slot int) coords.Sample
}

// Tracked is implemented by backends that take the position from the camera
// tracker rather than the device.
type Tracked interface {
	SetPositionSource(PositionSource)
}

// Handlers are the host handlers that can be used by a backend. Only the
// handler for the chosen kind of backend is required.
type Handlers struct {
	Pads PadHandler
	Mice MouseHandler
	Guns GunHandler
}

// sentinel error patterns returned by NewBackend()
const (
	MissingHandler = "inputs: %s backend requires %s"
)

// NewBackend creates a new backend of the specified kind.
func NewBackend(env *environment.Environment, kind Kind, h Handlers) (Backend, error) {
	switch kind {
	case KindNull:
		return &Null{}, nil
	case KindMove:
		pads, ok := h.Pads.(MotionPadHandler)
		if !ok {
			return nil, curated.Errorf(MissingHandler, kind, "a motion capable pad handler")
		}
		return NewMove(env, pads), nil
	case KindGamepad:
		if h.Pads == nil {
			return nil, curated.Errorf(MissingHandler, kind, "a pad handler")
		}
		return NewGamepad(env, h.Pads), nil
	case KindMouse, KindRawMouse:
		if h.Mice == nil {
			return nil, curated.Errorf(MissingHandler, kind, "a mouse handler")
		}
		return NewMouse(env, h.Mice, kind == KindRawMouse), nil
	case KindGun:
		if h.Guns == nil {
			return nil, curated.Errorf(MissingHandler, kind, "a gun handler")
		}
		return NewGun(env, h.Guns), nil
	}
	return nil, curated.Errorf(UnknownKind, kind)
}

// slotTable maps slots to device indexes. an index of -1 means the slot is
// not bound
type slotTable [MaxSlots]int

func unboundTable() slotTable {
	return slotTable{-1, -1, -1, -1}
}

func (t slotTable) lookup(slot int) (int, bool) {
	if slot < 0 || slot >= MaxSlots {
		return -1, false
	}
	idx := t[slot]
	return idx, idx >= 0
}

func clampConnect(maxConnect int) int {
	return max(0, min(maxConnect, MaxSlots))
}
