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
	"sync"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/coords"
)

// Move is the backend for native motion controllers. The position of the
// controller is taken from the camera tracker.
type Move struct {
	padBackend
	pads MotionPadHandler

	posCrit   sync.Mutex
	positions PositionSource
}

// NewMove is the preferred method of initialisation for the Move type.
func NewMove(env *environment.Environment, pads MotionPadHandler) *Move {
	m := &Move{
		pads: pads,
	}
	m.padBackend.init(env, pads, true)
	return m
}

// Kind implements the Backend interface.
func (m *Move) Kind() Kind {
	return KindMove
}

// Bind implements the Backend interface.
func (m *Move) Bind(maxConnect int) Binding {
	return m.bind(maxConnect)
}

// SetPositionSource implements the Tracked interface.
func (m *Move) SetPositionSource(ps PositionSource) {
	m.posCrit.Lock()
	defer m.posCrit.Unlock()
	m.positions = ps
}

// motion returns the pad index for the slot if the pad is a native motion
// controller
func (m *Move) motion(slot int) (PadState, int, bool) {
	st, idx, ok := m.pad(slot)
	if !ok || !st.Motion {
		return PadState{}, -1, false
	}
	return st, idx, true
}

// the native buttons of a motion controller
var moveButtons = []struct {
	in PadInput
	b  Buttons
}{
	{PadStart, ButtonStart},
	{PadSelect, ButtonSelect},
	{PadTriangle, ButtonTriangle},
	{PadCircle, ButtonCircle},
	{PadCross, ButtonCross},
	{PadSquare, ButtonSquare},
	{PadMove, ButtonMove},
	{PadT, ButtonT},
}

// Buttons implements the Backend interface.
func (m *Move) Buttons(slot int) (Buttons, uint16) {
	st, _, ok := m.pad(slot)
	if !ok {
		return 0, 0
	}

	var b Buttons
	var t uint16

	for _, mb := range moveButtons {
		if !st.Pressed[mb.in] {
			continue
		}
		b |= mb.b
		if mb.b == ButtonT {
			t = max(t, st.Values[mb.in])
		}
	}

	return b, t
}

// Position implements the Backend interface.
func (m *Move) Position(slot int) (coords.Sample, bool) {
	if _, _, ok := m.motion(slot); !ok {
		return coords.Sample{}, false
	}

	m.posCrit.Lock()
	ps := m.positions
	m.posCrit.Unlock()

	if ps == nil {
		return coords.Sample{}, false
	}

	return ps.TrackedPosition(slot), true
}

// Orientation implements the Orienter interface.
func (m *Move) Orientation(slot int) (coords.Quaternion, bool) {
	st, _, ok := m.motion(slot)
	if !ok {
		return coords.Quaternion{}, false
	}
	return st.Move.Quaternion, true
}

// RequestCalibration implements the Calibrator interface.
func (m *Move) RequestCalibration(slot int) bool {
	idx, ok := m.device(slot)
	if !ok {
		return true
	}
	st := m.pads.Pad(idx)
	if !st.Motion {
		return true
	}
	return m.pads.RequestCalibration(idx)
}

// ClearCalibration implements the Calibrator interface.
func (m *Move) ClearCalibration(slot int) {
	idx, ok := m.device(slot)
	if !ok {
		return
	}
	if m.pads.Pad(idx).Motion {
		m.pads.ClearCalibration(idx)
	}
}

// SetMagnetometer implements the Magnetometer interface.
func (m *Move) SetMagnetometer(slot int, enabled bool) {
	idx, ok := m.device(slot)
	if !ok {
		return
	}
	if m.pads.Pad(idx).Motion {
		m.pads.SetMagnetometer(idx, enabled)
	}
}

// SetRumble implements the Rumbler interface.
func (m *Move) SetRumble(slot int, value uint8) {
	idx, ok := m.device(slot)
	if !ok {
		return
	}
	if m.pads.Pad(idx).Motion {
		m.pads.SetRumble(idx, value)
	}
}

// SetLED implements the LEDSetter interface.
func (m *Move) SetLED(slot int, r, g, b uint8) {
	idx, ok := m.device(slot)
	if !ok {
		return
	}
	if m.pads.Pad(idx).Motion {
		m.pads.SetLED(idx, r, g, b)
	}
}

// RequestExtRead implements the ExternalPort interface.
func (m *Move) RequestExtRead(slot int) bool {
	_, idx, ok := m.motion(slot)
	if !ok {
		return false
	}
	m.pads.RequestExtRead(idx)
	return true
}

// ExtRead implements the ExternalPort interface.
func (m *Move) ExtRead(slot int) (uint32, [ExtInfoSize]byte, bool, bool) {
	_, idx, ok := m.motion(slot)
	if !ok {
		return 0, [ExtInfoSize]byte{}, false, false
	}
	id, info, done := m.pads.ExtRead(idx)
	return id, info, done, true
}

// ExtWrite implements the ExternalPort interface.
func (m *Move) ExtWrite(slot int, data [ExtOutputSize]byte) (bool, bool) {
	_, idx, ok := m.motion(slot)
	if !ok {
		return false, false
	}
	return m.pads.ExtWrite(idx, data), true
}
