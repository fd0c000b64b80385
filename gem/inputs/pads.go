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
)

// padBackend is the part of the Move and Gamepad backends that deals with
// binding slots to host pads.
type padBackend struct {
	env     *environment.Environment
	handler PadHandler

	// native motion controllers only
	motionOnly bool

	crit  sync.Mutex
	table slotTable
}

func (pb *padBackend) init(env *environment.Environment, handler PadHandler, motionOnly bool) {
	pb.env = env
	pb.handler = handler
	pb.motionOnly = motionOnly
	pb.table = unboundTable()
}

func (pb *padBackend) bind(maxConnect int) Binding {
	var b Binding
	t := unboundTable()

	for slot := range clampConnect(maxConnect) {
		idx := PadIndex(slot)
		st := pb.handler.Pad(idx)
		if !st.Connected || (pb.motionOnly && !st.Motion) {
			continue
		}
		t[slot] = idx
		b.Slots[slot] = true
		b.Connected++
	}

	pb.crit.Lock()
	pb.table = t
	pb.crit.Unlock()

	return b
}

// device returns the index of the pad bound to the slot
func (pb *padBackend) device(slot int) (int, bool) {
	pb.crit.Lock()
	defer pb.crit.Unlock()
	return pb.table.lookup(slot)
}

// pad returns the state of the pad for slot. returns false if input is not
// allowed or if the pad is not connected
func (pb *padBackend) pad(slot int) (PadState, int, bool) {
	if !pb.env.InputAllowed() {
		return PadState{}, -1, false
	}

	idx, ok := pb.device(slot)
	if !ok {
		return PadState{}, -1, false
	}

	st := pb.handler.Pad(idx)
	if !st.Connected {
		return PadState{}, -1, false
	}

	return st, idx, true
}

// ExtPort implements the Backend interface.
func (pb *padBackend) ExtPort(slot int) (ExtPortData, ExtStatus, bool) {
	st, _, ok := pb.pad(slot)
	if !ok {
		return ExtPortData{}, ExtStatus{}, false
	}

	var ext ExtPortData
	var status ExtStatus

	if st.Move.ExtConnected {
		status.Status = ExtConnected
		status.ID = st.Move.ExtID
	}

	ext.Status = uint16(status.Status)
	ext.AnalogLeftX = st.Values[PadLSX]
	ext.AnalogLeftY = st.Values[PadLSY]
	ext.AnalogRightX = st.Values[PadRSX]
	ext.AnalogRightY = st.Values[PadRSY]
	ext.Digital1 = st.Digital1
	ext.Digital2 = st.Digital2

	if st.Move.ExtConnected {
		ext.Custom = st.Move.ExtData
	}

	return ext, status, true
}

// Inertial implements the InertialSensor interface.
func (pb *padBackend) Inertial(slot int) (Inertial, bool) {
	st, _, ok := pb.pad(slot)
	if !ok {
		return Inertial{}, false
	}
	return st.Move.Inertial, true
}

// Rescan implements the Rescanner interface.
func (pb *padBackend) Rescan(maxConnect int) Binding {
	return pb.bind(maxConnect)
}
