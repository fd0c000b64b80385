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

package gem

import (
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
)

// gravity in m/s² reported when there is no accelerometer
const gravity = 10.0

// timestamps in the image state are slightly after the frame timestamp
const imageTimestampOffset = 10

// mapSample maps a position sample from the backend. must be called with the
// crit lock held
func (sys *System) mapSample(slot int, s coords.Sample) coords.Mapped {
	c := &sys.controllers[slot]
	m := coords.Map(s, sys.cam.Width(), sys.cam.Height(), coords.Sphere{
		Radius:     c.Radius,
		DistanceMM: c.DistanceMM,
	})

	if sys.env.Prefs.PaintSpheres.Load() {
		sys.positions[slot].Set(m.ImageX, m.ImageY)
	}

	return m
}

// orientation of the controller. a real orientation is used if the backend
// can supply one
func (sys *System) orientation(slot int, m coords.Mapped) coords.Quaternion {
	if o, ok := sys.backend.(inputs.Orienter); ok {
		if q, ok := o.Orientation(slot); ok {
			return q
		}
	}
	p := sys.env.Prefs
	return coords.Orientation(m, sys.cam.Width(), sys.cam.Height(), p.ConeH.Load(), p.ConeV.Load())
}

// GetState returns the full state of the controller. The state is filled in
// for connected controllers even if an informational status is returned.
//
// The time arguments are validated but the state is always the current state.
func (sys *System) GetState(slot int, flag StateFlag, _ uint64) (State, Code) {
	// the accessory status of the controller is updated and so the exclusive
	// lock is required
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return State{}, Uninitialized
	}

	if !validSlot(slot) || flag > StateFlagTimestamp {
		return State{}, InvalidParameter
	}

	c := &sys.controllers[slot]
	if !c.ready() {
		return State{}, NotConnected
	}

	var st State

	if !sys.null() {
		st.Ext = sys.refreshExt(slot)

		if c.TrackingEnabled {
			st.TrackingFlags |= TrackingPositionTracked | TrackingVisible
		}

		st.Timestamp = sys.env.Clock.Now() - sys.startTimestamp
		st.CameraPitchAngle = 0

		st.Pad.Digital, st.Pad.AnalogT = sys.backend.Buttons(slot)

		if sys.native() {
			if is, ok := sys.backend.(inputs.InertialSensor); ok {
				if in, ok := is.Inertial(slot); ok {
					st.Temperature = in.Temperature
					st.Accel[0] = in.Accel[0] * 1000
					st.Accel[1] = in.Accel[1] * 1000
					st.Accel[2] = in.Accel[2] * 1000
				}
			}
		}

		if s, ok := sys.backend.Position(slot); ok {
			m := sys.mapSample(slot, s)
			st.Pos = m.Pos
			st.HandlePos = m.Handle
			st.Quat = sys.orientation(slot, m)
		}

		if sys.native() {
			if sys.tracker.Info(slot).Valid {
				st.TrackingFlags |= TrackingVisible
			} else {
				st.TrackingFlags &^= TrackingVisible
			}
		}
	}

	switch {
	case c.Calibrating:
		return st, SphereCalibrating
	case !c.MagnetometerCalibrated:
		return st, SphereNotCalibrated
	case !c.HueSet:
		return st, HueNotSet
	}

	return st, OK
}

// GetImageState returns the state of the controller as seen by the camera.
func (sys *System) GetImageState(slot int) (ImageState, Code) {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return ImageState{}, Uninitialized
	}

	if !validSlot(slot) {
		return ImageState{}, InvalidParameter
	}

	var st ImageState

	if sys.null() {
		return st, OK
	}

	c := &sys.controllers[slot]

	st.FrameTimestamp = sys.cam.FrameTimestamp()
	st.Timestamp = st.FrameTimestamp + imageTimestampOffset
	st.R = c.Radius
	st.Distance = c.DistanceMM
	st.Visible = c.ready()
	st.RValid = c.RadiusValid

	if s, ok := sys.backend.Position(slot); ok {
		m := sys.mapSample(slot, s)
		st.U = m.ImageX
		st.V = m.ImageY
		st.ProjectionX = m.ProjectionX
		st.ProjectionY = m.ProjectionY
	}

	return st, OK
}

// GetInertialState returns the state of the motion sensors of the controller.
//
// The time arguments are not used and the state is always the current state.
func (sys *System) GetInertialState(slot int, _ StateFlag, _ uint64) (InertialState, Code) {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return InertialState{}, Uninitialized
	}

	if !validSlot(slot) || !sys.controllers[slot].ready() {
		return InertialState{}, InvalidParameter
	}

	var st InertialState

	if sys.null() {
		return st, OK
	}

	st.Ext = sys.refreshExt(slot)
	st.Timestamp = sys.env.Clock.Now() - sys.startTimestamp
	st.Counter = int32(sys.inertialCounter)
	sys.inertialCounter++
	st.Accelerometer[0] = gravity

	if is, ok := sys.backend.(inputs.InertialSensor); ok {
		if in, ok := is.Inertial(slot); ok {
			st.Temperature = in.Temperature
			copy(st.Accelerometer[:3], in.Accel[:])
			copy(st.Gyro[:3], in.Gyro[:])
		}
	}

	st.Pad.Digital, st.Pad.AnalogT = sys.backend.Buttons(slot)

	return st, OK
}

// Info returns the connection state of every controller. The connection state
// is updated first for backends that support rescanning.
func (sys *System) Info() (Info, Code) {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Info{}, Uninitialized
	}

	if r, ok := sys.backend.(inputs.Rescanner); ok {
		b := r.Rescan(sys.attr.MaxConnect)
		sys.connected = uint32(b.Connected)
		for slot := range sys.controllers {
			c := &sys.controllers[slot]
			if b.Slots[slot] {
				c.Status = StatusReady
				c.Port = inputs.Port(slot)
			} else {
				c.Status = StatusDisconnected
				c.Port = 0
			}
		}
	}

	inf := Info{
		MaxConnect: sys.attr.MaxConnect,
		NowConnect: int(sys.connected),
	}
	for slot := range sys.controllers {
		inf.Status[slot] = sys.controllers[slot].Status
		inf.Port[slot] = sys.controllers[slot].Port
	}

	return inf, OK
}
