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

// Calibrate starts the calibration of the controller. Calibration is completed
// by the worker after a fixed period.
func (sys *System) Calibrate(slot int) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	c := &sys.controllers[slot]
	if c.Calibrating {
		return Busy
	}

	c.Calibrating = true
	c.CalibrationStart = sys.env.Clock.Now()

	return OK
}

// ClearStatusFlags clears the calibration status flags in the mask.
func (sys *System) ClearStatusFlags(slot int, mask uint64) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	sys.controllers[slot].CalibrationFlags &^= mask

	return OK
}

// InvalidateCalibration forgets the calibration of the controller. Tracking is
// disabled until the controller is calibrated again.
func (sys *System) InvalidateCalibration(slot int) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	c := &sys.controllers[slot]
	c.MagnetometerCalibrated = false
	c.Calibrating = false
	c.CalibrationStart = 0
	c.CalibrationFlags = 0
	c.HueSet = false
	c.TrackingEnabled = false

	return OK
}

// StatusFlags returns the runtime flags combined with the calibration flags of
// the controller.
func (sys *System) StatusFlags(slot int) (uint64, Code) {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return 0, Uninitialized
	}

	if !validSlot(slot) {
		return 0, InvalidParameter
	}

	return sys.runtimeFlags | sys.controllers[slot].CalibrationFlags, OK
}
