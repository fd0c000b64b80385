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
	"time"

	"github.com/google/uuid"

	"github.com/jetsetilly/gemcore/gem/inputs"
)

// how often ConvertVideoFinish() checks for the end of the conversion
const convertPollPeriod = 100 * time.Microsecond

// Init initialises the subsystem.
func (sys *System) Init(attr Attributes) Code {
	if attr.MaxConnect < 1 || attr.MaxConnect > MaxSlots {
		return InvalidParameter
	}

	sys.lifecycle.Lock()
	defer sys.lifecycle.Unlock()

	if !sys.state.CompareAndSwap(0, 1) {
		return AlreadyInitialized
	}

	sys.crit.Lock()
	defer sys.crit.Unlock()

	sys.workspace = 0
	if attr.Workspace == 0 {
		handle, err := sys.mem.Alloc(memorySize(attr.MaxConnect), workspaceAlignment)
		if err != nil {
			sys.logf("workspace allocation failed: %v", err)
			sys.state.Store(0)
			return ResourceAllocationFailed
		}
		sys.workspace = handle
	}

	sys.updating.Store(false)
	sys.cameraFrame = 0
	sys.bound = false
	sys.runtimeFlags = 0
	sys.attr = attr

	for slot := range sys.controllers {
		sys.resetController(slot)
	}

	sys.startTimestamp = sys.env.Clock.Now()
	sys.session = uuid.New()

	leds, _ := sys.backend.(inputs.LEDSetter)
	sys.tracker.Start(sys.native(), leds)
	sys.startWorker()

	sys.logf("initialised with %s backend (session %s)", sys.backend.Kind(), sys.session)

	return OK
}

// End the subsystem. Any outstanding tracking cycle is completed before the
// subsystem is ended.
func (sys *System) End() Code {
	sys.tracker.WaitForResult()
	sys.updating.Store(false)

	sys.lifecycle.Lock()
	defer sys.lifecycle.Unlock()

	if !sys.state.CompareAndSwap(1, 0) {
		return Uninitialized
	}

	sys.crit.Lock()
	workspace := sys.workspace
	sys.workspace = 0
	sys.crit.Unlock()

	sys.tracker.Stop()
	sys.stopWorker()

	if workspace != 0 {
		if err := sys.mem.Free(workspace); err != nil {
			sys.logf("workspace free failed: %v", err)
		}
	}

	sys.logf("ended session %s", sys.session)

	return OK
}

// Reset the controller in the slot to its default state.
func (sys *System) Reset(slot int) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	sys.resetController(slot)
	sys.startTimestamp = sys.env.Clock.Now()

	return OK
}

// UpdateStart starts a tracking cycle for the camera frame. Only one update can
// be in progress at once.
func (sys *System) UpdateStart(frame uint32) Code {
	if !sys.initialised() {
		return Uninitialized
	}

	if sys.tracker.IsBusy() {
		return UpdateNotFinished
	}

	sys.crit.Lock()
	defer sys.crit.Unlock()

	// the update is started even if the frame is zero
	if sys.updating.Swap(true) {
		return UpdateNotFinished
	}

	if !aligned(frame, frameAlignment) {
		return InvalidAlignment
	}

	sys.cameraFrame = frame
	sys.bound = false

	// data is always available for backends that do not use the camera
	if !sys.native() {
		return OK
	}

	if !sys.tracker.Bind(frame) {
		return NoVideo
	}
	sys.bound = true

	sys.tracker.Wake()

	return OK
}

// UpdateFinish waits for the tracking cycle started by UpdateStart() to end.
func (sys *System) UpdateFinish() Code {
	if !sys.initialised() {
		return Uninitialized
	}

	if !sys.updating.Load() {
		return UpdateNotStarted
	}

	// the tracker writes the results back to the controller records and so
	// the crit lock must not be held while waiting
	sys.tracker.WaitForResult()

	sys.crit.Lock()
	defer sys.crit.Unlock()

	sys.updating.Store(false)

	if sys.cameraFrame == 0 || (sys.native() && !sys.bound) {
		return NoVideo
	}

	return OK
}

// ConvertVideoStart copies the frame and starts its conversion to the format
// set by PrepareVideoConvert().
func (sys *System) ConvertVideoStart(frame uint32) Code {
	if !sys.initialised() {
		return Uninitialized
	}

	if frame == 0 {
		return InvalidParameter
	}

	size := sys.cam.Size()
	data := sys.mem.Bytes(frame, size)
	if data == nil {
		return InvalidParameter
	}

	if !aligned(frame, frameAlignment) {
		return InvalidAlignment
	}

	// the worker reads videoIn under the crit lock so it never sees a
	// partially copied frame
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.converting.CompareAndSwap(false, true) {
		return ConvertNotFinished
	}

	if cap(sys.videoIn) < size {
		sys.videoIn = make([]byte, size)
	}
	sys.videoIn = sys.videoIn[:size]
	copy(sys.videoIn, data)

	return OK
}

// ConvertVideoFinish waits for the conversion started by ConvertVideoStart()
// to end.
func (sys *System) ConvertVideoFinish() Code {
	if !sys.initialised() {
		return Uninitialized
	}

	if !sys.converting.Load() {
		return ConvertNotStarted
	}

	for sys.converting.Load() {
		time.Sleep(convertPollPeriod)
	}

	return OK
}
