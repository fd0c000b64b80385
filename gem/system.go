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
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/convert"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/gem/tracker"
	"github.com/jetsetilly/gemcore/gem/tracker/hueblob"
	"github.com/jetsetilly/gemcore/logger"
)

// controller is the record for a single controller slot
type controller struct {
	Status    uint32
	ExtStatus uint32
	ExtID     uint32
	Port      uint32

	MagnetometerEnabled    bool
	MagnetometerCalibrated bool
	FilteringEnabled       bool
	TrackingEnabled        bool
	LEDEnabled             bool
	HueSet                 bool

	Rumble uint8
	Sphere colour.RGB
	Hue    uint32

	// the radius and distance should not be used if RadiusValid is false
	DistanceMM  float32
	Radius      float32
	RadiusValid bool

	Calibrating      bool
	CalibrationStart uint64
	CalibrationFlags uint64
}

func defaultController(slot int) controller {
	return controller{
		Status:              StatusDisconnected,
		ExtStatus:           uint32(NoExternalPortDevice),
		MagnetometerEnabled: true,
		Sphere:              colour.Default(slot),
		DistanceMM:          3000,
		Radius:              5,
		RadiusValid:         true,
	}
}

func (c *controller) ready() bool {
	return c.Status == StatusReady
}

// System is the motion controller subsystem. Every guest operation is a method
// of the System type.
type System struct {
	env     *environment.Environment
	backend inputs.Backend
	cam     *camera.Shared
	mem     Memory
	tracker *tracker.Tracker

	// Init() and End() are serialised
	lifecycle sync.Mutex

	// 0 is uninitialised and 1 is initialised
	state atomic.Uint32

	updating   atomic.Bool
	converting atomic.Bool

	// crit protects all fields below it
	crit sync.RWMutex

	session         uuid.UUID
	attr            Attributes
	vc              VideoConvertAttribute
	outSize         int32
	videoIn         []byte
	runtimeFlags    uint64
	pitchCorrection bool
	inertialCounter uint32
	controllers     [MaxSlots]controller
	connected       uint32
	cameraFrame     uint32
	workspace       uint32
	startTimestamp  uint64

	// the camera frame was successfully given to the tracker for the current
	// update
	bound bool

	// sphere positions for the overlay painter. each position has its own
	// mutex and so can be accessed without the crit lock
	positions [MaxSlots]convert.Position

	workerQuit chan bool
	workerDone chan bool
}

// NewSystem is the preferred method of initialisation for the System type.
//
// The vision argument can be nil, in which case the default vision pipeline is
// used.
func NewSystem(env *environment.Environment, backend inputs.Backend, cam *camera.Shared, vision tracker.Vision, mem Memory) *System {
	if vision == nil {
		vision = hueblob.NewBlob()
	}

	sys := &System{
		env:     env,
		backend: backend,
		cam:     cam,
		mem:     mem,
		outSize: -1,
	}

	for slot := range sys.controllers {
		sys.controllers[slot] = defaultController(slot)
	}

	sys.tracker = tracker.NewTracker(env, cam, vision, sys)

	if t, ok := backend.(inputs.Tracked); ok {
		t.SetPositionSource(sys.tracker)
	}

	return sys
}

func (sys *System) String() string {
	return sys.backend.Kind().String()
}

// Session returns the id of the current session. A new id is created on every
// successful call to Init().
func (sys *System) Session() uuid.UUID {
	sys.crit.RLock()
	defer sys.crit.RUnlock()
	return sys.session
}

func (sys *System) initialised() bool {
	return sys.state.Load() != 0
}

// the tracker is only used with native controllers
func (sys *System) native() bool {
	return sys.backend.Kind() == inputs.KindMove
}

func (sys *System) null() bool {
	return sys.backend.Kind() == inputs.KindNull
}

// resetController must be called with the crit lock held
func (sys *System) resetController(slot int) {
	if !validSlot(slot) {
		return
	}

	c := &sys.controllers[slot]
	*c = defaultController(slot)

	b := sys.backend.Bind(sys.attr.MaxConnect)
	sys.connected = uint32(b.Connected)

	if b.Slots[slot] {
		c.Status = StatusReady
		c.Port = inputs.Port(slot)

		if m, ok := sys.backend.(inputs.Magnetometer); ok {
			m.SetMagnetometer(slot, c.MagnetometerEnabled)
		}
	}
}

// refreshExt returns the state of the external port and updates the
// accessory status of the controller. must be called with the crit lock held
func (sys *System) refreshExt(slot int) inputs.ExtPortData {
	ext, status, ok := sys.backend.ExtPort(slot)
	if !ok {
		return inputs.ExtPortData{}
	}
	c := &sys.controllers[slot]
	c.ExtStatus = status.Status
	c.ExtID = status.ID
	return ext
}

// TrackerRequests implements the tracker.Source interface.
func (sys *System) TrackerRequests() [MaxSlots]tracker.Request {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	var reqs [MaxSlots]tracker.Request
	for slot := range sys.controllers {
		c := &sys.controllers[slot]
		reqs[slot] = tracker.Request{
			Active: c.TrackingEnabled && c.ready(),
			Hue:    c.Hue,
			Colour: c.Sphere,
		}
	}
	return reqs
}

// TrackerResults implements the tracker.Source interface.
func (sys *System) TrackerResults(results [MaxSlots]tracker.Result) {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	for slot, r := range results {
		c := &sys.controllers[slot]
		c.RadiusValid = r.Valid
		if r.Valid {
			c.Radius = r.Radius
			c.DistanceMM = r.DistanceMM
		}
	}
}

func (sys *System) logf(detail string, args ...any) {
	logger.Logf(sys.env, "gem", detail, args...)
}
