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
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/gem/inputs"
)

// the current version of the snapshot format. version 1 snapshots do not
// include the calibration flags of the controllers
const snapshotVersion = 2

// Sentinal error patterns for the snapshot functions.
const (
	SnapshotError       = "snapshot: %v"
	SnapshotInitialised = "snapshot: cannot load while initialised"
	SnapshotVersion     = "snapshot: unsupported version (%d)"
)

type snapshotController struct {
	Status    uint32 `cbor:"1,keyasint"`
	ExtStatus uint32 `cbor:"2,keyasint"`
	ExtID     uint32 `cbor:"3,keyasint"`
	Port      uint32 `cbor:"4,keyasint"`

	MagnetometerEnabled    bool `cbor:"5,keyasint"`
	MagnetometerCalibrated bool `cbor:"6,keyasint"`
	FilteringEnabled       bool `cbor:"7,keyasint"`
	TrackingEnabled        bool `cbor:"8,keyasint"`
	LEDEnabled             bool `cbor:"9,keyasint"`
	HueSet                 bool `cbor:"10,keyasint"`

	Rumble uint8      `cbor:"11,keyasint"`
	Sphere [3]float32 `cbor:"12,keyasint"`
	Hue    uint32     `cbor:"13,keyasint"`

	DistanceMM  float32 `cbor:"14,keyasint"`
	Radius      float32 `cbor:"15,keyasint"`
	RadiusValid bool    `cbor:"16,keyasint"`

	Calibrating      bool   `cbor:"17,keyasint"`
	CalibrationStart uint64 `cbor:"18,keyasint"`

	// from version 2
	CalibrationFlags uint64 `cbor:"19,keyasint,omitempty"`
}

type snapshotStore struct {
	Attr            Attributes            `cbor:"1,keyasint"`
	VideoConvert    VideoConvertAttribute `cbor:"2,keyasint"`
	OutSize         int32                 `cbor:"3,keyasint"`
	RuntimeFlags    uint64                `cbor:"4,keyasint"`
	PitchCorrection bool                  `cbor:"5,keyasint"`
	InertialCounter uint32                `cbor:"6,keyasint"`

	Controllers [MaxSlots]snapshotController `cbor:"7,keyasint"`

	Connected      uint32 `cbor:"8,keyasint"`
	Updating       bool   `cbor:"9,keyasint"`
	CameraFrame    uint32 `cbor:"10,keyasint"`
	Workspace      uint32 `cbor:"11,keyasint"`
	StartTimestamp uint64 `cbor:"12,keyasint"`
}

type snapshot struct {
	Version int    `cbor:"1,keyasint"`
	State   uint32 `cbor:"2,keyasint"`

	// nil if the store was not initialised
	Store *snapshotStore `cbor:"3,keyasint,omitempty"`
}

func (c *controller) snapshot() snapshotController {
	return snapshotController{
		Status:                 c.Status,
		ExtStatus:              c.ExtStatus,
		ExtID:                  c.ExtID,
		Port:                   c.Port,
		MagnetometerEnabled:    c.MagnetometerEnabled,
		MagnetometerCalibrated: c.MagnetometerCalibrated,
		FilteringEnabled:       c.FilteringEnabled,
		TrackingEnabled:        c.TrackingEnabled,
		LEDEnabled:             c.LEDEnabled,
		HueSet:                 c.HueSet,
		Rumble:                 c.Rumble,
		Sphere:                 [3]float32{c.Sphere.R, c.Sphere.G, c.Sphere.B},
		Hue:                    c.Hue,
		DistanceMM:             c.DistanceMM,
		Radius:                 c.Radius,
		RadiusValid:            c.RadiusValid,
		Calibrating:            c.Calibrating,
		CalibrationStart:       c.CalibrationStart,
		CalibrationFlags:       c.CalibrationFlags,
	}
}

func (c *controller) restore(s snapshotController, version int) {
	c.Status = s.Status
	c.ExtStatus = s.ExtStatus
	c.ExtID = s.ExtID
	c.Port = s.Port
	c.MagnetometerEnabled = s.MagnetometerEnabled
	c.MagnetometerCalibrated = s.MagnetometerCalibrated
	c.FilteringEnabled = s.FilteringEnabled
	c.TrackingEnabled = s.TrackingEnabled
	c.LEDEnabled = s.LEDEnabled
	c.HueSet = s.HueSet
	c.Rumble = s.Rumble
	c.Sphere.R = s.Sphere[0]
	c.Sphere.G = s.Sphere[1]
	c.Sphere.B = s.Sphere[2]
	c.Hue = s.Hue
	c.DistanceMM = s.DistanceMM
	c.Radius = s.Radius
	c.RadiusValid = s.RadiusValid
	c.Calibrating = s.Calibrating
	c.CalibrationStart = s.CalibrationStart

	c.CalibrationFlags = 0
	if version >= 2 {
		c.CalibrationFlags = s.CalibrationFlags
	}
}

// Save a snapshot of the controller state store to the io.Writer.
func (sys *System) Save(w io.Writer) error {
	sys.lifecycle.Lock()
	defer sys.lifecycle.Unlock()

	sys.crit.RLock()
	defer sys.crit.RUnlock()

	s := snapshot{
		Version: snapshotVersion,
		State:   sys.state.Load(),
	}

	if s.State != 0 {
		st := &snapshotStore{
			Attr:            sys.attr,
			VideoConvert:    sys.vc,
			OutSize:         sys.outSize,
			RuntimeFlags:    sys.runtimeFlags,
			PitchCorrection: sys.pitchCorrection,
			InertialCounter: sys.inertialCounter,
			Connected:       sys.connected,
			Updating:        sys.updating.Load(),
			CameraFrame:     sys.cameraFrame,
			Workspace:       sys.workspace,
			StartTimestamp:  sys.startTimestamp,
		}
		for slot := range sys.controllers {
			st.Controllers[slot] = sys.controllers[slot].snapshot()
		}
		s.Store = st
	}

	err := cbor.NewEncoder(w).Encode(s)
	if err != nil {
		return curated.Errorf(SnapshotError, err)
	}

	return nil
}

// Load a snapshot of the controller state store from the io.Reader. The store
// must not be initialised.
//
// If the snapshot was of an initialised store then the system is initialised
// and the workers are started.
func (sys *System) Load(r io.Reader) error {
	sys.lifecycle.Lock()
	defer sys.lifecycle.Unlock()

	if sys.initialised() {
		return curated.Errorf(SnapshotInitialised)
	}

	var s snapshot
	err := cbor.NewDecoder(r).Decode(&s)
	if err != nil {
		return curated.Errorf(SnapshotError, err)
	}

	if s.Version < 1 || s.Version > snapshotVersion {
		return curated.Errorf(SnapshotVersion, s.Version)
	}

	if s.State == 0 || s.Store == nil {
		return nil
	}
	st := s.Store

	sys.crit.Lock()

	sys.attr = st.Attr
	sys.vc = st.VideoConvert
	sys.outSize = st.OutSize
	sys.runtimeFlags = st.RuntimeFlags
	sys.pitchCorrection = st.PitchCorrection
	sys.inertialCounter = st.InertialCounter
	for slot := range sys.controllers {
		sys.controllers[slot].restore(st.Controllers[slot], s.Version)
	}
	sys.connected = st.Connected
	sys.updating.Store(st.Updating)
	sys.cameraFrame = st.CameraFrame
	sys.workspace = st.Workspace
	sys.startTimestamp = st.StartTimestamp
	sys.session = uuid.New()

	// device bindings are not part of the snapshot and must be recreated
	sys.backend.Bind(sys.attr.MaxConnect)
	sys.bound = false

	sys.state.Store(1)

	leds, _ := sys.backend.(inputs.LEDSetter)
	sys.tracker.Start(sys.native(), leds)
	sys.startWorker()

	sys.crit.Unlock()

	sys.logf("restored session from version %d snapshot", s.Version)

	return nil
}
