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
	"github.com/jetsetilly/gemcore/gem/convert"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
)

// MaxSlots is the number of controller slots.
const MaxSlots = inputs.MaxSlots

// Version of the video conversion attribute and of the subsystem snapshot.
const Version = 2

// Controller status.
const (
	StatusDisconnected uint32 = 0
	StatusReady        uint32 = 1
)

// Tracking flags in the State type.
const (
	TrackingPositionTracked uint32 = 0x1
	TrackingVisible         uint32 = 0x2
)

// Status flags. The calibration flags are accumulated for each controller.
// The runtime flags are shared by all controllers.
const (
	FlagCalibrationOccurred  uint64 = 0x1
	FlagCalibrationSucceeded uint64 = 0x2
)

// Special hue values for TrackHues().
const (
	DontCareHue  uint32 = 4 << 24
	DontTrackHue uint32 = 2 << 24
	DontChange   uint32 = 1 << 24
)

// StateFlag selects the time for which GetState() and GetInertialState()
// report the state.
type StateFlag uint32

// List of valid StateFlag values.
const (
	StateFlagCurrentTime     StateFlag = 0
	StateFlagLatestImageTime StateFlag = 1
	StateFlagTimestamp       StateFlag = 2
)

// ConversionFlags used in the VideoConvertAttribute type.
type ConversionFlags uint32

// List of conversion flags.
const (
	AutoWhiteBalance          ConversionFlags = 0x1
	GammaBoost                ConversionFlags = 0x2
	CombinePreviousInputFrame ConversionFlags = 0x4
	FilterOutlierPixels       ConversionFlags = 0x8
)

// calibration takes half a second on real hardware
const calibrationTime = 500000

// Attributes for Init().
type Attributes struct {
	// the maximum number of controllers
	MaxConnect int

	// workspace provided by the guest. if zero then a workspace is allocated
	// from guest memory
	Workspace uint32
}

// VideoConvertAttribute describes the conversion performed by the
// ConvertVideoStart() and ConvertVideoFinish() pair.
type VideoConvertAttribute struct {
	Version         int32
	OutputFormat    convert.OutputFormat
	ConversionFlags ConversionFlags
	Gain            float32
	RedGain         float32
	GreenGain       float32
	BlueGain        float32

	// guest memory handles
	Buffer uint32
	Output uint32

	Alpha uint8
}

// PadData is the button state of a controller.
type PadData struct {
	Digital inputs.Buttons
	AnalogT uint16
}

// State is the full state of a controller.
type State struct {
	Pos   [4]float32
	Vel   [4]float32
	Accel [4]float32
	Quat  coords.Quaternion

	// normalised position, velocity and acceleration
	NP [4]float32
	NV [4]float32
	NA [4]float32

	HandlePos   [4]float32
	HandleVel   [4]float32
	HandleAccel [4]float32

	Pad PadData
	Ext inputs.ExtPortData

	Timestamp        uint64
	Temperature      float32
	CameraPitchAngle float32
	TrackingFlags    uint32
}

// ImageState is the state of a controller as seen by the camera.
type ImageState struct {
	FrameTimestamp uint64
	Timestamp      uint64

	// position in the camera image
	U float32
	V float32

	R           float32
	ProjectionX float32
	ProjectionY float32
	Distance    float32
	Visible     bool
	RValid      bool
}

// InertialState is the state of the motion sensors of a controller.
type InertialState struct {
	Accelerometer     [4]float32
	Gyro              [4]float32
	AccelerometerBias [4]float32
	GyroBias          [4]float32

	Pad PadData
	Ext inputs.ExtPortData

	Timestamp   uint64
	Counter     int32
	Temperature float32
}

// Info is the connection state of every controller.
type Info struct {
	MaxConnect int
	NowConnect int
	Status     [MaxSlots]uint32
	Port       [MaxSlots]uint32
}

// CameraState is the state of the camera as used for tracking.
type CameraState struct {
	Exposure           int32
	ExposureTime       float32
	Gain               float32
	PitchAngle         float32
	PitchAngleEstimate float32
}

// alignment requirements of guest memory handles
const (
	frameAlignment  = 128
	bufferAlignment = 16
)

func aligned(handle uint32, alignment uint32) bool {
	return handle%alignment == 0
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < MaxSlots
}
