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

	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/convert"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/gem/tracker"
)

// camera exposure limits for PrepareCamera()
const (
	MinCameraExposure = 40
	MaxCameraExposure = 511
)

// size of the pixel buffer returned by HuePixels()
const huePixelsSize = 640 * 480

// the maximum time to wait for an accessory to respond to a read request
const extReadTimeout = 300 * time.Millisecond

const extReadPollPeriod = time.Millisecond

// MemorySize returns the amount of workspace memory required for the
// number of controllers.
func MemorySize(maxConnect int) (uint32, Code) {
	if maxConnect < 1 || maxConnect > MaxSlots {
		return 0, InvalidParameter
	}
	return memorySize(maxConnect), OK
}

// HSVtoRGB converts a colour in HSV space to RGB. Each RGB component is in the
// range 0 to 255.
func HSVtoRGB(h, s, v float32) (float32, float32, float32, Code) {
	if s < 0 || s > 1 || v < 0 || v > 1 {
		return 0, 0, 0, InvalidParameter
	}
	r, g, b := colour.HSVToRGB(min(max(h, 0), 360), s, v)
	return r, g, b, OK
}

// TrackHues sets the hue to be tracked for each controller. The resolved hue
// for each controller is returned.
func (sys *System) TrackHues(req [MaxSlots]uint32) ([MaxSlots]uint32, Code) {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	var res [MaxSlots]uint32

	if !sys.initialised() {
		return res, Uninitialized
	}

	for slot, hue := range req {
		c := &sys.controllers[slot]

		switch hue {
		case DontCareHue:
			hue = colour.DefaultHue(slot)
		case DontTrackHue:
			c.TrackingEnabled = false
			c.LEDEnabled = false
			c.HueSet = false
			res[slot] = DontTrackHue
			continue
		default:
			if hue >= tracker.NumHues {
				sys.logf("requested hue for controller %d is out of range (%d)", slot, hue)
			}
		}

		c.TrackingEnabled = true
		c.LEDEnabled = true
		c.HueSet = true
		c.Hue = hue
		c.Sphere = sphereColour(hue)
		res[slot] = hue
	}

	return res, OK
}

// TrackerHue returns the hue being tracked for the controller. If the
// controller is not being tracked then NotAHue is returned along with the
// last hue that was set.
func (sys *System) TrackerHue(slot int) (uint32, Code) {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return 0, Uninitialized
	}

	if !validSlot(slot) {
		return 0, InvalidParameter
	}

	c := &sys.controllers[slot]
	if !c.TrackingEnabled || c.Hue >= tracker.NumHues {
		return c.Hue, NotAHue
	}

	return c.Hue, OK
}

// IsTrackableHue returns true if the hue can be tracked by the camera.
func (sys *System) IsTrackableHue(hue uint32) (bool, Code) {
	if !sys.initialised() {
		return false, Uninitialized
	}

	if hue >= tracker.NumHues {
		return false, InvalidParameter
	}

	return sys.tracker.HueIsTrackable(hue), OK
}

// AllTrackableHues returns whether each hue can be tracked by the camera.
func (sys *System) AllTrackableHues() ([tracker.NumHues]bool, Code) {
	var hues [tracker.NumHues]bool

	if !sys.initialised() {
		return hues, Uninitialized
	}

	for h := range hues {
		hues[h] = sys.tracker.HueIsTrackable(uint32(h))
	}

	return hues, OK
}

// ForceRGB sets the colour of the sphere. Tracking is disabled for the
// controller.
func (sys *System) ForceRGB(slot int, r, g, b float32) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	c := &sys.controllers[slot]
	c.Sphere = colour.NewRGB(r, g, b)
	c.TrackingEnabled = false

	h, _, _ := colour.RGBToHSV(c.Sphere.R*255, c.Sphere.G*255, c.Sphere.B*255)
	c.Hue = uint32(h)

	return OK
}

// RGB returns the colour of the sphere.
func (sys *System) RGB(slot int) (colour.RGB, Code) {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return colour.RGB{}, Uninitialized
	}

	if !validSlot(slot) {
		return colour.RGB{}, InvalidParameter
	}

	return sys.controllers[slot].Sphere, OK
}

// SetRumble sets the strength of the rumble motor. Zero is off.
func (sys *System) SetRumble(slot int, value uint8) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	sys.controllers[slot].Rumble = value

	if r, ok := sys.backend.(inputs.Rumbler); ok {
		r.SetRumble(slot, value)
	}

	return OK
}

// Rumble returns the strength of the rumble motor.
func (sys *System) Rumble(slot int) (uint8, Code) {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return 0, Uninitialized
	}

	if !validSlot(slot) {
		return 0, InvalidParameter
	}

	return sys.controllers[slot].Rumble, OK
}

// SetYaw sets the direction the controller is facing. The direction is
// accepted but not used.
func (sys *System) SetYaw(slot int, _ [4]float32) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	return OK
}

// FilterState enables or disables filtering of the controller state.
func (sys *System) FilterState(slot int, enable bool) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	sys.controllers[slot].FilteringEnabled = enable

	return OK
}

// EnableMagnetometer enables or disables the magnetometer of the controller.
func (sys *System) EnableMagnetometer(slot int, enable bool) Code {
	return sys.enableMagnetometer(slot, enable, false)
}

// EnableMagnetometer2 is the same as EnableMagnetometer() except that the
// magnetometer must have been calibrated.
func (sys *System) EnableMagnetometer2(slot int, enable bool) Code {
	return sys.enableMagnetometer(slot, enable, true)
}

func (sys *System) enableMagnetometer(slot int, enable bool, needCalibration bool) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	c := &sys.controllers[slot]
	if !c.ready() {
		return NotConnected
	}

	if needCalibration && !c.MagnetometerCalibrated {
		return NotCalibrated
	}

	c.MagnetometerEnabled = enable

	if m, ok := sys.backend.(inputs.Magnetometer); ok {
		m.SetMagnetometer(slot, enable)
	}

	return OK
}

// EnableCameraPitchAngleCorrection enables or disables the correction of
// controller positions for the pitch of the camera.
func (sys *System) EnableCameraPitchAngleCorrection(enable bool) Code {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	if !sys.initialised() {
		return Uninitialized
	}

	sys.pitchCorrection = enable

	return OK
}

// AccelerometerPositionInDevice returns the position of the accelerometer
// relative to the centre of the sphere.
func (sys *System) AccelerometerPositionInDevice(slot int) ([4]float32, Code) {
	if !sys.initialised() {
		return [4]float32{}, Uninitialized
	}

	if !validSlot(slot) {
		return [4]float32{}, InvalidParameter
	}

	return [4]float32{}, OK
}

// CameraState returns the state of the camera as used by the tracker.
func (sys *System) CameraState() (CameraState, Code) {
	if !sys.initialised() {
		return CameraState{}, Uninitialized
	}

	return CameraState{
		ExposureTime: 1.0 / 60.0,
		Gain:         1.0,
	}, OK
}

// EnvironmentLightingColor returns the colour of the ambient light seen by the
// camera.
func (sys *System) EnvironmentLightingColor() (float32, float32, float32, Code) {
	if !sys.initialised() {
		return 0, 0, 0, Uninitialized
	}

	return 128.0, 128.0, 128.0, OK
}

// HuePixels returns the pixels in the camera frame that match the hue. One
// byte per pixel.
func (sys *System) HuePixels(frame uint32, hue uint32) ([]byte, Code) {
	if !sys.initialised() {
		return nil, Uninitialized
	}

	if frame == 0 || hue >= tracker.NumHues {
		return nil, InvalidParameter
	}

	return make([]byte, huePixelsSize), OK
}

// PrepareCamera prepares the camera for tracking. The clamped values are
// returned.
func (sys *System) PrepareCamera(maxExposure int32, quality float32) (int32, float32, Code) {
	if !sys.initialised() {
		return 0, 0, Uninitialized
	}

	maxExposure = min(max(maxExposure, MinCameraExposure), MaxCameraExposure)
	quality = min(max(quality, 0), 1)

	return maxExposure, quality, OK
}

// PrepareVideoConvert sets how camera frames are converted by
// ConvertVideoStart().
func (sys *System) PrepareVideoConvert(vc VideoConvertAttribute) Code {
	if !sys.initialised() {
		return Uninitialized
	}

	if vc.Version != Version {
		return InvalidParameter
	}

	if vc.OutputFormat != convert.NoVideoOutput && vc.Output == 0 {
		return InvalidParameter
	}

	if vc.ConversionFlags&CombinePreviousInputFrame == CombinePreviousInputFrame && vc.Buffer == 0 {
		return InvalidParameter
	}

	if !aligned(vc.Output, frameAlignment) || !aligned(vc.Buffer, bufferAlignment) {
		return InvalidAlignment
	}

	sys.crit.Lock()
	defer sys.crit.Unlock()

	sys.vc = vc
	sys.outSize = int32(convert.OutputSize(vc.OutputFormat))

	return OK
}

// ReadExternalPortDeviceInfo returns the ID of the accessory connected to the
// external port. The accessory information is also returned if the device
// supports it.
func (sys *System) ReadExternalPortDeviceInfo(slot int) (uint32, [inputs.ExtInfoSize]byte, Code) {
	var info [inputs.ExtInfoSize]byte

	if !sys.initialised() {
		return 0, info, Uninitialized
	}

	if !validSlot(slot) {
		return 0, info, InvalidParameter
	}

	sys.crit.Lock()
	c := &sys.controllers[slot]
	if !c.ready() {
		sys.crit.Unlock()
		return 0, info, NotConnected
	}
	if !sys.null() {
		_ = sys.refreshExt(slot)
	}
	if c.ExtStatus&inputs.ExtConnected != inputs.ExtConnected {
		sys.crit.Unlock()
		return 0, info, NoExternalPortDevice
	}
	id := c.ExtID
	sys.crit.Unlock()

	ext, ok := sys.backend.(inputs.ExternalPort)
	if !ok {
		return id, info, OK
	}

	if !ext.RequestExtRead(slot) {
		return id, info, NotConnected
	}

	start := time.Now()
	for {
		newID, data, done, connected := ext.ExtRead(slot)
		if !connected {
			return id, info, NotConnected
		}
		if done {
			sys.crit.Lock()
			sys.controllers[slot].ExtID = newID
			sys.crit.Unlock()
			return newID, data, OK
		}
		if time.Since(start) > extReadTimeout {
			sys.logf("external port read for controller %d timed out", slot)
			return id, info, OK
		}
		time.Sleep(extReadPollPeriod)
	}
}

// WriteExternalPort sends data to the accessory connected to the external
// port.
func (sys *System) WriteExternalPort(slot int, data [inputs.ExtOutputSize]byte) Code {
	sys.crit.RLock()
	defer sys.crit.RUnlock()

	if !sys.initialised() {
		return Uninitialized
	}

	if !validSlot(slot) {
		return InvalidParameter
	}

	if !sys.controllers[slot].ready() {
		return NotConnected
	}

	if ext, ok := sys.backend.(inputs.ExternalPort); ok {
		accepted, connected := ext.ExtWrite(slot, data)
		if !connected {
			return NotConnected
		}
		if !accepted {
			return WriteNotFinished
		}
	}

	return OK
}
