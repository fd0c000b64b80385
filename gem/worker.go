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
)

// how often the worker resolves calibration and checks for conversion
// requests
const workerPeriod = time.Millisecond

func (sys *System) startWorker() {
	sys.workerQuit = make(chan bool, 1)
	sys.workerDone = make(chan bool, 1)
	go sys.worker(sys.workerQuit, sys.workerDone)
}

func (sys *System) stopWorker() {
	if sys.workerQuit == nil {
		return
	}
	sys.workerQuit <- true
	<-sys.workerDone
	sys.workerQuit = nil
	sys.workerDone = nil

	// a conversion that was never started by the worker will never finish
	sys.converting.Store(false)
}

// worker resolves calibration and performs video conversions
func (sys *System) worker(quit <-chan bool, done chan<- bool) {
	defer func() {
		done <- true
	}()

	tick := time.NewTicker(workerPeriod)
	defer tick.Stop()

	for {
		if sys.converting.Load() {
			sys.convert()
			continue
		}

		select {
		case <-quit:
			return
		case <-tick.C:
		}

		if sys.initialised() {
			sys.resolveCalibration()
		}
	}
}

// convert the buffered input frame
func (sys *System) convert() {
	defer sys.converting.Store(false)

	sys.crit.RLock()
	vc := sys.vc
	outSize := int(sys.outSize)
	sys.crit.RUnlock()

	if !sys.cam.SupportsConversion() {
		return
	}

	info := sys.cam.Info()

	var dst []byte
	if vc.Output != 0 && outSize > 0 {
		dst = sys.mem.Bytes(vc.Output, outSize)
	}

	sys.crit.RLock()
	err := convert.Convert(info.Format, vc.OutputFormat, sys.videoIn, info.Width, info.Height, dst)
	sys.crit.RUnlock()

	if err != nil {
		sys.logf("conversion from %s to %s: %v", info.Format, vc.OutputFormat, err)
		return
	}

	if sys.env.Prefs.PaintSpheres.Load() {
		sys.paintSpheres(vc.OutputFormat, info.Width, info.Height, dst)
	}
}

func (sys *System) paintSpheres(out convert.OutputFormat, width, height int, dst []byte) {
	spheres := make([]convert.Sphere, 0, MaxSlots)

	sys.crit.RLock()
	for slot := range sys.controllers {
		c := &sys.controllers[slot]
		if !c.ready() {
			continue
		}
		x, y := sys.positions[slot].Get()
		spheres = append(spheres, convert.Sphere{
			X:           x,
			Y:           y,
			Radius:      c.Radius,
			RadiusValid: c.RadiusValid,
			Colour:      c.Sphere,
		})
	}
	sys.crit.RUnlock()

	convert.Paint(out, width, height, dst, spheres)
}

// resolveCalibration completes the calibration of any controller that has been
// calibrating for long enough
func (sys *System) resolveCalibration() {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	cal, _ := sys.backend.(inputs.Calibrator)
	now := sys.env.Clock.Now()

	for slot := range sys.controllers {
		c := &sys.controllers[slot]
		if !c.Calibrating {
			continue
		}

		calibrated := true
		if cal != nil && !cal.RequestCalibration(slot) {
			calibrated = false
		}

		if now-c.CalibrationStart < calibrationTime {
			continue
		}

		if !calibrated {
			sys.logf("calibration timeout reached but controller %d is still calibrating", slot)
		}

		c.Calibrating = false
		c.CalibrationStart = 0
		c.CalibrationFlags = FlagCalibrationSucceeded | FlagCalibrationOccurred
		c.MagnetometerCalibrated = true
		c.TrackingEnabled = true

		if cal != nil {
			cal.ClearCalibration(slot)
		}
	}
}

// sphereColour returns the colour of the sphere for the hue
func sphereColour(hue uint32) colour.RGB {
	r, g, b := colour.HSVToRGB(float32(hue), 1.0, 1.0)
	return colour.NewRGB(r/255, g/255, b/255)
}
