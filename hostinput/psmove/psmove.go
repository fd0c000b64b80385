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

package psmove

import (
	"sync"
	"time"

	"github.com/karalabe/usb"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/logger"
)

// Sentinal error patterns.
const (
	NotSupported = "psmove: HID access is not supported on this platform"
	NoDevices    = "psmove: no controllers found"
)

// the LED is turned off by the controller if it is not refreshed within a few
// seconds
const refreshPeriod = time.Second

// device is a single connected controller
type device struct {
	env  *environment.Environment
	info usb.DeviceInfo
	dev  usb.Device

	crit  sync.Mutex
	state inputs.PadState

	led     [3]uint8
	rumble  uint8
	dirty   bool
	magnet  bool
	reports int

	// calibration is acknowledged by the first report after the request.
	// values of -1 mean there is no request
	calibrationAt int

	extReading bool
	extWriting bool

	quit chan bool
	done chan bool
}

func (d *device) poll() {
	defer func() {
		d.done <- true
	}()

	buf := make([]byte, reportSize)
	lastWrite := time.Time{}

	for {
		select {
		case <-d.quit:
			return
		default:
		}

		n, err := d.dev.Read(buf)
		if err != nil {
			logger.Logf(d.env, "psmove", "%s: %v", d.info.Path, err)

			d.crit.Lock()
			d.state = inputs.PadState{}
			d.crit.Unlock()
			return
		}

		st, ok := decodeReport(buf[:n])

		d.crit.Lock()
		if ok {
			st.Move.ExtConnected = false
			d.state = st
			d.reports++
		}
		write := d.dirty || time.Since(lastWrite) > refreshPeriod
		out := encodeOutput(d.led[0], d.led[1], d.led[2], d.rumble)
		d.dirty = false

		// external port writes and reads complete once the controller has
		// reported
		d.extWriting = false
		d.extReading = false
		d.crit.Unlock()

		if write {
			if _, err := d.dev.Write(out); err != nil {
				logger.Logf(d.env, "psmove", "%s: %v", d.info.Path, err)
			}
			lastWrite = time.Now()
		}
	}
}

func (d *device) close() {
	d.quit <- true

	// closing the device releases a blocked Read()
	_ = d.dev.Close()
	<-d.done
}

// Handler implements the inputs.MotionPadHandler interface.
type Handler struct {
	env     *environment.Environment
	devices [inputs.MaxPadPorts]*device
}

// NewHandler is the preferred method of initialisation for the Handler type.
// Controllers are assigned to pads in the order they are found.
func NewHandler(env *environment.Environment) (*Handler, error) {
	if !usb.Supported() {
		return nil, curated.Errorf(NotSupported)
	}

	infos, err := usb.EnumerateHid(VendorID, ProductID)
	if err != nil {
		return nil, curated.Errorf("psmove: %v", err)
	}

	h := &Handler{
		env: env,
	}

	n := 0
	for _, info := range infos {
		if n >= inputs.MaxSlots {
			break
		}

		dev, err := info.Open()
		if err != nil {
			logger.Logf(env, "psmove", "%s: %v", info.Path, err)
			continue
		}

		d := &device{
			env:           env,
			info:          info,
			dev:           dev,
			magnet:        true,
			calibrationAt: -1,
			dirty:         true,
			quit:          make(chan bool, 1),
			done:          make(chan bool, 1),
		}
		h.devices[inputs.PadIndex(n)] = d
		go d.poll()

		logger.Logf(env, "psmove", "controller %d: %s %s", n, info.Product, info.Serial)
		n++
	}

	if n == 0 {
		return nil, curated.Errorf(NoDevices)
	}

	return h, nil
}

// Close every controller.
func (h *Handler) Close() {
	for i, d := range h.devices {
		if d != nil {
			d.close()
			h.devices[i] = nil
		}
	}
}

func (h *Handler) device(index int) *device {
	if index < 0 || index >= inputs.MaxPadPorts {
		return nil
	}
	return h.devices[index]
}

// Pad implements the inputs.PadHandler interface.
func (h *Handler) Pad(index int) inputs.PadState {
	d := h.device(index)
	if d == nil {
		return inputs.PadState{}
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.state
}

// RequestCalibration implements the inputs.MotionPadHandler interface.
func (h *Handler) RequestCalibration(index int) bool {
	d := h.device(index)
	if d == nil {
		return false
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.calibrationAt < 0 {
		d.calibrationAt = d.reports
		return false
	}
	return d.reports > d.calibrationAt
}

// ClearCalibration implements the inputs.MotionPadHandler interface.
func (h *Handler) ClearCalibration(index int) {
	d := h.device(index)
	if d == nil {
		return
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	d.calibrationAt = -1
}

// SetMagnetometer implements the inputs.MotionPadHandler interface.
func (h *Handler) SetMagnetometer(index int, enabled bool) {
	d := h.device(index)
	if d == nil {
		return
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	d.magnet = enabled
}

// SetRumble implements the inputs.MotionPadHandler interface.
func (h *Handler) SetRumble(index int, value uint8) {
	d := h.device(index)
	if d == nil {
		return
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.rumble != value {
		d.rumble = value
		d.dirty = true
	}
}

// SetLED implements the inputs.MotionPadHandler interface.
func (h *Handler) SetLED(index int, r, g, b uint8) {
	d := h.device(index)
	if d == nil {
		return
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	led := [3]uint8{r, g, b}
	if d.led != led {
		d.led = led
		d.dirty = true
	}
}

// RequestExtRead implements the inputs.MotionPadHandler interface.
func (h *Handler) RequestExtRead(index int) {
	d := h.device(index)
	if d == nil {
		return
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	d.extReading = true
}

// ExtRead implements the inputs.MotionPadHandler interface. Accessory
// information is not available over HID and so the information is always
// empty.
func (h *Handler) ExtRead(index int) (uint32, [inputs.ExtInfoSize]byte, bool) {
	var info [inputs.ExtInfoSize]byte
	d := h.device(index)
	if d == nil {
		return 0, info, true
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.state.Move.ExtID, info, !d.extReading
}

// ExtWrite implements the inputs.MotionPadHandler interface.
func (h *Handler) ExtWrite(index int, _ [inputs.ExtOutputSize]byte) bool {
	d := h.device(index)
	if d == nil {
		return false
	}
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.extWriting {
		return false
	}
	d.extWriting = true
	return true
}
