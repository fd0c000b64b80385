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

package sdlinput

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/logger"
)

// size of the window used to capture the mouse
const (
	windowWidth  = 640
	windowHeight = 480
)

// Handler implements the inputs.PadHandler and inputs.MouseHandler
// interfaces.
type Handler struct {
	env *environment.Environment

	// main thread only
	controllers [inputs.MaxPadPorts]*sdl.GameController
	window      *sdl.Window
	quit        bool

	// state of every device as of the most recent call to Service()
	crit   sync.Mutex
	pads   [inputs.MaxPadPorts]inputs.PadState
	mouse  inputs.MouseState
	hasWin bool
}

// NewHandler is the preferred method of initialisation for the Handler type.
// If mouse is true then a window is opened to capture the mouse.
//
// Must be called from the main thread.
func NewHandler(env *environment.Environment, mouse bool) (*Handler, error) {
	h := &Handler{
		env: env,
	}

	flags := uint32(sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK | sdl.INIT_EVENTS)
	if mouse {
		flags |= sdl.INIT_VIDEO
	}

	err := sdl.Init(flags)
	if err != nil {
		return nil, curated.Errorf("sdlinput: %v", err)
	}

	if mouse {
		h.window, err = sdl.CreateWindow("gemcore", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			windowWidth, windowHeight, sdl.WINDOW_SHOWN)
		if err != nil {
			sdl.Quit()
			return nil, curated.Errorf("sdlinput: %v", err)
		}
		h.hasWin = true
		h.showCursor(h.env.Prefs.ShowCursor.Load())
	}

	h.openControllers()
	h.Service()

	return h, nil
}

// Destroy closes every device and shuts down SDL.
//
// Must be called from the main thread.
func (h *Handler) Destroy() {
	for i, c := range h.controllers {
		if c != nil {
			c.Close()
			h.controllers[i] = nil
		}
	}
	if h.window != nil {
		_ = h.window.Destroy()
		h.window = nil
	}
	sdl.Quit()
}

func (h *Handler) showCursor(show bool) {
	toggle := sdl.DISABLE
	if show {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		logger.Logf(h.env, "sdlinput", "cursor: %v", err)
	}
}

// controllers are assigned to pads starting with the pad used by the first
// slot
func padIndex(controller int) int {
	return inputs.MaxPadPorts - 1 - controller
}

func (h *Handler) openControllers() {
	for i, c := range h.controllers {
		if c != nil {
			c.Close()
			h.controllers[i] = nil
		}
	}

	n := 0
	for i := range sdl.NumJoysticks() {
		if !sdl.IsGameController(i) {
			continue
		}
		if n >= inputs.MaxSlots {
			break
		}

		c := sdl.GameControllerOpen(i)
		if c == nil || !c.Attached() {
			continue
		}

		// sensors are not available on every controller
		_ = c.SetSensorEnabled(sdl.SENSOR_ACCEL, true)
		_ = c.SetSensorEnabled(sdl.SENSOR_GYRO, true)

		logger.Logf(h.env, "sdlinput", "gamepad: %s", c.Name())
		h.controllers[padIndex(n)] = c
		n++
	}

	if n == 0 {
		logger.Log(h.env, "sdlinput", "no gamepads found")
	}
}

// Service SDL events and update the state of every device. Returns false if
// the user has asked to quit.
//
// Must be called from the main thread.
func (h *Handler) Service() bool {
	rescan := false

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			h.quit = true
		case *sdl.ControllerDeviceEvent:
			switch ev.Type {
			case sdl.CONTROLLERDEVICEADDED, sdl.CONTROLLERDEVICEREMOVED:
				rescan = true
			}
		}
	}

	if rescan {
		h.openControllers()
	}

	var pads [inputs.MaxPadPorts]inputs.PadState
	for i, c := range h.controllers {
		if c != nil && c.Attached() {
			pads[i] = padState(c)
		}
	}

	var mouse inputs.MouseState
	if h.window != nil {
		x, y, state := sdl.GetMouseState()
		w, ht := h.window.GetSize()
		mouse = inputs.MouseState{
			Buttons: mouseButtons(state),
			X:       int(x),
			Y:       int(y),
			XMax:    int(w),
			YMax:    int(ht),
		}
	}

	h.crit.Lock()
	h.pads = pads
	h.mouse = mouse
	h.crit.Unlock()

	return !h.quit
}

var buttons = []struct {
	in  inputs.PadInput
	btn sdl.GameControllerButton
}{
	{inputs.PadStart, sdl.CONTROLLER_BUTTON_START},
	{inputs.PadSelect, sdl.CONTROLLER_BUTTON_BACK},
	{inputs.PadTriangle, sdl.CONTROLLER_BUTTON_Y},
	{inputs.PadCircle, sdl.CONTROLLER_BUTTON_B},
	{inputs.PadCross, sdl.CONTROLLER_BUTTON_A},
	{inputs.PadSquare, sdl.CONTROLLER_BUTTON_X},
	{inputs.PadL1, sdl.CONTROLLER_BUTTON_LEFTSHOULDER},
	{inputs.PadR1, sdl.CONTROLLER_BUTTON_RIGHTSHOULDER},
	{inputs.PadL3, sdl.CONTROLLER_BUTTON_LEFTSTICK},
	{inputs.PadR3, sdl.CONTROLLER_BUTTON_RIGHTSTICK},
	{inputs.PadUp, sdl.CONTROLLER_BUTTON_DPAD_UP},
	{inputs.PadDown, sdl.CONTROLLER_BUTTON_DPAD_DOWN},
	{inputs.PadLeft, sdl.CONTROLLER_BUTTON_DPAD_LEFT},
	{inputs.PadRight, sdl.CONTROLLER_BUTTON_DPAD_RIGHT},
	{inputs.PadPS, sdl.CONTROLLER_BUTTON_GUIDE},
}

var sticks = []struct {
	in   inputs.PadInput
	axis sdl.GameControllerAxis
}{
	{inputs.PadLSX, sdl.CONTROLLER_AXIS_LEFTX},
	{inputs.PadLSY, sdl.CONTROLLER_AXIS_LEFTY},
	{inputs.PadRSX, sdl.CONTROLLER_AXIS_RIGHTX},
	{inputs.PadRSY, sdl.CONTROLLER_AXIS_RIGHTY},
}

var triggers = []struct {
	in   inputs.PadInput
	axis sdl.GameControllerAxis
}{
	{inputs.PadL2, sdl.CONTROLLER_AXIS_TRIGGERLEFT},
	{inputs.PadR2, sdl.CONTROLLER_AXIS_TRIGGERRIGHT},
}

// triggers below this value are not pressed
const triggerThreshold = 0x1000

// SDL reports acceleration in m/s²
const standardGravity = 9.80665

// stickValue converts an SDL axis value to the range used by PadState
func stickValue(v int16) uint16 {
	return uint16((int32(v) + 32768) >> 8)
}

func padState(c *sdl.GameController) inputs.PadState {
	st := inputs.PadState{
		Connected: true,
	}

	for _, b := range buttons {
		if c.Button(b.btn) != 0 {
			st.Pressed[b.in] = true
			st.Values[b.in] = 255
		}
	}

	for _, s := range sticks {
		st.Pressed[s.in] = true
		st.Values[s.in] = stickValue(c.Axis(s.axis))
	}

	for _, t := range triggers {
		v := c.Axis(t.axis)
		if v > triggerThreshold {
			st.Pressed[t.in] = true
			st.Values[t.in] = uint16(v >> 7)
		}
	}

	if c.HasSensor(sdl.SENSOR_ACCEL) {
		var accel [3]float32
		if err := c.GetSensorData(sdl.SENSOR_ACCEL, accel[:]); err == nil {
			for i := range accel {
				st.Move.Accel[i] = accel[i] / standardGravity
			}
		}
	}
	if c.HasSensor(sdl.SENSOR_GYRO) {
		var gyro [3]float32
		if err := c.GetSensorData(sdl.SENSOR_GYRO, gyro[:]); err == nil {
			st.Move.Gyro = gyro
		}
	}

	return st
}

func mouseButtons(state uint32) inputs.MouseButtons {
	var b inputs.MouseButtons
	if state&sdl.Button(sdl.BUTTON_LEFT) != 0 {
		b |= inputs.MouseButton1
	}
	if state&sdl.Button(sdl.BUTTON_RIGHT) != 0 {
		b |= inputs.MouseButton2
	}
	if state&sdl.Button(sdl.BUTTON_MIDDLE) != 0 {
		b |= inputs.MouseButton3
	}
	if state&sdl.Button(sdl.BUTTON_X1) != 0 {
		b |= inputs.MouseButton4
	}
	if state&sdl.Button(sdl.BUTTON_X2) != 0 {
		b |= inputs.MouseButton5
	}
	return b
}

// Pad implements the inputs.PadHandler interface.
func (h *Handler) Pad(index int) inputs.PadState {
	if index < 0 || index >= inputs.MaxPadPorts {
		return inputs.PadState{}
	}
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.pads[index]
}

// Init implements the inputs.MouseHandler interface.
func (h *Handler) Init(_ int) {
}

// Connected implements the inputs.MouseHandler interface. SDL combines every
// mouse into one.
func (h *Handler) Connected() int {
	h.crit.Lock()
	defer h.crit.Unlock()
	if h.hasWin {
		return 1
	}
	return 0
}

// Status implements the inputs.MouseHandler interface.
func (h *Handler) Status(index int) bool {
	return index == 0 && h.Connected() > 0
}

// Mouse implements the inputs.MouseHandler interface.
func (h *Handler) Mouse(index int) (inputs.MouseState, bool) {
	if !h.Status(index) {
		return inputs.MouseState{}, false
	}
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.mouse, true
}
