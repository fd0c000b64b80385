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

package inputs_test

import (
	"testing"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/test"
)

type fakePads struct {
	pads        [inputs.MaxPadPorts]inputs.PadState
	calibrated  [inputs.MaxPadPorts]bool
	leds        [inputs.MaxPadPorts][3]uint8
	rumble      [inputs.MaxPadPorts]uint8
	extRequests int
	extPending  bool
}

func (p *fakePads) Pad(index int) inputs.PadState {
	if index < 0 || index >= len(p.pads) {
		return inputs.PadState{}
	}
	return p.pads[index]
}

func (p *fakePads) RequestCalibration(index int) bool { return p.calibrated[index] }
func (p *fakePads) ClearCalibration(index int) { p.calibrated[index] = false }
func (p *fakePads) SetMagnetometer(_ int, _ bool) {}
func (p *fakePads) SetRumble(index int, value uint8) { p.rumble[index] = value }

func (p *fakePads) SetLED(index int, r, g, b uint8) {
	p.leds[index] = [3]uint8{r, g, b}
}

func (p *fakePads) RequestExtRead(_ int) {
	p.extRequests++
}

func (p *fakePads) ExtRead(_ int) (uint32, [inputs.ExtInfoSize]byte, bool) {
	var info [inputs.ExtInfoSize]byte
	info[0] = 0xaa
	return 0x1234, info, true
}

func (p *fakePads) ExtWrite(_ int, _ [inputs.ExtOutputSize]byte) bool {
	if p.extPending {
		return false
	}
	p.extPending = true
	return true
}

type fakeMice struct {
	connected int
	status    [inputs.MaxSlots]bool
	mice      [inputs.MaxSlots]inputs.MouseState
	initMax   int
}

func (m *fakeMice) Init(n int) { m.initMax = n }
func (m *fakeMice) Connected() int { return m.connected }
func (m *fakeMice) Status(index int) bool { return m.status[index] }
func (m *fakeMice) Mouse(index int) (inputs.MouseState, bool) {
	if index >= m.connected {
		return inputs.MouseState{}, false
	}
	return m.mice[index], true
}

type fakeGuns struct {
	ready bool
	guns  []inputs.GunState
}

func (g *fakeGuns) Init() bool { return g.ready }
func (g *fakeGuns) NumGuns() int { return len(g.guns) }
func (g *fakeGuns) Gun(index int) (inputs.GunState, bool) {
	if index >= len(g.guns) {
		return inputs.GunState{}, false
	}
	return g.guns[index], true
}

type fixedPosition struct{}

func (fixedPosition) TrackedPosition(slot int) coords.Sample {
	return coords.Sample{X: 100 + slot, Y: 200, XMax: 640, YMax: 480}
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil, &environment.ManualClock{})
	test.DemandSuccess(t, err)
	return env
}

func TestSlotMapping(t *testing.T) {
	test.ExpectEquality(t, inputs.PadIndex(0), 6)
	test.ExpectEquality(t, inputs.PadIndex(3), 3)
	test.ExpectEquality(t, inputs.Port(0), uint32(7))
	test.ExpectEquality(t, inputs.Port(3), uint32(4))
}

func TestParseKind(t *testing.T) {
	k, err := inputs.ParseKind("RawMouse")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, k, inputs.KindRawMouse)
	test.ExpectEquality(t, k.String(), "rawmouse")

	_, err = inputs.ParseKind("keyboard")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, inputs.UnknownKind))
}

func TestNewBackend(t *testing.T) {
	env := newEnv(t)

	// a pad handler without motion support is not enough for the move backend
	_, err := inputs.NewBackend(env, inputs.KindMove, inputs.Handlers{})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, inputs.MissingHandler))

	_, err = inputs.NewBackend(env, inputs.KindMouse, inputs.Handlers{})
	test.ExpectFailure(t, err)

	b, err := inputs.NewBackend(env, inputs.KindNull, inputs.Handlers{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Bind(4).Connected, 0)

	b, err = inputs.NewBackend(env, inputs.KindMove, inputs.Handlers{Pads: &fakePads{}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Kind(), inputs.KindMove)

	b, err = inputs.NewBackend(env, inputs.KindRawMouse, inputs.Handlers{Mice: &fakeMice{}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Kind(), inputs.KindRawMouse)
}

func TestMoveBinding(t *testing.T) {
	env := newEnv(t)
	pads := &fakePads{}

	// slot 0 is a motion controller. slot 1 is a regular pad
	pads.pads[inputs.PadIndex(0)] = inputs.PadState{Connected: true, Motion: true}
	pads.pads[inputs.PadIndex(1)] = inputs.PadState{Connected: true}
	pads.pads[inputs.PadIndex(2)] = inputs.PadState{Connected: true, Motion: true}

	m := inputs.NewMove(env, pads)
	b := m.Bind(2)
	test.ExpectEquality(t, b.Connected, 1)
	test.ExpectSuccess(t, b.Slots[0])
	test.ExpectFailure(t, b.Slots[1])

	// slot 2 is beyond the maximum number of connections
	test.ExpectFailure(t, b.Slots[2])

	pads.pads[inputs.PadIndex(0)].Pressed[inputs.PadT] = true
	pads.pads[inputs.PadIndex(0)].Values[inputs.PadT] = 0x8000
	pads.pads[inputs.PadIndex(0)].Pressed[inputs.PadCross] = true

	btn, tv := m.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonT|inputs.ButtonCross)
	test.ExpectEquality(t, tv, uint16(0x8000))

	// position comes from the tracker
	_, ok := m.Position(0)
	test.ExpectFailure(t, ok)
	m.SetPositionSource(fixedPosition{})
	s, ok := m.Position(0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s.X, 100)

	// calibration of a motion controller waits for the device
	test.ExpectFailure(t, m.RequestCalibration(0))
	pads.calibrated[inputs.PadIndex(0)] = true
	test.ExpectSuccess(t, m.RequestCalibration(0))
	m.ClearCalibration(0)
	test.ExpectFailure(t, pads.calibrated[inputs.PadIndex(0)])

	// unbound slots do not need calibration
	test.ExpectSuccess(t, m.RequestCalibration(1))

	m.SetLED(0, 1, 2, 3)
	test.ExpectEquality(t, pads.leds[inputs.PadIndex(0)], [3]uint8{1, 2, 3})
	m.SetRumble(0, 0x80)
	test.ExpectEquality(t, pads.rumble[inputs.PadIndex(0)], uint8(0x80))

	test.ExpectSuccess(t, m.RequestExtRead(0))
	test.ExpectFailure(t, m.RequestExtRead(1))
	id, info, done, connected := m.ExtRead(0)
	test.ExpectSuccess(t, done)
	test.ExpectSuccess(t, connected)
	test.ExpectEquality(t, id, uint32(0x1234))
	test.ExpectEquality(t, info[0], byte(0xaa))

	accepted, connected := m.ExtWrite(0, [inputs.ExtOutputSize]byte{})
	test.ExpectSuccess(t, accepted)
	test.ExpectSuccess(t, connected)
	accepted, _ = m.ExtWrite(0, [inputs.ExtOutputSize]byte{})
	test.ExpectFailure(t, accepted)
}

func TestExtPort(t *testing.T) {
	env := newEnv(t)
	pads := &fakePads{}

	st := inputs.PadState{Connected: true, Motion: true}
	st.Values[inputs.PadLSX] = 12
	st.Values[inputs.PadRSY] = 34
	st.Digital1 = 0x55
	st.Move.ExtConnected = true
	st.Move.ExtID = 0x99
	st.Move.ExtData = [inputs.ExtCustomSize]uint8{1, 2, 3, 4, 5}
	pads.pads[inputs.PadIndex(0)] = st

	m := inputs.NewMove(env, pads)
	m.Bind(1)

	ext, status, ok := m.ExtPort(0)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, status, inputs.ExtStatus{Status: inputs.ExtConnected, ID: 0x99})
	test.ExpectEquality(t, ext.Status, uint16(inputs.ExtConnected))
	test.ExpectEquality(t, ext.AnalogLeftX, uint16(12))
	test.ExpectEquality(t, ext.AnalogRightY, uint16(34))
	test.ExpectEquality(t, ext.Digital1, uint16(0x55))
	test.ExpectEquality(t, ext.Custom[4], uint8(5))

	_, _, ok = m.ExtPort(1)
	test.ExpectFailure(t, ok)
}

func TestInputDisallowed(t *testing.T) {
	env := newEnv(t)
	pads := &fakePads{}
	pads.pads[inputs.PadIndex(0)] = inputs.PadState{Connected: true, Motion: true}
	pads.pads[inputs.PadIndex(0)].Pressed[inputs.PadStart] = true

	m := inputs.NewMove(env, pads)
	m.Bind(1)

	btn, _ := m.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonStart)

	env.SetInputAllowed(false)
	btn, _ = m.Buttons(0)
	test.ExpectEquality(t, btn, inputs.Buttons(0))
	_, ok := m.Inertial(0)
	test.ExpectFailure(t, ok)
}

func TestGamepad(t *testing.T) {
	env := newEnv(t)
	pads := &fakePads{}

	st := inputs.PadState{Connected: true}
	st.Pressed[inputs.PadR1] = true
	st.Pressed[inputs.PadR2] = true
	st.Values[inputs.PadR2] = 0x1000
	st.Values[inputs.PadLSX] = 64
	st.Values[inputs.PadLSY] = 192
	pads.pads[inputs.PadIndex(0)] = st

	gp := inputs.NewGamepad(env, pads)
	b := gp.Bind(4)
	test.ExpectEquality(t, b.Connected, 1)

	btn, tv := gp.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonMove|inputs.ButtonT)
	test.ExpectEquality(t, tv, uint16(0x1000))

	s, ok := gp.Position(0)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s, coords.Sample{X: 64, Y: 192, XMax: 255, YMax: 255})

	// remapping the move button through the preferences
	test.DemandSuccess(t, env.Prefs.Players[0].Buttons.Move.Set("l1"))
	btn, _ = gp.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonT)

	// orientation must be enabled by the pad
	_, ok = gp.Orientation(0)
	test.ExpectFailure(t, ok)
}

func TestMouseButtons(t *testing.T) {
	env := newEnv(t)
	mice := &fakeMice{connected: 2}

	ms := inputs.NewMouse(env, mice, false)
	b := ms.Bind(4)
	test.ExpectEquality(t, b.Connected, 2)
	test.ExpectEquality(t, mice.initMax, 4)

	// button one alone is the T button
	mice.mice[0].Buttons = inputs.MouseButton1
	btn, tv := ms.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonT)
	test.ExpectEquality(t, tv, uint16(inputs.AnalogMax))

	// button three with button one is select. button one is not reused
	mice.mice[0].Buttons = inputs.MouseButton3 | inputs.MouseButton1
	btn, _ = ms.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonSelect)

	// button three can be used in more than one combination
	mice.mice[0].Buttons = inputs.MouseButton3 | inputs.MouseButton1 | inputs.MouseButton2
	btn, _ = ms.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonSelect|inputs.ButtonStart)

	mice.mice[0].Buttons = inputs.MouseButton2 | inputs.MouseButton4 | inputs.MouseButton5
	btn, tv = ms.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonMove|inputs.ButtonCircle|inputs.ButtonCross)
	test.ExpectEquality(t, tv, uint16(0))

	mice.mice[0].Buttons = inputs.MouseButton8
	btn, _ = ms.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonTriangle)

	mice.mice[1] = inputs.MouseState{X: 10, Y: 20, XMax: 100, YMax: 200}
	s, ok := ms.Position(1)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s, coords.Sample{X: 10, Y: 20, XMax: 100, YMax: 200})

	_, _, ok = ms.ExtPort(0)
	test.ExpectFailure(t, ok)
}

func TestRawMouseRescan(t *testing.T) {
	env := newEnv(t)
	mice := &fakeMice{connected: 3}
	mice.status = [inputs.MaxSlots]bool{true, false, true, true}

	ms := inputs.NewMouse(env, mice, true)
	b := ms.Rescan(2)
	test.ExpectEquality(t, b.Connected, 1)
	test.ExpectSuccess(t, b.Slots[0])
	test.ExpectFailure(t, b.Slots[1])
	test.ExpectFailure(t, b.Slots[2])
}

func TestGun(t *testing.T) {
	env := newEnv(t)
	guns := &fakeGuns{
		guns: []inputs.GunState{
			{Buttons: inputs.GunLeft | inputs.Gun5, X: 5, Y: 6, XMax: 10, YMax: 10},
		},
	}

	g := inputs.NewGun(env, guns)

	// handler not ready
	test.ExpectEquality(t, g.Bind(4).Connected, 0)
	_, ok := g.Position(0)
	test.ExpectFailure(t, ok)

	guns.ready = true
	test.ExpectEquality(t, g.Bind(4).Connected, 1)

	btn, tv := g.Buttons(0)
	test.ExpectEquality(t, btn, inputs.ButtonT|inputs.ButtonTriangle)
	test.ExpectEquality(t, tv, uint16(inputs.AnalogMax))

	s, ok := g.Position(0)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.X, 5)
}
