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

package inputs

import (
	"sync"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/coords"
)

// Mouse is the backend for mice. The slot number is also the mouse number.
//
// Mice do not have enough buttons so some controller buttons are made by
// combining button three with another button.
type Mouse struct {
	env     *environment.Environment
	handler MouseHandler
	raw     bool

	crit       sync.Mutex
	maxConnect int
	table      slotTable
}

// NewMouse is the preferred method of initialisation for the Mouse type. A
// raw mouse backend has a connection status for each mouse.
func NewMouse(env *environment.Environment, mice MouseHandler, raw bool) *Mouse {
	return &Mouse{
		env:        env,
		handler:    mice,
		raw:        raw,
		maxConnect: MaxSlots,
		table:      unboundTable(),
	}
}

// Kind implements the Backend interface.
func (ms *Mouse) Kind() Kind {
	if ms.raw {
		return KindRawMouse
	}
	return KindMouse
}

// Bind implements the Backend interface.
func (ms *Mouse) Bind(maxConnect int) Binding {
	maxConnect = clampConnect(maxConnect)
	ms.handler.Init(maxConnect)

	var b Binding
	b.Connected = min(ms.handler.Connected(), maxConnect)

	t := unboundTable()
	for slot := range b.Connected {
		t[slot] = slot
		b.Slots[slot] = true
	}

	ms.crit.Lock()
	defer ms.crit.Unlock()
	ms.maxConnect = maxConnect
	ms.table = t

	return b
}

// Rescan implements the Rescanner interface. Only raw mouse backends update
// the connection status on rescan. For other backends the result of the most
// recent Bind() is returned.
func (ms *Mouse) Rescan(maxConnect int) Binding {
	if !ms.raw {
		ms.crit.Lock()
		defer ms.crit.Unlock()
		var b Binding
		for slot := range MaxSlots {
			if _, ok := ms.table.lookup(slot); ok {
				b.Slots[slot] = true
				b.Connected++
			}
		}
		return b
	}

	maxConnect = clampConnect(maxConnect)

	var b Binding
	t := unboundTable()
	for slot := range maxConnect {
		if ms.handler.Status(slot) {
			t[slot] = slot
			b.Slots[slot] = true
			b.Connected++
		}
	}

	ms.crit.Lock()
	defer ms.crit.Unlock()
	ms.maxConnect = maxConnect
	ms.table = t

	return b
}

func (ms *Mouse) mouse(slot int) (MouseState, bool) {
	if !ms.env.InputAllowed() || slot < 0 || slot >= MaxSlots {
		return MouseState{}, false
	}

	ms.crit.Lock()
	maxConnect := ms.maxConnect
	ms.crit.Unlock()

	ms.handler.Init(maxConnect)

	return ms.handler.Mouse(slot)
}

// mouse combinations in order of priority. each button can only be used once
// except for button three, which is used in combination with other buttons
var mouseCombos = []struct {
	combo []MouseButtons
	alt   MouseButtons
	b     Buttons
}{
	{combo: []MouseButtons{MouseButton3, MouseButton1}, alt: MouseButton6, b: ButtonSelect},
	{combo: []MouseButtons{MouseButton3, MouseButton2}, alt: MouseButton7, b: ButtonStart},
	{combo: []MouseButtons{MouseButton3, MouseButton4}, alt: MouseButton8, b: ButtonTriangle},
	{combo: []MouseButtons{MouseButton3, MouseButton5}, b: ButtonSquare},
	{combo: []MouseButtons{MouseButton1}, b: ButtonT},
	{combo: []MouseButtons{MouseButton2}, b: ButtonMove},
	{combo: []MouseButtons{MouseButton4}, b: ButtonCircle},
	{combo: []MouseButtons{MouseButton5}, b: ButtonCross},
}

func mouseButtons(pressed MouseButtons) Buttons {
	var used MouseButtons

	isPressed := func(mb MouseButtons) bool {
		if pressed&mb == 0 {
			return false
		}
		if mb == MouseButton3 {
			return true
		}
		if used&mb != 0 {
			return false
		}
		used |= mb
		return true
	}

	var b Buttons

	for _, c := range mouseCombos {
		// every button in the combination must be pressed. evaluation stops
		// at the first button that is not pressed
		all := true
		for _, mb := range c.combo {
			if !isPressed(mb) {
				all = false
				break
			}
		}
		if all || (c.alt != 0 && isPressed(c.alt)) {
			b |= c.b
		}
	}

	return b
}

// Buttons implements the Backend interface.
func (ms *Mouse) Buttons(slot int) (Buttons, uint16) {
	st, ok := ms.mouse(slot)
	if !ok {
		return 0, 0
	}

	var t uint16
	if st.Buttons&MouseButton1 != 0 {
		t = AnalogMax
	}

	return mouseButtons(st.Buttons), t
}

// Position implements the Backend interface.
func (ms *Mouse) Position(slot int) (coords.Sample, bool) {
	st, ok := ms.mouse(slot)
	if !ok {
		return coords.Sample{}, false
	}
	return coords.Sample{X: st.X, Y: st.Y, XMax: st.XMax, YMax: st.YMax}, true
}

// ExtPort implements the Backend interface. Mice have no external port.
func (ms *Mouse) ExtPort(_ int) (ExtPortData, ExtStatus, bool) {
	return ExtPortData{}, ExtStatus{}, false
}
