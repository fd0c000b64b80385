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
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/preferences"
)

// the range of the analogue sticks on a host pad
const (
	stickMaxX = 255
	stickMaxY = 255
)

// Gamepad is the backend for any host pad, substituting for a motion
// controller. The buttons and axes used are taken from the player preferences.
type Gamepad struct {
	padBackend
}

// NewGamepad is the preferred method of initialisation for the Gamepad type.
func NewGamepad(env *environment.Environment, pads PadHandler) *Gamepad {
	gp := &Gamepad{}
	gp.padBackend.init(env, pads, false)
	return gp
}

// Kind implements the Backend interface.
func (gp *Gamepad) Kind() Kind {
	return KindGamepad
}

// Bind implements the Backend interface.
func (gp *Gamepad) Bind(maxConnect int) Binding {
	return gp.bind(maxConnect)
}

type mapping struct {
	b    Buttons
	pref string
}

func (gp *Gamepad) mappings(slot int) []mapping {
	if gp.env.Prefs == nil || slot < 0 || slot >= preferences.NumPlayers {
		return nil
	}
	m := &gp.env.Prefs.Players[slot].Buttons
	return []mapping{
		{ButtonStart, m.Start.Load()},
		{ButtonSelect, m.Select.Load()},
		{ButtonTriangle, m.Triangle.Load()},
		{ButtonCircle, m.Circle.Load()},
		{ButtonCross, m.Cross.Load()},
		{ButtonSquare, m.Square.Load()},
		{ButtonMove, m.Move.Load()},
		{ButtonT, m.T.Load()},
	}
}

// Buttons implements the Backend interface.
func (gp *Gamepad) Buttons(slot int) (Buttons, uint16) {
	st, _, ok := gp.pad(slot)
	if !ok {
		return 0, 0
	}

	var b Buttons
	var t uint16

	for _, m := range gp.mappings(slot) {
		in, ok := ParsePadInput(m.pref)
		if !ok || !st.Pressed[in] {
			continue
		}
		b |= m.b
		if m.b == ButtonT {
			t = max(t, st.Values[in])
		}
	}

	return b, t
}

// Position implements the Backend interface.
func (gp *Gamepad) Position(slot int) (coords.Sample, bool) {
	st, _, ok := gp.pad(slot)
	if !ok || gp.env.Prefs == nil || slot >= preferences.NumPlayers {
		return coords.Sample{}, false
	}

	s := coords.Sample{
		XMax: stickMaxX,
		YMax: stickMaxY,
	}

	m := &gp.env.Prefs.Players[slot].Buttons
	if in, ok := ParsePadInput(m.XAxis.Load()); ok {
		s.X = int(st.Axis(in))
	}
	if in, ok := ParsePadInput(m.YAxis.Load()); ok {
		s.Y = int(st.Axis(in))
	}

	return s, true
}

// Orientation implements the Orienter interface. Orientation is only available
// if the pad reports that it supports it.
func (gp *Gamepad) Orientation(slot int) (coords.Quaternion, bool) {
	st, _, ok := gp.pad(slot)
	if !ok || !st.Move.OrientationEnabled {
		return coords.Quaternion{}, false
	}
	return st.Move.Quaternion, true
}
