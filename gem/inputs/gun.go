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

// Gun is the backend for gun style pointing devices.
type Gun struct {
	env     *environment.Environment
	handler GunHandler

	crit  sync.Mutex
	table slotTable
}

// NewGun is the preferred method of initialisation for the Gun type.
func NewGun(env *environment.Environment, guns GunHandler) *Gun {
	return &Gun{
		env:     env,
		handler: guns,
		table:   unboundTable(),
	}
}

// Kind implements the Backend interface.
func (g *Gun) Kind() Kind {
	return KindGun
}

// Bind implements the Backend interface.
func (g *Gun) Bind(maxConnect int) Binding {
	var n int
	if g.handler.Init() {
		n = g.handler.NumGuns()
	}

	var b Binding
	b.Connected = max(0, min(clampConnect(maxConnect), n))

	t := unboundTable()
	for slot := range b.Connected {
		t[slot] = slot
		b.Slots[slot] = true
	}

	g.crit.Lock()
	defer g.crit.Unlock()
	g.table = t

	return b
}

func (g *Gun) gun(slot int) (GunState, bool) {
	if !g.env.InputAllowed() {
		return GunState{}, false
	}

	g.crit.Lock()
	idx, ok := g.table.lookup(slot)
	g.crit.Unlock()

	if !ok {
		return GunState{}, false
	}

	return g.handler.Gun(idx)
}

var gunButtons = []struct {
	gb GunButtons
	b  Buttons
}{
	{GunLeft, ButtonT},
	{GunRight, ButtonMove},
	{GunMiddle, ButtonStart},
	{Gun1, ButtonCross},
	{Gun2, ButtonCircle},
	{Gun3, ButtonSelect},
	{Gun5, ButtonTriangle},
	{Gun6, ButtonSquare},
}

// Buttons implements the Backend interface.
func (g *Gun) Buttons(slot int) (Buttons, uint16) {
	st, ok := g.gun(slot)
	if !ok {
		return 0, 0
	}

	var b Buttons
	for _, gb := range gunButtons {
		if st.Buttons&gb.gb != 0 {
			b |= gb.b
		}
	}

	var t uint16
	if st.Buttons&GunLeft != 0 {
		t = AnalogMax
	}

	return b, t
}

// Position implements the Backend interface.
func (g *Gun) Position(slot int) (coords.Sample, bool) {
	st, ok := g.gun(slot)
	if !ok {
		return coords.Sample{}, false
	}
	return coords.Sample{X: st.X, Y: st.Y, XMax: st.XMax, YMax: st.YMax}, true
}

// ExtPort implements the Backend interface. Guns have no external port.
func (g *Gun) ExtPort(_ int) (ExtPortData, ExtStatus, bool) {
	return ExtPortData{}, ExtStatus{}, false
}
