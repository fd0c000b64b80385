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

package lightgun_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/0xcafed00d/joystick"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/hostinput/lightgun"
	"github.com/jetsetilly/gemcore/test"
)

type fakeStick struct {
	crit   sync.Mutex
	state  joystick.State
	closed bool
}

func (f *fakeStick) AxisCount() int   { return 2 }
func (f *fakeStick) ButtonCount() int { return 9 }
func (f *fakeStick) Name() string     { return "fake gun" }

func (f *fakeStick) Read() (joystick.State, error) {
	f.crit.Lock()
	defer f.crit.Unlock()
	return f.state, nil
}

func (f *fakeStick) Close() {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.closed = true
}

func (f *fakeStick) set(st joystick.State) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.state = st
}

func newHandler(t *testing.T, sticks ...*fakeStick) *lightgun.Handler {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)

	return lightgun.NewHandler(env, func(id int) (joystick.Joystick, error) {
		if id >= len(sticks) {
			return nil, errors.New("no joystick")
		}
		return sticks[id], nil
	})
}

func TestNoGuns(t *testing.T) {
	h := newHandler(t)
	test.ExpectFailure(t, h.Init())
	test.ExpectEquality(t, h.NumGuns(), 0)
	_, ok := h.Gun(0)
	test.ExpectFailure(t, ok)
	h.Close()
}

func TestGun(t *testing.T) {
	a := &fakeStick{}
	b := &fakeStick{}
	h := newHandler(t, a, b)

	test.DemandSuccess(t, h.Init())
	test.ExpectEquality(t, h.NumGuns(), 2)

	// a second Init() does not open more joysticks
	test.ExpectSuccess(t, h.Init())
	test.ExpectEquality(t, h.NumGuns(), 2)

	g, ok := h.Gun(1)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, g.XMax, 65535)

	a.set(joystick.State{AxisData: []int{-32768, 100}, Buttons: 0x01 | 0x08})

	deadline := time.Now().Add(time.Second)
	for {
		g, _ = h.Gun(0)
		if g.Buttons != 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, g.Buttons, inputs.GunLeft|inputs.Gun1)
	test.ExpectEquality(t, g.X, 0)
	test.ExpectEquality(t, g.Y, 32868)

	h.Close()
	test.ExpectSuccess(t, a.closed)
	test.ExpectSuccess(t, b.closed)
	test.ExpectEquality(t, h.NumGuns(), 0)
}
