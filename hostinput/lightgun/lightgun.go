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

// Package lightgun implements the GunHandler interface of the gem/inputs
// package. Light guns appear to the host as joysticks with two absolute axes
// and a number of buttons.
package lightgun

import (
	"sync"
	"time"

	"github.com/0xcafed00d/joystick"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/logger"
)

// joystick axes are signed values with zero at the centre
const (
	axisCentre = 32768
	axisMax    = 65535
)

const pollPeriod = 10 * time.Millisecond

// the gun buttons are the same order as the joystick buttons
const buttonMask = 0x1ff

// Opener opens the joystick with the ID.
type Opener func(id int) (joystick.Joystick, error)

// Handler implements the inputs.GunHandler interface.
type Handler struct {
	env  *environment.Environment
	open Opener

	crit   sync.RWMutex
	sticks []joystick.Joystick
	guns   []inputs.GunState

	quit chan bool
	done chan bool
}

// NewHandler is the preferred method of initialisation for the Handler type.
// If open is nil then joystick.Open() is used.
func NewHandler(env *environment.Environment, open Opener) *Handler {
	if open == nil {
		open = joystick.Open
	}
	return &Handler{
		env:  env,
		open: open,
	}
}

// Init implements the inputs.GunHandler interface. Joysticks are opened in
// order until one fails to open or there are enough guns for every slot.
func (h *Handler) Init() bool {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.quit != nil {
		return len(h.sticks) > 0
	}

	for id := range inputs.MaxSlots {
		js, err := h.open(id)
		if err != nil {
			break
		}
		logger.Logf(h.env, "lightgun", "%d: %s (%d axes, %d buttons)", id, js.Name(), js.AxisCount(), js.ButtonCount())
		h.sticks = append(h.sticks, js)
	}

	if len(h.sticks) == 0 {
		return false
	}

	h.guns = make([]inputs.GunState, len(h.sticks))
	for i := range h.guns {
		h.guns[i] = gunState(joystick.State{})
	}
	h.quit = make(chan bool, 1)
	h.done = make(chan bool, 1)
	go h.poll()

	return true
}

func (h *Handler) poll() {
	defer func() {
		h.done <- true
	}()

	ticker := time.NewTicker(pollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.quit:
			return
		case <-ticker.C:
			h.update()
		}
	}
}

func (h *Handler) update() {
	h.crit.RLock()
	sticks := h.sticks
	h.crit.RUnlock()

	for i, js := range sticks {
		st, err := js.Read()
		if err != nil {
			logger.Logf(h.env, "lightgun", "%d: %v", i, err)
			continue
		}

		g := gunState(st)
		h.crit.Lock()
		h.guns[i] = g
		h.crit.Unlock()
	}
}

func gunState(st joystick.State) inputs.GunState {
	g := inputs.GunState{
		Buttons: inputs.GunButtons(st.Buttons & buttonMask),
		X:       axisCentre,
		Y:       axisCentre,
		XMax:    axisMax,
		YMax:    axisMax,
	}
	if len(st.AxisData) > 0 {
		g.X = st.AxisData[0] + axisCentre
	}
	if len(st.AxisData) > 1 {
		g.Y = st.AxisData[1] + axisCentre
	}
	g.X = max(0, min(g.X, axisMax))
	g.Y = max(0, min(g.Y, axisMax))
	return g
}

// Close the joysticks and stop polling. Init() can be called again after
// Close().
func (h *Handler) Close() {
	h.crit.Lock()
	quit := h.quit
	h.crit.Unlock()

	if quit == nil {
		return
	}
	quit <- true
	<-h.done

	h.crit.Lock()
	defer h.crit.Unlock()
	for _, js := range h.sticks {
		js.Close()
	}
	h.sticks = nil
	h.guns = nil
	h.quit = nil
	h.done = nil
}

// NumGuns implements the inputs.GunHandler interface.
func (h *Handler) NumGuns() int {
	h.crit.RLock()
	defer h.crit.RUnlock()
	return len(h.sticks)
}

// Gun implements the inputs.GunHandler interface.
func (h *Handler) Gun(index int) (inputs.GunState, bool) {
	h.crit.RLock()
	defer h.crit.RUnlock()
	if index < 0 || index >= len(h.guns) {
		return inputs.GunState{}, false
	}
	return h.guns[index], true
}
