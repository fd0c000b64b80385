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

package tracker

import (
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/logger"
)

// Tracker is the camera tracking worker.
type Tracker struct {
	env    *environment.Environment
	cam    *camera.Shared
	vision Vision
	source Source

	// the worker goroutine is running. the tracker is only run for native
	// backends and so this also indicates that the hue histogram is meaningful
	running atomic.Bool
	busy    atomic.Bool

	// leds is only accessed by the worker goroutine and by Start()
	leds inputs.LEDSetter

	wake    chan bool
	done    chan bool
	quit    chan bool
	stopped chan bool

	// frame bound by the most recent call to Bind()
	frameCrit sync.Mutex
	frame     []byte
	frameInfo camera.Info

	// results of the most recent cycle
	crit    sync.Mutex
	hues    Hues
	results [inputs.MaxSlots]Result
}

// NewTracker is the preferred method of initialisation for the Tracker type.
func NewTracker(env *environment.Environment, cam *camera.Shared, vision Vision, source Source) *Tracker {
	tr := &Tracker{
		env:     env,
		cam:     cam,
		vision:  vision,
		source:  source,
		wake:    make(chan bool, 1),
		done:    make(chan bool, 1),
		quit:    make(chan bool, 1),
		stopped: make(chan bool, 1),
	}

	// there is no outstanding cycle on startup
	tr.done <- true

	return tr
}

// Start the worker. The worker is only started if track is true. The leds
// argument can be nil.
func (tr *Tracker) Start(track bool, leds inputs.LEDSetter) {
	if !track {
		return
	}

	if !tr.running.CompareAndSwap(false, true) {
		return
	}

	tr.leds = leds

	tr.crit.Lock()
	tr.hues = Hues{}
	tr.results = [inputs.MaxSlots]Result{}
	tr.crit.Unlock()

	go tr.run()
}

// Stop the worker. Any current cycle is completed first.
func (tr *Tracker) Stop() {
	if !tr.running.CompareAndSwap(true, false) {
		return
	}

	tr.quit <- true
	<-tr.stopped

	// discard any wake that was not acted upon and make sure that anything
	// waiting for the result is released
	select {
	case <-tr.wake:
	default:
	}
	select {
	case tr.done <- true:
	default:
	}
}

// Wake the worker for a new cycle. Repeated calls before the worker resumes
// result in a single cycle.
func (tr *Tracker) Wake() {
	if !tr.running.Load() {
		return
	}

	select {
	case <-tr.done:
	default:
	}

	select {
	case tr.wake <- true:
	default:
	}

	// a Stop() that completed after the running check has already released
	// the done token. restore it because no worker will act on the wake
	if !tr.running.Load() {
		select {
		case tr.done <- true:
		default:
		}
	}
}

// IsBusy returns true while a cycle is running.
func (tr *Tracker) IsBusy() bool {
	return tr.busy.Load()
}

// WaitForResult blocks until there is no outstanding cycle.
func (tr *Tracker) WaitForResult() {
	tok := <-tr.done

	// put the token back so that the next call also returns immediately. if
	// the worker has refilled the channel in the meantime then the token is
	// no longer needed
	select {
	case tr.done <- tok:
	default:
	}
}

// Bind the camera frame for the next cycle. Returns false if the handle is not
// one of the camera buffers or if the frame size is not correct for the
// format.
func (tr *Tracker) Bind(handle uint32) bool {
	tr.frameCrit.Lock()
	defer tr.frameCrit.Unlock()

	var ok bool
	tr.frame, tr.frameInfo, ok = tr.cam.Frame(handle, tr.frame)
	if !ok {
		return false
	}

	size := tr.frameInfo.Size()
	if size == 0 || tr.frameInfo.ByteSize != size || len(tr.frame) != size {
		tr.frame = tr.frame[:0]
		return false
	}

	return true
}

// Info returns the most recent result for the slot.
func (tr *Tracker) Info(slot int) Result {
	if slot < 0 || slot >= inputs.MaxSlots {
		return Result{}
	}
	tr.crit.Lock()
	defer tr.crit.Unlock()
	return tr.results[slot]
}

// TrackedPosition implements the inputs.PositionSource interface.
func (tr *Tracker) TrackedPosition(slot int) coords.Sample {
	return tr.Info(slot).Sample()
}

// HueIsTrackable returns true if the hue is not common enough in the camera
// image to interfere with tracking. All hues are trackable if the worker is
// not running.
func (tr *Tracker) HueIsTrackable(hue uint32) bool {
	if !tr.running.Load() {
		return true
	}
	if hue >= NumHues {
		return false
	}
	tr.crit.Lock()
	defer tr.crit.Unlock()
	return tr.hues[hue] < TrackableLimit
}

func (tr *Tracker) run() {
	for {
		select {
		case <-tr.quit:
			tr.stopped <- true
			return
		case <-tr.wake:
			tr.cycle()
		}
	}
}

// config creates the configuration for a cycle and pushes the LED colours to
// the devices
func (tr *Tracker) config(reqs [inputs.MaxSlots]Request) Config {
	p := tr.env.Prefs
	game := p.AllowHueSetByGame.Load()

	cfg := Config{
		MinRadius: float32(p.MinRadius.Load() / 100),
		MaxRadius: float32(p.MaxRadius.Load() / 100),
	}

	for slot, req := range reqs {
		pl := &p.Players[slot]

		cfg.Slots[slot] = Slot{
			Active:              req.Active,
			Hue:                 req.Hue,
			HueThreshold:        pl.HueThreshold.Load(),
			SaturationThreshold: pl.SaturationThreshold.Load(),
		}
		if !game {
			cfg.Slots[slot].Hue = uint32(pl.Hue.Load())
		}

		if tr.leds == nil {
			continue
		}

		var r, g, b uint8
		if game {
			r, g, b = req.Colour.Bytes()
		} else {
			c := colour.NewRGB(float32(pl.Red.Load())/255, float32(pl.Green.Load())/255, float32(pl.Blue.Load())/255)
			r, g, b = c.Bytes()
		}
		tr.leds.SetLED(slot, r, g, b)
	}

	return cfg
}

func (tr *Tracker) cycle() {
	tr.busy.Store(true)

	cfg := tr.config(tr.source.TrackerRequests())

	tr.frameCrit.Lock()
	img := Image{
		Format: tr.frameInfo.Format,
		Width:  tr.frameInfo.Width,
		Height: tr.frameInfo.Height,
		Data:   tr.frame,
	}

	var hues Hues
	var results [inputs.MaxSlots]Result
	if len(img.Data) > 0 {
		hues, results = tr.vision.Process(img, cfg)
	} else {
		logger.Log(tr.env, "tracker", "no frame bound for tracking cycle")
	}
	tr.frameCrit.Unlock()

	for slot := range results {
		if !cfg.Slots[slot].Active {
			results[slot].Valid = false
		}
	}

	tr.crit.Lock()
	tr.hues = hues
	tr.results = results
	tr.crit.Unlock()

	tr.source.TrackerResults(results)

	select {
	case tr.done <- true:
	default:
	}
	tr.busy.Store(false)
}
