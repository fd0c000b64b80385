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
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/gem/tracker"
	"github.com/jetsetilly/gemcore/guestmem"
	"github.com/jetsetilly/gemcore/test"
)

// fakeBackend is a backend with every optional capability
type fakeBackend struct {
	kind      inputs.Kind
	connected int

	crit        sync.Mutex
	buttons     inputs.Buttons
	analogT     uint16
	sample      coords.Sample
	hasSample   bool
	ext         inputs.ExtStatus
	inertial    inputs.Inertial
	calAck      bool
	calRequests int
	calClears   int
	rumble      [MaxSlots]uint8
	magnet      [MaxSlots]bool
	extID       uint32
	extInfo     [inputs.ExtInfoSize]byte
	extReading  bool
	extPending  bool
	binds       int
}

func (b *fakeBackend) Kind() inputs.Kind {
	return b.kind
}

func (b *fakeBackend) Bind(maxConnect int) inputs.Binding {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.binds++

	var bnd inputs.Binding
	if b.kind == inputs.KindNull {
		return bnd
	}
	bnd.Connected = min(b.connected, maxConnect)
	for slot := range bnd.Connected {
		bnd.Slots[slot] = true
	}
	return bnd
}

func (b *fakeBackend) Buttons(slot int) (inputs.Buttons, uint16) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.buttons, b.analogT
}

func (b *fakeBackend) Position(slot int) (coords.Sample, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.sample, b.hasSample
}

func (b *fakeBackend) ExtPort(slot int) (inputs.ExtPortData, inputs.ExtStatus, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return inputs.ExtPortData{Status: uint16(b.ext.Status)}, b.ext, true
}

func (b *fakeBackend) Inertial(slot int) (inputs.Inertial, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.inertial, true
}

func (b *fakeBackend) RequestCalibration(slot int) bool {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.calRequests++
	return b.calAck
}

func (b *fakeBackend) ClearCalibration(slot int) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.calClears++
}

func (b *fakeBackend) SetMagnetometer(slot int, enabled bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.magnet[slot] = enabled
}

func (b *fakeBackend) SetRumble(slot int, value uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.rumble[slot] = value
}

func (b *fakeBackend) RequestExtRead(slot int) bool {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.extReading = true
	return true
}

func (b *fakeBackend) ExtRead(slot int) (uint32, [inputs.ExtInfoSize]byte, bool, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.extID, b.extInfo, b.extReading, true
}

func (b *fakeBackend) ExtWrite(slot int, data [inputs.ExtOutputSize]byte) (bool, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	if b.extPending {
		return false, true
	}
	b.extPending = true
	return true, true
}

// countingMemory records the number of successful calls to Free()
type countingMemory struct {
	*guestmem.Memory
	frees atomic.Int32
}

func (mem *countingMemory) Free(handle uint32) error {
	err := mem.Memory.Free(handle)
	if err == nil {
		mem.frees.Add(1)
	}
	return err
}

// failingMemory can never allocate
type failingMemory struct {
	guestmem.Memory
}

func (mem *failingMemory) Alloc(_ uint32, _ uint32) (uint32, error) {
	return 0, errors.New("no memory")
}

type fixture struct {
	sys     *System
	backend *fakeBackend
	clk     *environment.ManualClock
	env     *environment.Environment
	mem     *countingMemory
	cam     *camera.Shared
}

func newFixture(t *testing.T, kind inputs.Kind, connected int) *fixture {
	t.Helper()

	f := &fixture{
		backend: &fakeBackend{kind: kind, connected: connected, calAck: true},
		clk:     &environment.ManualClock{},
		mem:     &countingMemory{Memory: guestmem.NewMemory(0, 0x1000000)},
		cam:     &camera.Shared{},
	}

	var err error
	f.env, err = environment.NewEnvironment("test", nil, f.clk)
	test.DemandSuccess(t, err)

	f.sys = NewSystem(f.env, f.backend, f.cam, nil, f.mem)
	return f
}

// init the system and make sure that it is ended when the test completes
func (f *fixture) init(t *testing.T, maxConnect int) {
	t.Helper()
	test.DemandEquality(t, f.sys.Init(Attributes{MaxConnect: maxConnect}), OK)
	t.Cleanup(func() {
		_ = f.sys.End()
	})
}

// publish a RAW8 camera frame with three buffers starting at the base handle
func (f *fixture) publish(base uint32, timestamp uint64) camera.Info {
	info := camera.Info{
		Format:  camera.FormatRAW8,
		Width:   camera.DefaultWidth,
		Height:  camera.DefaultHeight,
		Buffers: [camera.NumBuffers]uint32{base, base + 0x100000, base + 0x200000},
	}
	info.ByteSize = info.Size()
	f.cam.Publish(info, make([]byte, info.ByteSize), timestamp)
	return info
}

// waitFor polls the condition until it is true. the test fails if the
// condition does not become true within a second
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

// gatedVision holds its tracking cycle open until release is closed
type gatedVision struct {
	entered  chan bool
	release  chan bool
	finished atomic.Bool
}

func newGatedVision() *gatedVision {
	return &gatedVision{
		entered: make(chan bool, 1),
		release: make(chan bool),
	}
}

func (v *gatedVision) Process(_ tracker.Image, _ tracker.Config) (tracker.Hues, [inputs.MaxSlots]tracker.Result) {
	select {
	case v.entered <- true:
	default:
	}
	<-v.release
	v.finished.Store(true)
	return tracker.Hues{}, [inputs.MaxSlots]tracker.Result{}
}
